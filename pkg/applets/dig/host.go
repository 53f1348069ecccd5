package dig

import (
	"net/netip"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// RunHost executes the host command: a one-line-per-record front end to
// the same resolver dig uses.
//
//	-t TYPE  Query type
func RunHost(ctx *core.Context, args []string) core.Result {
	qtype := "A"
	operands, err := core.Flags{Value: map[byte]*string{'t': &qtype}}.Parse(args)
	if err != nil {
		return core.UsageError("host", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("host", "missing name")
	}
	label, ok := parseType(qtype)
	if !ok {
		return core.Errorf("host", "invalid type: %s", qtype)
	}
	r := resolver{ctx: ctx}
	server := r.defaultServer()
	if len(operands) > 1 {
		server = operands[1]
	}
	if _, err := r.reach(server); err != nil {
		return core.Errorf("host", ";; connection timed out; no servers could be reached")
	}

	name := operands[0]
	if addr, err := netip.ParseAddr(name); err == nil && addr.Is4() {
		name, label = reverseName(addr), "PTR"
	}
	answers, found := r.query(fqdn(name), label)
	if !found {
		return core.Result{Output: "Host " + operands[0] + " not found: 3(NXDOMAIN)", Status: core.StatusError}
	}
	if len(answers) == 0 {
		return core.Ok(operands[0] + " has no " + label + " record")
	}
	var lines []string
	for _, a := range answers {
		switch a.rtype {
		case "A":
			lines = append(lines, operands[0]+" has address "+a.data)
		case "AAAA":
			lines = append(lines, operands[0]+" has IPv6 address "+a.data)
		case "PTR":
			lines = append(lines, a.name+" domain name pointer "+a.data)
		}
	}
	return core.Ok(core.JoinLines(lines))
}
