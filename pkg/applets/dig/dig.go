// Package dig implements dig and host over the simulated resolver. Names
// are looked up in the session's /etc/hosts first and then in the
// network's host table; only A and PTR records exist.
package dig

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

const ttl = 300

type options struct {
	qname       string
	qtype       string
	server      string
	shortOutput bool
	reverse     bool
}

type record struct {
	name  string
	rtype string
	data  string
}

var typeNames = map[string]bool{
	"A":   true, "AAAA": true, "NS": true, "CNAME": true, "SOA": true,
	"PTR": true, "MX": true, "TXT": true, "SRV": true, "ANY": true,
}

// Run executes the dig command with the given arguments.
//
// Supported flags:
//
//	-x ADDR     Perform a reverse lookup
//	-t TYPE     Query type (A, AAAA, MX, NS, CNAME, TXT, SOA, PTR, SRV, ANY)
//	@SERVER     Specify the DNS server to query
//	+short      Print answers only
//
// The first non-flag argument is the domain name to query. Without a
// server, the first nameserver in /etc/resolv.conf is used, falling back
// to the default gateway.
func Run(ctx *core.Context, args []string) core.Result {
	opts, res := parseArgs(args)
	if res != nil {
		return *res
	}
	r := resolver{ctx: ctx}
	if opts.server == "" {
		opts.server = r.defaultServer()
	}
	if opts.reverse {
		addr, err := netip.ParseAddr(opts.qname)
		if err != nil || !addr.Is4() {
			return core.Errorf("dig", "invalid address: %s", opts.qname)
		}
		opts.qname = reverseName(addr)
		opts.qtype = "PTR"
	}
	rtt, err := r.reach(opts.server)
	if err != nil {
		return core.Errorf("dig", ";; connection timed out; no servers could be reached")
	}
	answers, found := r.query(fqdn(opts.qname), opts.qtype)

	if opts.shortOutput {
		var lines []string
		for _, a := range answers {
			lines = append(lines, a.data)
		}
		return core.Ok(core.JoinLines(lines))
	}

	status := "NOERROR"
	if !found {
		status = "NXDOMAIN"
	}
	lines := []string{
		"; <<>> DiG 9.18.24 <<>> " + strings.Join(args, " "),
		";; ->>HEADER<<- opcode: QUERY, status: " + status + ", id: 4242",
		fmt.Sprintf(";; flags: qr rd ra; QUERY: 1, ANSWER: %d, AUTHORITY: 0, ADDITIONAL: 0", len(answers)),
		"",
		";; QUESTION SECTION:",
		fmt.Sprintf(";%s\t\tIN\t%s", fqdn(opts.qname), opts.qtype),
		"",
	}
	if len(answers) > 0 {
		lines = append(lines, ";; ANSWER SECTION:")
		for _, a := range answers {
			lines = append(lines, fmt.Sprintf("%s\t%d\tIN\t%s\t%s", a.name, ttl, a.rtype, a.data))
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		fmt.Sprintf(";; Query time: %d msec", rtt/10),
		fmt.Sprintf(";; SERVER: %s#53(%s) (UDP)", opts.server, opts.server),
		";; WHEN: "+ctx.System.Clock.Now().Format("Mon Jan 02 15:04:05 MST 2006"),
	)
	return core.Ok(strings.Join(lines, "\n"))
}

func parseArgs(args []string) (options, *core.Result) {
	opts := options{qtype: "A"}
	typeExplicit := false
	fail := func(msg string) (options, *core.Result) {
		res := core.UsageError("dig", msg)
		return opts, &res
	}

	for len(args) > 0 {
		arg := args[0]
		if strings.HasPrefix(arg, "@") {
			opts.server = arg[1:]
			args = args[1:]
			continue
		}
		if strings.HasPrefix(arg, "+") {
			switch strings.TrimPrefix(arg, "+") {
			case "short":
				opts.shortOutput = true
			case "noall", "answer", "tcp":
			default:
				return fail("invalid option " + arg)
			}
			args = args[1:]
			continue
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			switch arg {
			case "-x":
				opts.reverse = true
				args = args[1:]
			case "-4":
				args = args[1:]
			case "-t":
				if len(args) < 2 {
					return fail("missing type")
				}
				label, ok := parseType(args[1])
				if !ok {
					return fail("unknown type")
				}
				opts.qtype = label
				typeExplicit = true
				args = args[2:]
			default:
				return fail("invalid option")
			}
			continue
		}
		if opts.qname == "" {
			opts.qname = arg
			args = args[1:]
			continue
		}
		if !typeExplicit {
			if label, ok := parseType(arg); ok {
				opts.qtype = label
				typeExplicit = true
				args = args[1:]
				continue
			}
		}
		return fail("invalid arguments")
	}
	if opts.qname == "" {
		return fail("missing name")
	}
	return opts, nil
}

func parseType(val string) (string, bool) {
	upper := strings.ToUpper(val)
	return upper, typeNames[upper]
}

// resolver answers queries from /etc/hosts and the network host table.
type resolver struct {
	ctx *core.Context
}

func (r resolver) defaultServer() string {
	if data, err := r.ctx.ReadFile("/etc/resolv.conf"); err == nil {
		for _, line := range core.Lines(data) {
			fields := strings.Fields(line)
			if len(fields) >= 2 && fields[0] == "nameserver" {
				return fields[1]
			}
		}
	}
	return sysstate.RemoteHost(r.ctx.System.Network)
}

// reach returns the round trip to server in tenths of a millisecond.
func (r resolver) reach(server string) (int, error) {
	addr, ok := r.ctx.System.Network.Resolve(server)
	if !ok {
		return 0, sysstate.ErrUnreachable
	}
	rtt, ok, err := r.ctx.System.Network.Ping(addr)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, sysstate.ErrUnreachable
	}
	return rtt, nil
}

type hostEntry struct {
	name string
	addr netip.Addr
}

// hosts parses /etc/hosts in file order.
func (r resolver) hosts() []hostEntry {
	data, err := r.ctx.ReadFile("/etc/hosts")
	if err != nil {
		return nil
	}
	var out []hostEntry
	for _, line := range core.Lines(data) {
		line, _, _ = strings.Cut(line, "#")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		addr, err := netip.ParseAddr(fields[0])
		if err != nil {
			continue
		}
		for _, name := range fields[1:] {
			out = append(out, hostEntry{name: name, addr: addr})
		}
	}
	return out
}

func (r resolver) lookup(name string) (netip.Addr, bool) {
	for _, h := range r.hosts() {
		if h.name == name {
			return h.addr, true
		}
	}
	if _, err := netip.ParseAddr(name); err == nil {
		return netip.Addr{}, false
	}
	return r.ctx.System.Network.Resolve(name)
}

func (r resolver) reverse(addr netip.Addr) (string, bool) {
	for _, h := range r.hosts() {
		if h.addr == addr {
			return h.name, true
		}
	}
	return r.ctx.System.Network.Reverse(addr)
}

// query reports the answers for name and whether the name exists.
func (r resolver) query(name, qtype string) ([]record, bool) {
	host := strings.TrimSuffix(name, ".")
	if addr, ok := parseReverse(host); ok {
		target, found := r.reverse(addr)
		if !found {
			return nil, false
		}
		if qtype != "PTR" && qtype != "ANY" {
			return nil, true
		}
		return []record{{name: name, rtype: "PTR", data: fqdn(target)}}, true
	}
	addr, ok := r.lookup(host)
	if !ok {
		return nil, false
	}
	switch {
	case addr.Is4() && (qtype == "A" || qtype == "ANY"):
		return []record{{name: name, rtype: "A", data: addr.String()}}, true
	case addr.Is6() && (qtype == "AAAA" || qtype == "ANY"):
		return []record{{name: name, rtype: "AAAA", data: addr.String()}}, true
	}
	return nil, true
}

func fqdn(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "."
}

func reverseName(addr netip.Addr) string {
	b := addr.As4()
	return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa.", b[3], b[2], b[1], b[0])
}

func parseReverse(name string) (netip.Addr, bool) {
	rest, ok := strings.CutSuffix(name, ".in-addr.arpa")
	if !ok {
		return netip.Addr{}, false
	}
	parts := strings.Split(rest, ".")
	if len(parts) != 4 {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(parts[3] + "." + parts[2] + "." + parts[1] + "." + parts[0])
	return addr, err == nil
}
