// Package hostname implements the hostname command.
package hostname

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run prints or sets the simulated host name.
//
// Supported flags:
//
//	-s   Short name (up to the first dot)
//	-i   Address of the host name
//	-I   All addresses of the host, loopback excluded
func Run(ctx *core.Context, args []string) core.Result {
	var short, addr, all bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'s': &short, 'i': &addr, 'I': &all, 'f': nil},
		Long: map[string]*bool{"short": &short, "ip-address": &addr, "all-ip-addresses": &all, "fqdn": nil},
	}.Parse(args)
	if err != nil {
		return core.UsageError("hostname", err.Error())
	}
	sys := ctx.System

	switch {
	case len(operands) > 1:
		return core.UsageError("hostname", "too many arguments")
	case len(operands) == 1:
		if ctx.User() != "root" {
			return core.Errorf("hostname", "you must be root to change the host name")
		}
		sys.Hostname = operands[0]
		ctx.Log.Debug("hostname: set to %s", sys.Hostname)
		return core.Ok("")
	case addr, all:
		var addrs []string
		for _, i := range sys.Network.Interfaces() {
			if i.Name == "lo" || !i.Up {
				continue
			}
			for _, p := range i.Addrs {
				addrs = append(addrs, p.Addr().String())
			}
		}
		if addr && len(addrs) > 1 {
			addrs = addrs[:1]
		}
		return core.Ok(strings.Join(addrs, " "))
	case short:
		name, _, _ := strings.Cut(sys.Hostname, ".")
		return core.Ok(name)
	}
	return core.Ok(sys.Hostname)
}
