// Package ip implements the iproute2 ip command over the simulated network.
package ip

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the ip command with the given arguments.
//
// Supported forms:
//
//	ip [-br] addr|a [show [dev] IF]
//	ip [-br] link|l [show [dev] IF]
//	ip link set [dev] IF up|down
//	ip route|r [show]
func Run(ctx *core.Context, args []string) core.Result {
	brief := false
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-br", "-brief", "--brief":
			brief = true
		case "-4", "-6", "-c", "-color", "-s":
		default:
			return core.Errorf("ip", "Option \"%s\" is unknown, try \"ip -help\".", args[0])
		}
		args = args[1:]
	}
	if len(args) == 0 {
		return core.UsageError("ip", "Usage: ip [ OPTIONS ] OBJECT { COMMAND | help }")
	}
	net := ctx.System.Network
	object, rest := args[0], args[1:]

	switch {
	case prefixOf(object, "address", 1):
		return show(net, rest, brief, true)
	case prefixOf(object, "link", 1):
		if len(rest) > 0 && rest[0] == "set" {
			return setLink(ctx, rest[1:])
		}
		return show(net, rest, brief, false)
	case prefixOf(object, "route", 1):
		if len(rest) > 0 && rest[0] != "show" && rest[0] != "list" {
			return core.Errorf("ip", "Command \"%s\" is unknown, try \"ip route help\".", rest[0])
		}
		return core.Ok(routes(net))
	}
	return core.Result{Output: fmt.Sprintf("Object \"%s\" is unknown, try \"ip help\".", object), Status: core.StatusError}
}

// prefixOf reports whether abbrev abbreviates word, iproute2 style.
func prefixOf(abbrev, word string, min int) bool {
	return len(abbrev) >= min && strings.HasPrefix(word, abbrev)
}

func show(net *sysstate.Network, args []string, brief, addrs bool) core.Result {
	if len(args) > 0 && (args[0] == "show" || args[0] == "list") {
		args = args[1:]
	}
	if len(args) > 0 && args[0] == "dev" {
		args = args[1:]
	}
	ifaces := net.Interfaces()
	if len(args) > 0 {
		iface, ok := net.Interface(args[0])
		if !ok {
			return core.Result{Output: fmt.Sprintf("Device \"%s\" does not exist.", args[0]), Status: core.StatusError}
		}
		ifaces = []sysstate.Interface{iface}
	}

	var lines []string
	for _, i := range ifaces {
		if brief {
			lines = append(lines, briefLine(i, addrs))
			continue
		}
		lines = append(lines, linkLines(i)...)
		if addrs {
			lines = append(lines, addrLines(i)...)
		}
	}
	return core.Ok(core.JoinLines(lines))
}

func state(i sysstate.Interface) string {
	switch {
	case !i.Up:
		return "DOWN"
	case i.Name == "lo":
		return "UNKNOWN"
	}
	return "UP"
}

func flags(i sysstate.Interface) string {
	f := []string{"BROADCAST", "MULTICAST"}
	if i.Name == "lo" {
		f = []string{"LOOPBACK"}
	}
	if i.Up {
		f = append(f, "UP", "LOWER_UP")
	}
	return "<" + strings.Join(f, ",") + ">"
}

func linkLines(i sysstate.Interface) []string {
	qdisc, kind, brd := "fq_codel", "ether", "ff:ff:ff:ff:ff:ff"
	if i.Name == "lo" {
		qdisc, kind, brd = "noqueue", "loopback", "00:00:00:00:00:00"
	}
	return []string{
		fmt.Sprintf("%d: %s: %s mtu %d qdisc %s state %s group default qlen 1000", i.Index, i.Name, flags(i), i.MTU, qdisc, state(i)),
		fmt.Sprintf("    link/%s %s brd %s", kind, i.MAC, brd),
	}
}

func addrLines(i sysstate.Interface) []string {
	var lines []string
	for _, p := range i.Addrs {
		if i.Name == "lo" {
			lines = append(lines, fmt.Sprintf("    inet %s scope host %s", p, i.Name))
		} else {
			lines = append(lines, fmt.Sprintf("    inet %s brd %s scope global %s", p, broadcast(p), i.Name))
		}
		lines = append(lines, "       valid_lft forever preferred_lft forever")
	}
	return lines
}

func briefLine(i sysstate.Interface, addrs bool) string {
	if !addrs {
		return strings.TrimRight(fmt.Sprintf("%-16s %-14s %s %s", i.Name, state(i), i.MAC, flags(i)), " ")
	}
	parts := make([]string, len(i.Addrs))
	for n, p := range i.Addrs {
		parts[n] = p.String()
	}
	return strings.TrimRight(fmt.Sprintf("%-16s %-14s %s", i.Name, state(i), strings.Join(parts, " ")), " ")
}

// broadcast is the last address of p's network.
func broadcast(p netip.Prefix) netip.Addr {
	a := p.Masked().Addr().As4()
	host := uint32(1)<<(32-p.Bits()) - 1
	v := uint32(a[0])<<24 | uint32(a[1])<<16 | uint32(a[2])<<8 | uint32(a[3])
	v |= host
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func routes(net *sysstate.Network) string {
	var lines []string
	for _, r := range net.Routes() {
		iface, ok := net.Interface(r.Dev)
		if !ok || !iface.Up {
			continue
		}
		if r.Via != "" {
			lines = append(lines, fmt.Sprintf("%s via %s dev %s", r.Dest, r.Via, r.Dev))
			continue
		}
		line := fmt.Sprintf("%s dev %s proto kernel scope link", r.Dest, r.Dev)
		if len(iface.Addrs) > 0 {
			line += " src " + iface.Addrs[0].Addr().String()
		}
		lines = append(lines, line)
	}
	return core.JoinLines(lines)
}

func setLink(ctx *core.Context, args []string) core.Result {
	if len(args) > 0 && args[0] == "dev" {
		args = args[1:]
	}
	if len(args) != 2 || args[1] != "up" && args[1] != "down" {
		return core.UsageError("ip", "Usage: ip link set DEVICE { up | down }")
	}
	if err := ctx.System.Network.SetLink(args[0], args[1] == "up"); err != nil {
		return core.Result{Output: err.Error(), Status: core.StatusError}
	}
	ctx.Log.Debug("ip: link %s %s", args[0], args[1])
	return core.Ok("")
}
