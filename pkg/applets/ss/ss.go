// Package ss implements ss over the socket table the simulated machine
// derives from its running daemons and login sessions.
package ss

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

type options struct {
	showTCP    bool
	showUDP    bool
	showListen bool
	showAll    bool
	numeric    bool
	showUsers  bool
	summary    bool
}

// Run executes the ss command.
//
//	-t, -u  TCP or UDP sockets only
//	-l      Listening sockets only
//	-a      Listening and established
//	-n      Numeric ports
//	-p      Owning process
//	-s      Summary counts
func Run(ctx *core.Context, args []string) core.Result {
	opts := options{}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return core.UsageError("ss", "unknown argument '"+arg+"'")
		}
		for _, c := range arg[1:] {
			switch c {
			case 't':
				opts.showTCP = true
			case 'u':
				opts.showUDP = true
			case 'l':
				opts.showListen = true
			case 'a':
				opts.showAll = true
			case 'n':
				opts.numeric = true
			case 'p':
				opts.showUsers = true
			case 's':
				opts.summary = true
			default:
				return core.UsageError("ss", "invalid option -- '"+string(c)+"'")
			}
		}
	}
	if !opts.showTCP && !opts.showUDP {
		opts.showTCP = true
		opts.showUDP = true
	}

	all := ctx.System.Sockets()
	if opts.summary {
		return core.Ok(summary(all))
	}
	lines := []string{fmt.Sprintf("%-5s %-6s %6s %6s %-20s %-20s%s", "Netid", "State", "Recv-Q", "Send-Q", "Local Address:Port", "Peer Address:Port", "Process")}
	for _, s := range all {
		if !opts.wants(s) {
			continue
		}
		user := ""
		if opts.showUsers {
			user = fmt.Sprintf("users:((\"%s\",pid=%d,fd=3))", s.Name, s.PID)
		}
		lines = append(lines, strings.TrimRight(fmt.Sprintf("%-5s %-6s %6d %6d %-20s %-20s%s",
			s.Netid, s.State, 0, 0, opts.addr(s.Local), opts.addr(s.Peer), user), " "))
	}
	return core.Ok(strings.Join(lines, "\n"))
}

func (o options) wants(s sysstate.Socket) bool {
	if s.Netid == "tcp" && !o.showTCP || s.Netid == "udp" && !o.showUDP {
		return false
	}
	listening := s.State != "ESTAB"
	switch {
	case o.showAll:
		return true
	case o.showListen:
		return listening
	default:
		return !listening
	}
}

func (o options) addr(a string) string {
	if o.numeric {
		return a
	}
	host, port, ok := strings.Cut(a, ":")
	if !ok {
		return a
	}
	if name, ok := sysstate.PortName(port); ok {
		return host + ":" + name
	}
	return a
}

func summary(all []sysstate.Socket) string {
	var tcp, udp, estab int
	for _, s := range all {
		switch s.Netid {
		case "tcp":
			tcp++
			if s.State == "ESTAB" {
				estab++
			}
		case "udp":
			udp++
		}
	}
	return fmt.Sprintf("Total: %d\nTCP:   %d (estab %d)\nUDP:   %d", len(all), tcp, estab, udp)
}
