// Package nc implements netcat against the simulated network.
package nc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rcarmo/go-shellsim/pkg/applets/netutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the nc (netcat) command with the given arguments.
//
// Usage:
//
//	nc [-v] [-w SECS] HOST PORT
//	nc -z [-v] [-w SECS] HOST PORT[-PORT]...
//
// A connection sends stdin to the service and prints what it answers.
// With -z ports are only probed. A connection that times out moves the
// clock by the -w timeout.
func Run(ctx *core.Context, args []string) core.Result {
	var zero, verbose, listen bool
	var wait, source string
	flags := core.Flags{
		Bool:  map[byte]*bool{'z': &zero, 'v': &verbose, 'l': &listen, 'n': nil, 'N': nil, 'q': nil},
		Value: map[byte]*string{'w': &wait, 's': &source},
	}
	operands, err := flags.Parse(args)
	if err != nil {
		return core.UsageError("nc", err.Error())
	}
	if listen {
		return core.Errorf("nc", "listening is not supported in this shell")
	}
	timeout := time.Duration(0)
	if wait != "" {
		n, err := strconv.Atoi(wait)
		if err != nil || n < 0 {
			return core.Errorf("nc", "timeout invalid: %s", wait)
		}
		timeout = time.Duration(n) * time.Second
	}
	if len(operands) < 2 {
		return core.UsageError("nc", "missing hostname and port")
	}
	host := operands[0]
	ports, err := parsePorts(operands[1:])
	if err != nil {
		return core.Errorf("nc", "port number invalid: %s", err)
	}
	addr, ok := ctx.System.Network.Resolve(host)
	if !ok {
		return core.Errorf("nc", "getaddrinfo for host \"%s\" port %d: Name or service not known", host, ports[0])
	}

	if !zero && len(ports) > 1 {
		return core.UsageError("nc", "only one port may be given without -z")
	}
	var lines []string
	connected := 0
	for _, port := range ports {
		err := ctx.System.Dial(addr, port)
		if errors.Is(err, sysstate.ErrTimedOut) {
			ctx.System.Clock.Advance(timeout)
		}
		if err != nil {
			// probes of closed ports stay quiet without -v
			if verbose || !zero {
				lines = append(lines, fmt.Sprintf("nc: connect to %s port %d (tcp) failed: %s", host, port, err))
			}
			continue
		}
		connected++
		if verbose {
			lines = append(lines, fmt.Sprintf("Connection to %s %d port [tcp/%s] succeeded!", host, port, portName(port)))
		}
		if zero {
			continue
		}
		if banner := netutil.Banner(port); banner != "" {
			lines = append(lines, banner)
		}
		if ctx.Stdin != "" {
			if reply := netutil.Reply(ctx, addr, host, port, ctx.Stdin); reply != "" {
				lines = append(lines, reply)
			}
		}
	}
	res := core.Ok(core.JoinLines(lines))
	if connected == 0 {
		res.Status = core.StatusError
	}
	return res
}

func portName(port int) string {
	if name, ok := sysstate.PortName(strconv.Itoa(port)); ok {
		return name
	}
	return "*"
}

func parsePorts(specs []string) ([]int, error) {
	var ports []int
	for _, spec := range specs {
		lo, hi, isRange := strings.Cut(spec, "-")
		first, err := strconv.Atoi(lo)
		if err != nil || first < 1 || first > 65535 {
			return nil, errors.New(spec)
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(hi); err != nil || last < first || last > 65535 {
				return nil, errors.New(spec)
			}
		}
		for p := first; p <= last; p++ {
			ports = append(ports, p)
		}
	}
	return ports, nil
}
