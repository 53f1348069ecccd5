// Package ping implements ping over the simulated host table.
package ping

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// DefaultCount is the number of probes sent without -c.
const DefaultCount = 4

// Run executes the ping command with the given arguments.
//
// Supported flags:
//
//	-c N   Stop after N replies (default 4)
//	-q     Only print the summary
//
// Each probe advances the simulated clock by one second.
func Run(ctx *core.Context, args []string) core.Result {
	var count, wait, interval, deadline string
	var quiet bool
	operands, err := core.Flags{
		Bool:  map[byte]*bool{'q': &quiet, 'n': nil, '4': nil},
		Value: map[byte]*string{'c': &count, 'W': &wait, 'i': &interval, 'w': &deadline},
	}.Parse(args)
	if err != nil {
		return core.UsageError("ping", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("ping", "usage error: Destination address required")
	}
	n := DefaultCount
	if count != "" {
		if n, err = strconv.Atoi(count); err != nil || n <= 0 {
			return core.Errorf("ping", "invalid argument: '%s': out of range: 1 <= value <= 9223372036854775807", count)
		}
	}

	host := operands[len(operands)-1]
	net := ctx.System.Network
	addr, ok := net.Resolve(host)
	if !ok {
		return core.Errorf("ping", "%s: Name or service not known", host)
	}
	rtt, reached, err := net.Ping(addr)
	if err != nil {
		return core.Errorf("ping", "connect: %v", err)
	}

	label := addr.String()
	if label != host {
		label = host + " (" + addr.String() + ")"
	}
	lines := []string{fmt.Sprintf("PING %s (%s) 56(84) bytes of data.", host, addr)}
	ttl := 56
	if addr.IsLoopback() || addr.IsPrivate() {
		ttl = 64
	}
	received := 0
	if reached {
		received = n
		if !quiet {
			for seq := 1; seq <= n; seq++ {
				lines = append(lines, fmt.Sprintf("64 bytes from %s: icmp_seq=%d ttl=%d time=%s ms", label, seq, ttl, tenths(rtt)))
			}
		}
	}
	ctx.System.Clock.Advance(time.Duration(n) * time.Second)

	loss := 100 - received*100/n
	lines = append(lines, "",
		fmt.Sprintf("--- %s ping statistics ---", host),
		fmt.Sprintf("%d packets transmitted, %d received, %d%% packet loss, time %dms", n, received, loss, (n-1)*1001),
	)
	if !reached {
		return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
	}
	r := tenths(rtt)
	lines = append(lines, fmt.Sprintf("rtt min/avg/max/mdev = %s/%s/%s/0.000 ms", r, r, r))
	return core.Ok(core.JoinLines(lines))
}

func tenths(v int) string {
	return fmt.Sprintf("%d.%d", v/10, v%10)
}
