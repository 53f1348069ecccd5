// Package timeout implements the timeout command.
package timeout

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/timeutil"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the timeout command with the given arguments.
//
// Supported flags:
//
//	-s SIGNAL   Signal to send on timeout (default TERM)
//	-k DUR      Send KILL after DUR if the command is still running
//	-v          Report the signal sent
//
// Duration supports optional suffixes: s (seconds, default), m (minutes),
// h (hours), d (days). The command runs against the simulated clock: it
// times out when it would move the clock past the deadline, which stops
// at the deadline.
func Run(ctx *core.Context, args []string) core.Result {
	sig := sysstate.SIGTERM
	verbose := false
	i := 0
flags:
	for i < len(args) && strings.HasPrefix(args[i], "-") && len(args[i]) > 1 {
		switch arg := args[i]; arg {
		case "-s", "--signal":
			if i+1 >= len(args) {
				return core.UsageError("timeout", "option requires an argument -- 's'")
			}
			parsed, err := procutil.ParseSignal(args[i+1])
			if err != nil {
				return core.Errorf("timeout", "%s: invalid signal", args[i+1])
			}
			sig = parsed
			i += 2
		case "-k", "--kill-after":
			if i+1 >= len(args) {
				return core.UsageError("timeout", "option requires an argument -- 'k'")
			}
			if _, err := timeutil.ParseDuration(args[i+1]); err != nil {
				return core.Errorf("timeout", "invalid time interval '%s'", args[i+1])
			}
			i += 2
		case "-v", "--verbose":
			verbose = true
			i++
		case "--preserve-status", "--foreground":
			i++
		case "--":
			i++
			break flags
		default:
			return core.UsageError("timeout", "invalid option -- '"+strings.TrimLeft(arg, "-")+"'")
		}
	}
	if len(args)-i < 2 {
		return core.UsageError("timeout", "missing operand")
	}
	spec, err := timeutil.ParseDuration(args[i])
	if err != nil {
		return core.Errorf("timeout", "invalid time interval '%s'", args[i])
	}
	if ctx.Registry == nil {
		return core.Errorf("timeout", "failed to run command '%s'", args[i+1])
	}
	name := args[i+1]

	// a zero duration disables the timeout
	release := func() bool { return false }
	if spec.Duration > 0 {
		release = ctx.System.Clock.Deadline(spec.Duration)
	}
	res := ctx.Registry.Dispatch(ctx, name, args[i+2:])
	if !release() {
		return res
	}
	ctx.Log.Debug("timeout: %s expired after %s", name, args[i])
	var lines []string
	if res.Output != "" {
		lines = append(lines, res.Output)
	}
	if verbose {
		lines = append(lines, "timeout: sending signal "+procutil.SignalName(sig)+" to command '"+name+"'")
	}
	res.Output = core.JoinLines(lines)
	res.Status = core.StatusError
	return res
}
