// Package kill implements the kill command.
package kill

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the kill command with the given arguments.
//
// Usage:
//
//	kill [-SIGNAL | -s SIGNAL] PID...
//	kill -l [SIGNAL]
//
// Sends a signal to the specified processes. The default signal is SIGTERM.
// The signal can be specified by name (e.g., -TERM, -9) or number.
// Use -l to list all available signal names and numbers.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) == 0 {
		return core.UsageError("kill", "usage: kill [-s sigspec | -n signum | -sigspec] pid ...")
	}
	if args[0] == "-l" || args[0] == "-L" {
		if len(args) > 1 {
			sig, err := procutil.ParseSignal(args[1])
			if err != nil {
				return core.Errorf("kill", "%s: invalid signal specification", args[1])
			}
			return core.Ok(procutil.SignalName(sig))
		}
		return core.Ok(strings.Join(procutil.SignalList(), "\n"))
	}

	sig := sysstate.SIGTERM
	switch {
	case args[0] == "--":
		args = args[1:]
	case args[0] == "-s" || args[0] == "-n":
		if len(args) < 2 {
			return core.Errorf("kill", "%s: option requires an argument", args[0])
		}
		s, err := procutil.ParseSignal(args[1])
		if err != nil {
			return core.Errorf("kill", "%s: invalid signal specification", args[1])
		}
		sig, args = s, args[2:]
	case strings.HasPrefix(args[0], "-") && len(args[0]) > 1:
		s, err := procutil.ParseSignal(args[0])
		if err != nil {
			return core.Errorf("kill", "%s: invalid signal specification", strings.TrimPrefix(args[0], "-"))
		}
		sig, args = s, args[1:]
	}
	if len(args) == 0 {
		return core.UsageError("kill", "usage: kill [-s sigspec | -n signum | -sigspec] pid ...")
	}

	var errs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "%") {
			errs = append(errs, "kill: "+arg+": no such job")
			continue
		}
		pid, ok := procutil.ParsePID(arg)
		if !ok {
			errs = append(errs, "kill: "+arg+": arguments must be process or job IDs")
			continue
		}
		if err := ctx.System.Processes.Kill(pid, sig, ctx.User()); err != nil {
			errs = append(errs, "kill: "+err.Error())
			continue
		}
		ctx.Log.Debug("signal %s sent to %d", procutil.SignalName(sig), pid)
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
	}
	return core.Ok("")
}
