package procutil

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// ShellPID is the login shell that commands typed at the prompt run under.
const ShellPID = 1100

// Launch runs args on behalf of applet. A builtin is dispatched through the
// registry and its result returned with pid 0. Anything else is taken to be
// a long-running program and is added to the process table.
func Launch(ctx *core.Context, applet string, args []string) (core.Result, int) {
	if ctx.Registry != nil {
		if _, ok := ctx.Registry.Lookup(args[0]); ok {
			return ctx.Registry.Dispatch(ctx, args[0], args[1:]), 0
		}
	}
	p := ctx.System.Processes.Start(ctx.User(), strings.Join(args, " "), 0, ShellPID)
	ctx.Log.Debug("%s: started %d", applet, p.PID)
	return core.Ok(""), p.PID
}
