// Package nohup implements the nohup command.
package nohup

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Output is the file nohup appends to, relative to the working directory.
const Output = "nohup.out"

// Run executes COMMAND immune to hangups. A builtin runs at once and what
// it printed is appended to nohup.out; anything else is taken to be a
// long-running program and is recorded in the process table.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) == 0 {
		return core.UsageError("nohup", "missing operand")
	}
	msg := "nohup: ignoring input and appending output to '" + Output + "'"
	if ctx.Registry == nil {
		return core.Errorf("nohup", "failed to run command '%s'", args[0])
	}
	if _, ok := ctx.Registry.Lookup(args[0]); !ok {
		p := ctx.System.Processes.Start(ctx.User(), strings.Join(args, " "), 0, procutil.ShellPID)
		ctx.Log.Debug("nohup: started %d", p.PID)
		return core.Ok(msg)
	}
	res := ctx.Registry.Dispatch(ctx, args[0], args[1:])
	st := ctx.State
	if res.State != nil {
		st = res.State
	}
	if res.Output != "" {
		next, err := st.WriteFile(Output, res.Output+"\n", true)
		if err != nil {
			return core.Errorf("nohup", "failed to open '%s': %s", Output, vfs.Reason(err))
		}
		st = next
	}
	out := core.Result{Output: msg, Status: res.Status}
	if res.Status == core.StatusInfo {
		out.Status = core.StatusSuccess
	}
	if st != ctx.State {
		out.State = st
	}
	return out
}
