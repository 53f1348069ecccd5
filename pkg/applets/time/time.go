// Package time implements the time command.
package time

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/timeutil"
)

// Run dispatches COMMAND through the registry and appends a timing summary.
// Real time is how far the simulated clock moved; builtins use no CPU.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) > 0 && args[0] == "-p" {
		args = args[1:]
		return run(ctx, args, true)
	}
	return run(ctx, args, false)
}

func run(ctx *core.Context, args []string, posix bool) core.Result {
	if len(args) == 0 {
		return core.UsageError("time", "missing command")
	}
	if ctx.Registry == nil {
		return core.Errorf("time", "%s: cannot run commands here", args[0])
	}
	start := ctx.System.Clock.Now()
	res := ctx.Registry.Dispatch(ctx, args[0], args[1:])
	elapsed := ctx.System.Clock.Now().Sub(start)

	summary := []string{
		"real\t" + timeutil.FormatElapsed(elapsed),
		"user\t0m0.000s",
		"sys\t0m0.000s",
	}
	if posix {
		summary = []string{
			fmt.Sprintf("real %.2f", elapsed.Seconds()),
			"user 0.00",
			"sys 0.00",
		}
	}
	out := strings.Join(summary, "\n")
	if res.Output != "" {
		out = res.Output + "\n\n" + out
	}
	res.Output = out
	return res
}
