// Package sleep implements the sleep command.
package sleep

import (
	"time"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/timeutil"
)

// Run advances the simulated clock by the total of its arguments, each with
// an optional s, m, h or d suffix. Nothing actually waits.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) == 0 {
		return core.UsageError("sleep", "missing operand")
	}
	total := time.Duration(0)
	for _, arg := range args {
		spec, err := timeutil.ParseDuration(arg)
		if err != nil {
			return core.Errorf("sleep", "invalid time interval '%s'", arg)
		}
		total += spec.Duration
	}
	ctx.System.Clock.Advance(total)
	ctx.Log.Trace("sleep: clock advanced %s", total)
	return core.Ok("")
}
