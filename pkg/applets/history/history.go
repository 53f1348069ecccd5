// Package history implements the history builtin over the session's
// command history.
package history

import (
	"fmt"
	"strconv"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run lists the session history, numbered from 1. "history N" shows the
// last N entries.
func Run(ctx *core.Context, args []string) core.Result {
	start := 0
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return core.Errorf("history", "%s: numeric argument required", args[0])
		}
		if n < len(ctx.History) {
			start = len(ctx.History) - n
		}
	default:
		return core.UsageError("history", "too many arguments")
	}
	lines := make([]string, 0, len(ctx.History)-start)
	for i := start; i < len(ctx.History); i++ {
		lines = append(lines, fmt.Sprintf("%5d  %s", i+1, ctx.History[i]))
	}
	return core.Ok(core.JoinLines(lines))
}
