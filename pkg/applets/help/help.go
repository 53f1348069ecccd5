// Package help implements the help builtin.
package help

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run lists every registered command with its description, or describes
// the named commands.
func Run(ctx *core.Context, args []string) core.Result {
	if ctx.Registry == nil {
		return core.Errorf("help", "no commands registered")
	}
	names := args
	if len(names) == 0 {
		names = ctx.Registry.Names()
	}
	var rows [][]any
	var errs []string
	for _, name := range names {
		b, ok := ctx.Registry.Lookup(name)
		if !ok {
			errs = append(errs, "help: no help topics match `"+name+"'.")
			continue
		}
		rows = append(rows, []any{strings.ToLower(name), b.Description()})
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
	}
	return core.Ok(core.Table([]any{"COMMAND", "DESCRIPTION"}, rows))
}
