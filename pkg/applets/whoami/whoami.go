// Package whoami implements the whoami command.
package whoami

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes the whoami command. It prints the session user name.
// No flags are supported.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) > 0 {
		if len(args[0]) > 1 && args[0][0] == '-' {
			return core.UsageError("whoami", "invalid option -- '"+args[0][1:]+"'")
		}
		return core.UsageError("whoami", "extra operand '"+args[0]+"'")
	}
	return core.Ok(ctx.User())
}
