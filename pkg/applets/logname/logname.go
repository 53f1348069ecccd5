// Package logname implements the logname command.
package logname

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run prints the login name of the session user. It fails when that user
// has no login session, as after its shell was killed.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) > 0 {
		return core.UsageError("logname", "invalid option -- '"+args[0]+"'")
	}
	user := ctx.User()
	for _, s := range ctx.System.Processes.Sessions() {
		if s.User == user {
			return core.Ok(user)
		}
	}
	return core.Errorf("logname", "no login name")
}
