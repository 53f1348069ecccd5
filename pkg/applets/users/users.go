// Package users implements the users command.
package users

import (
	"sort"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run prints the user name of every login session, sorted, on one line.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) > 0 {
		if len(args[0]) > 1 && args[0][0] == '-' {
			return core.UsageError("users", "invalid option -- '"+args[0][1:]+"'")
		}
		return core.UsageError("users", "extra operand '"+args[0]+"'")
	}
	var names []string
	for _, s := range ctx.System.Processes.Sessions() {
		names = append(names, s.User)
	}
	sort.Strings(names)
	return core.Ok(strings.Join(names, " "))
}
