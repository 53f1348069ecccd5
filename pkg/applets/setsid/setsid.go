// Package setsid implements the setsid command.
package setsid

import (
	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes COMMAND in a new session. A program is detached from the
// terminal and reparented to init; a builtin simply runs.
//
//	-f   Always fork (accepted)
//	-w   Wait for the command (accepted)
func Run(ctx *core.Context, args []string) core.Result {
flags:
	for len(args) > 0 && len(args[0]) > 1 && args[0][0] == '-' {
		switch args[0] {
		case "-f", "--fork", "-w", "--wait":
		case "--":
			args = args[1:]
			break flags
		default:
			return core.UsageError("setsid", "invalid option -- '"+args[0][1:]+"'")
		}
		args = args[1:]
	}
	if len(args) == 0 {
		return core.UsageError("setsid", "no command specified")
	}
	res, pid := procutil.Launch(ctx, "setsid", args)
	if pid != 0 {
		ctx.System.Processes.Detach(pid)
	}
	return res
}
