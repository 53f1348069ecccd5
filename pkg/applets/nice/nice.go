// Package nice implements a minimal nice command.
package nice

import (
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// shellPID is the login shell every started command hangs off.
const shellPID = 1100

// Run executes the nice command with the given arguments.
//
//	nice                 Print the current niceness
//	nice [-n N] CMD...   Start CMD with niceness N (default 10)
//
// The command is recorded in the process table rather than executed.
func Run(ctx *core.Context, args []string) core.Result {
	priority := 10
	switch {
	case len(args) > 0 && args[0] == "-n":
		if len(args) < 2 {
			return core.UsageError("nice", "option requires an argument -- 'n'")
		}
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return core.UsageError("nice", "invalid adjustment '"+args[1]+"'")
		}
		priority, args = value, args[2:]
	case len(args) > 0 && strings.HasPrefix(args[0], "-n"):
		value, err := strconv.Atoi(args[0][2:])
		if err != nil {
			return core.UsageError("nice", "invalid adjustment '"+args[0][2:]+"'")
		}
		priority, args = value, args[1:]
	case len(args) > 0 && len(args[0]) > 1 && args[0][0] == '-':
		value, err := strconv.Atoi(args[0][1:])
		if err != nil {
			return core.UsageError("nice", "invalid option -- '"+args[0][1:2]+"'")
		}
		priority, args = value, args[1:]
	}
	if len(args) == 0 {
		return core.Ok("0")
	}
	if priority < 0 && ctx.User() != "root" {
		return core.Errorf("nice", "cannot set niceness: Permission denied")
	}
	proc := ctx.System.Processes.Start(ctx.User(), strings.Join(args, " "), clamp(priority), shellPID)
	ctx.Log.Debug("nice: started %d at niceness %d", proc.PID, proc.Nice)
	return core.Ok("")
}

func clamp(n int) int {
	switch {
	case n < -20:
		return -20
	case n > 19:
		return 19
	}
	return n
}
