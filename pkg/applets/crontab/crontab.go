// Package crontab implements the crontab command over the simulated cron
// table.
package crontab

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes the crontab command with the given arguments.
//
// Usage:
//
//	crontab [-u USER] -l     List the crontab
//	crontab [-u USER] -r     Remove the crontab
//	crontab [-u USER] FILE   Install FILE ("-" or no operand reads stdin)
//
// Every line of an installed crontab must be a comment, an assignment, or
// five schedule fields followed by a command.
func Run(ctx *core.Context, args []string) core.Result {
	var list, remove, edit bool
	user := ""
	operands, err := core.Flags{
		Bool:  map[byte]*bool{'l': &list, 'r': &remove, 'e': &edit},
		Value: map[byte]*string{'u': &user},
	}.Parse(args)
	if err != nil {
		return core.UsageError("crontab", err.Error())
	}
	if user == "" {
		user = ctx.User()
	} else if user != ctx.User() && ctx.User() != "root" {
		return core.Errorf("crontab", "must be privileged to use -u")
	}
	cron := ctx.System.Cron

	switch {
	case edit:
		return core.Errorf("crontab", "no editor available; install a file with 'crontab FILE'")
	case list:
		lines, ok := cron.Lines(user)
		if !ok {
			return core.Errorf("crontab", "no crontab for %s", user)
		}
		return core.Ok(core.JoinLines(lines))
	case remove:
		if !cron.Remove(user) {
			return core.Errorf("crontab", "no crontab for %s", user)
		}
		ctx.Log.Debug("crontab: removed for %s", user)
		return core.Ok("")
	}

	if len(operands) > 1 {
		return core.UsageError("crontab", "usage error: only one file operand")
	}
	file := "-"
	if len(operands) == 1 {
		file = operands[0]
	} else if !ctx.HasStdin {
		return core.UsageError("crontab", "usage error: file name or - (for stdin) must be specified")
	}
	content, err := ctx.ReadFile(file)
	if err != nil {
		return core.FileError("crontab", file, err)
	}
	if err := cron.Install(user, core.Lines(content)); err != nil {
		return core.Result{
			Output: "crontab: " + file + ": " + err.Error() + "\nerrors in crontab file, can't install.",
			Status: core.StatusError,
		}
	}
	ctx.Log.Debug("crontab: installed %s for %s", file, user)
	return core.Ok("")
}
