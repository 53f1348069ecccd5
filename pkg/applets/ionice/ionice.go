// Package ionice implements the ionice command.
package ionice

import (
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the ionice command with the given arguments.
//
// Supported flags:
//
//	-c CLASS   Scheduling class: 0|none, 1|realtime, 2|best-effort, 3|idle
//	-n LEVEL   Priority within the class, 0 to 7
//	-p PID...  Act on running processes instead of a command
//	-t         Ignore failures to set the priority
//
// With -p and no -c the current priorities are printed.
func Run(ctx *core.Context, args []string) core.Result {
	var classArg, levelArg string
	var pidMode, tolerant bool
	// options end at the first operand so the command keeps its own
	operands := args
	for len(operands) > 0 && len(operands[0]) > 1 && operands[0][0] == '-' {
		arg := operands[0]
		operands = operands[1:]
		if arg == "--" {
			break
		}
		for j := 1; j < len(arg); j++ {
			switch c := arg[j]; c {
			case 'p':
				pidMode = true
			case 't':
				tolerant = true
			case 'c', 'n':
				val := arg[j+1:]
				if val == "" {
					if len(operands) == 0 {
						return core.UsageError("ionice", "option requires an argument -- '"+string(c)+"'")
					}
					val, operands = operands[0], operands[1:]
				}
				if c == 'c' {
					classArg = val
				} else {
					levelArg = val
				}
				j = len(arg)
			default:
				return core.UsageError("ionice", "invalid option -- '"+string(c)+"'")
			}
		}
	}

	var err error
	class := sysstate.IOBestEffort
	if classArg != "" {
		if class, err = parseClass(classArg); err != nil {
			return core.Errorf("ionice", "unknown scheduling class: '%s'", classArg)
		}
	}
	level := 4
	if levelArg != "" {
		if level, err = strconv.Atoi(levelArg); err != nil || level < 0 || level > 7 {
			return core.Errorf("ionice", "invalid class data argument: '%s'", levelArg)
		}
	}
	if class == sysstate.IONone || class == sysstate.IOIdle {
		level = 0
	}

	if pidMode {
		if len(operands) == 0 {
			return core.UsageError("ionice", "PID not specified")
		}
		if classArg == "" && levelArg == "" {
			return show(ctx, operands)
		}
		return setPIDs(ctx, operands, class, level, tolerant)
	}
	if len(operands) == 0 {
		if classArg != "" || levelArg != "" {
			return core.UsageError("ionice", "no command specified")
		}
		// the shell itself
		return show(ctx, []string{strconv.Itoa(procutil.ShellPID)})
	}
	res, pid := procutil.Launch(ctx, "ionice", operands)
	if pid != 0 {
		if err := ctx.System.Processes.SetIOPriority(pid, class, level, ctx.User()); err != nil && !tolerant {
			return core.Errorf("ionice", "ioprio_set failed: %s", procutil.Reason(err))
		}
	}
	return res
}

func show(ctx *core.Context, pids []string) core.Result {
	var lines []string
	failed := false
	for _, arg := range pids {
		pid, ok := procutil.ParsePID(arg)
		if !ok {
			return core.Errorf("ionice", "invalid PID argument: '%s'", arg)
		}
		p, ok := ctx.System.Processes.Get(pid)
		if !ok {
			lines = append(lines, "ionice: ioprio_get failed: No such process")
			failed = true
			continue
		}
		line := describe(p)
		if len(pids) > 1 {
			line = arg + ": " + line
		}
		lines = append(lines, line)
	}
	res := core.Ok(core.JoinLines(lines))
	if failed {
		res.Status = core.StatusError
	}
	return res
}

// describe prints a process's class the way ionice does. Without an
// explicit class the level follows the nice value.
func describe(p sysstate.Process) string {
	switch p.IOClass {
	case sysstate.IONone:
		return "none: prio " + strconv.Itoa((p.Nice+20)/5)
	case sysstate.IOIdle:
		return "idle"
	}
	return p.IOClass.String() + ": prio " + strconv.Itoa(p.IOLevel)
}

func setPIDs(ctx *core.Context, pids []string, class sysstate.IOClass, level int, tolerant bool) core.Result {
	var errs []string
	for _, arg := range pids {
		pid, ok := procutil.ParsePID(arg)
		if !ok {
			return core.Errorf("ionice", "invalid PID argument: '%s'", arg)
		}
		if err := ctx.System.Processes.SetIOPriority(pid, class, level, ctx.User()); err != nil {
			errs = append(errs, "ionice: ioprio_set failed: "+procutil.Reason(err))
		}
	}
	if len(errs) > 0 && !tolerant {
		return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
	}
	return core.Ok("")
}

func parseClass(s string) (sysstate.IOClass, error) {
	switch strings.ToLower(s) {
	case "0", "none":
		return sysstate.IONone, nil
	case "1", "realtime":
		return sysstate.IORealtime, nil
	case "2", "best-effort":
		return sysstate.IOBestEffort, nil
	case "3", "idle":
		return sysstate.IOIdle, nil
	}
	return 0, strconv.ErrSyntax
}
