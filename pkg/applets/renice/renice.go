// Package renice implements the renice command.
package renice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the renice command with the given arguments.
//
// Usage:
//
//	renice [-n] PRIORITY [-p PID...] [-g PGRP...] [-u USER...]
//
// Alters the scheduling priority of running processes. With -n the
// value is added to the current niceness instead of replacing it. The
// default target type is -p (process ID); -g reaches a process and its
// children.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) == 0 {
		return core.UsageError("renice", "missing priority")
	}
	if strings.HasPrefix(args[0], "-") && args[0] != "-n" && !isTarget(args[0]) {
		if _, err := strconv.Atoi(args[0]); err != nil {
			return core.UsageError("renice", "invalid option -- '"+strings.TrimPrefix(args[0], "-")+"'")
		}
	}
	additive := false
	i := 0
	if args[0] == "-n" {
		additive = true
		i++
	}
	if i >= len(args) {
		return core.UsageError("renice", "missing priority")
	}
	priority, err := strconv.Atoi(args[i])
	if err != nil {
		return core.UsageError("renice", "invalid priority '"+args[i]+"'")
	}
	i++

	which := "-p"
	var out, errs []string
	procs := ctx.System.Processes
	for ; i < len(args); i++ {
		id := args[i]
		if isTarget(id) {
			which = id
			continue
		}
		var targets []sysstate.Process
		label := "process ID"
		switch which {
		case "-u":
			label = "user ID"
			for _, p := range procs.List() {
				if p.User == id {
					targets = append(targets, p)
				}
			}
			if len(targets) == 0 {
				errs = append(errs, "renice: unknown user "+id)
				continue
			}
		default:
			pid, err := strconv.Atoi(id)
			if err != nil {
				return core.UsageError("renice", "invalid number '"+id+"'")
			}
			p, ok := procs.Get(pid)
			if !ok {
				errs = append(errs, "renice: failed to get priority for "+id+" (process ID): No such process")
				continue
			}
			targets = append(targets, p)
			if which == "-g" {
				label = "process group ID"
				for _, child := range procs.List() {
					if child.PPID == pid {
						targets = append(targets, child)
					}
				}
			}
		}
		for k, p := range targets {
			nice := priority
			if additive {
				nice += p.Nice
			}
			old, err := procs.Renice(p.PID, nice, ctx.User())
			if err != nil {
				errs = append(errs, fmt.Sprintf("renice: failed to set priority for %d (process ID): %s", p.PID, procutil.Reason(err)))
				continue
			}
			if k > 0 {
				continue
			}
			now, _ := procs.Get(p.PID)
			out = append(out, fmt.Sprintf("%s (%s) old priority %d, new priority %d", id, label, old, now.Nice))
		}
	}
	if len(out) == 0 && len(errs) == 0 {
		return core.UsageError("renice", "missing process ID")
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(append(out, errs...)), Status: core.StatusError}
	}
	ctx.Log.Debug("renice: %s", strings.Join(out, "; "))
	return core.Ok(core.JoinLines(out))
}

func isTarget(arg string) bool {
	return arg == "-p" || arg == "-g" || arg == "-u"
}
