// Package taskset implements the taskset command.
package taskset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes the taskset command with the given arguments.
//
//	taskset MASK COMMAND...      Run COMMAND pinned to MASK
//	taskset -p [MASK] PID        Show or set the affinity of PID
//	taskset -c LIST ...          Take a CPU list such as 0,1 or 0-1
//
// MASK is hexadecimal, with or without 0x.
func Run(ctx *core.Context, args []string) core.Result {
	var pidMode, listMode bool
	for len(args) > 0 && len(args[0]) > 1 && args[0][0] == '-' {
		arg := args[0]
		args = args[1:]
		if arg == "--" {
			break
		}
		for _, c := range arg[1:] {
			switch c {
			case 'p':
				pidMode = true
			case 'c':
				listMode = true
			case 'a':
			default:
				return core.UsageError("taskset", "invalid option -- '"+string(c)+"'")
			}
		}
	}

	if pidMode {
		switch len(args) {
		case 1:
			return show(ctx, args[0], listMode)
		case 2:
			return set(ctx, args[0], args[1], listMode)
		}
		return core.UsageError("taskset", "bad usage")
	}
	if len(args) < 2 {
		return core.UsageError("taskset", "bad usage")
	}
	mask, err := parseMask(args[0], listMode)
	if err != nil {
		return core.Errorf("taskset", "failed to parse CPU mask: %s", args[0])
	}
	res, pid := procutil.Launch(ctx, "taskset", args[1:])
	if pid != 0 {
		if err := ctx.System.Processes.SetAffinity(pid, mask, ctx.User()); err != nil {
			return core.Errorf("taskset", "failed to set pid %d's affinity: %s", pid, procutil.Reason(err))
		}
	}
	return res
}

func show(ctx *core.Context, pidArg string, listMode bool) core.Result {
	pid, ok := procutil.ParsePID(pidArg)
	if !ok {
		return core.Errorf("taskset", "invalid PID argument: '%s'", pidArg)
	}
	p, ok := ctx.System.Processes.Get(pid)
	if !ok {
		return core.Errorf("taskset", "failed to get pid %d's affinity: No such process", pid)
	}
	return core.Ok(describe(pid, "current", p.CPUMask(), listMode))
}

func set(ctx *core.Context, maskArg, pidArg string, listMode bool) core.Result {
	pid, ok := procutil.ParsePID(pidArg)
	if !ok {
		return core.Errorf("taskset", "invalid PID argument: '%s'", pidArg)
	}
	mask, err := parseMask(maskArg, listMode)
	if err != nil {
		return core.Errorf("taskset", "failed to parse CPU mask: %s", maskArg)
	}
	p, ok := ctx.System.Processes.Get(pid)
	if !ok {
		return core.Errorf("taskset", "failed to get pid %d's affinity: No such process", pid)
	}
	current := describe(pid, "current", p.CPUMask(), listMode)
	if err := ctx.System.Processes.SetAffinity(pid, mask, ctx.User()); err != nil {
		return core.Result{
			Output: current + "\ntaskset: failed to set pid " + strconv.Itoa(pid) + "'s affinity: " + procutil.Reason(err),
			Status: core.StatusError,
		}
	}
	p, _ = ctx.System.Processes.Get(pid)
	return core.Ok(current + "\n" + describe(pid, "new", p.CPUMask(), listMode))
}

func describe(pid int, which string, mask uint64, listMode bool) string {
	if listMode {
		return fmt.Sprintf("pid %d's %s affinity list: %s", pid, which, cpuList(mask))
	}
	return fmt.Sprintf("pid %d's %s affinity mask: %x", pid, which, mask)
}

func parseMask(s string, listMode bool) (uint64, error) {
	if !listMode {
		return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
	}
	var mask uint64
	for _, part := range strings.Split(s, ",") {
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(lo)
		if err != nil || first < 0 || first > 63 {
			return 0, strconv.ErrSyntax
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(hi); err != nil || last < first || last > 63 {
				return 0, strconv.ErrSyntax
			}
		}
		for cpu := first; cpu <= last; cpu++ {
			mask |= 1 << uint(cpu)
		}
	}
	return mask, nil
}

// cpuList renders mask as a CPU list, collapsing runs: 0-1,3.
func cpuList(mask uint64) string {
	var parts []string
	for cpu := 0; cpu < 64; cpu++ {
		if mask&(1<<uint(cpu)) == 0 {
			continue
		}
		end := cpu
		for end+1 < 64 && mask&(1<<uint(end+1)) != 0 {
			end++
		}
		if end == cpu {
			parts = append(parts, strconv.Itoa(cpu))
		} else {
			parts = append(parts, strconv.Itoa(cpu)+"-"+strconv.Itoa(end))
		}
		cpu = end
	}
	return strings.Join(parts, ",")
}
