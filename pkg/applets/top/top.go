// Package top implements a batch-mode top: one snapshot of the simulated
// machine, busiest processes first.
package top

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/free"
	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/applets/uptime"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

const mib = 1 << 20

// Run executes the top command. There is no interactive mode; every run
// prints a single iteration.
//
//	-b         Batch mode (accepted)
//	-n N       Iterations (only 1 is meaningful)
//	-u USER    Only USER's processes
//	-p PID,... Only the listed processes
func Run(ctx *core.Context, args []string) core.Result {
	var batch bool
	var iterations, user, pids string
	operands, err := core.Flags{
		Bool:  map[byte]*bool{'b': &batch},
		Value: map[byte]*string{'n': &iterations, 'u': &user, 'p': &pids},
	}.Parse(args)
	if err != nil {
		return core.UsageError("top", err.Error())
	}
	if len(operands) > 0 {
		return core.UsageError("top", "unknown argument '"+operands[0]+"'")
	}
	if iterations != "" {
		if n, err := strconv.Atoi(iterations); err != nil || n < 1 {
			return core.Errorf("top", "bad iterations argument '%s'", iterations)
		}
	}
	want := map[int]bool{}
	if pids != "" {
		for _, f := range strings.Split(pids, ",") {
			pid, ok := procutil.ParsePID(f)
			if !ok {
				return core.Errorf("top", "bad pid '%s'", f)
			}
			want[pid] = true
		}
	}

	sys := ctx.System
	all := sys.Processes.List()
	var shown []sysstate.Process
	for _, p := range all {
		if user != "" && p.User != user {
			continue
		}
		if len(want) > 0 && !want[p.PID] {
			continue
		}
		shown = append(shown, p)
	}
	sort.SliceStable(shown, func(i, j int) bool { return shown[i].CPU > shown[j].CPU })

	rows := make([][]any, 0, len(shown))
	for _, p := range shown {
		rows = append(rows, []any{
			p.PID, p.User, 20 + p.Nice, p.Nice, p.VSZ, p.RSS, p.Stat[:1],
			fmt.Sprintf("%.1f", p.CPU), fmt.Sprintf("%.1f", p.Mem), cpuTime(p), p.Name(),
		})
	}
	header := []string{
		"top - " + uptime.Summary(sys),
		tasks(all),
		memory(sys),
		"",
	}
	table := core.Table([]any{"PID", "USER", "PR", "NI", "VIRT", "RES", "S", "%CPU", "%MEM", "TIME+", "COMMAND"}, rows)
	return core.Ok(strings.Join(header, "\n") + "\n" + table)
}

func tasks(procs []sysstate.Process) string {
	var running, stopped int
	for _, p := range procs {
		switch p.Stat[0] {
		case 'R':
			running++
		case 'T':
			stopped++
		}
	}
	sleeping := len(procs) - running - stopped
	return fmt.Sprintf("Tasks: %3d total, %3d running, %3d sleeping, %3d stopped,   0 zombie",
		len(procs), running, sleeping, stopped)
}

func memory(sys *sysstate.System) string {
	m := free.Stats(sys)
	used := m.MemTotal - m.MemFree - m.Cached
	return fmt.Sprintf("MiB Mem : %8.1f total, %8.1f free, %8.1f used, %8.1f buff/cache",
		float64(m.MemTotal)/mib, float64(m.MemFree)/mib, float64(used)/mib, float64(m.Cached)/mib)
}

func cpuTime(p sysstate.Process) string {
	secs := int(p.CPU * 60)
	return fmt.Sprintf("%d:%02d.00", secs/60, secs%60)
}
