// Package pidof implements the pidof command.
package pidof

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes the pidof command with the given arguments.
//
// pidof finds the process IDs of running programs by name. A process
// matches on its executable name or, for interpreters, on the base name of
// its first argument ("python3 app.py" matches "app.py").
//
// -s prints only one pid. Nothing found is an error with no output.
func Run(ctx *core.Context, args []string) core.Result {
	var single bool
	operands, err := core.Flags{Bool: map[byte]*bool{'s': &single}}.Parse(args)
	if err != nil {
		return core.UsageError("pidof", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("pidof", "missing name")
	}
	names := make(map[string]bool, len(operands))
	for _, name := range operands {
		names[name] = true
	}
	var pids []int
	for _, proc := range ctx.System.Processes.List() {
		if names[proc.Name()] || names[scriptName(proc.Command)] {
			pids = append(pids, proc.PID)
		}
	}
	if len(pids) == 0 {
		return core.Result{Status: core.StatusError}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(pids)))
	if single {
		pids = pids[:1]
	}
	out := make([]string, len(pids))
	for i, pid := range pids {
		out[i] = strconv.Itoa(pid)
	}
	return core.Ok(strings.Join(out, " "))
}

func scriptName(command string) string {
	fields := strings.Fields(command)
	if len(fields) < 2 || strings.HasPrefix(fields[1], "-") {
		return ""
	}
	arg := fields[1]
	if idx := strings.LastIndex(arg, "/"); idx >= 0 {
		arg = arg[idx+1:]
	}
	return arg
}
