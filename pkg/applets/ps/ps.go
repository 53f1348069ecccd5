// Package ps implements the ps command over the simulated process table.
package ps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

type options struct {
	all     bool // -e, -A, BSD a+x
	full    bool // -f
	bsdUser bool // BSD u
	columns string
	user    string
	pids    string
}

type columnSpec struct {
	header string
	value  func(sysstate.Process) string
}

// Run executes the ps command with the given arguments.
//
// Supported forms:
//
//	ps                 Processes on the current terminal
//	ps -e / -A         Every process
//	ps -f / -ef        Full format
//	ps aux             BSD user format
//	ps -u USER         Processes owned by USER
//	ps -p PID[,PID]    Selected processes
//	ps -o COL[,COL]    Custom columns
func Run(ctx *core.Context, args []string) core.Result {
	opts := options{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			if !bsdOptions(arg, &opts) {
				return core.Errorf("ps", "error: unsupported option (BSD syntax) '%s'", arg)
			}
			continue
		}
		for j := 1; j < len(arg); j++ {
			switch c := arg[j]; c {
			case 'e', 'A':
				opts.all = true
			case 'f':
				opts.full = true
			case 'a', 'x', 'w':
			case 'o', 'u', 'p':
				val := arg[j+1:]
				if val == "" {
					if i+1 >= len(args) {
						return core.Errorf("ps", "option requires an argument -- '%c'", c)
					}
					i++
					val = args[i]
				}
				switch c {
				case 'o':
					opts.columns = val
				case 'u':
					opts.user = val
				case 'p':
					opts.pids = val
				}
				j = len(arg)
			default:
				return core.Errorf("ps", "invalid option -- '%c'", c)
			}
		}
	}

	procs, res := selectProcs(ctx, &opts)
	if res.Failed() {
		return res
	}
	cols, res := columnsFor(&opts)
	if res.Failed() {
		return res
	}
	headers := make([]any, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	rows := make([][]any, 0, len(procs))
	for _, p := range procs {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = c.value(p)
		}
		rows = append(rows, row)
	}
	return core.Ok(core.Table(headers, rows))
}

func bsdOptions(arg string, opts *options) bool {
	for _, c := range arg {
		switch c {
		case 'a', 'x':
			opts.all = true
		case 'u':
			opts.bsdUser = true
		case 'w':
		default:
			return false
		}
	}
	return true
}

func selectProcs(ctx *core.Context, opts *options) ([]sysstate.Process, core.Result) {
	all := ctx.System.Processes.List()
	var wanted map[int]bool
	if opts.pids != "" {
		wanted = map[int]bool{}
		for _, s := range strings.FieldsFunc(opts.pids, func(r rune) bool { return r == ',' || r == ' ' }) {
			pid, ok := procutil.ParsePID(s)
			if !ok {
				return nil, core.Errorf("ps", "process ID list syntax error")
			}
			wanted[pid] = true
		}
	}
	var out []sysstate.Process
	for _, p := range all {
		switch {
		case wanted != nil:
			if !wanted[p.PID] {
				continue
			}
		case opts.user != "":
			if p.User != opts.user {
				continue
			}
		case !opts.all:
			if p.TTY == "?" || p.User != ctx.User() {
				continue
			}
		}
		out = append(out, p)
	}
	return out, core.Result{}
}

func columnsFor(opts *options) ([]columnSpec, core.Result) {
	var names []string
	switch {
	case opts.columns != "":
		return parseColumns(opts.columns)
	case opts.bsdUser:
		names = []string{"user", "pid", "%cpu", "%mem", "vsz", "rss", "tty", "stat", "start", "time", "args"}
	case opts.full:
		names = []string{"uid", "pid", "ppid", "c", "stime", "tty", "time", "args"}
	default:
		names = []string{"pid", "tty", "time", "comm"}
	}
	cols := make([]columnSpec, 0, len(names))
	for _, n := range names {
		col, _ := columnByName(n)
		cols = append(cols, col)
	}
	if !opts.bsdUser {
		cols[len(cols)-1].header = "CMD"
	}
	return cols, core.Result{}
}

func parseColumns(spec string) ([]columnSpec, core.Result) {
	var cols []columnSpec
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		name, header, hasHeader := strings.Cut(part, "=")
		col, ok := columnByName(strings.ToLower(name))
		if !ok {
			return nil, core.Errorf("ps", "error: unknown user-defined format specifier \"%s\"", name)
		}
		if hasHeader {
			col.header = header
		}
		cols = append(cols, col)
	}
	return cols, core.Result{}
}

func columnByName(name string) (columnSpec, bool) {
	switch name {
	case "pid":
		return columnSpec{"PID", func(p sysstate.Process) string { return strconv.Itoa(p.PID) }}, true
	case "ppid":
		return columnSpec{"PPID", func(p sysstate.Process) string { return strconv.Itoa(p.PPID) }}, true
	case "user", "uid", "ruser":
		return columnSpec{strings.ToUpper(name), func(p sysstate.Process) string { return p.User }}, true
	case "comm", "ucmd":
		return columnSpec{"COMMAND", func(p sysstate.Process) string { return p.Name() }}, true
	case "args", "cmd", "command":
		return columnSpec{"COMMAND", func(p sysstate.Process) string { return p.Command }}, true
	case "tty", "tt":
		return columnSpec{"TTY", func(p sysstate.Process) string { return p.TTY }}, true
	case "stat", "s":
		return columnSpec{"STAT", func(p sysstate.Process) string { return p.Stat }}, true
	case "ni", "nice":
		return columnSpec{"NI", func(p sysstate.Process) string { return strconv.Itoa(p.Nice) }}, true
	case "%cpu", "pcpu":
		return columnSpec{"%CPU", func(p sysstate.Process) string { return fmt.Sprintf("%.1f", p.CPU) }}, true
	case "%mem", "pmem":
		return columnSpec{"%MEM", func(p sysstate.Process) string { return fmt.Sprintf("%.1f", p.Mem) }}, true
	case "c":
		return columnSpec{"C", func(p sysstate.Process) string { return strconv.Itoa(int(p.CPU)) }}, true
	case "vsz":
		return columnSpec{"VSZ", func(p sysstate.Process) string { return strconv.Itoa(p.VSZ) }}, true
	case "rss":
		return columnSpec{"RSS", func(p sysstate.Process) string { return strconv.Itoa(p.RSS) }}, true
	case "start", "stime":
		return columnSpec{strings.ToUpper(name), func(p sysstate.Process) string { return p.Start }}, true
	case "time":
		return columnSpec{"TIME", func(p sysstate.Process) string { return cpuTime(p) }}, true
	}
	return columnSpec{}, false
}

// cpuTime fakes accumulated CPU time from the %CPU figure.
func cpuTime(p sysstate.Process) string {
	secs := int(p.CPU * 60)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
