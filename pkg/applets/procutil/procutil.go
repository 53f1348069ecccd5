// Package procutil provides the process matching and signal parsing shared
// by ps, kill, pgrep, pkill and pidof.
package procutil

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// ErrInvalidSignal is returned for an unknown signal name or number.
var ErrInvalidSignal = errors.New("invalid signal")

type MatchOptions struct {
	UseArgs bool
	Exact   bool
	Invert  bool
	User    string
	Newest  bool
	Oldest  bool
}

// MatchProcs filters procs by the extended regular expression pattern,
// applied to the process name or, with UseArgs, the full command line.
func MatchProcs(procs []sysstate.Process, pattern string, opts MatchOptions) ([]sysstate.Process, error) {
	expr := pattern
	if opts.Exact {
		expr = "^(?:" + pattern + ")$"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	var matches []sysstate.Process
	for _, proc := range procs {
		target := proc.Name()
		if opts.UseArgs {
			target = proc.Command
		}
		match := re.MatchString(target)
		if opts.User != "" && proc.User != opts.User {
			match = false
		}
		if opts.Invert {
			match = !match
		}
		if match {
			matches = append(matches, proc)
		}
	}
	SortByPID(matches)
	if len(matches) > 1 && opts.Newest {
		matches = matches[len(matches)-1:]
	}
	if len(matches) > 1 && opts.Oldest {
		matches = matches[:1]
	}
	return matches, nil
}

func SortByPID(procs []sysstate.Process) {
	sort.Slice(procs, func(i, j int) bool {
		return procs[i].PID < procs[j].PID
	})
}

// ParseSignal accepts "9", "KILL", "SIGKILL" and the same with a leading
// dash, in any case.
func ParseSignal(arg string) (int, error) {
	arg = strings.TrimPrefix(arg, "-")
	if arg == "" {
		return 0, ErrInvalidSignal
	}
	if num, err := strconv.Atoi(arg); err == nil {
		if num < 0 || num > 64 {
			return 0, ErrInvalidSignal
		}
		return num, nil
	}
	arg = strings.TrimPrefix(strings.ToUpper(arg), "SIG")
	for sig, name := range sysstate.SignalNames {
		if name == arg {
			return sig, nil
		}
	}
	return 0, ErrInvalidSignal
}

// SignalName is the bare name of sig, or its number when it has none.
func SignalName(sig int) string {
	if name, ok := sysstate.SignalNames[sig]; ok {
		return name
	}
	return strconv.Itoa(sig)
}

// SignalList renders the table kill -l prints, in signal order.
func SignalList() []string {
	sigs := make([]int, 0, len(sysstate.SignalNames))
	for sig := range sysstate.SignalNames {
		sigs = append(sigs, sig)
	}
	sort.Ints(sigs)
	out := make([]string, 0, len(sigs))
	for _, sig := range sigs {
		out = append(out, strconv.Itoa(sig)+") SIG"+sysstate.SignalNames[sig])
	}
	return out
}

// ParsePID parses a positive process id.
func ParsePID(s string) (int, bool) {
	pid, err := strconv.Atoi(s)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Reason strips the "(pid) - " prefix process table errors carry.
func Reason(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, " - "); ok {
		return after
	}
	return msg
}
