// Package pgrep implements pgrep/pkill-style matching.
package pgrep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

type options struct {
	match     procutil.MatchOptions
	listName  bool
	listFull  bool
	count     bool
	delimiter string
	signal    string
	kill      bool
}

// Run executes the pgrep command with the given arguments.
//
// Supported flags:
//
//	-f          Match against full command line, not just process name
//	-x          Require exact match
//	-v          Negate the matching
//	-u USER     Only match processes owned by USER
//	-n, -o      Select only the newest or oldest match
//	-l, -a      List the name or full command line with each pid
//	-c          Print the match count
//	-d DELIM    Separate pids with DELIM
//	-s SIGNAL   Send SIGNAL to matched processes (used by pkill)
//
// Prints matching PIDs, one per line.
func Run(ctx *core.Context, args []string) core.Result {
	return run(ctx, "pgrep", args)
}

// Kill is pkill: pgrep that signals its matches instead of listing them.
func Kill(ctx *core.Context, args []string) core.Result {
	if len(args) > 0 && strings.HasPrefix(args[0], "-") {
		if _, err := procutil.ParseSignal(args[0]); err == nil {
			args = append([]string{"-s", args[0]}, args[1:]...)
		}
	}
	return run(ctx, "pkill", append([]string{"-s", "TERM"}, args...))
}

func run(ctx *core.Context, applet string, args []string) core.Result {
	opts := options{delimiter: "\n"}
	patterns, err := core.Flags{
		Bool: map[byte]*bool{
			'f': &opts.match.UseArgs, 'x': &opts.match.Exact, 'v': &opts.match.Invert,
			'n': &opts.match.Newest, 'o': &opts.match.Oldest,
			'l': &opts.listName, 'a': &opts.listFull, 'c': &opts.count,
		},
		Value: map[byte]*string{
			'u': &opts.match.User, 'd': &opts.delimiter, 's': &opts.signal,
		},
		Long:      map[string]*bool{"full": &opts.match.UseArgs, "exact": &opts.match.Exact, "count": &opts.count},
		LongValue: map[string]*string{"signal": &opts.signal, "euid": &opts.match.User, "delimiter": &opts.delimiter},
	}.Parse(args)
	if err != nil {
		return core.UsageError(applet, err.Error())
	}
	opts.kill = applet == "pkill"
	if len(patterns) == 0 {
		return core.UsageError(applet, "no matching criteria specified")
	}
	if len(patterns) > 1 {
		return core.Errorf(applet, "only one pattern can be provided")
	}
	sig := sysstate.SIGTERM
	if opts.signal != "" {
		if sig, err = procutil.ParseSignal(opts.signal); err != nil {
			return core.Errorf(applet, "invalid signal: %s", opts.signal)
		}
	}

	matches, err := procutil.MatchProcs(ctx.System.Processes.List(), patterns[0], opts.match)
	if err != nil {
		return core.Errorf(applet, "invalid regular expression '%s'", patterns[0])
	}
	if opts.kill {
		return signal(ctx, matches, sig)
	}
	if opts.count {
		return core.Ok(strconv.Itoa(len(matches)))
	}
	out := make([]string, 0, len(matches))
	for _, proc := range matches {
		line := strconv.Itoa(proc.PID)
		switch {
		case opts.listFull:
			line += " " + proc.Command
		case opts.listName:
			line += " " + proc.Name()
		}
		out = append(out, line)
	}
	return core.Ok(strings.Join(out, opts.delimiter))
}

func signal(ctx *core.Context, matches []sysstate.Process, sig int) core.Result {
	var errs []string
	for _, proc := range matches {
		if err := ctx.System.Processes.Kill(proc.PID, sig, ctx.User()); err != nil {
			errs = append(errs, fmt.Sprintf("pkill: killing pid %d failed: %s", proc.PID, procutil.Reason(err)))
			continue
		}
		ctx.Log.Debug("pkill: signal %s sent to %d", procutil.SignalName(sig), proc.PID)
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
	}
	return core.Ok("")
}
