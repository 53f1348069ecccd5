// Package xargs implements xargs: it builds command lines from its input
// and dispatches them through the command registry. Each batch sees the
// filesystem the previous one left behind.
package xargs

import (
	"strconv"
	"strings"

	"github.com/buildkite/shellwords"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

type options struct {
	zeroTerm   bool
	trace      bool
	noRun      bool
	eofStr     string
	eofEnabled bool
	maxArgs    int
	replace    string
}

// Run executes the xargs command with the given arguments.
//
// Supported flags:
//
//	-0        Input items are NUL-terminated
//	-t        Print each command line before running it
//	-r        Do not run the command when there is no input
//	-E STR    Stop at the logical end-of-input STR
//	-n N      At most N items per command line
//	-I STR    Run once per input line, replacing STR in the arguments
//
// Items are separated by blanks and newlines; quotes and backslashes in the
// input are honoured. The command defaults to echo.
func Run(ctx *core.Context, args []string) core.Result {
	var opts options
	for len(args) > 0 && strings.HasPrefix(args[0], "-") && args[0] != "-" && args[0] != "--" {
		arg := args[0]
		args = args[1:]
		for j := 1; j < len(arg); j++ {
			value := func() (string, bool) {
				val := arg[j+1:]
				j = len(arg)
				if val == "" {
					if len(args) == 0 {
						return "", false
					}
					val, args = args[0], args[1:]
				}
				return val, true
			}
			switch c := arg[j]; c {
			case '0':
				opts.zeroTerm = true
			case 't':
				opts.trace = true
			case 'r':
				opts.noRun = true
			case 'E':
				val, ok := value()
				if !ok {
					return core.UsageError("xargs", "option requires an argument -- 'E'")
				}
				opts.eofStr, opts.eofEnabled = val, true
			case 'n':
				val, ok := value()
				if !ok {
					return core.UsageError("xargs", "option requires an argument -- 'n'")
				}
				n, err := strconv.Atoi(val)
				if err != nil || n <= 0 {
					return core.UsageError("xargs", "invalid number \""+val+"\" for -n option")
				}
				opts.maxArgs = n
			case 'I':
				val, ok := value()
				if !ok {
					return core.UsageError("xargs", "option requires an argument -- 'I'")
				}
				opts.replace = val
			default:
				return core.UsageError("xargs", "invalid option -- '"+string(c)+"'")
			}
		}
	}
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if ctx.Registry == nil {
		return core.Errorf("xargs", "cannot run commands here")
	}

	cmdName := "echo"
	var cmdBase []string
	if len(args) > 0 {
		cmdName = args[0]
		cmdBase = args[1:]
	}

	var batches [][]string
	if opts.replace != "" {
		for _, line := range core.Lines(ctx.Stdin) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if opts.eofEnabled && line == opts.eofStr {
				break
			}
			batch := make([]string, len(cmdBase))
			for i, a := range cmdBase {
				batch[i] = strings.ReplaceAll(a, opts.replace, line)
			}
			batches = append(batches, batch)
		}
	} else {
		words, err := readWords(ctx.Stdin, opts)
		if err != nil {
			return core.Errorf("xargs", "%v", err)
		}
		if len(words) == 0 && opts.noRun {
			return core.Ok("")
		}
		size := opts.maxArgs
		if size == 0 || size > len(words) {
			size = len(words)
		}
		if size == 0 {
			batches = append(batches, append([]string(nil), cmdBase...))
		}
		for i := 0; i < len(words) && size > 0; i += size {
			end := i + size
			if end > len(words) {
				end = len(words)
			}
			batches = append(batches, append(append([]string(nil), cmdBase...), words[i:end]...))
		}
	}
	return run(ctx, cmdName, batches, opts.trace)
}

// run dispatches every batch in order, threading the filesystem through.
// Like xargs, a failing batch does not stop the ones after it.
func run(ctx *core.Context, name string, batches [][]string, trace bool) core.Result {
	st := ctx.State
	failed := false
	var out []string
	for _, batch := range batches {
		if trace {
			out = append(out, strings.TrimSpace(name+" "+strings.Join(batch, " ")))
		}
		sub := *ctx
		sub.State, sub.Stdin, sub.HasStdin = st, "", false
		res := ctx.Registry.Dispatch(&sub, name, batch)
		if res.State != nil {
			st = res.State
		}
		if res.Output != "" {
			out = append(out, res.Output)
		}
		if res.Failed() {
			failed = true
			ctx.Log.Debug("xargs: %s %v failed", name, batch)
		}
	}
	res := core.Ok(core.JoinLines(out))
	if failed {
		res.Status = core.StatusError
	}
	if st != ctx.State {
		res.State = st
	}
	return res
}

func readWords(input string, opts options) ([]string, error) {
	if opts.zeroTerm {
		var words []string
		for _, part := range strings.Split(input, "\x00") {
			if part = strings.TrimSuffix(part, "\n"); part != "" {
				words = append(words, part)
			}
		}
		return words, nil
	}
	var words []string
	for _, line := range core.Lines(input) {
		fields, err := shellwords.SplitPosix(line)
		if err != nil {
			return nil, err
		}
		for _, w := range fields {
			if opts.eofEnabled && w == opts.eofStr {
				return words, nil
			}
			words = append(words, w)
		}
	}
	return words, nil
}
