// Package watch implements the watch command.
package watch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buildkite/shellwords"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes COMMAND once and prints it under watch's title line. The
// simulated terminal cannot be refreshed, so there is no second iteration.
//
// Supported flags:
//
//	-n SECS   Interval shown in the title (default 2)
//	-t        Omit the title
func Run(ctx *core.Context, args []string) core.Result {
	interval := 2.0
	noTitle := false
flags:
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch arg := args[0]; {
		case arg == "-t" || arg == "--no-title":
			noTitle = true
			args = args[1:]
		case arg == "-n" || arg == "--interval":
			if len(args) < 2 {
				return core.UsageError("watch", "option requires an argument -- 'n'")
			}
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil || v < 0 {
				return core.Errorf("watch", "failed to parse argument: '%s'", args[1])
			}
			interval = max(v, 0.1)
			args = args[2:]
		case arg == "--":
			args = args[1:]
			break flags
		default:
			return core.UsageError("watch", "invalid option -- '"+strings.TrimLeft(arg, "-")+"'")
		}
	}
	if len(args) == 0 {
		return core.UsageError("watch", "missing command")
	}
	if ctx.Registry == nil {
		return core.Errorf("watch", "cannot run commands here")
	}
	line := strings.Join(args, " ")
	words := args
	if len(args) == 1 {
		split, err := shellwords.SplitPosix(line)
		if err != nil || len(split) == 0 {
			return core.Errorf("watch", "invalid command '%s'", line)
		}
		words = split
	}
	res := ctx.Registry.Dispatch(ctx, words[0], words[1:])
	if noTitle {
		return res
	}
	title := fmt.Sprintf("Every %.1fs: %s    %s: %s", interval, line,
		ctx.System.Hostname, ctx.System.Clock.Now().Format("Mon Jan _2 15:04:05 2006"))
	if res.Output != "" {
		title += "\n\n" + res.Output
	}
	res.Output = title
	if res.Status == core.StatusInfo {
		res.Status = core.StatusSuccess
	}
	return res
}
