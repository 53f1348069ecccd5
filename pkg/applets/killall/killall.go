// Package killall implements killall using pgrep matching.
package killall

import (
	"regexp"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/pgrep"
	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes the killall command with the given arguments.
//
// killall sends a signal (default SIGTERM) to all processes whose name is
// exactly one of the operands. It delegates to pkill with exact matching.
func Run(ctx *core.Context, args []string) core.Result {
	var sig []string
	if len(args) > 0 && strings.HasPrefix(args[0], "-") {
		if _, err := procutil.ParseSignal(args[0]); err == nil {
			sig, args = args[:1], args[1:]
		}
	}
	if len(args) == 0 {
		return core.UsageError("killall", "no process name specified")
	}
	var out []string
	failed := false
	for _, name := range args {
		pattern := regexp.QuoteMeta(name)
		matches, _ := procutil.MatchProcs(ctx.System.Processes.List(), pattern, procutil.MatchOptions{Exact: true})
		if len(matches) == 0 {
			out = append(out, name+": no process found")
			failed = true
			continue
		}
		res := pgrep.Kill(ctx, append(append([]string{}, sig...), "-x", pattern))
		if res.Failed() {
			out = append(out, strings.ReplaceAll(res.Output, "pkill:", "killall:"))
			failed = true
		}
	}
	if failed {
		return core.Result{Output: core.JoinLines(out), Status: core.StatusError}
	}
	return core.Ok("")
}
