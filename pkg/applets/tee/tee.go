// Package tee implements the tee command.
package tee

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run copies stdin to each named file and to its output. -a appends
// instead of truncating.
func Run(ctx *core.Context, args []string) core.Result {
	var appendMode, ignored bool
	files, err := core.Flags{
		Bool: map[byte]*bool{'a': &appendMode, 'i': &ignored},
		Long: map[string]*bool{"append": &appendMode},
	}.Parse(args)
	if err != nil {
		return core.UsageError("tee", err.Error())
	}
	out := strings.TrimSuffix(ctx.Stdin, "\n")
	content := ctx.Stdin
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	st := ctx.State
	for _, f := range files {
		next, err := st.WriteFile(f, content, appendMode)
		if err != nil {
			res := core.FileError("tee", f, err)
			res.Output = core.JoinLines([]string{out, res.Output})
			res.State = st
			return res
		}
		st = next
	}
	if len(files) == 0 {
		return core.Ok(out)
	}
	return core.Changed(out, st)
}
