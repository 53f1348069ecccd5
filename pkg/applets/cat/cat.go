// Package cat implements the cat command.
package cat

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Options holds cat command options.
type Options struct {
	Number      bool // -n: number all output lines
	NumberNonBl bool // -b: number non-blank output lines
	ShowEnds    bool // -E: display $ at end of each line
	Squeeze     bool // -s: squeeze repeated blank lines
}

// Run concatenates files, or stdin when none are given.
func Run(ctx *core.Context, args []string) core.Result {
	opts := Options{}
	files, err := core.Flags{
		Bool: map[byte]*bool{'n': &opts.Number, 'b': &opts.NumberNonBl, 'E': &opts.ShowEnds, 's': &opts.Squeeze},
	}.Parse(args)
	if err != nil {
		return core.UsageError("cat", err.Error())
	}
	if len(files) == 0 {
		files = []string{"-"}
	}

	var sb strings.Builder
	var errs []string
	for _, f := range files {
		data, err := ctx.ReadFile(f)
		if err != nil {
			errs = append(errs, "cat: "+f+": "+vfs.Reason(err))
			continue
		}
		sb.WriteString(data)
	}
	out := sb.String()
	if opts.Number || opts.NumberNonBl || opts.ShowEnds || opts.Squeeze {
		out = decorate(out, &opts)
	}
	out = strings.TrimSuffix(out, "\n")
	if len(errs) > 0 {
		msg := strings.Join(errs, "\n")
		if out != "" {
			msg = out + "\n" + msg
		}
		return core.Result{Output: msg, Status: core.StatusError}
	}
	return core.Ok(out)
}

func decorate(data string, opts *Options) string {
	trailing := strings.HasSuffix(data, "\n")
	lines := core.Lines(data)
	out := make([]string, 0, len(lines))
	n := 0
	prevBlank := false
	for _, line := range lines {
		blank := line == ""
		if opts.Squeeze && blank && prevBlank {
			continue
		}
		prevBlank = blank
		if opts.ShowEnds {
			line += "$"
		}
		switch {
		case opts.NumberNonBl:
			if !blank {
				n++
				line = fmt.Sprintf("%6d\t%s", n, line)
			}
		case opts.Number:
			n++
			line = fmt.Sprintf("%6d\t%s", n, line)
		}
		out = append(out, line)
	}
	s := strings.Join(out, "\n")
	if trailing {
		s += "\n"
	}
	return s
}
