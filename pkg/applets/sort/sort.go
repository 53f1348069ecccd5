// Package sort implements the sort command.
package sort

import (
	"sort"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
)

type options struct {
	reverse bool
	numeric bool
	unique  bool
	fold    bool
	sep     string
	key     string
	outFile string
}

// Run sorts the lines of its inputs. With -n two keys that both parse as
// numbers compare numerically; otherwise they compare as strings.
func Run(ctx *core.Context, args []string) core.Result {
	opts := options{}
	files, err := core.Flags{
		Bool: map[byte]*bool{
			'r': &opts.reverse, 'n': &opts.numeric, 'u': &opts.unique, 'f': &opts.fold,
		},
		Value: map[byte]*string{'t': &opts.sep, 'k': &opts.key, 'o': &opts.outFile},
	}.Parse(args)
	if err != nil {
		return core.UsageError("sort", err.Error())
	}
	if len([]rune(opts.sep)) > 1 {
		return core.UsageError("sort", "multi-character tab '"+opts.sep+"'")
	}
	var key *textutil.SortKey
	if opts.key != "" {
		k, err := textutil.ParseSortKey(opts.key)
		if err != nil {
			return core.UsageError("sort", err.Error())
		}
		key = &k
	}

	inputs, res := ctx.ReadInputs("sort", files)
	if res.Failed() {
		return res
	}
	var lines []string
	for _, in := range inputs {
		lines = append(lines, core.Lines(in.Data)...)
	}

	keyOf := func(line string) string {
		if key != nil {
			line = key.Extract(line, opts.sep)
		}
		if opts.fold {
			line = strings.ToLower(line)
		}
		return line
	}
	sort.SliceStable(lines, func(i, j int) bool {
		c := compare(keyOf(lines[i]), keyOf(lines[j]), opts.numeric)
		if c == 0 && key != nil {
			c = strings.Compare(lines[i], lines[j])
		}
		if opts.reverse {
			return c > 0
		}
		return c < 0
	})

	if opts.unique {
		out := lines[:0]
		for i, l := range lines {
			if i > 0 && compare(keyOf(l), keyOf(lines[i-1]), opts.numeric) == 0 {
				continue
			}
			out = append(out, l)
		}
		lines = out
	}

	text := core.JoinLines(lines)
	if opts.outFile != "" {
		content := ""
		if len(lines) > 0 {
			content = text + "\n"
		}
		st, err := ctx.State.WriteFile(opts.outFile, content, false)
		if err != nil {
			return core.FileError("sort", opts.outFile, err)
		}
		return core.Changed("", st)
	}
	return core.Ok(text)
}

func compare(a, b string, numeric bool) int {
	if numeric {
		na, okA := textutil.Numeric(a)
		nb, okB := textutil.Numeric(b)
		if okA && okB {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
		}
	}
	return strings.Compare(a, b)
}
