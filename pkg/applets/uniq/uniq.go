// Package uniq implements the uniq command.
package uniq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
)

// Options holds uniq command options.
type Options struct {
	Count      bool // -c: prefix lines with their run length
	Repeated   bool // -d: only print lines that repeat
	Unique     bool // -u: only print lines that do not repeat
	IgnoreCase bool // -i
	SkipFields string
	SkipChars  string
}

// Run collapses runs of adjacent equal lines. Equal lines that are not next
// to each other are left alone.
func Run(ctx *core.Context, args []string) core.Result {
	opts := Options{}
	files, err := core.Flags{
		Bool: map[byte]*bool{
			'c': &opts.Count, 'd': &opts.Repeated, 'u': &opts.Unique, 'i': &opts.IgnoreCase,
		},
		Value: map[byte]*string{'f': &opts.SkipFields, 's': &opts.SkipChars},
	}.Parse(args)
	if err != nil {
		return core.UsageError("uniq", err.Error())
	}
	skipFields, err := count(opts.SkipFields)
	if err != nil {
		return core.UsageError("uniq", "invalid number of fields to skip: '"+opts.SkipFields+"'")
	}
	skipChars, err := count(opts.SkipChars)
	if err != nil {
		return core.UsageError("uniq", "invalid number of bytes to skip: '"+opts.SkipChars+"'")
	}
	if len(files) > 1 {
		return core.UsageError("uniq", "extra operand '"+files[1]+"'")
	}

	inputs, res := ctx.ReadInputs("uniq", files)
	if res.Failed() {
		return res
	}
	key := func(line string) string {
		line = textutil.SkipChars(textutil.SkipFields(line, skipFields), skipChars)
		if opts.IgnoreCase {
			line = strings.ToLower(line)
		}
		return line
	}

	var out []string
	emit := func(line string, n int) {
		if opts.Repeated && n < 2 || opts.Unique && n > 1 {
			return
		}
		if opts.Count {
			line = fmt.Sprintf("%7d %s", n, line)
		}
		out = append(out, line)
	}
	lines := core.Lines(inputs[0].Data)
	for i := 0; i < len(lines); {
		j := i + 1
		for j < len(lines) && key(lines[j]) == key(lines[i]) {
			j++
		}
		emit(lines[i], j-i)
		i = j
	}
	return core.Ok(core.JoinLines(out))
}

func count(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err == nil && n < 0 {
		err = strconv.ErrRange
	}
	return n, err
}
