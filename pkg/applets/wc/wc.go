// Package wc implements the wc (word count) command.
package wc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Options holds wc command options.
type Options struct {
	Lines bool // -l: count lines
	Words bool // -w: count words
	Chars bool // -m: count characters
	Bytes bool // -c: count bytes
}

// Counts holds the counts for one input.
type Counts struct {
	Lines int
	Words int
	Chars int
	Bytes int
}

func (c *Counts) add(o Counts) {
	c.Lines += o.Lines
	c.Words += o.Words
	c.Chars += o.Chars
	c.Bytes += o.Bytes
}

// Count counts newlines, words, characters and bytes in s.
func Count(s string) Counts {
	c := Counts{Bytes: len(s), Chars: utf8.RuneCountInString(s)}
	inWord := false
	for _, r := range s {
		if r == '\n' {
			c.Lines++
		}
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			c.Words++
		}
	}
	return c
}

type row struct {
	name   string
	counts Counts
}

// Run executes the wc command with the given arguments.
//
// Columns are right aligned to the widest number. A single count over a
// single input is printed bare.
func Run(ctx *core.Context, args []string) core.Result {
	opts := Options{}
	files, err := core.Flags{
		Bool: map[byte]*bool{'l': &opts.Lines, 'w': &opts.Words, 'm': &opts.Chars, 'c': &opts.Bytes},
		Long: map[string]*bool{"lines": &opts.Lines, "words": &opts.Words, "chars": &opts.Chars, "bytes": &opts.Bytes},
	}.Parse(args)
	if err != nil {
		return core.UsageError("wc", err.Error())
	}
	if !opts.Lines && !opts.Words && !opts.Chars && !opts.Bytes {
		opts.Lines, opts.Words, opts.Bytes = true, true, true
	}

	var rows []row
	var errs []string
	var total Counts
	fromStdin := len(files) == 0
	if fromStdin {
		rows = append(rows, row{counts: Count(ctx.Stdin)})
	}
	for _, f := range files {
		data, err := ctx.ReadFile(f)
		if err != nil {
			errs = append(errs, "wc: "+f+": "+vfs.Reason(err))
			continue
		}
		fromStdin = fromStdin || f == "-"
		c := Count(data)
		total.add(c)
		rows = append(rows, row{name: f, counts: c})
	}
	if len(files) > 1 {
		rows = append(rows, row{name: "total", counts: total})
	}

	cols := 0
	for _, on := range []bool{opts.Lines, opts.Words, opts.Chars, opts.Bytes} {
		if on {
			cols++
		}
	}
	width := 0
	if cols > 1 || len(rows) > 1 {
		for _, r := range rows {
			width = max(width, len(strconv.Itoa(r.counts.Bytes)))
		}
		if fromStdin {
			width = max(width, 7)
		}
	}

	out := append([]string(nil), errs...)
	for _, r := range rows {
		var fields []string
		add := func(on bool, n int) {
			if on {
				fields = append(fields, fmt.Sprintf("%*d", width, n))
			}
		}
		add(opts.Lines, r.counts.Lines)
		add(opts.Words, r.counts.Words)
		add(opts.Chars, r.counts.Chars)
		add(opts.Bytes, r.counts.Bytes)
		if r.name != "" {
			fields = append(fields, r.name)
		}
		out = append(out, strings.Join(fields, " "))
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(out), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(out))
}
