// Package grep implements the grep command.
package grep

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

const stdinName = "(standard input)"

// Options holds grep command options.
type Options struct {
	IgnoreCase  bool // -i
	Invert      bool // -v
	LineNumbers bool // -n
	Count       bool // -c
	FilesOnly   bool // -l
	Recursive   bool // -r, -R
	Extended    bool // -E
	Fixed       bool // -F
	Word        bool // -w
	Line        bool // -x
	OnlyMatch   bool // -o
	Quiet       bool // -q
	NoFilename  bool // -h
	WithName    bool // -H
}

type input struct {
	name string
	data string
}

// Run searches files, or stdin, for lines matching a pattern. Finding
// nothing is a success with empty output.
func Run(ctx *core.Context, args []string) core.Result {
	opts := Options{}
	var expr string
	operands, err := core.Flags{
		Bool: map[byte]*bool{
			'i': &opts.IgnoreCase, 'v': &opts.Invert, 'n': &opts.LineNumbers,
			'c': &opts.Count, 'l': &opts.FilesOnly, 'r': &opts.Recursive,
			'E': &opts.Extended, 'F': &opts.Fixed, 'w': &opts.Word,
			'x': &opts.Line, 'o': &opts.OnlyMatch, 'q': &opts.Quiet,
			'h': &opts.NoFilename, 'H': &opts.WithName,
		},
		Value:   map[byte]*string{'e': &expr},
		Aliases: map[byte]byte{'R': 'r'},
		Long: map[string]*bool{
			"ignore-case":  &opts.IgnoreCase,
			"invert-match": &opts.Invert,
			"count":        &opts.Count,
			"recursive":    &opts.Recursive,
		},
	}.Parse(args)
	if err != nil {
		return core.UsageError("grep", err.Error())
	}
	if expr == "" {
		if len(operands) == 0 {
			return core.UsageError("grep", "missing pattern")
		}
		expr, operands = operands[0], operands[1:]
	}
	re, err := compile(expr, &opts)
	if err != nil {
		return core.Errorf("grep", "invalid regular expression '%s'", expr)
	}

	inputs, errs := collect(ctx, operands, &opts)
	showNames := !opts.NoFilename && (opts.WithName || len(operands) > 1 || opts.Recursive)

	var out []string
	matched := false
	for _, in := range inputs {
		count := 0
		for i, line := range core.Lines(in.data) {
			if re.MatchString(line) == opts.Invert {
				continue
			}
			count++
			matched = true
			if opts.Count || opts.FilesOnly || opts.Quiet {
				continue
			}
			prefix := ""
			if showNames {
				prefix = in.name + ":"
			}
			if opts.LineNumbers {
				prefix += fmt.Sprintf("%d:", i+1)
			}
			if opts.OnlyMatch && !opts.Invert {
				for _, m := range re.FindAllString(line, -1) {
					out = append(out, prefix+m)
				}
				continue
			}
			out = append(out, prefix+line)
		}
		switch {
		case opts.Quiet:
		case opts.FilesOnly:
			if count > 0 {
				out = append(out, in.name)
			}
		case opts.Count:
			if showNames {
				out = append(out, fmt.Sprintf("%s:%d", in.name, count))
			} else {
				out = append(out, fmt.Sprintf("%d", count))
			}
		}
	}
	if opts.Quiet && matched {
		return core.Ok("")
	}
	if len(errs) > 0 {
		return core.Result{Output: strings.Join(append(out, errs...), "\n"), Status: core.StatusError}
	}
	return core.Ok(strings.Join(out, "\n"))
}

func compile(expr string, opts *Options) (*regexp.Regexp, error) {
	var pat string
	if opts.Fixed {
		pat = regexp.QuoteMeta(expr)
	} else {
		pat = textutil.TranslateRegexp(expr, opts.Extended)
	}
	switch {
	case opts.Line:
		pat = "^(?:" + pat + ")$"
	case opts.Word:
		pat = `\b(?:` + pat + `)\b`
	}
	if opts.IgnoreCase {
		pat = "(?i)" + pat
	}
	return regexp.Compile(pat)
}

// collect reads the operands, walking directories under -r. Unreadable
// operands become messages and the search carries on.
func collect(ctx *core.Context, operands []string, opts *Options) ([]input, []string) {
	if len(operands) == 0 {
		if !opts.Recursive {
			return []input{{name: stdinName, data: ctx.Stdin}}, nil
		}
		operands = []string{"."}
	}
	var inputs []input
	var errs []string
	for _, p := range operands {
		if p == "-" {
			inputs = append(inputs, input{name: stdinName, data: ctx.Stdin})
			continue
		}
		node, err := ctx.State.Stat(p)
		if err != nil {
			errs = append(errs, "grep: "+p+": "+vfs.Reason(err))
			continue
		}
		if !node.IsDir() {
			inputs = append(inputs, input{name: p, data: node.Content()})
			continue
		}
		if !opts.Recursive {
			errs = append(errs, "grep: "+p+": Is a directory")
			continue
		}
		base := ctx.State.Abs(p)
		_ = ctx.State.Walk(p, func(abs string, n *vfs.Node) error {
			if n.IsFile() {
				inputs = append(inputs, input{name: display(p, base, abs), data: n.Content()})
			}
			return nil
		})
	}
	return inputs, errs
}

// display renders abs relative to the operand as typed.
func display(operand, base, abs string) string {
	rel := strings.TrimPrefix(strings.TrimPrefix(abs, base), "/")
	if operand == "." {
		return rel
	}
	return strings.TrimSuffix(operand, "/") + "/" + rel
}
