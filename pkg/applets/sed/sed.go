// Package sed implements a subset of the sed stream editor: s, p, d, q, =,
// a, i and c with line, $ and /regexp/ addresses and ranges.
package sed

import (
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

type options struct {
	quiet    bool
	inPlace  bool
	extended bool
	scripts  []string
}

// Run executes the sed command with the given arguments.
func Run(ctx *core.Context, args []string) core.Result {
	opts, files, err := parseArgs(args)
	if err != nil {
		return core.UsageError("sed", err.Error())
	}
	if len(opts.scripts) == 0 {
		if len(files) == 0 {
			return core.UsageError("sed", "no script specified")
		}
		opts.scripts, files = files[:1], files[1:]
	}
	cmds, err := parseScript(strings.Join(opts.scripts, "\n"), opts.extended)
	if err != nil {
		return core.UsageError("sed", err.Error())
	}

	if opts.inPlace {
		if len(files) == 0 {
			return core.UsageError("sed", "no input files")
		}
		st := ctx.State
		for _, f := range files {
			data, err := st.ReadFile(f)
			if err != nil {
				res := core.FileError("sed", f, err)
				if st != ctx.State {
					res.State = st
				}
				return res
			}
			out := execute(cmds, core.Lines(data), opts.quiet)
			content := ""
			if len(out) > 0 {
				content = core.JoinLines(out) + "\n"
			}
			if st, err = st.WriteFile(f, content, false); err != nil {
				return core.FileError("sed", f, err)
			}
		}
		return core.Changed("", st)
	}

	inputs, res := ctx.ReadInputs("sed", files)
	if res.Failed() {
		return res
	}
	var lines []string
	for _, in := range inputs {
		lines = append(lines, core.Lines(in.Data)...)
	}
	out := execute(cmds, lines, opts.quiet)
	return core.Ok(core.JoinLines(out))
}

// parseArgs handles -n, -i, -E/-r and repeatable -e SCRIPT.
func parseArgs(args []string) (*options, []string, error) {
	opts := &options{}
	var files []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return opts, append(files, args[i+1:]...), nil
		case arg == "--quiet" || arg == "--silent":
			opts.quiet = true
		case arg == "--in-place":
			opts.inPlace = true
		case arg == "--regexp-extended":
			opts.extended = true
		case strings.HasPrefix(arg, "--expression="):
			opts.scripts = append(opts.scripts, strings.TrimPrefix(arg, "--expression="))
		case len(arg) > 1 && arg[0] == '-' && arg[1] != '-':
			for j := 1; j < len(arg); j++ {
				switch arg[j] {
				case 'n':
					opts.quiet = true
				case 'i':
					opts.inPlace = true
				case 'E', 'r':
					opts.extended = true
				case 'e':
					if j+1 < len(arg) {
						opts.scripts = append(opts.scripts, arg[j+1:])
					} else if i+1 < len(args) {
						i++
						opts.scripts = append(opts.scripts, args[i])
					} else {
						return nil, nil, &flagError{"option requires an argument -- 'e'"}
					}
					j = len(arg)
				default:
					return nil, nil, &flagError{"invalid option -- '" + string(arg[j]) + "'"}
				}
			}
		case strings.HasPrefix(arg, "--"):
			return nil, nil, &flagError{"unrecognized option '" + arg + "'"}
		default:
			files = append(files, arg)
		}
	}
	return opts, files, nil
}

type flagError struct{ msg string }

func (e *flagError) Error() string { return e.msg }

// execute runs cmds over lines and returns the output lines.
func execute(cmds []*command, lines []string, quiet bool) []string {
	var out []string
	for _, c := range cmds {
		c.active = false
	}
	for idx, ps := range lines {
		lineNo := idx + 1
		last := idx == len(lines)-1
		var appended []string
		deleted, quit := false, false
	run:
		for _, c := range cmds {
			if !c.selects(lineNo, ps, last) {
				continue
			}
			switch c.name {
			case 's':
				if next, ok := substitute(ps, c); ok {
					ps = next
					if c.print {
						out = append(out, ps)
					}
				}
			case 'p':
				out = append(out, ps)
			case '=':
				out = append(out, strconv.Itoa(lineNo))
			case 'a':
				appended = append(appended, c.text)
			case 'i':
				out = append(out, c.text)
			case 'c':
				// a range is replaced once, at its end
				if c.to == nil || !c.active {
					out = append(out, c.text)
				}
				deleted = true
				break run
			case 'd':
				deleted = true
				break run
			case 'q':
				quit = true
				break run
			}
		}
		if !deleted && !quiet {
			out = append(out, ps)
		}
		out = append(out, appended...)
		if quit {
			break
		}
	}
	return out
}

// substitute applies an s command to ps.
func substitute(ps string, c *command) (string, bool) {
	matches := c.re.FindAllStringSubmatchIndex(ps, -1)
	var b []byte
	last := 0
	done := false
	for k, m := range matches {
		n := k + 1
		if n < c.nth || n > c.nth && !c.global {
			continue
		}
		b = append(b, ps[last:m[0]]...)
		b = c.re.ExpandString(b, c.template, ps, m)
		last = m[1]
		done = true
	}
	if !done {
		return ps, false
	}
	return string(append(b, ps[last:]...)), true
}
