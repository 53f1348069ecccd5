// headtail.go provides shared argument parsing for the head and tail applets.
package core

import (
	"strconv"
	"strings"
)

// HeadTailOptions holds shared flags for head/tail.
type HeadTailOptions struct {
	Lines   int
	Bytes   int
	Quiet   bool
	Verbose bool
	Files   []string
	// From selects "starting at" semantics (tail -n +N).
	From bool
}

// ParseHeadTailArgs parses head/tail-style arguments, including the
// historical -N shorthand.
func ParseHeadTailArgs(applet string, args []string) (*HeadTailOptions, error) {
	opts := &HeadTailOptions{
		Lines: 10,
		Bytes: -1,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			opts.Files = append(opts.Files, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			opts.Files = append(opts.Files, arg)
			continue
		}
		if arg[1] >= '0' && arg[1] <= '9' {
			n, err := strconv.Atoi(arg[1:])
			if err != nil {
				return nil, &FlagError{msg: "invalid number: " + arg[1:]}
			}
			opts.Lines = n
			continue
		}
		for j := 1; j < len(arg); j++ {
			switch arg[j] {
			case 'n', 'c':
				var raw string
				if j+1 < len(arg) {
					raw = arg[j+1:]
				} else if i+1 < len(args) {
					i++
					raw = args[i]
				} else {
					return nil, &FlagError{msg: "option requires an argument -- '" + string(arg[j]) + "'"}
				}
				n, from, err := parseCount(raw)
				if err != nil {
					return nil, err
				}
				if from && applet == "head" {
					return nil, &FlagError{msg: "invalid number: " + raw}
				}
				opts.From = opts.From || from
				if arg[j] == 'n' {
					opts.Lines = n
				} else {
					opts.Bytes = n
				}
				j = len(arg)
			case 'q':
				opts.Quiet = true
			case 'v':
				opts.Verbose = true
			default:
				return nil, &FlagError{msg: "invalid option -- '" + string(arg[j]) + "'"}
			}
		}
	}
	return opts, nil
}

// parseCount reads N, +N or -N. A leading '+' selects from-start counting.
func parseCount(raw string) (int, bool, error) {
	from := strings.HasPrefix(raw, "+")
	n, err := strconv.Atoi(strings.TrimLeft(raw, "+-"))
	if err != nil || raw == "" {
		return 0, false, &FlagError{msg: "invalid number: " + raw}
	}
	return n, from, nil
}

// HeadTailFunc selects the wanted part of one input.
type HeadTailFunc func(data string, opts *HeadTailOptions) string

// RunHeadTail runs shared logic for head and tail commands.
func RunHeadTail(ctx *Context, applet string, args []string, fn HeadTailFunc) Result {
	opts, err := ParseHeadTailArgs(applet, args)
	if err != nil {
		return UsageError(applet, err.Error())
	}
	inputs, res := ctx.ReadInputs(applet, opts.Files)
	if res.Failed() {
		return res
	}
	showHeaders := (len(inputs) > 1 && !opts.Quiet) || opts.Verbose
	var parts []string
	for _, in := range inputs {
		part := strings.TrimSuffix(fn(in.Data, opts), "\n")
		if showHeaders {
			header := "==> " + in.Name + " <=="
			if in.Name == "-" {
				header = "==> standard input <=="
			}
			part = header + "\n" + part
		}
		parts = append(parts, part)
	}
	sep := "\n"
	if showHeaders {
		sep = "\n\n"
	}
	return Ok(strings.Join(parts, sep))
}
