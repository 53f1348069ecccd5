// Package awk implements the awk command on top of the GoAWK interpreter.
// Programs read their input from the virtual filesystem; file writes,
// getline from files and command execution are disabled.
package awk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/benhoyt/goawk/interp"
	"github.com/benhoyt/goawk/parser"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Timeout bounds a single program run.
var Timeout = 2 * time.Second

// Run executes the awk command with the given arguments.
//
// Supported flags:
//
//	-F SEP      Set field separator (default whitespace)
//	-v VAR=VAL  Assign variable before execution
//	-f FILE     Read program from FILE
//
// The first non-flag argument is the AWK program text (unless -f is used).
// Remaining arguments are input files or VAR=VAL assignments; stdin is read
// if no files are given.
func Run(ctx *core.Context, args []string) core.Result {
	program, files, vars, fs, err := parseArgs(ctx, args)
	if err != nil {
		return core.UsageError("awk", err.Error())
	}
	if strings.TrimSpace(program) == "" {
		return core.UsageError("awk", "missing program")
	}

	var input strings.Builder
	if len(files) == 0 {
		input.WriteString(ctx.Stdin)
	}
	for _, f := range files {
		data, err := ctx.ReadFile(f)
		if err != nil {
			return core.FileError("awk", f, err)
		}
		input.WriteString(data)
		if data != "" && !strings.HasSuffix(data, "\n") {
			input.WriteByte('\n')
		}
	}

	prog, err := parser.ParseProgram([]byte(program), nil)
	if err != nil {
		return parseError(err)
	}
	var out, stderr bytes.Buffer
	config := &interp.Config{
		Argv0:        "awk",
		Stdin:        strings.NewReader(input.String()),
		Output:       &out,
		Error:        &stderr,
		Environ:      environ(ctx.Env),
		NoExec:       true,
		NoFileWrites: true,
		NoFileReads:  true,
	}
	if fs != "" {
		config.Vars = append(config.Vars, "FS", fs)
	}
	for _, name := range sortedNames(vars) {
		config.Vars = append(config.Vars, name, vars[name])
	}

	interpreter, err := interp.New(prog)
	if err != nil {
		return core.Errorf("awk", "%v", err)
	}
	runCtx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	_, err = interpreter.ExecuteContext(runCtx, config)
	text := strings.TrimSuffix(out.String(), "\n")
	if err != nil {
		msg := "awk: " + err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "awk: program ran too long"
		}
		return core.Result{Output: core.JoinLines(nonEmpty(text, msg)), Status: core.StatusError}
	}
	if e := strings.TrimSpace(stderr.String()); e != "" {
		text = core.JoinLines(nonEmpty(text, e))
	}
	return core.Ok(text)
}

func parseError(err error) core.Result {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return core.Errorf("awk", "cmd. line:%d: %s", pe.Position.Line, pe.Message)
	}
	return core.Errorf("awk", "%v", err)
}

// parseArgs splits awk's command line into program text, input files,
// variable assignments and the field separator.
func parseArgs(ctx *core.Context, args []string) (string, []string, map[string]string, string, error) {
	var program string
	var files []string
	vars := map[string]string{}
	fieldSep := ""
	haveProgram := false

	for pos := 0; pos < len(args); pos++ {
		arg := args[pos]
		if arg == "--" {
			for _, rest := range args[pos+1:] {
				if !haveProgram {
					program, haveProgram = rest, true
					continue
				}
				files = append(files, rest)
			}
			break
		}
		if len(arg) < 2 || arg[0] != '-' || haveProgram {
			if !haveProgram {
				program, haveProgram = arg, true
				continue
			}
			if key, val, ok := parseAssignment(arg); ok {
				vars[key] = unescapeString(val)
				continue
			}
			files = append(files, arg)
			continue
		}
		flag := arg[1]
		if strings.IndexByte("Fvf", flag) < 0 {
			return "", nil, nil, "", &argError{msg: "invalid option -- '" + string(flag) + "'"}
		}
		val := arg[2:]
		if val == "" {
			if pos+1 >= len(args) {
				return "", nil, nil, "", &argError{msg: "option requires an argument -- '" + string(flag) + "'"}
			}
			pos++
			val = args[pos]
		}
		switch flag {
		case 'F':
			fieldSep = unescapeString(val)
			if fieldSep == "t" {
				fieldSep = "\t"
			}
		case 'v':
			key, v, ok := parseAssignment(val)
			if !ok {
				return "", nil, nil, "", &argError{msg: "invalid variable assignment '" + val + "'"}
			}
			vars[key] = unescapeString(v)
		case 'f':
			content, err := ctx.ReadFile(val)
			if err != nil {
				return "", nil, nil, "", &argError{msg: "can't open source file '" + val + "'"}
			}
			program += "\n" + content
			haveProgram = true
			// with -f every operand is an input
			return program, append(files, filesAfter(args[pos+1:], vars)...), vars, fieldSep, nil
		}
	}
	return program, files, vars, fieldSep, nil
}

// filesAfter collects the input operands that follow a -f program and
// applies VAR=VAL assignments among them.
func filesAfter(args []string, vars map[string]string) []string {
	var files []string
	for _, arg := range args {
		if key, val, ok := parseAssignment(arg); ok {
			vars[key] = unescapeString(val)
			continue
		}
		files = append(files, arg)
	}
	return files
}

type argError struct {
	msg string
}

func (e *argError) Error() string {
	return e.msg
}

func parseAssignment(expr string) (string, string, bool) {
	eq := strings.IndexByte(expr, '=')
	if eq <= 0 {
		return "", "", false
	}
	name := expr[:eq]
	if !isName(name) {
		return "", "", false
	}
	return name, expr[eq+1:], true
}

func isName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if r != '_' && !unicode.IsLetter(r) {
				return false
			}
		} else if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func environ(env map[string]string) []string {
	out := make([]string, 0, len(env)*2)
	for _, name := range sortedNames(env) {
		out = append(out, name, env[name])
	}
	return out
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// unescapeString interprets the escapes awk accepts in -v values and -F.
func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var buf bytes.Buffer
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			buf.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		case '\\':
			buf.WriteByte('\\')
		case '"':
			buf.WriteByte('"')
		case '/':
			buf.WriteByte('/')
		default:
			fmt.Fprintf(&buf, "\\%c", s[i])
		}
	}
	return buf.String()
}
