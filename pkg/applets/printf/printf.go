// Package printf implements the printf command.
package printf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
)

// printer collects formatted output and diagnostics for one run.
type printer struct {
	out    strings.Builder
	errs   []string
	args   []string
	next   int
	halted bool
}

// Run formats its operands under the control of FORMAT. The format is
// reused until every operand has been consumed. Conversion errors are
// reported after the output and make the result an error.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) == 0 {
		return core.UsageError("printf", "missing operand")
	}

	p := &printer{args: args[1:]}
	for {
		start := p.next
		p.pass(args[0])
		// a pass that consumed nothing would repeat forever
		if p.halted || p.next >= len(p.args) || p.next == start {
			break
		}
	}

	// a single trailing newline is the line terminator, not content
	text := strings.TrimSuffix(p.out.String(), "\n")
	if len(p.errs) > 0 {
		lines := p.errs
		if text != "" {
			lines = append([]string{text}, lines...)
		}
		return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
	}
	return core.Ok(text)
}

func (p *printer) errorf(format string, args ...any) {
	p.errs = append(p.errs, "printf: "+fmt.Sprintf(format, args...))
}

func (p *printer) arg() string {
	p.next++
	if p.next <= len(p.args) {
		return p.args[p.next-1]
	}
	return ""
}

func (p *printer) intArg() int {
	n, err := strconv.Atoi(p.arg())
	if err != nil {
		return 0
	}
	return n
}

func (p *printer) pass(format string) {
	for i := 0; i < len(format) && !p.halted; {
		switch format[i] {
		case '\\':
			text, n, stop := textutil.DecodeEscape(format[i:], textutil.EscapeFormat)
			if stop {
				p.halted = true
				return
			}
			p.out.WriteString(text)
			i += n
		case '%':
			if strings.HasPrefix(format[i:], "%%") {
				p.out.WriteByte('%')
				i += 2
				continue
			}
			sp, n, ok := parseSpec(format[i:])
			if !ok {
				p.errorf("%s: invalid format", sp.raw)
				p.halted = true
				return
			}
			p.convert(sp)
			i += n
		default:
			p.out.WriteByte(format[i])
			i++
		}
	}
}

// spec is one parsed conversion such as %-8.3s.
type spec struct {
	flags    string
	width    int
	widthArg bool
	prec     int
	precArg  bool
	hasPrec  bool
	verb     byte
	raw      string
}

func parseSpec(s string) (spec, int, bool) {
	var sp spec
	i := 1
	for i < len(s) && strings.IndexByte("-+ #0", s[i]) >= 0 {
		i++
	}
	sp.flags = s[1:i]

	if i < len(s) && s[i] == '*' {
		sp.widthArg = true
		i++
	} else {
		sp.width, i = leadingInt(s, i)
	}
	if i < len(s) && s[i] == '.' {
		sp.hasPrec = true
		i++
		if i < len(s) && s[i] == '*' {
			sp.precArg = true
			i++
		} else {
			sp.prec, i = leadingInt(s, i)
		}
	}
	// length modifiers carry no meaning here
	for i < len(s) && strings.IndexByte("hlLqjzt", s[i]) >= 0 {
		i++
	}

	if i >= len(s) {
		sp.raw = s
		return sp, i, false
	}
	sp.verb = s[i]
	sp.raw = s[:i+1]
	return sp, i + 1, strings.IndexByte("diouxXfeEgGsbc", sp.verb) >= 0
}

func leadingInt(s string, i int) (int, int) {
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n, i
}

// format builds the fmt verb for sp with the resolved width and precision.
func (sp spec) format(width, prec int, verb byte) string {
	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(sp.flags)
	if width < 0 {
		b.WriteByte('-')
		width = -width
	}
	if width > 0 {
		b.WriteString(strconv.Itoa(width))
	}
	if sp.hasPrec && prec >= 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(prec))
	}
	b.WriteByte(verb)
	return b.String()
}

func (p *printer) convert(sp spec) {
	width, prec := sp.width, sp.prec
	if sp.widthArg {
		width = p.intArg()
	}
	if sp.precArg {
		prec = p.intArg()
	}
	arg := p.arg()

	switch sp.verb {
	case 'd', 'i', 'o', 'x', 'X':
		verb := sp.verb
		if verb == 'i' {
			verb = 'd'
		}
		val, err := parseNumber(arg, parseInt)
		p.check(arg, err)
		fmt.Fprintf(&p.out, sp.format(width, prec, verb), val)
	case 'u':
		val, err := parseNumber(arg, parseUint)
		p.check(arg, err)
		fmt.Fprintf(&p.out, sp.format(width, prec, 'd'), val)
	case 'f', 'e', 'E', 'g', 'G':
		val, err := parseNumber(arg, parseFloat)
		p.check(arg, err)
		fmt.Fprintf(&p.out, sp.format(width, prec, sp.verb), val)
	case 's':
		fmt.Fprintf(&p.out, sp.format(width, prec, 's'), arg)
	case 'b':
		text, stop := textutil.Unescape(arg, textutil.EscapeEcho)
		fmt.Fprintf(&p.out, sp.format(width, prec, 's'), text)
		p.halted = stop
	case 'c':
		if arg != "" {
			p.out.WriteByte(arg[0])
		}
	}
}

func (p *printer) check(arg string, err error) {
	if err != nil {
		p.errorf("invalid number '%s'", arg)
	}
}

func parseInt(s string) (int64, error)     { return strconv.ParseInt(s, 0, 64) }
func parseUint(s string) (uint64, error)   { return strconv.ParseUint(s, 0, 64) }
func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// parseNumber reads a numeric operand. Empty is zero and 'c is the code
// of the character c.
func parseNumber[T int64 | uint64 | float64](s string, parse func(string) (T, error)) (T, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return 0, nil
	case s[0] == '\'' || s[0] == '"':
		if len(s) < 2 {
			return 0, nil
		}
		return T(s[1]), nil
	}
	v, err := parse(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, err
	}
	return v, nil
}
