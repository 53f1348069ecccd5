package sed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
)

// address selects lines by number, by "$" or by regular expression.
type address struct {
	line int
	last bool
	re   *regexp.Regexp
}

func (a *address) match(lineNo int, ps string, last bool) bool {
	switch {
	case a.re != nil:
		return a.re.MatchString(ps)
	case a.last:
		return last
	}
	return a.line == lineNo
}

type command struct {
	from   *address
	to     *address
	negate bool
	active bool
	name   byte

	// s
	re       *regexp.Regexp
	template string
	global   bool
	nth      int
	print    bool

	// a, i, c
	text string
}

// selects reports whether c applies to the current line, tracking range
// state across calls.
func (c *command) selects(lineNo int, ps string, last bool) bool {
	var hit bool
	switch {
	case c.from == nil:
		hit = true
	case c.to == nil:
		hit = c.from.match(lineNo, ps, last)
	case c.active:
		hit = true
		if c.to.re == nil && !c.to.last && c.to.line <= lineNo || c.to.match(lineNo, ps, last) {
			c.active = false
		}
	case c.from.match(lineNo, ps, last):
		hit = true
		c.active = !(c.to.re == nil && !c.to.last && c.to.line <= lineNo) && !(c.to.last && last)
	}
	return hit != c.negate
}

type parseError struct {
	pos int
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("-e expression #1, char %d: %s", e.pos, e.msg)
}

type parser struct {
	src      string
	pos      int
	extended bool
	lastRE   *regexp.Regexp
}

func (p *parser) errorf(format string, args ...any) error {
	return &parseError{pos: p.pos, msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\n;", p.peek()) >= 0 {
		p.pos++
	}
}

// parseScript compiles a script of ';' or newline separated commands.
func parseScript(src string, extended bool) ([]*command, error) {
	p := &parser{src: src, extended: extended}
	var cmds []*command
	for {
		p.skipSpace()
		if p.eof() {
			return cmds, nil
		}
		c, err := p.command()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
}

func (p *parser) command() (*command, error) {
	c := &command{}
	var err error
	if c.from, err = p.address(); err != nil {
		return nil, err
	}
	if c.from != nil && !p.eof() && p.peek() == ',' {
		p.pos++
		if c.to, err = p.address(); err != nil {
			return nil, err
		}
		if c.to == nil {
			return nil, p.errorf("unexpected `,'")
		}
	}
	for !p.eof() && p.peek() == ' ' {
		p.pos++
	}
	if !p.eof() && p.peek() == '!' {
		c.negate = true
		p.pos++
	}
	if p.eof() {
		return nil, p.errorf("missing command")
	}
	c.name = p.peek()
	p.pos++
	switch c.name {
	case 'p', 'd', 'q', '=':
	case 's':
		err = p.substitution(c)
	case 'a', 'i', 'c':
		c.text = p.text()
	default:
		return nil, p.errorf("unknown command: `%c'", c.name)
	}
	if err != nil {
		return nil, err
	}
	return c, p.end()
}

// end checks that a command is followed by a separator.
func (p *parser) end() error {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
	if p.eof() || p.peek() == ';' || p.peek() == '\n' || p.peek() == '}' {
		return nil
	}
	return p.errorf("extra characters after command")
}

func (p *parser) address() (*address, error) {
	if p.eof() {
		return nil, nil
	}
	switch c := p.peek(); {
	case c >= '0' && c <= '9':
		start := p.pos
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		n, _ := strconv.Atoi(p.src[start:p.pos])
		if n == 0 {
			return nil, p.errorf("invalid usage of line address 0")
		}
		return &address{line: n}, nil
	case c == '$':
		p.pos++
		return &address{last: true}, nil
	case c == '/':
		p.pos++
		pat, err := p.delimited('/', "unterminated address regex")
		if err != nil {
			return nil, err
		}
		re, err := p.compile(pat, false)
		if err != nil {
			return nil, err
		}
		return &address{re: re}, nil
	}
	return nil, nil
}

// delimited reads up to an unescaped delim. An escaped delimiter becomes
// the bare character; other escapes are kept for the regexp.
func (p *parser) delimited(delim byte, unterminated string) (string, error) {
	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		p.pos++
		switch {
		case c == delim:
			return b.String(), nil
		case c == '\\' && !p.eof():
			n := p.peek()
			p.pos++
			if n == delim {
				b.WriteByte(n)
			} else if n == 'n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte('\\')
				b.WriteByte(n)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", p.errorf("%s", unterminated)
}

func (p *parser) compile(pat string, ignoreCase bool) (*regexp.Regexp, error) {
	if pat == "" {
		if p.lastRE == nil {
			return nil, p.errorf("no previous regular expression")
		}
		return p.lastRE, nil
	}
	re, err := textutil.CompileRegexp(pat, p.extended, ignoreCase)
	if err != nil {
		return nil, p.errorf("invalid regular expression")
	}
	p.lastRE = re
	return re, nil
}

func (p *parser) substitution(c *command) error {
	if p.eof() || p.peek() == '\n' || p.peek() == '\\' {
		return p.errorf("unterminated `s' command")
	}
	delim := p.peek()
	p.pos++
	pat, err := p.delimited(delim, "unterminated `s' command")
	if err != nil {
		return err
	}
	repl, err := p.delimited(delim, "unterminated `s' command")
	if err != nil {
		return err
	}
	ignoreCase := false
	c.nth = 1
flags:
	for !p.eof() {
		switch f := p.peek(); {
		case f == 'g':
			c.global = true
		case f == 'p':
			c.print = true
		case f == 'i' || f == 'I':
			ignoreCase = true
		case f >= '1' && f <= '9':
			start := p.pos
			for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
				p.pos++
			}
			c.nth, _ = strconv.Atoi(p.src[start:p.pos])
			continue
		case strings.IndexByte(" \t;\n}", f) >= 0:
			break flags
		default:
			return p.errorf("unknown option to `s'")
		}
		p.pos++
	}
	if c.re, err = p.compile(pat, ignoreCase); err != nil {
		return err
	}
	c.template = template(repl)
	return nil
}

// template rewrites a sed replacement into regexp.Expand syntax: & is the
// whole match and \1 to \9 are groups.
func template(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		switch c := repl[i]; {
		case c == '&':
			b.WriteString("${0}")
		case c == '$':
			b.WriteString("$$")
		case c == '\\' && i+1 < len(repl):
			i++
			n := repl[i]
			switch {
			case n >= '0' && n <= '9':
				b.WriteString("${" + string(n) + "}")
			case n == 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(n)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// text reads the argument of a, i and c: "a text", "a\text" or "a\" with
// the text on the next line.
func (p *parser) text() string {
	if !p.eof() && p.peek() == '\\' {
		p.pos++
		if !p.eof() && p.peek() == '\n' {
			p.pos++
		}
	}
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
	start := p.pos
	for !p.eof() && p.peek() != '\n' {
		p.pos++
	}
	return p.src[start:p.pos]
}
