// Package parse turns a command line into a simple command or a pipeline.
//
// Words keep their quotes and backslashes exactly as typed; quote removal
// and the other expansions happen later, in package expand. Only unquoted
// '|', '<' and '>' are syntax.
package parse

import (
	"fmt"
	"strings"
)

// RedirKind is what a redirection rebinds.
type RedirKind int

const (
	RedirStdout RedirKind = iota
	RedirStderr
	RedirStdin
	// RedirMerge is 2>&1.
	RedirMerge
)

func (k RedirKind) String() string {
	switch k {
	case RedirStderr:
		return "stderr"
	case RedirStdin:
		return "stdin"
	case RedirMerge:
		return "merge"
	default:
		return "stdout"
	}
}

// Mode is how an output redirection opens its target.
type Mode int

const (
	ModeWrite Mode = iota
	ModeAppend
)

// Redirection is one I/O rebinding. Target is empty for RedirMerge.
type Redirection struct {
	Kind   RedirKind
	Mode   Mode
	Target string
}

func (r Redirection) String() string {
	switch r.Kind {
	case RedirMerge:
		return "2>&1"
	case RedirStdin:
		return "<" + r.Target
	case RedirStderr:
		if r.Mode == ModeAppend {
			return "2>>" + r.Target
		}
		return "2>" + r.Target
	}
	if r.Mode == ModeAppend {
		return ">>" + r.Target
	}
	return ">" + r.Target
}

// Command is a simple command. Name may be empty when the line only holds
// redirections ("> file").
type Command struct {
	Name         string
	Args         []string
	Redirections []Redirection
}

func (c *Command) Commands() []*Command { return []*Command{c} }

func (c *Command) String() string {
	parts := make([]string, 0, 1+len(c.Args)+len(c.Redirections))
	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	parts = append(parts, c.Args...)
	for _, r := range c.Redirections {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " ")
}

// Pipeline is two or more commands joined by '|'.
type Pipeline struct {
	Stages []*Command
}

func (p *Pipeline) Commands() []*Command { return p.Stages }

func (p *Pipeline) String() string {
	parts := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}

// Parsed is a *Command or a *Pipeline.
type Parsed interface {
	Commands() []*Command
	String() string
}

// SyntaxError is a line the shell refuses to run.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }

func unexpected(token string) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf("syntax error near unexpected token '%s'", token)}
}

// Parse parses one command line. Blank input yields (nil, nil).
func Parse(input string) (Parsed, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	segments, err := splitPipeline(input)
	if err != nil {
		return nil, err
	}
	stages := make([]*Command, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return nil, unexpected("|")
		}
		toks, err := lex(seg)
		if err != nil {
			return nil, err
		}
		cmd, err := build(toks)
		if err != nil {
			return nil, err
		}
		stages = append(stages, cmd)
	}
	if len(stages) == 1 {
		return stages[0], nil
	}
	return &Pipeline{Stages: stages}, nil
}

// quoteState tracks quoting while scanning raw text.
type quoteState struct {
	single, double, escape bool
}

// step advances over c and reports whether c is unquoted syntax.
func (q *quoteState) step(c byte) bool {
	switch {
	case q.escape:
		q.escape = false
		return false
	case c == '\\' && !q.single:
		q.escape = true
		return false
	case c == '\'' && !q.double:
		q.single = !q.single
		return false
	case c == '"' && !q.single:
		q.double = !q.double
		return false
	}
	return !q.single && !q.double
}

func (q *quoteState) unterminated() error {
	switch {
	case q.single:
		return &SyntaxError{Msg: `unexpected EOF while looking for matching '''`}
	case q.double:
		return &SyntaxError{Msg: `unexpected EOF while looking for matching '"'`}
	}
	return nil
}

func unsupported(op string) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf("'%s' is not supported: run one command per line", op)}
}

// splitPipeline cuts the line on unquoted '|' before any tokenizing, so
// quote state never crosses a stage boundary. Command lists are refused
// here rather than read as words.
func splitPipeline(line string) ([]string, error) {
	var parts []string
	var q quoteState
	start := 0
	for i := 0; i < len(line); i++ {
		if !q.step(line[i]) {
			continue
		}
		rest := line[i:]
		switch {
		case strings.HasPrefix(rest, "&&"), strings.HasPrefix(rest, "||"):
			return nil, unsupported(rest[:2])
		case line[i] == ';':
			return nil, unsupported(";")
		case line[i] == '|':
			parts = append(parts, line[start:i])
			start = i + 1
		}
	}
	if err := q.unterminated(); err != nil {
		return nil, err
	}
	return append(parts, line[start:]), nil
}

type token struct {
	text string
	op   bool
}

// lex splits one stage into words and redirection operators.
func lex(seg string) ([]token, error) {
	var toks []token
	var word strings.Builder
	var q quoteState
	inWord := false
	flush := func() {
		if inWord {
			toks = append(toks, token{text: word.String()})
			word.Reset()
			inWord = false
		}
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		syntax := q.step(c)
		switch {
		case syntax && (c == ' ' || c == '\t' || c == '\n'):
			flush()
		case syntax && (c == '>' || c == '<') && word.String() != "&":
			op := string(c)
			if c == '>' && inWord && word.String() == "2" {
				word.Reset()
				inWord = false
				op = "2>"
			}
			flush()
			switch {
			case op == "2>" && strings.HasPrefix(seg[i+1:], "&1"):
				op = "2>&1"
				i += 2
			case c == '>' && i+1 < len(seg) && seg[i+1] == '>':
				op += ">"
				i++
			}
			toks = append(toks, token{text: op, op: true})
		default:
			word.WriteByte(c)
			inWord = true
		}
	}
	if err := q.unterminated(); err != nil {
		return nil, err
	}
	flush()
	return toks, nil
}

func build(toks []token) (*Command, error) {
	cmd := &Command{}
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if !t.op {
			if cmd.Name == "" && len(cmd.Args) == 0 {
				cmd.Name = t.text
			} else {
				cmd.Args = append(cmd.Args, t.text)
			}
			continue
		}
		if t.text == "2>&1" {
			cmd.Redirections = append(cmd.Redirections, Redirection{Kind: RedirMerge})
			continue
		}
		if i+1 >= len(toks) {
			return nil, unexpected("newline")
		}
		if toks[i+1].op {
			return nil, unexpected(toks[i+1].text)
		}
		i++
		r := Redirection{Target: toks[i].text}
		switch t.text {
		case "<":
			r.Kind = RedirStdin
		case ">":
			r.Kind = RedirStdout
		case ">>":
			r.Kind, r.Mode = RedirStdout, ModeAppend
		case "2>":
			r.Kind = RedirStderr
		case "2>>":
			r.Kind, r.Mode = RedirStderr, ModeAppend
		}
		cmd.Redirections = append(cmd.Redirections, r)
	}
	return cmd, nil
}
