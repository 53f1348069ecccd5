package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"golang.org/x/term"

	"github.com/rcarmo/go-shellsim/pkg/applets"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/config"
	"github.com/rcarmo/go-shellsim/pkg/core/logging"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/level"
	"github.com/rcarmo/go-shellsim/pkg/shell"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/validate"
)

// lineReader is where commands come from.
type lineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

type plainReader struct {
	sc *bufio.Scanner
}

func newPlainReader(r io.Reader) *plainReader {
	return &plainReader{sc: bufio.NewScanner(r)}
}

func (p *plainReader) ReadLine() (string, error) {
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.sc.Text(), nil
}

// SetPrompt is a no-op: prompts are only shown on terminals.
func (p *plainReader) SetPrompt(string) {}

type terminalReader struct {
	t *term.Terminal
}

func (r terminalReader) ReadLine() (string, error) { return r.t.ReadLine() }
func (r terminalReader) SetPrompt(prompt string)   { r.t.SetPrompt(prompt) }

// session is one player's run through a level pack, or a free sandbox when
// there is no pack.
type session struct {
	cfg    config.Config
	log    *logging.Logger
	pack   *level.Pack
	index  int
	umask  fs.FileMode
	engine *shell.Engine
	state  *vfs.State
}

func newSession(cfg config.Config, log *logging.Logger, pack *level.Pack) (*session, error) {
	umask, err := cfg.UmaskMode()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: log, pack: pack, umask: umask}
	s.reset()
	return s, nil
}

// current is the level being played, or nil.
func (s *session) current() *level.Level {
	if s.pack == nil || s.index >= len(s.pack.Levels) {
		return nil
	}
	return s.pack.Levels[s.index]
}

// reset starts the current level, or the sandbox, from a fresh machine.
func (s *session) reset() {
	features := s.cfg.Features
	st := level.DefaultState()
	if l := s.current(); l != nil {
		st = l.Initial()
		if len(l.Features) > 0 {
			features = l.Features
		}
	}
	s.state = st.WithUmask(s.umask)
	s.engine = shell.New(shell.Options{
		Registry: applets.Default(),
		System:   sysstate.New(s.cfg.Hostname),
		Features: core.NewFeatures(features...),
		Env: map[string]string{
			"HOME": s.cfg.Home,
			"USER": s.cfg.User,
		},
		Log: s.log,
	})
}

func (s *session) prompt() string {
	dir := s.state.Cwd()
	if home := s.cfg.Home; dir == home || strings.HasPrefix(dir, home+"/") {
		dir = "~" + strings.TrimPrefix(dir, home)
	}
	return fmt.Sprintf("%s@%s:%s$ ", s.cfg.User, s.engine.System().Hostname, dir)
}

func (s *session) intro(out io.Writer) {
	l := s.current()
	if l == nil {
		return
	}
	title := l.Title
	if title == "" {
		title = l.ID
	}
	fmt.Fprintf(out, "Level %d/%d: %s\n", s.index+1, len(s.pack.Levels), title)
	if l.Objective != "" {
		fmt.Fprintln(out, l.Objective)
	}
}

func (s *session) loop(in lineReader, out io.Writer) error {
	s.intro(out)
	for {
		in.SetPrompt(s.prompt())
		line, err := in.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !s.handle(strings.TrimSpace(line), out) {
			return nil
		}
	}
}

// handle runs one line. It returns false when the player asked to leave.
func (s *session) handle(line string, out io.Writer) bool {
	switch line {
	case "exit", "logout", "quit":
		return false
	case "reset":
		s.reset()
		s.intro(out)
		return true
	case "hint":
		if l := s.current(); l != nil && l.Hint != "" {
			fmt.Fprintln(out, l.Hint)
		}
		return true
	}

	res := s.engine.Execute(line, shell.ExecContext{State: s.state})
	if res.State != nil {
		s.state = res.State
	}
	if res.Output != "" {
		fmt.Fprintln(out, res.Output)
	}
	if line == "" {
		return true
	}

	l := s.current()
	if l == nil {
		return true
	}
	ev := validate.EvaluateSolution(validate.Input{
		Command: line,
		Level:   l,
		Observation: validate.Observation{
			State:  s.state,
			System: s.engine.System(),
			Stdout: res.Output,
		},
	})
	s.log.Debug("level %s: %q matched %v", l.ID, line, ev.Matched)
	if !ev.Success {
		return true
	}
	fmt.Fprintf(out, "Level %s complete.\n", l.ID)
	if len(ev.OtherValidApproaches) > 0 {
		fmt.Fprintln(out, "Other ways to solve it:")
		for _, c := range ev.OtherValidApproaches {
			fmt.Fprintf(out, "  %s\n", c)
		}
	}
	s.index++
	if s.current() == nil {
		fmt.Fprintln(out, "All levels complete.")
		return true
	}
	s.reset()
	s.intro(out)
	return true
}
