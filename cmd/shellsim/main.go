// Command shellsim runs the simulated shell interactively, optionally
// grading each command against a level pack.
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rcarmo/go-shellsim/pkg/core/config"
	"github.com/rcarmo/go-shellsim/pkg/core/logging"
	"github.com/rcarmo/go-shellsim/pkg/level"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "shellsim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	var pack *level.Pack
	if cfg.Levels != "" {
		if pack, err = level.LoadFile(cfg.Levels); err != nil {
			return err
		}
		log.Info("loaded %d levels from %s", len(pack.Levels), cfg.Levels)
	}
	s, err := newSession(cfg, log, pack)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return s.loop(newPlainReader(os.Stdin), os.Stdout)
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() { _ = term.Restore(fd, oldState) }()
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "")
	return s.loop(terminalReader{t}, t)
}

func newLogger(cfg config.Config) *logging.Logger {
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}
	log := logging.New(w, "shellsim")
	lvl, ok := logging.ParseLevel(cfg.LogLevel)
	log.SetLevel(lvl)
	if !ok {
		log.Warn("unknown log level %q, using %s", cfg.LogLevel, lvl)
	}
	return log
}
