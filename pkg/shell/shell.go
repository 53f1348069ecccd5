// Package shell is the execution engine: it parses a command line, expands
// each stage's words, dispatches to the registry and applies redirections,
// threading standard input and the filesystem snapshot from stage to stage.
package shell

import (
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/logging"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/expand"
	"github.com/rcarmo/go-shellsim/pkg/parse"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Name prefixes the engine's own error messages.
const Name = "sh"

// DevNull swallows anything redirected to it.
const DevNull = "/dev/null"

// ExecContext is the input of one Execute call.
type ExecContext struct {
	State *vfs.State
	// Stdin feeds the first stage when HasStdin is set.
	Stdin    string
	HasStdin bool
}

// Options configures an Engine. Zero values get defaults.
type Options struct {
	Registry *core.Registry
	System   *sysstate.System
	Features core.Features
	Env      map[string]string
	Log      *logging.Logger
}

// Engine runs command lines for one session. It owns the session's
// environment, history and last exit status; the filesystem snapshot is
// passed in and handed back on every call.
type Engine struct {
	registry *core.Registry
	system   *sysstate.System
	features core.Features
	expander *expand.Expander
	env      map[string]string
	history  []string
	status   int
	log      *logging.Logger
}

// New returns an engine. A nil registry yields an engine where every
// command is unknown.
func New(opts Options) *Engine {
	e := &Engine{
		registry: opts.Registry,
		system:   opts.System,
		features: opts.Features,
		expander: expand.New(),
		env:      map[string]string{},
		log:      opts.Log,
	}
	if e.registry == nil {
		e.registry = core.NewRegistry()
	}
	if e.system == nil {
		e.system = sysstate.New("")
	}
	if e.log == nil {
		e.log = logging.Discard()
	}
	for k, v := range opts.Env {
		e.env[k] = v
	}
	defaults := map[string]string{
		"USER":  vfs.DefaultOwner,
		"SHELL": "/bin/sh",
		"PATH":  "/usr/local/bin:/usr/bin:/bin:/usr/sbin:/sbin",
	}
	for k, v := range defaults {
		if _, ok := e.env[k]; !ok {
			e.env[k] = v
		}
	}
	if _, ok := e.env["HOME"]; !ok {
		e.env["HOME"] = "/home/" + e.env["USER"]
	}
	return e
}

// Env is the live environment. Callers may read it; export and unset
// change it.
func (e *Engine) Env() map[string]string { return e.env }

// History returns the lines executed so far, oldest first.
func (e *Engine) History() []string { return append([]string(nil), e.history...) }

// LastStatus is the value of $?.
func (e *Engine) LastStatus() int { return e.status }

// System is the simulated machine commands run against.
func (e *Engine) System() *sysstate.System { return e.system }

// Registry is the command table.
func (e *Engine) Registry() *core.Registry { return e.registry }

// Execute runs one command line. The result's State is nil when the
// filesystem snapshot did not change.
func (e *Engine) Execute(line string, ec ExecContext) core.Result {
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		e.history = append(e.history, trimmed)
	}
	parsed, err := parse.Parse(line)
	if err != nil {
		e.log.Debug("parse %q: %v", line, err)
		return e.finish(core.Errorf(Name, "%v", err), ec.State, ec.State)
	}
	if parsed == nil {
		return core.Ok("")
	}
	e.log.Debug("exec %s", parsed.String())

	state := ec.State
	stdin, hasStdin := ec.Stdin, ec.HasStdin
	var res core.Result
	stages := parsed.Commands()
	for i, cmd := range stages {
		e.log.Trace("stage %d: %s", i, cmd.String())
		res = e.runStage(cmd, state, stdin, hasStdin)
		if res.State != nil {
			state = res.State
		}
		// a failure whose stderr was redirected still feeds the next stage
		if res.Failed() && (i == len(stages)-1 || !redirectsStderr(cmd)) {
			break
		}
		stdin, hasStdin = terminate(res.Output), true
	}
	return e.finish(res, ec.State, state)
}

func redirectsStderr(cmd *parse.Command) bool {
	for _, r := range cmd.Redirections {
		if r.Kind == parse.RedirStderr || r.Kind == parse.RedirMerge {
			return true
		}
	}
	return false
}

// terminate restores the final newline results drop, as a pipe or a file
// would carry it.
func terminate(text string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}

// finish records $? and the directory variables and attaches the final
// snapshot when it differs from the one the call started with.
func (e *Engine) finish(res core.Result, before, after *vfs.State) core.Result {
	e.status = 0
	if res.Failed() {
		e.status = 1
	}
	res.State = nil
	if after != nil {
		e.env["PWD"] = after.Cwd()
		e.env["OLDPWD"] = after.PrevDir()
		if after != before {
			res.State = after
		}
	}
	return res
}

func (e *Engine) expandEnv() expand.Env {
	vars := make(map[string]string, len(e.env)+2)
	for k, v := range e.env {
		vars[k] = v
	}
	vars["?"] = strconv.Itoa(e.status)
	vars["HOSTNAME"] = e.system.Hostname
	return expand.Env{Vars: vars, Home: e.env["HOME"]}
}

func (e *Engine) runStage(cmd *parse.Command, state *vfs.State, stdin string, hasStdin bool) core.Result {
	env := e.expandEnv()
	if state != nil {
		env.Vars["PWD"] = state.Cwd()
		env.Vars["OLDPWD"] = state.PrevDir()
	}

	var words []string
	if cmd.Name != "" {
		words = e.expander.Args(state, env, append([]string{cmd.Name}, cmd.Args...))
	}

	for _, r := range cmd.Redirections {
		if r.Kind != parse.RedirStdin {
			continue
		}
		target, res, ok := e.target(state, env, r)
		if !ok {
			return res
		}
		data, err := state.ReadFile(target)
		if err != nil {
			e.log.Debug("stdin %s: %v", target, err)
			return core.FileError(Name, target, err)
		}
		stdin, hasStdin = data, true
	}

	state, res, ok := e.open(cmd.Redirections, state, env)
	if !ok {
		return res
	}
	switch {
	case len(words) == 0:
		// a line holding only redirections still creates its targets
	case len(words) == 1 && isAssignment(words[0]):
		name, value, _ := strings.Cut(words[0], "=")
		e.env[name] = value
	default:
		res = e.dispatch(state, words[0], words[1:], stdin, hasStdin)
	}
	if res.State != nil {
		state = res.State
	}
	return e.redirect(cmd.Redirections, res, state, env)
}

func (e *Engine) dispatch(state *vfs.State, name string, args []string, stdin string, hasStdin bool) core.Result {
	if _, ok := e.registry.Lookup(name); !ok {
		e.log.Info("command not found: %s", name)
	}
	ctx := &core.Context{
		State:    state,
		Stdin:    stdin,
		HasStdin: hasStdin,
		Env:      e.env,
		System:   e.system,
		Features: e.features,
		Registry: e.registry,
		History:  e.History(),
		Log:      e.log.WithPrefix(strings.ToLower(name)),
	}
	return e.registry.Dispatch(ctx, name, args)
}

// open creates output targets before the command runs: ">" truncates and
// ">>" creates a missing file.
func (e *Engine) open(redirs []parse.Redirection, state *vfs.State, env expand.Env) (*vfs.State, core.Result, bool) {
	start := state
	for _, r := range redirs {
		if r.Kind != parse.RedirStdout && r.Kind != parse.RedirStderr {
			continue
		}
		target, res, ok := e.target(state, env, r)
		if !ok {
			res.State = stateIf(state != start, state)
			return state, res, false
		}
		if target == DevNull || (r.Mode == parse.ModeAppend && state.Exists(target)) {
			continue
		}
		next, err := state.WriteFile(target, "", r.Mode == parse.ModeAppend)
		if err != nil {
			e.log.Debug("redirect %s: %v", target, err)
			res := core.FileError(Name, target, err)
			res.State = stateIf(state != start, state)
			return state, res, false
		}
		state = next
	}
	return state, core.Result{}, true
}

// redirect applies output redirections to res. Output sent to a file is no
// longer visible; the result keeps its status.
func (e *Engine) redirect(redirs []parse.Redirection, res core.Result, state *vfs.State, env expand.Env) core.Result {
	merged := false
	for _, r := range redirs {
		if r.Kind == parse.RedirMerge {
			merged = true
		}
	}
	visible := res.Output
	changed := false
	for _, r := range redirs {
		var content string
		switch r.Kind {
		case parse.RedirStdout:
			if !res.Failed() || merged {
				content, visible = visible, ""
			}
		case parse.RedirStderr:
			if res.Failed() && !merged {
				content, visible = visible, ""
			}
		default:
			continue
		}
		target, errRes, ok := e.target(state, env, r)
		if !ok {
			errRes.State = stateIf(changed || res.State != nil, state)
			return errRes
		}
		if target == DevNull {
			continue
		}
		next, err := state.WriteFile(target, terminate(content), r.Mode == parse.ModeAppend)
		if err != nil {
			e.log.Debug("redirect %s: %v", target, err)
			failed := core.FileError(Name, target, err)
			failed.State = stateIf(changed || res.State != nil, state)
			return failed
		}
		state, changed = next, true
	}
	res.Output = visible
	if changed {
		res.State = state
	}
	return res
}

// target expands a redirection target to exactly one path.
func (e *Engine) target(state *vfs.State, env expand.Env, r parse.Redirection) (string, core.Result, bool) {
	words := e.expander.Word(state, env, r.Target)
	if len(words) != 1 || words[0] == "" {
		return "", core.Errorf(Name, "%s: ambiguous redirect", r.Target), false
	}
	return words[0], core.Result{}, true
}

func stateIf(ok bool, st *vfs.State) *vfs.State {
	if ok {
		return st
	}
	return nil
}

// isAssignment reports whether word is NAME=value.
func isAssignment(word string) bool {
	name, _, ok := strings.Cut(word, "=")
	if !ok || name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
