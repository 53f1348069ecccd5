// Package startstopdaemon implements start-stop-daemon over the simulated
// process table.
package startstopdaemon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/procutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

const name = "start-stop-daemon"

var actions = map[string]string{
	"-S": "start", "--start": "start",
	"-K": "stop", "--stop": "stop",
	"-T": "status", "--status": "status",
}

type options struct {
	exec       string
	procName   string
	pidfile    string
	user       string
	signal     int
	background bool
	makePID    bool
	quiet      bool
	okNoDo     bool
	args       []string
}

// Run executes the start-stop-daemon command with the given arguments.
//
// Actions:
//
//	-S, --start      Start the daemon unless it is already running
//	-K, --stop       Signal every matching process
//	-T, --status     Exit with success if a matching process runs
//
// Matching and options:
//
//	-x, --exec PATH      Executable
//	-n, --name NAME      Process name
//	-p, --pidfile FILE   PID file
//	-u, --user USER      Owner
//	-s, --signal SIG     Signal for --stop (default TERM)
//	-b, --background     Detach from the terminal
//	-m, --make-pidfile   Write the PID file on start
//	-o, --oknodo         Succeed when there is nothing to do
//	-q, --quiet          Print nothing
//
// Arguments after -- are passed to the daemon.
func Run(ctx *core.Context, args []string) core.Result {
	opts := options{signal: sysstate.SIGTERM}
	var action string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, bool) {
			if _, v, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "--") {
				return v, true
			}
			if i+1 >= len(args) {
				return "", false
			}
			i++
			return args[i], true
		}
		key, _, _ := strings.Cut(arg, "=")
		switch key {
		case "-S", "--start", "-K", "--stop", "-T", "--status":
			if action != "" {
				return core.UsageError(name, "only one command can be specified")
			}
			action = actions[key]
		case "-x", "--exec", "-n", "--name", "-p", "--pidfile", "-u", "--user", "-s", "--signal", "-c", "--chuid", "-d", "--chdir":
			v, ok := value()
			if !ok {
				return core.UsageError(name, "option '"+key+"' requires an argument")
			}
			switch key {
			case "-x", "--exec":
				opts.exec = v
			case "-n", "--name":
				opts.procName = v
			case "-p", "--pidfile":
				opts.pidfile = v
			case "-u", "--user":
				opts.user = v
			case "-s", "--signal":
				sig, err := procutil.ParseSignal(v)
				if err != nil {
					return core.Errorf(name, "signal value must be numeric or name of signal (KILL, INT, ...)")
				}
				opts.signal = sig
			}
		case "-b", "--background":
			opts.background = true
		case "-m", "--make-pidfile":
			opts.makePID = true
		case "-q", "--quiet":
			opts.quiet = true
		case "-o", "--oknodo":
			opts.okNoDo = true
		case "-v", "--verbose":
		case "--":
			opts.args = args[i+1:]
			i = len(args)
		default:
			return core.UsageError(name, "unrecognized option '"+arg+"'")
		}
	}
	if opts.exec == "" && opts.procName == "" && opts.pidfile == "" && opts.user == "" {
		return core.UsageError(name, "need at least one of --exec, --pidfile, --user or --name")
	}

	matches := match(ctx, opts)
	switch action {
	case "start":
		return start(ctx, opts, matches)
	case "stop":
		return stop(ctx, opts, matches)
	case "status":
		if len(matches) == 0 {
			return core.Result{Status: core.StatusError}
		}
		return core.Ok("")
	}
	return core.UsageError(name, "need one of --start or --stop or --status")
}

// match finds running processes selected by every given criterion.
func match(ctx *core.Context, opts options) []sysstate.Process {
	pidFromFile := 0
	if opts.pidfile != "" {
		data, err := ctx.State.ReadFile(opts.pidfile)
		if err != nil {
			return nil
		}
		pid, ok := procutil.ParsePID(strings.TrimSpace(data))
		if !ok {
			return nil
		}
		pidFromFile = pid
	}
	var out []sysstate.Process
	for _, p := range ctx.System.Processes.List() {
		if pidFromFile != 0 && p.PID != pidFromFile {
			continue
		}
		if opts.exec != "" {
			first, _, _ := strings.Cut(p.Command, " ")
			if first != opts.exec && vfs.Base(first) != vfs.Base(opts.exec) {
				continue
			}
		}
		if opts.procName != "" && p.Name() != opts.procName {
			continue
		}
		if opts.user != "" && p.User != opts.user {
			continue
		}
		out = append(out, p)
	}
	return out
}

func start(ctx *core.Context, opts options, running []sysstate.Process) core.Result {
	label := opts.exec
	if label == "" {
		label = opts.procName
	}
	if len(running) > 0 {
		msg := ""
		if !opts.quiet {
			msg = fmt.Sprintf("%s already running.", label)
		}
		if opts.okNoDo {
			return core.Ok(msg)
		}
		return core.Result{Output: msg, Status: core.StatusError}
	}
	if opts.exec == "" {
		return core.UsageError(name, "--start needs --exec or --startas")
	}
	if _, err := ctx.State.Lstat(opts.exec); err != nil {
		return core.Errorf(name, "unable to stat %s (%s)", opts.exec, vfs.Reason(err))
	}
	user := ctx.User()
	if opts.user != "" {
		if user != "root" && opts.user != user {
			return core.Errorf(name, "cannot start as %s: Operation not permitted", opts.user)
		}
		user = opts.user
	}
	command := strings.Join(append([]string{opts.exec}, opts.args...), " ")
	p := ctx.System.Processes.Start(user, command, 0, procutil.ShellPID)
	if opts.background {
		ctx.System.Processes.Detach(p.PID)
	}
	ctx.Log.Debug("%s: started %d", name, p.PID)

	res := core.Ok("")
	if !opts.quiet {
		res.Output = strconv.Itoa(p.PID)
	}
	if opts.makePID && opts.pidfile != "" {
		st, err := ctx.State.WriteFile(opts.pidfile, strconv.Itoa(p.PID)+"\n", false)
		if err != nil {
			return core.FileError(name, opts.pidfile, err)
		}
		res.State = st
	}
	return res
}

func stop(ctx *core.Context, opts options, running []sysstate.Process) core.Result {
	if len(running) == 0 {
		label := opts.exec
		if label == "" {
			label = opts.procName
		}
		msg := ""
		if !opts.quiet {
			msg = "No " + label + " found running; none killed."
		}
		if opts.okNoDo {
			return core.Ok(msg)
		}
		return core.Result{Output: msg, Status: core.StatusError}
	}
	var lines []string
	failed := false
	for _, p := range running {
		if err := ctx.System.Processes.Kill(p.PID, opts.signal, ctx.User()); err != nil {
			lines = append(lines, name+": warning: failed to kill "+strconv.Itoa(p.PID)+": "+procutil.Reason(err))
			failed = true
			continue
		}
		if !opts.quiet {
			lines = append(lines, fmt.Sprintf("Stopped %s (pid %d).", p.Command, p.PID))
		}
	}
	res := core.Ok(core.JoinLines(lines))
	if failed {
		res.Status = core.StatusError
	}
	return res
}
