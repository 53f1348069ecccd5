// Package w implements the w command: the uptime line followed by what each
// logged-in user is doing.
package w

import (
	"github.com/rcarmo/go-shellsim/pkg/applets/uptime"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the w command.
//
//	-h  Omit the header
//	-s  Short format (no LOGIN@ column)
func Run(ctx *core.Context, args []string) core.Result {
	var noHeader, short bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'h': &noHeader, 's': &short},
		Long: map[string]*bool{"no-header": &noHeader, "short": &short},
	}.Parse(args)
	if err != nil {
		return core.UsageError("w", err.Error())
	}
	sys := ctx.System
	from := sysstate.RemoteHost(sys.Network)
	var rows [][]any
	for _, s := range sys.Processes.Sessions() {
		if len(operands) > 0 && s.User != operands[0] {
			continue
		}
		row := []any{s.User, s.TTY, from}
		if !short {
			row = append(row, s.Login)
		}
		rows = append(rows, append(row, "0.00s", activity(sys, s)))
	}
	headers := []any{"USER", "TTY", "FROM", "LOGIN@", "IDLE", "WHAT"}
	if short {
		headers = []any{"USER", "TTY", "FROM", "IDLE", "WHAT"}
	}
	table := core.Table(headers, rows)
	if noHeader {
		return core.Ok(core.JoinLines(core.Lines(table)[1:]))
	}
	return core.Ok(" " + uptime.Summary(sys) + "\n" + table)
}

// activity is the newest process started from the session's shell, or
// the shell itself.
func activity(sys *sysstate.System, s sysstate.Session) string {
	what := "-bash"
	newest := 0
	for _, p := range sys.Processes.List() {
		switch {
		case p.PID == s.PID:
			if newest == 0 {
				what = p.Command
			}
		case p.PPID == s.PID && p.PID > newest:
			what, newest = p.Command, p.PID
		}
	}
	return what
}
