// Package who implements the who command over the simulated login sessions.
package who

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the who command.
//
//	-q  Names and count only
//	-b  Time of last boot
//	-H  Print column headings
func Run(ctx *core.Context, args []string) core.Result {
	var count, boot, heading bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'q': &count, 'b': &boot, 'H': &heading},
		Long: map[string]*bool{"count": &count, "boot": &boot, "heading": &heading},
	}.Parse(args)
	if err != nil {
		return core.UsageError("who", err.Error())
	}
	if len(operands) > 0 && !(len(operands) == 2 && operands[0] == "am") {
		return core.UsageError("who", "extra operand '"+operands[0]+"'")
	}
	sys := ctx.System
	sessions := sys.Processes.Sessions()
	if len(operands) == 2 {
		// who am i
		sessions = mine(sessions, ctx.User())
	}

	if count {
		names := make([]string, len(sessions))
		for i, s := range sessions {
			names[i] = s.User
		}
		return core.Ok(strings.Join(names, " ") + fmt.Sprintf("\n# users=%d", len(sessions)))
	}

	var lines []string
	if heading {
		lines = append(lines, "NAME     LINE         TIME             COMMENT")
	}
	if boot {
		lines = append(lines, fmt.Sprintf("%-8s %-12s %s", "", "system boot", sysstate.Epoch.Format("2006-01-02 15:04")))
		return core.Ok(core.JoinLines(lines))
	}
	from := sysstate.RemoteHost(sys.Network)
	for _, s := range sessions {
		lines = append(lines, fmt.Sprintf("%-8s %-12s %s %s (%s)", s.User, s.TTY, sysstate.Epoch.Format("2006-01-02"), s.Login, from))
	}
	return core.Ok(core.JoinLines(lines))
}

func mine(sessions []sysstate.Session, user string) []sysstate.Session {
	for _, s := range sessions {
		if s.User == user {
			return []sysstate.Session{s}
		}
	}
	return nil
}
