// Package journalctl implements journalctl over the simulated journal.
package journalctl

import (
	"strconv"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the journalctl command with the given arguments.
//
// Supported flags:
//
//	-u UNIT     Only entries for UNIT
//	-n N        Only the last N entries
//	-p PRIO     Only entries at PRIO or more severe
//	-r          Newest first
//	--no-pager  Accepted and ignored
func Run(ctx *core.Context, args []string) core.Result {
	var unit, lines, prio string
	var reverse bool
	operands, err := core.Flags{
		Bool:      map[byte]*bool{'r': &reverse, 'e': nil, 'x': nil},
		Value:     map[byte]*string{'u': &unit, 'n': &lines, 'p': &prio},
		Long:      map[string]*bool{"no-pager": nil, "reverse": &reverse},
		LongValue: map[string]*string{"unit": &unit, "lines": &lines, "priority": &prio},
	}.Parse(args)
	if err != nil {
		return core.UsageError("journalctl", err.Error())
	}
	if len(operands) > 0 {
		return core.UsageError("journalctl", "extraneous arguments starting with: "+operands[0])
	}
	n := 0
	if lines != "" {
		if n, err = strconv.Atoi(lines); err != nil || n < 0 {
			return core.Errorf("journalctl", "Failed to parse lines '%s'", lines)
		}
	}
	maxPrio := sysstate.PriDebug
	if prio != "" {
		p, ok := sysstate.ParsePriority(prio)
		if !ok {
			return core.Errorf("journalctl", "Failed to parse log level '%s'", prio)
		}
		maxPrio = p
	}
	journal := ctx.System.Journal
	entries := journal.Query(unit, maxPrio, n)
	if len(entries) == 0 {
		return core.Ok("-- No entries --")
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, journal.Format(e))
	}
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return core.Ok(core.JoinLines(out))
}
