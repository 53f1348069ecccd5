// Package logger implements logger, which appends to the simulated journal.
package logger

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the logger command with the given arguments.
//
//	-t TAG   Tag entries with TAG (default: the user name)
//	-p PRIO  Priority as a number, name or facility.name (default user.notice)
//	-s       Also echo the message
//
// With no message operands each line of stdin is logged.
func Run(ctx *core.Context, args []string) core.Result {
	var tag, prio string
	var echo bool
	operands, err := core.Flags{
		Bool:      map[byte]*bool{'s': &echo, 'i': nil},
		Value:     map[byte]*string{'t': &tag, 'p': &prio},
		Long:      map[string]*bool{"stderr": &echo},
		LongValue: map[string]*string{"tag": &tag, "priority": &prio},
	}.Parse(args)
	if err != nil {
		return core.UsageError("logger", err.Error())
	}
	if tag == "" {
		tag = ctx.User()
	}
	level := sysstate.PriNotice
	if prio != "" {
		p, ok := sysstate.ParsePriority(prio)
		if !ok {
			return core.Errorf("logger", "unknown priority name: %s", prio)
		}
		level = p
	}
	var messages []string
	if len(operands) > 0 {
		messages = []string{strings.Join(operands, " ")}
	} else {
		for _, line := range core.Lines(ctx.Stdin) {
			if strings.TrimSpace(line) != "" {
				messages = append(messages, line)
			}
		}
	}
	var out []string
	for _, msg := range messages {
		ctx.System.Journal.Append(tag, level, msg)
		if echo {
			out = append(out, "<"+sysstate.PriorityName(level)+"> "+tag+": "+msg)
		}
	}
	return core.Ok(core.JoinLines(out))
}
