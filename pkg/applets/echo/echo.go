// Package echo implements the echo command.
package echo

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/textutil"
)

// Run executes the echo command with the given arguments.
//
// Supported flags:
//
//	-n   Do not output the trailing newline
//	-e   Interpret backslash escapes
//	-E   Do not interpret backslash escapes (default)
//
// Output never carries the final newline; redirections add it back, so -n
// only matters together with \c.
func Run(ctx *core.Context, args []string) core.Result {
	// only -n, -e, -E and clusters of them are options
	enableEscapes := false
	startIdx := 0

	for i, arg := range args {
		if len(arg) < 2 || arg[0] != '-' {
			break
		}
		valid := true
		for _, c := range arg[1:] {
			switch c {
			case 'n', 'e', 'E':
			default:
				valid = false
			}
		}
		if !valid {
			break
		}
		for _, c := range arg[1:] {
			switch c {
			case 'e':
				enableEscapes = true
			case 'E':
				enableEscapes = false
			}
		}
		startIdx = i + 1
	}

	output := strings.Join(args[startIdx:], " ")
	if enableEscapes {
		output, _ = textutil.Unescape(output, textutil.EscapeEcho)
	}
	return core.Ok(output)
}
