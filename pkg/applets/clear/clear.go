// Package clear implements the clear command. The result is informational
// and carries the ANSI sequence a terminal needs to clear the screen.
package clear

import "github.com/rcarmo/go-shellsim/pkg/core"

// Sequence homes the cursor and erases the display.
const Sequence = "\x1b[H\x1b[2J"

func Run(ctx *core.Context, args []string) core.Result {
	return core.Info(Sequence)
}
