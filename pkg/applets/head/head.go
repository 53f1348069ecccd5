// Package head implements the head command.
package head

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run prints the first lines (-n, default 10) or bytes (-c) of each input.
func Run(ctx *core.Context, args []string) core.Result {
	return core.RunHeadTail(ctx, "head", args, first)
}

func first(data string, opts *core.HeadTailOptions) string {
	if opts.Bytes >= 0 {
		if opts.Bytes < len(data) {
			return data[:opts.Bytes]
		}
		return data
	}
	lines := core.Lines(data)
	if opts.Lines < len(lines) {
		lines = lines[:opts.Lines]
	}
	return core.JoinLines(lines)
}
