// Package tail implements the tail command.
package tail

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run prints the last lines (-n, default 10) or bytes (-c) of each input.
// A count written as +N starts at line or byte N instead.
func Run(ctx *core.Context, args []string) core.Result {
	return core.RunHeadTail(ctx, "tail", args, last)
}

func last(data string, opts *core.HeadTailOptions) string {
	if opts.Bytes >= 0 {
		return data[offset(len(data), opts.Bytes, opts.From):]
	}
	lines := core.Lines(data)
	return core.JoinLines(lines[offset(len(lines), opts.Lines, opts.From):])
}

// offset is where the kept tail of n items begins.
func offset(n, count int, from bool) int {
	start := n - count
	if from {
		start = count - 1
	}
	switch {
	case start < 0:
		return 0
	case start > n:
		return n
	}
	return start
}
