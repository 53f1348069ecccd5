// Package du implements the du command over the virtual filesystem.
package du

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

type options struct {
	summarize bool
	human     bool
	all       bool
	total     bool
	maxDepth  int
}

// Run executes the du command with the given arguments.
//
// Supported flags:
//
//	-s    Only a total for each operand
//	-h    Human-readable sizes
//	-a    List files as well as directories
//	-c    Print a grand total
//	-d N  Only list entries N levels below an operand
//
// Each file counts its size rounded up to whole KiB and each directory
// counts one 4K block plus its contents. Symlinks count nothing.
func Run(ctx *core.Context, args []string) core.Result {
	opts := options{maxDepth: -1}
	var depth string
	operands, err := core.Flags{
		Bool:      map[byte]*bool{'s': &opts.summarize, 'h': &opts.human, 'a': &opts.all, 'c': &opts.total, 'k': nil},
		Value:     map[byte]*string{'d': &depth},
		Long:      map[string]*bool{"summarize": &opts.summarize, "human-readable": &opts.human, "all": &opts.all, "total": &opts.total},
		LongValue: map[string]*string{"max-depth": &depth},
	}.Parse(args)
	if err != nil {
		return core.UsageError("du", err.Error())
	}
	if depth != "" {
		n, err := strconv.Atoi(depth)
		if err != nil || n < 0 {
			return core.Errorf("du", "invalid maximum depth '%s'", depth)
		}
		opts.maxDepth = n
	}
	if opts.summarize {
		if opts.all {
			return core.UsageError("du", "cannot both summarize and show all entries")
		}
		opts.maxDepth = 0
	}
	if len(operands) == 0 {
		operands = []string{"."}
	}

	var out, errs []string
	var grand int64
	for _, p := range operands {
		node, err := ctx.State.Stat(p)
		if err != nil {
			errs = append(errs, fmt.Sprintf("du: cannot access '%s': %s", p, vfs.Reason(err)))
			continue
		}
		grand += walk(p, node, 0, &opts, &out)
	}
	if opts.total {
		out = append(out, format(grand, opts.human)+"\ttotal")
	}
	output := core.JoinLines(append(out, errs...))
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError}
	}
	return core.Ok(output)
}

// walk returns the usage of n in KiB, appending report lines children
// first.
func walk(p string, n *vfs.Node, depth int, opts *options, out *[]string) int64 {
	var size int64
	switch {
	case n.IsDir():
		size = core.KiB(n.Size())
		for _, name := range n.Names() {
			size += walk(strings.TrimSuffix(p, "/")+"/"+name, n.Child(name), depth+1, opts, out)
		}
	case n.IsFile():
		size = core.KiB(n.Size())
	}
	visible := opts.maxDepth < 0 || depth <= opts.maxDepth
	if visible && (n.IsDir() || opts.all || depth == 0) {
		*out = append(*out, format(size, opts.human)+"\t"+p)
	}
	return size
}

func format(kib int64, human bool) string {
	if human {
		return core.HumanSize(kib * 1024)
	}
	return strconv.FormatInt(kib, 10)
}
