// Package rm implements the rm command.
package rm

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Options holds rm command options.
type Options struct {
	Recursive bool // -r, -R: remove directories and their contents
	Force     bool // -f: ignore nonexistent files
	Verbose   bool // -v: explain what is being done
	Dir       bool // -d: remove empty directories
}

// Run executes the rm command with the given arguments.
func Run(ctx *core.Context, args []string) core.Result {
	opts := Options{}
	operands, err := core.Flags{
		Bool:    map[byte]*bool{'r': &opts.Recursive, 'f': &opts.Force, 'v': &opts.Verbose, 'd': &opts.Dir},
		Aliases: map[byte]byte{'R': 'r'},
		Long:    map[string]*bool{"recursive": &opts.Recursive, "force": &opts.Force},
	}.Parse(args)
	if err != nil {
		return core.UsageError("rm", err.Error())
	}
	if len(operands) == 0 {
		if opts.Force {
			return core.Ok("")
		}
		return core.UsageError("rm", "missing operand")
	}

	st := ctx.State
	var lines []string
	failed := false
	for _, p := range operands {
		if st.Abs(p) == "/" {
			lines, failed = append(lines, "rm: it is dangerous to operate recursively on '/'"), true
			continue
		}
		if base := vfs.Base(p); base == "." || base == ".." {
			lines, failed = append(lines, "rm: refusing to remove '.' or '..' directory: skipping '"+p+"'"), true
			continue
		}
		var next *vfs.State
		var err error
		if opts.Dir && !opts.Recursive && st.IsDir(p) {
			next, err = st.Rmdir(p)
		} else {
			next, err = st.Remove(p, opts.Recursive, opts.Force)
		}
		if err != nil {
			lines, failed = append(lines, "rm: cannot remove '"+p+"': "+vfs.Reason(err)), true
			continue
		}
		if opts.Verbose && next != st {
			lines = append(lines, removed(st, p))
		}
		st = next
	}
	output := strings.Join(lines, "\n")
	if failed {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}

func removed(st *vfs.State, p string) string {
	if n, err := st.Lstat(p); err == nil && n.IsDir() {
		return "removed directory '" + p + "'"
	}
	return "removed '" + p + "'"
}
