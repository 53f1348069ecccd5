// Package mv implements the mv command.
package mv

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/fileutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run executes the mv command with the given arguments.
func Run(ctx *core.Context, args []string) core.Result {
	var verbose, noClobber, force bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'v': &verbose, 'n': &noClobber, 'f': &force},
	}.Parse(args)
	if err != nil {
		return core.UsageError("mv", err.Error())
	}
	sources, dest, res := fileutil.SplitOperands("mv", operands)
	if res.Failed() {
		return res
	}
	st := ctx.State
	destIsDir, res := fileutil.ResolveDest(st, "mv", sources, dest)
	if res.Failed() {
		return res
	}

	var out, errs []string
	for _, src := range sources {
		if !st.Exists(src) {
			errs = append(errs, "mv: cannot stat '"+src+"': No such file or directory")
			continue
		}
		target := fileutil.TargetPath(src, dest, destIsDir)
		if noClobber && st.Exists(target) {
			continue
		}
		next, err := st.Move(src, dest)
		if err != nil {
			errs = append(errs, "mv: cannot move '"+src+"' to '"+target+"': "+vfs.Reason(err))
			continue
		}
		st = next
		if verbose {
			out = append(out, "renamed '"+src+"' -> '"+target+"'")
		}
	}
	output := strings.Join(append(errs, out...), "\n")
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}
