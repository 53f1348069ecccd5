// Package rmdir implements the rmdir command.
package rmdir

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run removes empty directories. With -p each operand's parents are
// removed too, as long as they become empty.
func Run(ctx *core.Context, args []string) core.Result {
	var parents, verbose bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'p': &parents, 'v': &verbose},
		Long: map[string]*bool{"parents": &parents},
	}.Parse(args)
	if err != nil {
		return core.UsageError("rmdir", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("rmdir", "missing operand")
	}

	st := ctx.State
	var out, errs []string
	for _, p := range operands {
		dirs := []string{p}
		if parents {
			for d := vfs.Dir(p); d != "." && d != "/" && d != ""; d = vfs.Dir(d) {
				dirs = append(dirs, d)
			}
		}
		for _, d := range dirs {
			next, err := st.Rmdir(d)
			if err != nil {
				errs = append(errs, "rmdir: failed to remove '"+d+"': "+vfs.Reason(err))
				break
			}
			st = next
			if verbose {
				out = append(out, "rmdir: removing directory, '"+d+"'")
			}
		}
	}
	output := strings.Join(append(errs, out...), "\n")
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}
