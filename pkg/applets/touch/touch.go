// Package touch implements the touch command.
package touch

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run creates empty files. Existing files are left as they are, since the
// filesystem keeps no timestamps. -c skips files that do not exist.
func Run(ctx *core.Context, args []string) core.Result {
	var noCreate, access, modify bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'c': &noCreate, 'a': &access, 'm': &modify},
		Long: map[string]*bool{"no-create": &noCreate},
	}.Parse(args)
	if err != nil {
		return core.UsageError("touch", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("touch", "missing file operand")
	}

	st := ctx.State
	var errs []string
	for _, p := range operands {
		if noCreate && !st.Exists(p) {
			continue
		}
		next, err := st.Touch(p)
		if err != nil {
			errs = append(errs, "touch: cannot touch '"+p+"': "+vfs.Reason(err))
			continue
		}
		st = next
	}
	if len(errs) > 0 {
		return core.Result{Output: strings.Join(errs, "\n"), Status: core.StatusError, State: st}
	}
	return core.Changed("", st)
}
