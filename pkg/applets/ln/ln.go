// Package ln implements the ln command.
package ln

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run creates links. Hard links copy the target file; symbolic links store
// the target text verbatim. An existing link name is always an error: there
// is no -f.
//
//	ln [-s] TARGET [LINK_NAME]
//	ln [-s] TARGET... DIRECTORY
func Run(ctx *core.Context, args []string) core.Result {
	var symbolic, verbose bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'s': &symbolic, 'v': &verbose},
		Long: map[string]*bool{"symbolic": &symbolic, "verbose": &verbose},
	}.Parse(args)
	if err != nil {
		return core.UsageError("ln", err.Error())
	}
	st := ctx.State
	var targets []string
	var dest string
	switch len(operands) {
	case 0:
		return core.UsageError("ln", "missing file operand")
	case 1:
		targets, dest = operands, "."
	default:
		targets, dest = operands[:len(operands)-1], operands[len(operands)-1]
		if len(targets) > 1 && !st.IsDir(dest) {
			return core.Errorf("ln", "target '%s' is not a directory", dest)
		}
	}

	kind := "hard link"
	if symbolic {
		kind = "symbolic link"
	}
	var out, errs []string
	for _, target := range targets {
		name := dest
		if st.IsDir(dest) {
			name = vfs.Join(dest, vfs.Base(target))
		}
		next, err := st.Link(target, dest, symbolic)
		if err != nil {
			errs = append(errs, "ln: failed to create "+kind+" '"+name+"': "+vfs.Reason(err))
			continue
		}
		st = next
		if verbose {
			arrow := " => "
			if symbolic {
				arrow = " -> "
			}
			out = append(out, "'"+name+"'"+arrow+"'"+target+"'")
		}
	}
	output := strings.Join(append(errs, out...), "\n")
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}
