// Package chmod implements the chmod command.
package chmod

import (
	"fmt"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run changes permission bits. The mode must be three or four octal digits;
// -R applies it to every descendant as well.
func Run(ctx *core.Context, args []string) core.Result {
	var recursive, verbose, force bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'R': &recursive, 'v': &verbose, 'f': &force},
		Long: map[string]*bool{"recursive": &recursive, "verbose": &verbose, "silent": &force, "quiet": &force},
	}.Parse(args)
	if err != nil {
		return core.UsageError("chmod", err.Error())
	}
	switch len(operands) {
	case 0:
		return core.UsageError("chmod", "missing operand")
	case 1:
		return core.Errorf("chmod", "missing operand after '%s'", operands[0])
	}
	mode := operands[0]
	perm, ok := vfs.ParseOctalMode(mode)
	if !ok {
		return core.Errorf("chmod", "invalid mode: '%s'", mode)
	}

	st := ctx.State
	var out, errs []string
	for _, p := range operands[1:] {
		next, err := st.Chmod(p, perm, recursive)
		if err != nil {
			if !force {
				errs = append(errs, fmt.Sprintf("chmod: cannot access '%s': %s", p, vfs.Reason(err)))
			}
			continue
		}
		st = next
		if verbose {
			out = append(out, fmt.Sprintf("mode of '%s' changed to %04o (%s)", p, vfs.Octal(perm), vfs.FormatMode(vfs.KindFile, perm)[1:]))
		}
	}
	output := core.JoinLines(append(errs, out...))
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}
