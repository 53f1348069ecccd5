// Package mkdir implements the mkdir command.
package mkdir

import (
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run creates directories. -p creates missing parents and accepts existing
// directories; -m sets the mode of the created directories.
func Run(ctx *core.Context, args []string) core.Result {
	var parents, verbose bool
	var mode string
	operands, err := core.Flags{
		Bool:      map[byte]*bool{'p': &parents, 'v': &verbose},
		Value:     map[byte]*string{'m': &mode},
		Long:      map[string]*bool{"parents": &parents, "verbose": &verbose},
		LongValue: map[string]*string{"mode": &mode},
	}.Parse(args)
	if err != nil {
		return core.UsageError("mkdir", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("mkdir", "missing operand")
	}
	var perm uint64
	if mode != "" {
		if perm, err = strconv.ParseUint(mode, 8, 32); err != nil || perm > 0o7777 {
			return core.Errorf("mkdir", "invalid mode '%s'", mode)
		}
	}
	dirMode := vfs.FromOctal(uint32(perm))

	st := ctx.State
	var out, errs []string
	for _, p := range operands {
		existed := st.Exists(p)
		next, err := st.Mkdir(p, parents)
		if err != nil {
			errs = append(errs, "mkdir: cannot create directory '"+p+"': "+vfs.Reason(err))
			continue
		}
		if mode != "" && !existed {
			if next, err = next.Chmod(p, dirMode, false); err != nil {
				errs = append(errs, "mkdir: cannot set mode of '"+p+"': "+vfs.Reason(err))
				continue
			}
		}
		st = next
		if verbose && !existed {
			out = append(out, "mkdir: created directory '"+p+"'")
		}
	}
	output := strings.Join(append(errs, out...), "\n")
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}
