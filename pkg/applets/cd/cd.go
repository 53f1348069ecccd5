// Package cd implements the cd command.
package cd

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run changes the current directory. With no operand it goes home; "-"
// swaps with the previous directory and prints the new one. Symlinks are
// kept in the logical path unless -P is given.
func Run(ctx *core.Context, args []string) core.Result {
	var physical, logical bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'P': &physical, 'L': &logical},
	}.Parse(args)
	if err != nil {
		return core.UsageError("cd", err.Error())
	}
	if len(operands) > 1 {
		return core.UsageError("cd", "too many arguments")
	}

	st := ctx.State
	target := ctx.Home()
	announce := false
	if len(operands) == 1 {
		target = operands[0]
	}
	if target == "-" {
		target = st.PrevDir()
		announce = true
	}

	node, err := st.Stat(target)
	if err != nil {
		return core.FileError("cd", target, err)
	}
	if !node.IsDir() {
		return core.FileError("cd", target, vfs.ErrNotDir)
	}
	dir := st.Abs(target)
	if physical {
		if dir, err = st.Physical(dir); err != nil {
			return core.FileError("cd", target, err)
		}
	}
	next := st.Chdir(dir)
	if announce {
		return core.Changed(next.Cwd(), next)
	}
	return core.Changed("", next)
}
