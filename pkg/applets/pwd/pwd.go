// Package pwd implements the pwd command.
package pwd

import (
	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run prints the working directory. -L (the default) keeps symlinks in
// the path; -P prints the physical directory.
func Run(ctx *core.Context, args []string) core.Result {
	logical := true

	for _, arg := range args {
		if arg == "-L" {
			logical = true
		} else if arg == "-P" {
			logical = false
		} else if len(arg) > 0 && arg[0] == '-' {
			return core.UsageError("pwd", "invalid option -- '"+arg[1:]+"'")
		}
	}

	dir := ctx.State.Cwd()
	if logical {
		return core.Ok(dir)
	}
	phys, err := ctx.State.Physical(dir)
	if err != nil {
		return core.FileError("pwd", dir, err)
	}
	return core.Ok(phys)
}
