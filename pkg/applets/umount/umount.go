// Package umount implements the umount command.
package umount

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run detaches each DIR or DEVICE operand from the simulated mount table.
func Run(ctx *core.Context, args []string) core.Result {
	operands, err := core.Flags{Bool: map[byte]*bool{'l': nil, 'f': nil, 'v': nil}}.Parse(args)
	if err != nil {
		return core.UsageError("umount", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("umount", "bad usage")
	}
	var errs []string
	for _, op := range operands {
		name := op
		if !strings.HasPrefix(op, "/dev/") && op != "tmpfs" && op != "proc" {
			name = ctx.State.Abs(op)
		}
		if _, ok := ctx.System.Storage.Device(op); ok && !strings.HasPrefix(op, "/") {
			name = "/dev/" + op
		}
		if err := ctx.System.Storage.Unmount(name); err != nil {
			errs = append(errs, "umount: "+err.Error())
			continue
		}
		ctx.Log.Debug("umount: %s", name)
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
	}
	return core.Ok("")
}
