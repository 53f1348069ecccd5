// Package mount implements the mount command over the simulated mount
// table.
package mount

import (
	"fmt"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run executes the mount command with the given arguments.
//
//	mount                        List mounted filesystems
//	mount [-t TYPE] DEVICE DIR   Attach DEVICE at DIR
//
// DIR must be an existing directory in the virtual filesystem.
func Run(ctx *core.Context, args []string) core.Result {
	var fsType, options string
	operands, err := core.Flags{
		Value: map[byte]*string{'t': &fsType, 'o': &options},
		Bool:  map[byte]*bool{'v': nil},
	}.Parse(args)
	if err != nil {
		return core.UsageError("mount", err.Error())
	}
	storage := ctx.System.Storage
	switch len(operands) {
	case 0:
		var lines []string
		for _, m := range storage.Mounts() {
			if fsType != "" && m.FSType != fsType {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s on %s type %s (%s)", m.Source, m.Target, m.FSType, m.Options))
		}
		return core.Ok(core.JoinLines(lines))
	case 1:
		return core.Errorf("mount", "%s: can't find in /etc/fstab.", operands[0])
	case 2:
	default:
		return core.UsageError("mount", "bad usage")
	}
	source, target := operands[0], ctx.State.Abs(operands[1])
	node, err := ctx.State.Stat(target)
	if err != nil {
		return core.Errorf("mount", "%s: mount point does not exist.", target)
	}
	if !node.IsDir() {
		return core.Errorf("mount", "%s: mount point is not a directory.", target)
	}
	if err := storage.Mount(source, target, fsType); err != nil {
		return core.Errorf("mount", "%s: %v", target, err)
	}
	ctx.Log.Debug("mount: %s on %s", source, target)
	return core.Ok("")
}
