// Package df implements the df command over the simulated mount table.
package df

import (
	"fmt"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the df command with the given arguments.
//
//	-h  Human-readable sizes
//	-T  Show the filesystem type
//	-a  Include pseudo filesystems
//
// With PATH operands only the filesystems holding them are shown. Usage
// includes the bytes the session has written under each mount point.
func Run(ctx *core.Context, args []string) core.Result {
	var human, showType, all bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'h': &human, 'T': &showType, 'a': &all, 'k': nil},
		Long: map[string]*bool{"human-readable": &human, "print-type": &showType, "all": &all},
	}.Parse(args)
	if err != nil {
		return core.UsageError("df", err.Error())
	}
	storage := ctx.System.Storage
	mounts := storage.Mounts()
	if len(operands) > 0 {
		var picked []sysstate.Mount
		for _, p := range operands {
			if !ctx.State.Exists(p) {
				return core.Errorf("df", "%s: No such file or directory", p)
			}
			picked = append(picked, storage.MountFor(ctx.State.Abs(p)))
		}
		mounts, all = picked, true
	}

	headers := []any{"Filesystem"}
	if showType {
		headers = append(headers, "Type")
	}
	if human {
		headers = append(headers, "Size", "Used", "Avail", "Use%", "Mounted on")
	} else {
		headers = append(headers, "1K-blocks", "Used", "Available", "Use%", "Mounted on")
	}
	var rows [][]any
	for _, m := range mounts {
		if m.Size == 0 && !all {
			continue
		}
		used := m.Used + sessionBytes(ctx.State, m, storage.Mounts())
		if used > m.Size {
			used = m.Size
		}
		avail := m.Size - used
		row := []any{m.Source}
		if showType {
			row = append(row, m.FSType)
		}
		if human {
			row = append(row, core.HumanSize(m.Size), core.HumanSize(used), core.HumanSize(avail))
		} else {
			row = append(row, core.KiB(m.Size), core.KiB(used), core.KiB(avail))
		}
		rows = append(rows, append(row, percent(used, m.Size), m.Target))
	}
	return core.Ok(core.Table(headers, rows))
}

func percent(used, size int64) string {
	if size == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", (used*100+size-1)/size)
}

// sessionBytes is what the virtual tree holds under m, excluding anything
// below a nested mount point.
func sessionBytes(st *vfs.State, m sysstate.Mount, mounts []sysstate.Mount) int64 {
	if !st.IsDir(m.Target) {
		return 0
	}
	var total int64
	_ = st.Walk(m.Target, func(p string, n *vfs.Node) error {
		for _, other := range mounts {
			if other.Target != m.Target && vfs.IsWithin(other.Target, m.Target) && vfs.IsWithin(p, other.Target) {
				return nil
			}
		}
		if !n.IsDir() {
			total += n.Size()
		}
		return nil
	})
	return total
}
