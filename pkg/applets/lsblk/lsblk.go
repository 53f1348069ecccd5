// Package lsblk implements lsblk over the simulated block devices.
package lsblk

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run lists block devices as a tree with their mount points.
//
//	-f  Show filesystem types instead of sizes
//	-b  Sizes in bytes
func Run(ctx *core.Context, args []string) core.Result {
	var fsView, bytes bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'f': &fsView, 'b': &bytes, 'a': nil},
		Long: map[string]*bool{"fs": &fsView, "bytes": &bytes, "all": nil},
	}.Parse(args)
	if err != nil {
		return core.UsageError("lsblk", err.Error())
	}
	storage := ctx.System.Storage
	devices := storage.Devices()
	if len(operands) > 0 {
		var picked []sysstate.BlockDevice
		for _, op := range operands {
			dev, ok := storage.Device(op)
			if !ok {
				return core.Errorf("lsblk", "%s: not a block device", op)
			}
			picked = append(picked, dev)
			for _, d := range devices {
				if d.Parent == dev.Name {
					picked = append(picked, d)
				}
			}
		}
		devices = picked
	}

	headers := []any{"NAME", "MAJ:MIN", "RM", "SIZE", "RO", "TYPE", "MOUNTPOINTS"}
	if fsView {
		headers = []any{"NAME", "FSTYPE", "MOUNTPOINTS"}
	}
	rows := make([][]any, 0, len(devices))
	for i, d := range devices {
		name := d.Name
		if d.Parent != "" {
			branch := "└─"
			if i+1 < len(devices) && devices[i+1].Parent == d.Parent {
				branch = "├─"
			}
			name = branch + name
		}
		mountpoint := mountPoint(storage, d)
		if fsView {
			rows = append(rows, []any{name, d.FSType, mountpoint})
			continue
		}
		size := strings.Replace(core.HumanSize(d.Size), ".0", "", 1)
		if bytes {
			size = fmt.Sprint(d.Size)
		}
		rows = append(rows, []any{name, majMin(d.Name), "0", size, "0", d.Type, mountpoint})
	}
	return core.Ok(core.Table(headers, rows))
}

func mountPoint(storage *sysstate.Storage, d sysstate.BlockDevice) string {
	if d.FSType == "swap" {
		return "[SWAP]"
	}
	if m, ok := storage.MountPoint("/dev/" + d.Name); ok {
		return m.Target
	}
	return ""
}

// majMin numbers SCSI disks 8:0, 8:16, ... and their partitions upward
// from there.
func majMin(name string) string {
	if len(name) < 3 || !strings.HasPrefix(name, "sd") {
		return "0:0"
	}
	minor := int(name[2]-'a') * 16
	if len(name) > 3 {
		var part int
		fmt.Sscanf(name[3:], "%d", &part)
		minor += part
	}
	return fmt.Sprintf("8:%d", minor)
}
