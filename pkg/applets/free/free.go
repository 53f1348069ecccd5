// Package free implements the free command over the simulated machine.
package free

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

type unit int64

const (
	unitByte unit = 1
	unitKB        = 1024
	unitMB        = 1024 * 1024
	unitGB        = 1024 * 1024 * 1024
)

// Fixed parts of the memory model, in bytes.
const (
	memTotal   = 4 * unitGB
	kernelUsed = 780 * unitMB
	shared     = 12 * unitMB
	buffCache  = 1126 * unitMB
)

// Run executes the free command. Used memory is the kernel baseline plus
// the resident size of every simulated process; swap is the sda2
// partition.
//
//	-b, -k, -m, -g  Display in bytes, KiB (default), MiB or GiB
//	-h              Human-readable
func Run(ctx *core.Context, args []string) core.Result {
	scale := unit(unitKB)
	human := false
	for _, arg := range args {
		switch arg {
		case "-b":
			scale = unitByte
		case "-k":
			scale = unitKB
		case "-m":
			scale = unitMB
		case "-g":
			scale = unitGB
		case "-h":
			human = true
		default:
			return core.UsageError("free", "invalid option -- '"+strings.TrimPrefix(arg, "-")+"'")
		}
	}
	stats := Stats(ctx.System)
	show := func(v int64) string {
		if human {
			return core.HumanSize(v)
		}
		return fmt.Sprint(convertUnit(v, scale))
	}
	lines := []string{
		fmt.Sprintf("%-5s%12s%12s%12s%12s%12s%12s", "", "total", "used", "free", "shared", "buff/cache", "available"),
		fmt.Sprintf("%-5s%12s%12s%12s%12s%12s%12s", "Mem:",
			show(stats.MemTotal),
			show(stats.MemTotal-stats.MemFree-stats.Cached),
			show(stats.MemFree),
			show(stats.Shmem),
			show(stats.Cached),
			show(stats.MemAvailable),
		),
		fmt.Sprintf("%-5s%12s%12s%12s", "Swap:",
			show(stats.SwapTotal),
			show(stats.SwapTotal-stats.SwapFree),
			show(stats.SwapFree),
		),
	}
	return core.Ok(strings.Join(lines, "\n"))
}

// MemInfo is the simulated memory model, in bytes.
type MemInfo struct {
	MemTotal     int64
	MemFree      int64
	MemAvailable int64
	Cached       int64
	Shmem        int64
	SwapTotal    int64
	SwapFree     int64
}

// Stats computes the memory model for sys.
func Stats(sys *sysstate.System) MemInfo {
	used := int64(kernelUsed)
	for _, p := range sys.Processes.List() {
		used += int64(p.RSS) * unitKB
	}
	info := MemInfo{
		MemTotal: memTotal,
		Cached:   buffCache,
		Shmem:    shared,
	}
	info.MemFree = info.MemTotal - used - info.Cached
	info.MemAvailable = info.MemFree + info.Cached*3/4
	if swap, ok := sys.Storage.Device("sda2"); ok {
		info.SwapTotal = swap.Size
		info.SwapFree = swap.Size
	}
	return info
}

func convertUnit(value int64, scale unit) int64 {
	if scale <= 0 {
		return value
	}
	return value / int64(scale)
}
