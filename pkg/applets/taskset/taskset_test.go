package taskset_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/echo"
	"github.com/rcarmo/go-shellsim/pkg/applets/taskset"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func withRegistry(t *testing.T, ctx *core.Context) {
	ctx.Registry = core.NewRegistry(core.Applet{Command: "echo", Main: echo.Run})
}

func affinity(pid int, want uint64) func(*testing.T, *vfs.State, *sysstate.System) {
	return func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
		p, ok := sys.Processes.Get(pid)
		if !ok {
			t.Fatalf("pid %d missing", pid)
		}
		if got := p.CPUMask(); got != want {
			t.Errorf("mask %x, want %x", got, want)
		}
	}
}

func TestTaskset(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "show",
			Args:    []string{"-p", "1024"},
			WantOut: "pid 1024's current affinity mask: 3",
		},
		{
			Name:    "show_list",
			Args:    []string{"-cp", "1024"},
			WantOut: "pid 1024's current affinity list: 0-1",
		},
		{
			Name:    "set",
			Args:    []string{"-p", "0x1", "1024"},
			WantOut: "pid 1024's current affinity mask: 3\npid 1024's new affinity mask: 1",
			Check:   affinity(1024, 1),
		},
		{
			Name:    "set_list",
			Args:    []string{"-c", "-p", "1", "1024"},
			WantOut: "pid 1024's current affinity list: 0-1\npid 1024's new affinity list: 1",
			Check:   affinity(1024, 2),
		},
		{
			Name:       "set_foreign",
			Args:       []string{"-p", "1", "412"},
			WantStatus: core.StatusError,
			WantErr:    "taskset: failed to set pid 412's affinity: Operation not permitted",
		},
		{
			Name:       "set_missing_cpu",
			Args:       []string{"-p", "4", "1024"},
			WantStatus: core.StatusError,
			WantErr:    "Invalid argument",
		},
		{
			Name:    "run_builtin",
			Args:    []string{"1", "echo", "pinned"},
			Setup:   withRegistry,
			WantOut: "pinned",
		},
		{
			Name:  "run_program",
			Args:  []string{"-c", "0", "./crunch"},
			Setup: withRegistry,
			Check: affinity(2000, 1),
		},
		{
			Name:       "no_such_pid",
			Args:       []string{"-p", "99999"},
			WantStatus: core.StatusError,
			WantErr:    "No such process",
		},
		{
			Name:       "bad_mask",
			Args:       []string{"zz", "echo"},
			Setup:      withRegistry,
			WantStatus: core.StatusError,
			WantErr:    "taskset: failed to parse CPU mask: zz",
		},
		{
			Name:       "bad_usage",
			Args:       []string{"1"},
			WantStatus: core.StatusError,
			WantErr:    "bad usage",
		},
	}
	testutil.RunAppletTests(t, taskset.Run, tests)
}
