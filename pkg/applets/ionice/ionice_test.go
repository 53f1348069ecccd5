package ionice_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/echo"
	"github.com/rcarmo/go-shellsim/pkg/applets/ionice"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func withRegistry(t *testing.T, ctx *core.Context) {
	ctx.Registry = core.NewRegistry(core.Applet{Command: "echo", Main: echo.Run})
}

func priority(pid int, class sysstate.IOClass, level int) func(*testing.T, *vfs.State, *sysstate.System) {
	return func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
		p, ok := sys.Processes.Get(pid)
		if !ok {
			t.Fatalf("pid %d missing", pid)
		}
		if p.IOClass != class || p.IOLevel != level {
			t.Errorf("got %s/%d, want %s/%d", p.IOClass, p.IOLevel, class, level)
		}
	}
}

func TestIOnice(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "show_default",
			Args:    []string{"-p", "1024"},
			WantOut: "none: prio 4",
		},
		{
			Name:    "show_shell",
			WantOut: "none: prio 4",
		},
		{
			Name:    "show_several",
			Args:    []string{"-p", "1024", "1100"},
			WantOut: "1024: none: prio 4\n1100: none: prio 4",
		},
		{
			Name:  "set_idle",
			Args:  []string{"-c", "3", "-p", "1024"},
			Check: priority(1024, sysstate.IOIdle, 0),
		},
		{
			Name:  "set_best_effort",
			Args:  []string{"-c2", "-n7", "-p", "1024"},
			Check: priority(1024, sysstate.IOBestEffort, 7),
		},
		{
			Name:       "realtime_needs_root",
			Args:       []string{"-c", "realtime", "-p", "1024"},
			WantStatus: core.StatusError,
			WantErr:    "ionice: ioprio_set failed: Operation not permitted",
		},
		{
			Name: "ignore_failures",
			Args: []string{"-t", "-c", "1", "-p", "1024"},
		},
		{
			Name:    "run_builtin",
			Args:    []string{"-c", "idle", "echo", "-n", "quiet"},
			Setup:   withRegistry,
			WantOut: "quiet",
		},
		{
			Name:  "run_program",
			Args:  []string{"-c", "2", "-n", "0", "./backup.sh", "-v"},
			Setup: withRegistry,
			Check: priority(2000, sysstate.IOBestEffort, 0),
		},
		{
			Name:       "invalid_class",
			Args:       []string{"-c", "bad", "-p", "1024"},
			WantStatus: core.StatusError,
			WantErr:    "ionice: unknown scheduling class: 'bad'",
		},
		{
			Name:       "invalid_level",
			Args:       []string{"-c", "2", "-n", "9", "echo"},
			WantStatus: core.StatusError,
			WantErr:    "ionice: invalid class data argument: '9'",
		},
		{
			Name:       "no_such_process",
			Args:       []string{"-p", "99999"},
			WantStatus: core.StatusError,
			WantErr:    "ionice: ioprio_get failed: No such process",
		},
	}
	testutil.RunAppletTests(t, ionice.Run, tests)
}
