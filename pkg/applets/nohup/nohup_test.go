package nohup_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/echo"
	"github.com/rcarmo/go-shellsim/pkg/applets/nohup"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func withRegistry(t *testing.T, ctx *core.Context) {
	ctx.Registry = core.NewRegistry(
		core.Applet{Command: "echo", Main: echo.Run},
		core.Applet{Command: "fail", Main: func(*core.Context, []string) core.Result {
			return core.Errorf("fail", "boom")
		}},
	)
}

func TestNohup(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "appends",
			Args:    []string{"echo", "started"},
			Files:   map[string]string{"nohup.out": "earlier\n"},
			Setup:   withRegistry,
			WantOut: "nohup: ignoring input and appending output to 'nohup.out'",
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "nohup.out", "earlier\nstarted\n")
			},
		},
		{
			Name:  "creates",
			Args:  []string{"echo", "x"},
			Setup: withRegistry,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "nohup.out", "x\n")
			},
		},
		{
			Name:       "error_is_captured",
			Args:       []string{"fail"},
			Setup:      withRegistry,
			WantStatus: core.StatusError,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "nohup.out", "fail: boom\n")
			},
		},
		{
			Name:    "program_detaches",
			Args:    []string{"./worker.sh", "--queue", "mail"},
			Setup:   withRegistry,
			WantOut: "nohup: ignoring input and appending output to 'nohup.out'",
			Check: func(t *testing.T, st *vfs.State, sys *sysstate.System) {
				if !sys.Processes.HasCommand("./worker.sh --queue mail") {
					t.Error("worker was not started")
				}
				testutil.AssertNotExists(t, st, "nohup.out")
			},
		},
		{
			Name:       "missing_operand",
			WantStatus: core.StatusError,
			WantErr:    "nohup: missing operand",
		},
	}
	testutil.RunAppletTests(t, nohup.Run, tests)
}
