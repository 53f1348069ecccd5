package killall_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/killall"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestKillall(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name: "by_name",
			Args: []string{"python3"},
			Check: func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
				if sys.Processes.HasCommand("app.py") {
					t.Error("python3 still running")
				}
			},
		},
		{
			Name:       "not_owned",
			Args:       []string{"-9", "nginx"},
			WantStatus: core.StatusError,
			WantErr:    "killall: killing pid 601 failed: Operation not permitted",
		},
		{
			Name:       "not_found",
			Args:       []string{"httpd"},
			WantStatus: core.StatusError,
			WantErr:    "httpd: no process found",
		},
		{
			Name:       "missing",
			WantStatus: core.StatusError,
			WantErr:    "no process name specified",
		},
	}
	testutil.RunAppletTests(t, killall.Run, tests)
}
