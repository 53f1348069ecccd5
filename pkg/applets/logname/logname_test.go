package logname_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/logname"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestLogname(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "basic",
			WantOut: "user",
		},
		{
			Name: "no_session",
			Setup: func(t *testing.T, ctx *core.Context) {
				if err := ctx.System.Processes.Kill(1100, sysstate.SIGKILL, "root"); err != nil {
					t.Fatal(err)
				}
			},
			WantStatus: core.StatusError,
			WantErr:    "logname: no login name",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-Z"},
			WantStatus: core.StatusError,
			WantErr:    "invalid option",
		},
	}
	testutil.RunAppletTests(t, logname.Run, tests)
}
