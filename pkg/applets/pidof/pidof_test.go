package pidof_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/pidof"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestPidof(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "single_process",
			Args:    []string{"sshd"},
			WantOut: "412",
		},
		{
			Name:    "descending",
			Args:    []string{"nginx"},
			WantOut: "602 601",
		},
		{
			Name:    "single_flag",
			Args:    []string{"-s", "nginx"},
			WantOut: "602",
		},
		{
			Name:    "script_name",
			Args:    []string{"app.py"},
			WantOut: "1024",
		},
		{
			Name:    "login_shell",
			Args:    []string{"bash"},
			WantOut: "1100",
		},
		{
			Name:    "several_names",
			Args:    []string{"cron", "init"},
			WantOut: "530 1",
		},
		{
			Name:       "missing",
			Args:       []string{"definitely-not-running"},
			WantStatus: core.StatusError,
		},
		{
			Name:       "no_operand",
			WantStatus: core.StatusError,
			WantErr:    "pidof: missing name",
		},
	}

	testutil.RunAppletTests(t, pidof.Run, tests)
}
