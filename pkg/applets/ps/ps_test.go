package ps_test

import (
	"strings"
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/ps"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestPs(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "terminal_only",
			WantOut: "PID   TTY    TIME      CMD\n1100  pts/0  00:00:00  bash",
		},
		{
			Name:       "everything",
			Args:       []string{"-e"},
			WantOutSub: "1     ?      00:00:00  init",
		},
		{
			Name:       "full",
			Args:       []string{"-ef"},
			WantOutSub: "python3 app.py",
		},
		{
			Name:       "bsd_user",
			Args:       []string{"aux"},
			WantOutSub: "USER",
		},
		{
			Name:    "custom_columns",
			Args:    []string{"-o", "pid,comm", "-p", "601,602"},
			WantOut: "PID  COMMAND\n601  nginx\n602  nginx",
		},
		{
			Name:    "custom_header",
			Args:    []string{"-o", "pid=ID", "-u", "www-data"},
			WantOut: "ID\n602",
		},
		{
			Name:       "bad_column",
			Args:       []string{"-o", "bogus"},
			WantStatus: core.StatusError,
			WantErr:    "unknown user-defined format specifier \"bogus\"",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-q"},
			WantStatus: core.StatusError,
			WantErr:    "invalid option -- 'q'",
		},
		{
			Name:       "bad_bsd",
			Args:       []string{"zz"},
			WantStatus: core.StatusError,
			WantErr:    "unsupported option",
		},
	}

	testutil.RunAppletTests(t, ps.Run, tests)
}

func TestPsReflectsKills(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, nil), "")
	if err := ctx.System.Processes.Kill(1024, 9, "user"); err != nil {
		t.Fatal(err)
	}
	res := ps.Run(ctx, []string{"aux"})
	testutil.AssertStatus(t, res.Status, core.StatusSuccess)
	if strings.Contains(res.Output, "app.py") {
		t.Errorf("killed process still listed:\n%s", res.Output)
	}
}
