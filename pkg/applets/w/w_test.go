package w_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/w"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestW(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name: "basic",
			WantOut: " 12:17:00 up  3:17,  1 user,  load average: 0.10, 0.06, 0.03\n" +
				"USER  TTY    FROM      LOGIN@  IDLE   WHAT\n" +
				"user  pts/0  10.0.2.2  12:10   0.00s  -bash",
		},
		{
			Name:    "no_header",
			Args:    []string{"-h"},
			WantOut: "user  pts/0  10.0.2.2  12:10   0.00s  -bash",
		},
		{
			Name:    "short",
			Args:    []string{"-hs"},
			WantOut: "user  pts/0  10.0.2.2  0.00s  -bash",
		},
		{
			Name: "child_process",
			Args: []string{"-h"},
			Setup: func(t *testing.T, ctx *core.Context) {
				ctx.System.Processes.Start("user", "vim notes.txt", 0, 1100)
			},
			WantOutSub: "vim notes.txt",
		},
		{
			Name:    "other_user",
			Args:    []string{"-h", "root"},
			WantOut: "",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-Z"},
			WantStatus: core.StatusError,
			WantErr:    "invalid option",
		},
	}
	testutil.RunAppletTests(t, w.Run, tests)
}
