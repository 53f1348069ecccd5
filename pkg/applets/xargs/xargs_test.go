package xargs_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/echo"
	"github.com/rcarmo/go-shellsim/pkg/applets/mkdir"
	"github.com/rcarmo/go-shellsim/pkg/applets/rm"
	"github.com/rcarmo/go-shellsim/pkg/applets/xargs"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func withRegistry(t *testing.T, ctx *core.Context) {
	ctx.Registry = core.NewRegistry(
		core.Applet{Command: "echo", Main: echo.Run},
		core.Applet{Command: "mkdir", Main: mkdir.Run},
		core.Applet{Command: "rm", Main: rm.Run},
	)
}

func TestXargs(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "default_echo",
			Input:   "a b\nc\n",
			Setup:   withRegistry,
			WantOut: "a b c",
		},
		{
			Name:    "batches",
			Args:    []string{"-n", "2", "echo", "x"},
			Input:   "1 2 3\n",
			Setup:   withRegistry,
			WantOut: "x 1 2\nx 3",
		},
		{
			Name:    "quoted_items",
			Args:    []string{"-n", "1"},
			Input:   "'a b' c\n",
			Setup:   withRegistry,
			WantOut: "a b\nc",
		},
		{
			Name:    "trace",
			Args:    []string{"-t", "echo"},
			Input:   "hi\n",
			Setup:   withRegistry,
			WantOut: "echo hi\nhi",
		},
		{
			Name:    "eof_marker",
			Args:    []string{"-E", "STOP"},
			Input:   "a STOP b\n",
			Setup:   withRegistry,
			WantOut: "a",
		},
		{
			Name:    "null_terminated",
			Args:    []string{"-0", "-n", "1"},
			Input:   "a b\x00c\x00",
			Setup:   withRegistry,
			WantOut: "a b\nc",
		},
		{
			Name:    "replace",
			Args:    []string{"-I", "{}", "echo", "<{}>"},
			Input:   "one\ntwo\n",
			Setup:   withRegistry,
			WantOut: "<one>\n<two>",
		},
		{
			Name:  "no_run_if_empty",
			Args:  []string{"-r", "echo", "nothing"},
			Setup: withRegistry,
		},
		{
			Name:    "runs_once_without_input",
			Args:    []string{"echo", "nothing"},
			Setup:   withRegistry,
			WantOut: "nothing",
		},
		{
			Name:  "changes_filesystem",
			Args:  []string{"mkdir"},
			Input: "d1 d2\n",
			Setup: withRegistry,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertExists(t, st, "d1")
				testutil.AssertExists(t, st, "d2")
			},
		},
		{
			Name:  "batches_see_earlier_changes",
			Args:  []string{"-n", "1", "rm"},
			Input: "a.txt b.txt\n",
			Files: map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"},
			Setup: withRegistry,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertNotExists(t, st, "a.txt")
				testutil.AssertNotExists(t, st, "b.txt")
				testutil.AssertExists(t, st, "c.txt")
			},
		},
		{
			Name:       "failure_continues",
			Args:       []string{"-n", "1", "rm"},
			Input:      "nope a.txt\n",
			Files:      map[string]string{"a.txt": "a"},
			Setup:      withRegistry,
			WantStatus: core.StatusError,
			WantErr:    "nope",
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertNotExists(t, st, "a.txt")
			},
		},
		{
			Name:       "unknown_command",
			Args:       []string{"frob"},
			Input:      "x\n",
			Setup:      withRegistry,
			WantStatus: core.StatusError,
			WantErr:    "frob",
		},
		{
			Name:       "bad_count",
			Args:       []string{"-n", "0"},
			Setup:      withRegistry,
			WantStatus: core.StatusError,
			WantErr:    "invalid number",
		},
		{
			Name:       "bad_option",
			Args:       []string{"-q"},
			Setup:      withRegistry,
			WantStatus: core.StatusError,
			WantErr:    "xargs: invalid option -- 'q'",
		},
	}

	testutil.RunAppletTests(t, xargs.Run, tests)
}
