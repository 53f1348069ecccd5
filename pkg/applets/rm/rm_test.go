package rm_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/rm"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestRm(t *testing.T) {
	files := map[string]string{
		"a.txt":        "a",
		"tree/x/y.txt": "y",
		"empty/":       "",
	}
	tests := []testutil.AppletTestCase{
		{
			Name:  "file",
			Args:  []string{"a.txt"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertNotExists(t, st, "a.txt")
			},
		},
		{
			Name:  "recursive",
			Args:  []string{"-rf", "tree"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertNotExists(t, st, "tree")
				testutil.AssertExists(t, st, "a.txt")
			},
		},
		{
			Name:       "dir_without_r",
			Args:       []string{"tree"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "rm: cannot remove 'tree': Is a directory",
		},
		{
			Name:  "empty_dir_with_d",
			Args:  []string{"-d", "empty"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertNotExists(t, st, "empty")
			},
		},
		{
			Name:       "missing",
			Args:       []string{"nope"},
			WantStatus: core.StatusError,
			WantErr:    "rm: cannot remove 'nope': No such file or directory",
		},
		{
			Name: "force_missing",
			Args: []string{"-f", "nope"},
		},
		{
			Name:    "verbose",
			Args:    []string{"-v", "a.txt"},
			Files:   files,
			WantOut: "removed 'a.txt'",
		},
		{
			Name:       "root",
			Args:       []string{"-rf", "/"},
			WantStatus: core.StatusError,
			WantErr:    "dangerous",
		},
		{
			Name:       "dot_refused",
			Args:       []string{"-rf", "."},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "rm: refusing to remove '.' or '..' directory: skipping '.'",
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertExists(t, st, "a.txt")
				testutil.AssertExists(t, st, "tree/x/y.txt")
			},
		},
		{
			Name:       "dotdot_refused",
			Args:       []string{"-r", "tree/.."},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "skipping 'tree/..'",
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertExists(t, st, "tree")
			},
		},
		{
			Name:       "messages_in_operand_order",
			Args:       []string{"-v", "a.txt", "nope", "-d", "empty"},
			Files:      files,
			WantStatus: core.StatusError,
			WantOut:    "removed 'a.txt'\nrm: cannot remove 'nope': No such file or directory\nremoved directory 'empty'",
		},
		{
			Name:       "no_operand",
			WantStatus: core.StatusError,
			WantErr:    "rm: missing operand",
		},
	}

	testutil.RunAppletTests(t, rm.Run, tests)
}
