package rmdir_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/rmdir"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestRmdir(t *testing.T) {
	files := map[string]string{
		"empty/":     "",
		"a/b/c/":     "",
		"full/x.txt": "x",
		"file.txt":   "f",
	}
	tests := []testutil.AppletTestCase{
		{
			Name:  "empty",
			Args:  []string{"empty"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertNotExists(t, st, "empty")
			},
		},
		{
			Name:  "parents",
			Args:  []string{"-p", "a/b/c"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertNotExists(t, st, "a")
			},
		},
		{
			Name:       "not_empty",
			Args:       []string{"full"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "rmdir: failed to remove 'full': Directory not empty",
		},
		{
			Name:       "not_dir",
			Args:       []string{"file.txt"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "rmdir: failed to remove 'file.txt': Not a directory",
		},
		{
			Name:       "missing",
			Args:       []string{"nope"},
			WantStatus: core.StatusError,
			WantErr:    "No such file or directory",
		},
	}

	testutil.RunAppletTests(t, rmdir.Run, tests)
}
