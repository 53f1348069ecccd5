package cp_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/cp"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestCp(t *testing.T) {
	files := map[string]string{
		"a.txt":         "alpha\n",
		"b.txt":         "beta\n",
		"dest/":         "",
		"src/inner.txt": "inner\n",
	}
	tests := []testutil.AppletTestCase{
		{
			Name:  "file_to_file",
			Args:  []string{"a.txt", "copy.txt"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "copy.txt", "alpha\n")
				testutil.AssertFileContent(t, st, "a.txt", "alpha\n")
			},
		},
		{
			Name:  "files_into_dir",
			Args:  []string{"a.txt", "b.txt", "dest"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "dest/a.txt", "alpha\n")
				testutil.AssertFileContent(t, st, "dest/b.txt", "beta\n")
			},
		},
		{
			Name:  "recursive",
			Args:  []string{"-r", "src", "backup"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "backup/inner.txt", "inner\n")
			},
		},
		{
			Name:    "verbose",
			Args:    []string{"-v", "a.txt", "dest"},
			Files:   files,
			WantOut: "'a.txt' -> 'dest/a.txt'",
		},
		{
			Name:  "no_clobber",
			Args:  []string{"-n", "a.txt", "b.txt"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "b.txt", "beta\n")
			},
		},
		{
			Name:       "dir_without_r",
			Args:       []string{"src", "x"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "cp: -r not specified; omitting directory 'src'",
		},
		{
			Name:       "missing_source",
			Args:       []string{"nope", "x"},
			WantStatus: core.StatusError,
			WantErr:    "cp: cannot stat 'nope': No such file or directory",
		},
		{
			Name:       "multi_to_file",
			Args:       []string{"a.txt", "b.txt", "c.txt"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "cp: target 'c.txt' is not a directory",
		},
		{
			Name:       "missing_dest",
			Args:       []string{"a.txt"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "cp: missing destination file operand after 'a.txt'",
		},
		{
			Name:       "partial_failure_keeps_copies",
			Args:       []string{"nope", "a.txt", "dest"},
			Files:      files,
			WantStatus: core.StatusError,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertExists(t, st, "dest/a.txt")
			},
		},
	}

	testutil.RunAppletTests(t, cp.Run, tests)
}
