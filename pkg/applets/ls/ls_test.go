package ls_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/ls"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestLs(t *testing.T) {
	files := map[string]string{
		"b.txt":       "bb",
		"a.txt":       "a",
		".hidden":     "h",
		"out/alpha/":  "",
		"out/two.txt": "2",
	}
	tests := []testutil.AppletTestCase{
		{
			Name:    "default",
			Files:   files,
			WantOut: "a.txt  b.txt  out",
		},
		{
			Name:    "all",
			Args:    []string{"-a"},
			Files:   files,
			WantOut: ".hidden  a.txt  b.txt  out",
		},
		{
			Name:    "almost_all_alias",
			Args:    []string{"-A1"},
			Files:   files,
			WantOut: ".hidden\na.txt\nb.txt\nout",
		},
		{
			Name:    "reverse",
			Args:    []string{"-r"},
			Files:   files,
			WantOut: "out  b.txt  a.txt",
		},
		{
			Name:    "classify",
			Args:    []string{"-F", "out"},
			Files:   files,
			WantOut: "alpha/  two.txt",
		},
		{
			Name:       "long_dir_suffix",
			Args:       []string{"-l"},
			Files:      files,
			WantOutSub: " out/",
		},
		{
			Name:       "long_recursive_nested_names",
			Args:       []string{"-lR"},
			Files:      files,
			WantOutSub: " out/alpha/",
		},
		{
			Name:    "recursive_headers",
			Args:    []string{"-R", "out"},
			Files:   files,
			WantOut: "out:\nalpha  two.txt\n\nout/alpha:",
		},
		{
			Name:    "file_operand",
			Args:    []string{"a.txt"},
			Files:   files,
			WantOut: "a.txt",
		},
		{
			Name:    "multiple_operands",
			Args:    []string{"a.txt", "out"},
			Files:   files,
			WantOut: "a.txt\n\nout:\nalpha  two.txt",
		},
		{
			Name:       "directory_itself",
			Args:       []string{"-ld", "out"},
			Files:      files,
			WantOutSub: "drwxr-xr-x user     user       4096",
		},
		{
			Name:       "missing",
			Args:       []string{"nope"},
			WantStatus: core.StatusError,
			WantErr:    "ls: cannot access 'nope': No such file or directory",
		},
		{
			Name:       "bad_flag",
			Args:       []string{"-z"},
			WantStatus: core.StatusError,
			WantErr:    "ls: invalid option -- 'z'",
		},
	}

	testutil.RunAppletTests(t, ls.Run, tests)
}
