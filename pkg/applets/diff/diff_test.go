package diff_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/diff"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestDiff(t *testing.T) {
	files := map[string]string{
		"a.txt":     "a\nb\nc\n",
		"b.txt":     "a\nx\nc\n",
		"same.txt":  "a\nb\nc\n",
		"more.txt":  "a\nb\nc\nd\n",
		"upper.txt": "A\nB\nC\n",
		"l/f.txt":   "1\n",
		"l/only":    "",
		"r/f.txt":   "2\n",
	}
	tests := []testutil.AppletTestCase{
		{
			Name:    "identical",
			Args:    []string{"a.txt", "same.txt"},
			Files:   files,
			WantOut: "",
		},
		{
			Name:    "normal_change",
			Args:    []string{"a.txt", "b.txt"},
			Files:   files,
			WantOut: "2c2\n< b\n---\n> x",
		},
		{
			Name:    "normal_add",
			Args:    []string{"a.txt", "more.txt"},
			Files:   files,
			WantOut: "3a4\n> d",
		},
		{
			Name:    "normal_delete",
			Args:    []string{"more.txt", "a.txt"},
			Files:   files,
			WantOut: "4d3\n< d",
		},
		{
			Name:    "unified",
			Args:    []string{"-u", "a.txt", "b.txt"},
			Files:   files,
			WantOut: "--- a.txt\n+++ b.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c",
		},
		{
			Name:    "brief",
			Args:    []string{"-q", "a.txt", "b.txt"},
			Files:   files,
			WantOut: "Files a.txt and b.txt differ",
		},
		{
			Name:    "report_same",
			Args:    []string{"-s", "a.txt", "same.txt"},
			Files:   files,
			WantOut: "Files a.txt and same.txt are identical",
		},
		{
			Name:    "ignore_case",
			Args:    []string{"-i", "a.txt", "upper.txt"},
			Files:   files,
			WantOut: "",
		},
		{
			Name:    "stdin_operand",
			Args:    []string{"-", "a.txt"},
			Input:   "a\nb\nc\n",
			Files:   files,
			WantOut: "",
		},
		{
			Name:    "recursive",
			Args:    []string{"-r", "l", "r"},
			Files:   files,
			WantOut: "diff l/f.txt r/f.txt\n1c1\n< 1\n---\n> 2\nOnly in l: only",
		},
		{
			Name:       "directories_need_r",
			Args:       []string{"l", "r"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "diff: l: Is a directory",
		},
		{
			Name:       "missing_file",
			Args:       []string{"a.txt", "nope"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "diff: nope: No such file or directory",
		},
		{
			Name:       "missing_operand",
			Args:       []string{"a.txt"},
			WantStatus: core.StatusError,
			WantErr:    "diff: missing operand after 'a.txt'",
		},
	}

	testutil.RunAppletTests(t, diff.Run, tests)
}

func FuzzDiff(f *testing.F) {
	f.Add("a\nb\n", "a\nc\n")
	f.Add("", "x\n")
	if testing.Short() {
		f.Skip("fuzzing skipped in short mode")
	}
	f.Fuzz(func(t *testing.T, left, right string) {
		files := map[string]string{
			"left":  testutil.ClampString(left, 512),
			"right": testutil.ClampString(right, 512),
		}
		testutil.FuzzApplet(t, diff.Run, []string{"-u", "left", "right"}, "", files)
	})
}
