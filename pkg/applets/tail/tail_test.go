package tail_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/tail"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestTail(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "default_ten",
			Input:   "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n",
			WantOut: "3\n4\n5\n6\n7\n8\n9\n10\n11\n12",
		},
		{
			Name:    "lines_flag",
			Args:    []string{"-n", "2"},
			Input:   "a\nb\nc\n",
			WantOut: "b\nc",
		},
		{
			Name:    "from_line",
			Args:    []string{"-n", "+2"},
			Input:   "a\nb\nc\n",
			WantOut: "b\nc",
		},
		{
			Name:    "bytes",
			Args:    []string{"-c", "3"},
			Input:   "abcdef",
			WantOut: "def",
		},
		{
			Name:    "file_operand",
			Args:    []string{"-3", "log"},
			Files:   map[string]string{"log": "a\nb\nc\nd\ne\n"},
			WantOut: "c\nd\ne",
		},
		{
			Name:       "bad_count",
			Args:       []string{"-n", "x"},
			WantStatus: core.StatusError,
			WantErr:    "tail: invalid number: x",
		},
		{
			Name:       "missing_file",
			Args:       []string{"nope"},
			WantStatus: core.StatusError,
			WantErr:    "tail: nope: No such file or directory",
		},
	}

	testutil.RunAppletTests(t, tail.Run, tests)
}

func FuzzTail(f *testing.F) {
	f.Add("-n+2", "a\nb\nc\n")
	f.Add("-c1", "abc")
	if testing.Short() {
		f.Skip("fuzzing skipped in short mode")
	}
	f.Fuzz(func(t *testing.T, flag, input string) {
		testutil.FuzzApplet(t, tail.Run, []string{flag}, input, nil)
	})
}
