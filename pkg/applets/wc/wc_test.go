package wc_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/wc"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestCount(t *testing.T) {
	got := wc.Count("hello world\nsecond  line\n")
	want := wc.Counts{Lines: 2, Words: 4, Chars: 25, Bytes: 25}
	if got != want {
		t.Fatalf("Count = %+v, want %+v", got, want)
	}
	if c := wc.Count("héllo"); c.Chars != 5 || c.Bytes != 6 {
		t.Fatalf("multibyte counts = %+v", c)
	}
}

func TestWc(t *testing.T) {
	files := map[string]string{
		"a.txt": "one two\nthree\n",
		"b.txt": "x\n",
	}
	tests := []testutil.AppletTestCase{
		{
			Name:    "lines_from_stdin",
			Args:    []string{"-l"},
			Input:   "a\nb\nc\n",
			WantOut: "3",
		},
		{
			Name:    "words_from_stdin",
			Args:    []string{"-w"},
			Input:   "a b  c\n",
			WantOut: "3",
		},
		{
			Name:    "default_columns_stdin",
			Input:   "a b\n",
			WantOut: "      1       2       4",
		},
		{
			Name:    "single_file",
			Args:    []string{"-l", "a.txt"},
			Files:   files,
			WantOut: "2 a.txt",
		},
		{
			Name:    "default_columns_file",
			Args:    []string{"a.txt"},
			Files:   files,
			WantOut: " 2  3 14 a.txt",
		},
		{
			Name:    "total",
			Args:    []string{"-l", "a.txt", "b.txt"},
			Files:   files,
			WantOut: " 2 a.txt\n 1 b.txt\n 3 total",
		},
		{
			Name:    "chars",
			Args:    []string{"-m"},
			Input:   "héllo",
			WantOut: "5",
		},
		{
			Name:       "missing_file",
			Args:       []string{"-l", "a.txt", "nope"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "wc: nope: No such file or directory",
		},
	}

	testutil.RunAppletTests(t, wc.Run, tests)
}

func FuzzWc(f *testing.F) {
	f.Add("-l", "a\nb\n")
	f.Add("-wc", "one two")
	if testing.Short() {
		f.Skip("fuzzing skipped in short mode")
	}
	f.Fuzz(func(t *testing.T, flag, input string) {
		testutil.FuzzApplet(t, wc.Run, []string{flag}, input, nil)
	})
}
