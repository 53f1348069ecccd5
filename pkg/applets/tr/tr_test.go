package tr_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/tr"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestTr(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "upper",
			Args:    []string{"a-z", "A-Z"},
			Input:   "hello\n",
			WantOut: "HELLO",
		},
		{
			Name:    "classes",
			Args:    []string{"[:lower:]", "[:upper:]"},
			Input:   "abc1\n",
			WantOut: "ABC1",
		},
		{
			Name:    "short_set2_repeats_last",
			Args:    []string{"abc", "x"},
			Input:   "aabbcd",
			WantOut: "xxxxxd",
		},
		{
			Name:    "delete",
			Args:    []string{"-d", "0-9"},
			Input:   "a1b22c\n",
			WantOut: "abc",
		},
		{
			Name:    "squeeze",
			Args:    []string{"-s", " "},
			Input:   "a   b  c",
			WantOut: "a b c",
		},
		{
			Name:    "translate_and_squeeze",
			Args:    []string{"-s", "a-z", "*"},
			Input:   "ab 12 cd",
			WantOut: "* 12 *",
		},
		{
			Name:    "complement_delete",
			Args:    []string{"-cd", "a-z\\n"},
			Input:   "a-b_c\n",
			WantOut: "abc",
		},
		{
			Name:    "escapes",
			Args:    []string{"\\t", ","},
			Input:   "a\tb",
			WantOut: "a,b",
		},
		{
			Name:       "missing_set2",
			Args:       []string{"abc"},
			WantStatus: core.StatusError,
			WantErr:    "tr: missing operand after 'abc'",
		},
		{
			Name:       "reverse_range",
			Args:       []string{"z-a", "x"},
			WantStatus: core.StatusError,
			WantErr:    "reverse collating sequence order",
		},
		{
			Name:       "bad_class",
			Args:       []string{"[:nope:]", "x"},
			WantStatus: core.StatusError,
			WantErr:    "tr: invalid character class 'nope'",
		},
	}

	testutil.RunAppletTests(t, tr.Run, tests)
}

func FuzzTr(f *testing.F) {
	f.Add("a-z", "A-Z", "hello")
	f.Add("[:digit:]", "#", "a1b2")
	if testing.Short() {
		f.Skip("fuzzing skipped in short mode")
	}
	f.Fuzz(func(t *testing.T, set1, set2, input string) {
		testutil.FuzzApplet(t, tr.Run, []string{"--", testutil.ClampString(set1, 32), testutil.ClampString(set2, 32)}, input, nil)
	})
}
