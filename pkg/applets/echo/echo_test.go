package echo_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/echo"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestEcho(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no_args", args: []string{}, want: ""},
		{name: "single_word", args: []string{"hello"}, want: "hello"},
		{name: "multiple_words", args: []string{"hello", "world"}, want: "hello world"},
		{name: "spaces_preserved", args: []string{"hello", "beautiful", "world"}, want: "hello beautiful world"},

		{name: "no_newline", args: []string{"-n", "hello"}, want: "hello"},
		{name: "combined_flags", args: []string{"-ne", "hello\\tworld"}, want: "hello\tworld"},
		{name: "not_a_flag", args: []string{"-x", "hello"}, want: "-x hello"},

		{name: "escape_newline", args: []string{"-e", "hello\\nworld"}, want: "hello\nworld"},
		{name: "escape_tab", args: []string{"-e", "hello\\tworld"}, want: "hello\tworld"},
		{name: "escape_backslash", args: []string{"-e", "hello\\\\world"}, want: "hello\\world"},
		{name: "escape_disabled", args: []string{"-E", "hello\\nworld"}, want: "hello\\nworld"},
		{name: "escape_octal", args: []string{"-e", "\\0101\\102"}, want: "AB"},
		{name: "escape_hex", args: []string{"-e", "\\x41"}, want: "A"},
		{name: "escape_stop", args: []string{"-e", "hi\\cbye"}, want: "hi"},

		{name: "empty_string", args: []string{""}, want: ""},
		{name: "double_dash", args: []string{"--", "-n", "hello"}, want: "-- -n hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewContext(testutil.NewState(t, nil), "")
			res := echo.Run(ctx, tt.args)
			testutil.AssertStatus(t, res.Status, core.StatusSuccess)
			testutil.AssertOutput(t, res.Output, tt.want)
		})
	}
}
