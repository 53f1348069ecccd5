package printf_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/printf"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestPrintf(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{Name: "plain", Args: []string{"hello\\n"}, WantOut: "hello"},
		{Name: "string", Args: []string{"%s-%s\\n", "a", "b"}, WantOut: "a-b"},
		{Name: "reuse_format", Args: []string{"%s\\n", "x", "y", "z"}, WantOut: "x\ny\nz"},
		{Name: "width", Args: []string{"[%5s][%-3d]", "ab", "7"}, WantOut: "[   ab][7  ]"},
		{Name: "numbers", Args: []string{"%d %x %o %.2f", "42", "255", "8", "3.14159"}, WantOut: "42 ff 10 3.14"},
		{Name: "star_width", Args: []string{"%*d", "4", "9"}, WantOut: "   9"},
		{Name: "char_constant", Args: []string{"%d", "'A"}, WantOut: "65"},
		{Name: "b_escapes", Args: []string{"%b", "a\\tb"}, WantOut: "a\tb"},
		{Name: "percent", Args: []string{"100%%"}, WantOut: "100%"},
		{Name: "stop", Args: []string{"ab\\ccd"}, WantOut: "ab"},
		{Name: "missing_args", Args: []string{"%s|%d"}, WantOut: "|0"},
		{Name: "octal_escape", Args: []string{"\\101\\102"}, WantOut: "AB"},
		{Name: "unknown_escape", Args: []string{"a\\qb"}, WantOut: "a\\qb"},
		{Name: "b_stop_halts_output", Args: []string{"%b|%s\\n", "a\\cb", "x", "y"}, WantOut: "a"},
		{Name: "unsigned", Args: []string{"%u %i", "+7", "0x10"}, WantOut: "7 16"},
		{
			Name:       "invalid_number",
			Args:       []string{"%d\\n", "abc"},
			WantStatus: core.StatusError,
			WantErr:    "0\nprintf: invalid number 'abc'",
		},
		{
			Name:       "invalid_format",
			Args:       []string{"%q"},
			WantStatus: core.StatusError,
			WantErr:    "printf: %q: invalid format",
		},
		{
			Name:       "missing_operand",
			WantStatus: core.StatusError,
			WantErr:    "printf: missing operand",
		},
	}

	testutil.RunAppletTests(t, printf.Run, tests)
}
