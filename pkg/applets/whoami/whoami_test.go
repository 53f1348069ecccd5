package whoami_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/whoami"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestWhoami(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "basic",
			Args:    []string{},
			WantOut: "user",
		},
		{
			Name: "root",
			Setup: func(t *testing.T, ctx *core.Context) {
				ctx.Env["USER"] = "root"
			},
			WantOut: "root",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-Z"},
			WantStatus: core.StatusError,
			WantErr:    "invalid option",
		},
		{
			Name:       "extra_operand",
			Args:       []string{"bob"},
			WantStatus: core.StatusError,
			WantErr:    "whoami: extra operand 'bob'",
		},
	}
	testutil.RunAppletTests(t, whoami.Run, tests)
}
