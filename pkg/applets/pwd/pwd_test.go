package pwd_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/pwd"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func inLink(t *testing.T, ctx *core.Context) {
	t.Helper()
	st, err := ctx.State.Link("real", "link", true)
	if err != nil {
		t.Fatal(err)
	}
	ctx.State = st.Chdir("link")
}

func TestPwd(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "default",
			WantOut: testutil.Home,
		},
		{
			Name:    "logical",
			Args:    []string{"-L"},
			Files:   map[string]string{"real/": ""},
			Setup:   inLink,
			WantOut: vfs.Join(testutil.Home, "link"),
		},
		{
			Name:    "physical",
			Args:    []string{"-P"},
			Files:   map[string]string{"real/": ""},
			Setup:   inLink,
			WantOut: vfs.Join(testutil.Home, "real"),
		},
		{
			Name:       "bad_option",
			Args:       []string{"-x"},
			WantStatus: core.StatusError,
			WantErr:    "pwd: invalid option -- 'x'",
		},
	}

	testutil.RunAppletTests(t, pwd.Run, tests)
}
