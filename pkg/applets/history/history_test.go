package history_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/history"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func withHistory(t *testing.T, ctx *core.Context) {
	t.Helper()
	ctx.History = []string{"ls -la", "cd /tmp", "history"}
}

func TestHistory(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "all",
			Setup:   withHistory,
			WantOut: "    1  ls -la\n    2  cd /tmp\n    3  history",
		},
		{
			Name:    "last",
			Args:    []string{"2"},
			Setup:   withHistory,
			WantOut: "    2  cd /tmp\n    3  history",
		},
		{
			Name:       "not_numeric",
			Args:       []string{"x"},
			WantStatus: core.StatusError,
			WantErr:    "history: x: numeric argument required",
		},
	}

	testutil.RunAppletTests(t, history.Run, tests)
}
