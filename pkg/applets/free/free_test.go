package free_test

import (
	"strings"
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/free"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestFree(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:       "basic",
			Args:       []string{},
			WantOutSub: "Mem:      4194304",
		},
		{
			Name:       "swap_bytes",
			Args:       []string{"-b"},
			WantOutSub: "Swap:  1073741824           0  1073741824",
		},
		{
			Name:       "human",
			Args:       []string{"-h"},
			WantOutSub: "Swap:        1.0G           0        1.0G",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-Z"},
			WantStatus: core.StatusError,
			WantErr:    "invalid option",
		},
	}
	testutil.RunAppletTests(t, free.Run, tests)
}

func TestFreeTracksProcesses(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, nil), "")
	used := func() string {
		return strings.Fields(core.Lines(free.Run(ctx, nil).Output)[1])[2]
	}
	before := used()
	ctx.System.Processes.Start("user", "make", 0, 1100)
	if after := used(); after == before {
		t.Errorf("used memory unchanged at %s after starting a process", after)
	}
}
