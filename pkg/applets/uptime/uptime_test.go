package uptime_test

import (
	"testing"
	"time"

	"github.com/rcarmo/go-shellsim/pkg/applets/uptime"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestUptime(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:       "basic",
			WantOutSub: "12:17:00 up  3:17,  1 user,  load average: 0.10,",
		},
		{
			Name: "after_sleep",
			Setup: func(t *testing.T, ctx *core.Context) {
				ctx.System.Clock.Advance(25 * time.Hour)
			},
			WantOutSub: "up 1 day,  4:17,",
		},
		{
			Name:    "pretty",
			Args:    []string{"-p"},
			WantOut: "up 3 hours, 17 minutes",
		},
		{
			Name: "pretty_days",
			Args: []string{"--pretty"},
			Setup: func(t *testing.T, ctx *core.Context) {
				ctx.System.Clock.Advance(48*time.Hour - 17*time.Minute)
			},
			WantOut: "up 2 days, 3 hours",
		},
		{
			Name:    "since",
			Args:    []string{"-s"},
			WantOut: "2024-01-15 09:00:00",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-Z"},
			WantStatus: core.StatusError,
			WantErr:    "invalid option",
		},
	}
	testutil.RunAppletTests(t, uptime.Run, tests)
}
