package nc_test

import (
	"testing"
	"time"

	"github.com/rcarmo/go-shellsim/pkg/applets/nc"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestNc(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:    "probe_open",
			Args:    []string{"-zv", "localhost", "22"},
			WantOut: "Connection to localhost 22 port [tcp/ssh] succeeded!",
		},
		{
			Name:       "probe_closed",
			Args:       []string{"-z", "localhost", "6379"},
			WantStatus: core.StatusError,
		},
		{
			Name:    "probe_range",
			Args:    []string{"-zv", "127.0.0.1", "79-80"},
			WantOut: "nc: connect to 127.0.0.1 port 79 (tcp) failed: Connection refused\nConnection to 127.0.0.1 80 port [tcp/http] succeeded!",
		},
		{
			Name:    "probe_quiet_range",
			Args:    []string{"-z", "127.0.0.1", "20-22"},
			WantOut: "",
		},
		{
			Name:    "ssh_banner",
			Args:    []string{"localhost", "22"},
			WantOut: "SSH-2.0-OpenSSH_9.6p1 Ubuntu-3ubuntu13",
		},
		{
			Name:       "http_request",
			Args:       []string{"localhost", "8000"},
			Input:      "GET /health HTTP/1.0\n\n",
			WantOutSub: "{\"status\": \"ok\"}",
		},
		{
			Name:       "remote_web",
			Args:       []string{"-z", "-v", "example.com", "443"},
			WantOutSub: "[tcp/https] succeeded!",
		},
		{
			Name:       "refused",
			Args:       []string{"example.com", "25"},
			WantStatus: core.StatusError,
			WantErr:    "nc: connect to example.com port 25 (tcp) failed: Connection refused",
		},
		{
			Name:       "timeout_moves_clock",
			Args:       []string{"-w", "3", "10.0.2.99", "80"},
			WantStatus: core.StatusError,
			WantErr:    "Connection timed out",
			Check: func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
				if got := sys.Clock.Uptime(); got != 3*time.Hour+17*time.Minute+3*time.Second {
					t.Errorf("uptime %v", got)
				}
			},
		},
		{
			Name:       "unknown_host",
			Args:       []string{"nohost", "80"},
			WantStatus: core.StatusError,
			WantErr:    "Name or service not known",
		},
		{
			Name:       "bad_port",
			Args:       []string{"localhost", "http"},
			WantStatus: core.StatusError,
			WantErr:    "nc: port number invalid: http",
		},
		{
			Name:       "listen_unsupported",
			Args:       []string{"-l", "1234"},
			WantStatus: core.StatusError,
			WantErr:    "listening is not supported",
		},
		{
			Name:       "missing_port",
			Args:       []string{"localhost"},
			WantStatus: core.StatusError,
			WantErr:    "missing hostname and port",
		},
	}
	testutil.RunAppletTests(t, nc.Run, tests)
}
