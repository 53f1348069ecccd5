package ss_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/ss"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

const header = "Netid State  Recv-Q Send-Q Local Address:Port   Peer Address:Port   Process"

func TestSs(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name: "established_by_default",
			WantOut: header + "\n" +
				"tcp   ESTAB       0      0 10.0.2.15:ssh        10.0.2.2:51514",
		},
		{
			Name: "listening_numeric",
			Args: []string{"-tln"},
			WantOut: header + "\n" +
				"tcp   LISTEN      0      0 0.0.0.0:22           0.0.0.0:*\n" +
				"tcp   LISTEN      0      0 0.0.0.0:80           0.0.0.0:*\n" +
				"tcp   LISTEN      0      0 127.0.0.1:8000       0.0.0.0:*",
		},
		{
			Name:       "service_names",
			Args:       []string{"-l"},
			WantOutSub: "0.0.0.0:http",
		},
		{
			Name:       "process",
			Args:       []string{"-lnp"},
			WantOutSub: "127.0.0.1:8000       0.0.0.0:*           users:((\"python3\",pid=1024,fd=3))",
		},
		{
			Name:    "udp_empty",
			Args:    []string{"-ua"},
			WantOut: header,
		},
		{
			Name: "udp_daemon",
			Args: []string{"-uan"},
			Setup: func(t *testing.T, ctx *core.Context) {
				ctx.System.Processes.Start("root", "/usr/sbin/named -f", 0, 1)
			},
			WantOutSub: "udp   UNCONN      0      0 0.0.0.0:53",
		},
		{
			Name: "stopped_listener",
			Args: []string{"-ln"},
			Setup: func(t *testing.T, ctx *core.Context) {
				if err := ctx.System.Processes.Kill(601, sysstate.SIGTERM, "root"); err != nil {
					t.Fatal(err)
				}
			},
			WantOut: header + "\n" +
				"tcp   LISTEN      0      0 0.0.0.0:22           0.0.0.0:*\n" +
				"tcp   LISTEN      0      0 127.0.0.1:8000       0.0.0.0:*",
		},
		{
			Name:    "summary",
			Args:    []string{"-s"},
			WantOut: "Total: 4\nTCP:   4 (estab 1)\nUDP:   0",
		},
		{
			Name:       "invalid_option",
			Args:       []string{"-Z"},
			WantStatus: core.StatusError,
			WantErr:    "ss: invalid option -- 'Z'",
		},
	}

	testutil.RunAppletTests(t, ss.Run, tests)
}
