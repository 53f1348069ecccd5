package dpkg_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/dpkg"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestDpkg(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:       "list",
			Args:       []string{"-l"},
			WantOutSub: "Desired=Unknown/Install/Remove/Purge/Hold\n",
		},
		{
			Name:       "list_rows",
			Args:       []string{"-l"},
			WantOutSub: "||/  Name       Version       Architecture  Description\nii   bash       5.2.15-2",
		},
		{
			Name:       "list_not_installed",
			Args:       []string{"-l", "htop"},
			WantOutSub: "||/  Name  Version  Architecture  Description\nun   htop  <none>   <none>        (no description available)",
		},
		{
			Name:       "list_unknown",
			Args:       []string{"-l", "foo"},
			WantStatus: core.StatusError,
			WantErr:    "dpkg-query: no packages found matching foo",
		},
		{
			Name:       "status",
			Args:       []string{"-s", "curl"},
			WantOutSub: "Package: curl\nStatus: install ok installed\nPriority: optional\nInstalled-Size: 500\n",
		},
		{
			Name:       "status_not_installed",
			Args:       []string{"-s", "htop"},
			WantStatus: core.StatusError,
			WantErr:    "dpkg-query: package 'htop' is not installed and no information is available",
		},
		{
			Name:    "listfiles",
			Args:    []string{"-L", "curl"},
			WantOut: "/.\n/usr\n/usr/bin\n/usr/bin/curl\n/usr/share\n/usr/share/doc\n/usr/share/doc/curl\n/usr/share/doc/curl/copyright",
		},
		{
			Name:       "listfiles_not_installed",
			Args:       []string{"-L", "git"},
			WantStatus: core.StatusError,
			WantErr:    "dpkg-query: package 'git' is not installed",
		},
		{
			Name:    "search",
			Args:    []string{"-S", "/usr/bin/vim"},
			WantOut: "vim: /usr/bin/vim",
		},
		{
			Name:       "search_missing",
			Args:       []string{"-S", "/usr/bin/nope"},
			WantStatus: core.StatusError,
			WantErr:    "dpkg-query: no path found matching pattern /usr/bin/nope",
		},
		{
			Name:       "no_action",
			WantStatus: core.StatusError,
			WantErr:    "dpkg: need an action option",
		},
	}

	testutil.RunAppletTests(t, dpkg.Run, tests)
}
