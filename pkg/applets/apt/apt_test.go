package apt_test

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/apt"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func installed(name string, want bool) func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
	return func(t *testing.T, _ *vfs.State, sys *sysstate.System) {
		t.Helper()
		p, _ := sys.Packages.Get(name)
		if p.Installed != want {
			t.Errorf("%s installed = %v, want %v", name, p.Installed, want)
		}
	}
}

func TestApt(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:       "install",
			Args:       []string{"install", "-y", "jq"},
			WantOutSub: "The following NEW packages will be installed:\n  jq\n0 upgraded, 1 newly installed, 0 to remove and 0 not upgraded.\nSetting up jq (1.6-2.1) ...",
			Check: func(t *testing.T, st *vfs.State, sys *sysstate.System) {
				installed("jq", true)(t, st, sys)
				node, err := st.Stat("/usr/bin/jq")
				if err != nil {
					t.Fatalf("stat /usr/bin/jq: %v", err)
				}
				if got := node.Permissions(); got != "-rwxr-xr-x" {
					t.Errorf("mode = %s", got)
				}
				if node.Owner() != "root" {
					t.Errorf("owner = %s", node.Owner())
				}
				testutil.AssertExists(t, st, "/usr/share/doc/jq/copyright")
			},
		},
		{
			Name:       "install_with_dependencies",
			Args:       []string{"install", "tree", "htop"},
			WantOutSub: "  htop tree\n0 upgraded, 2 newly installed",
		},
		{
			Name:    "already_installed",
			Args:    []string{"install", "curl"},
			WantOut: "Reading package lists... Done\nBuilding dependency tree... Done\ncurl is already the newest version (7.88.1-10).\n0 upgraded, 0 newly installed, 0 to remove and 0 not upgraded.",
		},
		{
			Name:       "unknown_package",
			Args:       []string{"install", "jq", "foo"},
			WantStatus: core.StatusError,
			WantErr:    "E: Unable to locate package foo",
			Check:      installed("jq", false),
		},
		{
			Name:       "remove",
			Args:       []string{"remove", "nginx"},
			Files:      map[string]string{"/usr/bin/nginx": "bin"},
			WantOutSub: "The following packages will be REMOVED:\n  nginx\n0 upgraded, 0 newly installed, 1 to remove and 0 not upgraded.\nRemoving nginx (1.22.1-9) ...",
			Check: func(t *testing.T, st *vfs.State, sys *sysstate.System) {
				installed("nginx", false)(t, st, sys)
				testutil.AssertNotExists(t, st, "/usr/bin/nginx")
			},
		},
		{
			Name:       "remove_not_installed",
			Args:       []string{"purge", "htop"},
			WantOutSub: "Package 'htop' is not installed, so not removed",
		},
		{
			Name:       "list_installed",
			Args:       []string{"list", "--installed"},
			WantOutSub: "Listing... Done\nbash/stable,now 5.2.15-2 amd64 [installed]\ncoreutils/stable,now 9.1-1 amd64 [installed]\ncurl/",
		},
		{
			Name:    "list_pattern",
			Args:    []string{"list", "g*"},
			WantOut: "Listing... Done\ngit/stable 1:2.39.2-1 amd64",
		},
		{
			Name:    "search",
			Args:    []string{"search", "json"},
			WantOut: "Sorting... Done\nFull Text Search... Done\njq/stable 1.6-2.1 amd64\n  lightweight and flexible command-line JSON processor",
		},
		{
			Name:       "show",
			Args:       []string{"show", "curl"},
			WantOutSub: "Package: curl\nStatus: install ok installed",
		},
		{
			Name:       "show_missing",
			Args:       []string{"show", "foo"},
			WantStatus: core.StatusError,
			WantErr:    "E: No packages found",
		},
		{
			Name:       "update",
			Args:       []string{"update"},
			WantOutSub: "All packages are up to date.",
		},
		{
			Name:       "missing_command",
			WantStatus: core.StatusError,
			WantErr:    "apt: missing command",
		},
		{
			Name:       "invalid_operation",
			Args:       []string{"frob"},
			WantStatus: core.StatusError,
			WantErr:    "E: Invalid operation frob",
		},
	}

	testutil.RunAppletTests(t, apt.Run, tests)
}

func TestAptGet(t *testing.T) {
	tests := []testutil.AppletTestCase{
		{
			Name:  "install",
			Args:  []string{"install", "-y", "tree"},
			Check: installed("tree", true),
		},
		{
			Name:       "no_list",
			Args:       []string{"list"},
			WantStatus: core.StatusError,
			WantErr:    "E: Invalid operation list",
		},
	}

	testutil.RunAppletTests(t, apt.RunGet, tests)
}
