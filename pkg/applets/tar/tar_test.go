package tar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	tarapplet "github.com/rcarmo/go-shellsim/pkg/applets/tar"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/archiveutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func buildArchive(t *testing.T, a *archiveutil.Archive) string {
	t.Helper()
	data, err := archiveutil.Encode(a)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return data
}

func TestTar(t *testing.T) {
	files := map[string]string{
		"f1":         "one\n",
		"f2":         "two\n",
		"src/a.txt":  "alpha\n",
		"src/sub/b":  "beta\n",
		"out/":       "",
		"/etc/motd":  "hi\n",
		"empty_dir/": "",
	}
	payload := buildArchive(t, &archiveutil.Archive{
		Manifest: []string{"file.txt", "docs/", "docs/readme"},
		Entries: []archiveutil.Entry{
			{Path: "file.txt", Type: archiveutil.TypeFile, Content: "hi\n", Mode: "600"},
			{Path: "docs", Type: archiveutil.TypeDir, Mode: "755"},
			{Path: "docs/readme", Type: archiveutil.TypeFile, Content: "read me\n", Mode: "644"},
		},
	})
	tests := []testutil.AppletTestCase{
		{
			Name:       "missing_mode",
			WantStatus: core.StatusError,
			WantErr:    "tar: You must specify one of the '-Acdtrux'",
		},
		{
			Name:       "missing_file_option",
			Args:       []string{"-c", "f1"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "missing -f option",
		},
		{
			Name:  "create",
			Args:  []string{"-cf", "archive.tar", "f1"},
			Files: files,
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				data, err := st.ReadFile("archive.tar")
				if err != nil {
					t.Fatalf("read archive: %v", err)
				}
				a, err := archiveutil.Decode(data)
				if err != nil {
					t.Fatalf("decode: %v", err)
				}
				if diff := cmp.Diff([]string{"f1"}, a.Manifest); diff != "" {
					t.Errorf("manifest mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			Name:    "create_verbose_recursive",
			Args:    []string{"cvf", "src.tar", "src"},
			Files:   files,
			WantOut: "src/\nsrc/a.txt\nsrc/sub/\nsrc/sub/b",
		},
		{
			Name:    "create_absolute",
			Args:    []string{"-cf", "etc.tar", "/etc/motd"},
			Files:   files,
			WantOut: "tar: Removing leading `/' from member names",
		},
		{
			Name:       "create_missing",
			Args:       []string{"-cf", "x.tar", "f1", "nope"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "tar: nope: Cannot stat: No such file or directory",
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertExists(t, st, "x.tar")
			},
		},
		{
			Name:       "create_empty",
			Args:       []string{"-cf", "x.tar"},
			WantStatus: core.StatusError,
			WantErr:    "Cowardly refusing to create an empty archive",
		},
		{
			Name:    "list",
			Args:    []string{"-tf", "archive.tar"},
			Files:   map[string]string{"archive.tar": payload},
			WantOut: "file.txt\ndocs/\ndocs/readme",
		},
		{
			Name:    "list_verbose",
			Args:    []string{"-tvf", "archive.tar", "file.txt"},
			Files:   map[string]string{"archive.tar": payload},
			WantOut: "-rw------- user/user       3 2024-01-15 12:17 file.txt",
		},
		{
			Name:  "extract",
			Args:  []string{"-xf", "archive.tar"},
			Files: map[string]string{"archive.tar": payload},
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertFileContent(t, st, "file.txt", "hi\n")
				testutil.AssertFileContent(t, st, "docs/readme", "read me\n")
				node, err := st.Stat("file.txt")
				if err != nil {
					t.Fatal(err)
				}
				if got := node.Permissions(); got != "-rw-------" {
					t.Errorf("mode = %s", got)
				}
			},
		},
		{
			Name:    "extract_into",
			Args:    []string{"-xvf", "archive.tar", "-C", "out"},
			Files:   map[string]string{"archive.tar": payload, "out/": ""},
			WantOut: "file.txt\ndocs/\ndocs/readme",
			Check: func(t *testing.T, st *vfs.State, _ *sysstate.System) {
				testutil.AssertExists(t, st, "out/docs/readme")
				testutil.AssertNotExists(t, st, "file.txt")
			},
		},
		{
			Name:       "extract_missing_dir",
			Args:       []string{"-xf", "archive.tar", "-C", "nowhere"},
			Files:      map[string]string{"archive.tar": payload},
			WantStatus: core.StatusError,
			WantErr:    "tar: nowhere: Cannot open: No such file or directory",
		},
		{
			Name:       "not_an_archive",
			Args:       []string{"-tf", "f1"},
			Files:      files,
			WantStatus: core.StatusError,
			WantErr:    "tar: This does not look like a tar archive",
		},
		{
			Name:       "missing_archive",
			Args:       []string{"-xf", "nope.tar"},
			WantStatus: core.StatusError,
			WantErr:    "tar: nope.tar: Cannot open: No such file or directory",
		},
		{
			Name:       "two_modes",
			Args:       []string{"-cxf", "a.tar"},
			WantStatus: core.StatusError,
			WantErr:    "You may not specify more than one",
		},
	}

	testutil.RunAppletTests(t, tarapplet.Run, tests)
}

func TestRoundTrip(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, map[string]string{
		"f1":     "first\n",
		"f2":     "second\nline\n",
		"empty/": "",
	}), "")

	res := tarapplet.Run(ctx, []string{"-czf", "a.tar", "f1", "f2"})
	testutil.AssertStatus(t, res.Status, core.StatusSuccess)
	ctx.State = testutil.FinalState(ctx, res)

	res = tarapplet.Run(ctx, []string{"-tf", "a.tar"})
	testutil.AssertOutput(t, res.Output, "f1\nf2")

	res = tarapplet.Run(ctx, []string{"-xf", "a.tar", "-C", "empty"})
	testutil.AssertStatus(t, res.Status, core.StatusSuccess)
	st := testutil.FinalState(ctx, res)
	testutil.AssertFileContent(t, st, "empty/f1", "first\n")
	testutil.AssertFileContent(t, st, "empty/f2", "second\nline\n")

	data, _ := st.ReadFile("a.tar")
	a, err := archiveutil.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if a.Compression != archiveutil.CompressionGzip {
		t.Errorf("compression = %q", a.Compression)
	}
}
