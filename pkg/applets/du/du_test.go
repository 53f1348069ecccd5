package du_test

import (
	"strings"
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/du"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

func TestDu(t *testing.T) {
	tree := map[string]string{
		"logs/app.log":   strings.Repeat("x", 3000),
		"logs/old/a.log": "a",
		"notes.txt":      "hello",
		"empty/":         "",
		"logs/old/b.log": strings.Repeat("y", 1024),
		"logs/old/c.log": "",
	}
	tests := []testutil.AppletTestCase{
		{
			Name:    "directories",
			Args:    []string{"logs"},
			Files:   tree,
			WantOut: "6\tlogs/old\n13\tlogs",
		},
		{
			Name:    "summarize",
			Args:    []string{"-s", "logs", "empty"},
			Files:   tree,
			WantOut: "13\tlogs\n4\tempty",
		},
		{
			Name:    "human",
			Args:    []string{"-sh", "logs"},
			Files:   tree,
			WantOut: "13K\tlogs",
		},
		{
			Name:    "all",
			Args:    []string{"-a", "logs/old"},
			Files:   tree,
			WantOut: "1\tlogs/old/a.log\n1\tlogs/old/b.log\n0\tlogs/old/c.log\n6\tlogs/old",
		},
		{
			Name:    "file_operand",
			Args:    []string{"notes.txt"},
			Files:   tree,
			WantOut: "1\tnotes.txt",
		},
		{
			Name:    "max_depth",
			Args:    []string{"-d", "0", "logs"},
			Files:   tree,
			WantOut: "13\tlogs",
		},
		{
			Name:    "total",
			Args:    []string{"-sc", "logs", "notes.txt"},
			Files:   tree,
			WantOut: "13\tlogs\n1\tnotes.txt\n14\ttotal",
		},
		{
			Name:       "missing",
			Args:       []string{"nope"},
			WantStatus: core.StatusError,
			WantErr:    "du: cannot access 'nope': No such file or directory",
		},
		{
			Name:       "summarize_all",
			Args:       []string{"-sa"},
			WantStatus: core.StatusError,
			WantErr:    "cannot both summarize and show all entries",
		},
	}
	testutil.RunAppletTests(t, du.Run, tests)
}
