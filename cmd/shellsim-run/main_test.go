package main

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/buildkite/shellwords"

	"github.com/rcarmo/go-shellsim/pkg/core/config"
)

func TestResolveLine(t *testing.T) {
	tests := []struct {
		argv []string
		want string
	}{
		{nil, ""},
		{[]string{"/usr/local/bin/shellsim-run"}, ""},
		{[]string{"shellsim-run", "ls -la | wc -l"}, "ls -la | wc -l"},
		{[]string{"shellsim-run", "echo", "hi"}, "echo hi"},
		{[]string{"/bin/uptime"}, "uptime"},
		{[]string{"ps", "aux"}, "ps aux"},
	}
	for _, tt := range tests {
		if got := resolveLine(tt.argv); got != tt.want {
			t.Errorf("resolveLine(%q) = %q, want %q", tt.argv, got, tt.want)
		}
	}
}

func TestResolveLineQuotes(t *testing.T) {
	line := resolveLine([]string{"grep", "a b", "it's"})
	words, err := shellwords.SplitPosix(line)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"grep", "a b", "it's"}; !slices.Equal(words, want) {
		t.Errorf("%q split to %q", line, words)
	}
}

func TestRun(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if code := run(cfg, []string{"shellsim-run", "echo hi | tr a-z A-Z"}, &out); code != exitSuccess {
		t.Fatalf("exit %d: %s", code, out.String())
	}
	if strings.TrimSpace(out.String()) != "HI" {
		t.Errorf("output %q", out.String())
	}

	out.Reset()
	if code := run(cfg, []string{"cat", "/nope"}, &out); code != exitFailure {
		t.Errorf("exit %d, want failure", code)
	}

	out.Reset()
	if code := run(cfg, []string{"shellsim-run"}, &out); code != exitUsage {
		t.Errorf("exit %d, want usage", code)
	}
	if !strings.HasPrefix(out.String(), "Currently defined functions:") || !strings.Contains(out.String(), "xargs") {
		t.Errorf("applet list %q", out.String())
	}
}
