package core_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

func echoApplet(name string) core.Applet {
	return core.Applet{
		Command: name,
		Summary: "test applet",
		Main: func(ctx *core.Context, args []string) core.Result {
			return core.Ok(name + ":" + strings.Join(args, ","))
		},
	}
}

func TestRegistryDispatchIgnoresCase(t *testing.T) {
	r := core.NewRegistry(echoApplet("ls"), echoApplet("grep"))
	res := r.Dispatch(&core.Context{}, "LS", []string{"-l"})
	if res.Failed() || res.Output != "ls:-l" {
		t.Fatalf("unexpected result %+v", res)
	}
	if diff := cmp.Diff([]string{"grep", "ls"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrySuggestion(t *testing.T) {
	r := core.NewRegistry(echoApplet("ls"), echoApplet("grep"), echoApplet("chmod"))
	tests := []struct {
		typed string
		want  string
	}{
		{"gerp", "grep"},
		{"sl", "ls"},
		{"chmdo", "chmod"},
		{"kubectl", ""},
	}
	for _, tt := range tests {
		if got := r.Suggest(tt.typed); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.typed, got, tt.want)
		}
	}
	res := r.Dispatch(&core.Context{}, "gerp", nil)
	if res.Status != core.StatusError {
		t.Fatalf("expected error status, got %v", res.Status)
	}
	if res.Output != "gerp: command not found. Did you mean 'grep'?" {
		t.Fatalf("unexpected message %q", res.Output)
	}
	res = r.Dispatch(&core.Context{}, "kubectl", nil)
	if res.Output != "kubectl: command not found" {
		t.Fatalf("unexpected message %q", res.Output)
	}
}

func TestAppletFeatureGate(t *testing.T) {
	a := echoApplet("crontab")
	a.Feature = core.FeatureCron
	ctx := &core.Context{Features: core.NewFeatures(core.FeatureArchive)}
	res := a.Run(ctx, nil)
	if res.Status != core.StatusInfo || res.Output != "crontab: not available in this level" {
		t.Fatalf("unexpected gated result %+v", res)
	}
	ctx.Features = nil
	if res := a.Run(ctx, nil); res.Status != core.StatusSuccess {
		t.Fatalf("nil feature set should enable everything, got %+v", res)
	}
}

func TestFlagsParse(t *testing.T) {
	var long, all, recursive, installed bool
	var num, delim string
	f := core.Flags{
		Bool:  map[byte]*bool{'l': &long, 'a': &all, 'R': &recursive},
		Value: map[byte]*string{'n': &num, 'd': &delim},
		Long:  map[string]*bool{"installed": &installed},
		Aliases: map[byte]byte{
			'r': 'R',
		},
	}
	rest, err := f.Parse([]string{"-la", "dir", "-n5", "-d", ",", "--installed", "-r", "--", "-x"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !long || !all || !recursive || !installed || num != "5" || delim != "," {
		t.Fatalf("flags not applied: l=%v a=%v R=%v installed=%v n=%q d=%q", long, all, recursive, installed, num, delim)
	}
	if diff := cmp.Diff([]string{"dir", "-x"}, rest); diff != "" {
		t.Fatalf("operands mismatch (-want +got):\n%s", diff)
	}
}

func TestFlagsErrors(t *testing.T) {
	var n string
	f := core.Flags{Value: map[byte]*string{'n': &n}}
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-z"}, "invalid option -- 'z'"},
		{[]string{"-n"}, "option requires an argument -- 'n'"},
		{[]string{"--bogus"}, "unrecognized option '--bogus'"},
	}
	for _, tt := range tests {
		_, err := f.Parse(tt.args)
		if err == nil || err.Error() != tt.want {
			t.Errorf("Parse(%v) error = %v, want %q", tt.args, err, tt.want)
		}
	}
	rest, err := core.ParseBoolFlags([]string{"-"}, nil)
	if err != nil || len(rest) != 1 || rest[0] != "-" {
		t.Errorf("lone dash should be an operand: %v %v", rest, err)
	}
}

func TestParseHeadTailArgs(t *testing.T) {
	opts, err := core.ParseHeadTailArgs("tail", []string{"-n", "+3", "f"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.From || opts.Lines != 3 || opts.Files[0] != "f" {
		t.Fatalf("unexpected opts %+v", opts)
	}
	opts, err = core.ParseHeadTailArgs("head", []string{"-5"})
	if err != nil || opts.Lines != 5 || len(opts.Files) != 0 {
		t.Fatalf("unexpected opts %+v %v", opts, err)
	}
	if _, err := core.ParseHeadTailArgs("head", []string{"-n", "+2"}); err == nil {
		t.Fatal("head should reject +N")
	}
}

func TestReadInputs(t *testing.T) {
	st := vfs.New(vfs.NewDir(map[string]*vfs.Node{
		"a.txt": vfs.NewFile("one\n"),
		"d":     vfs.NewDir(nil),
	}), "/")
	ctx := &core.Context{State: st, Stdin: "piped"}
	in, res := ctx.ReadInputs("cat", nil)
	if res.Failed() || len(in) != 1 || in[0].Data != "piped" {
		t.Fatalf("stdin not used: %+v %+v", in, res)
	}
	_, res = ctx.ReadInputs("cat", []string{"a.txt", "missing"})
	if res.Output != "cat: missing: No such file or directory" {
		t.Fatalf("unexpected error %q", res.Output)
	}
	_, res = ctx.ReadInputs("cat", []string{"d"})
	if res.Output != "cat: d: Is a directory" {
		t.Fatalf("unexpected error %q", res.Output)
	}
}

func TestTableTrimsPadding(t *testing.T) {
	out := core.Table([]any{"PID", "CMD"}, [][]any{{1, "init"}, {42, "sshd"}})
	want := "PID  CMD\n1    init\n42   sshd"
	if out != want {
		t.Fatalf("table mismatch:\n%q\nwant\n%q", out, want)
	}
}

func TestLines(t *testing.T) {
	if got := core.Lines(""); got != nil {
		t.Errorf("Lines(\"\") = %v", got)
	}
	if diff := cmp.Diff([]string{"a", "", "b"}, core.Lines("a\n\nb\n")); diff != "" {
		t.Errorf("lines mismatch:\n%s", diff)
	}
}

func TestHumanSize(t *testing.T) {
	tests := map[int64]string{
		0:                 "0",
		512:               "512",
		1024:              "1.0K",
		4096:              "4.0K",
		1536:              "1.5K",
		10 * 1024:         "10K",
		512 << 20:         "512M",
		19 << 30:          "19G",
		6<<30 + 420<<20:   "6.5G",
		(10 << 20) - 1:    "10M",
		(9 << 30) + 1<<20: "9.1G",
	}
	for n, want := range tests {
		if got := core.HumanSize(n); got != want {
			t.Errorf("HumanSize(%d) = %q, want %q", n, got, want)
		}
	}
	if got := core.KiB(4097); got != 5 {
		t.Errorf("KiB(4097) = %d, want 5", got)
	}
}
