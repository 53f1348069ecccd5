package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSimple(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Command
	}{
		{
			name: "words",
			in:   "ls -la  /tmp",
			want: &Command{Name: "ls", Args: []string{"-la", "/tmp"}},
		},
		{
			name: "quotes kept",
			in:   `echo "a | b" 'c > d' e\ f`,
			want: &Command{Name: "echo", Args: []string{`"a | b"`, `'c > d'`, `e\ f`}},
		},
		{
			name: "standalone redirections",
			in:   "sort < in.txt > out.txt 2> err.log",
			want: &Command{Name: "sort", Redirections: []Redirection{
				{Kind: RedirStdin, Target: "in.txt"},
				{Kind: RedirStdout, Target: "out.txt"},
				{Kind: RedirStderr, Target: "err.log"},
			}},
		},
		{
			name: "attached redirections",
			in:   "echo hi >>log.txt 2>>err.txt",
			want: &Command{Name: "echo", Args: []string{"hi"}, Redirections: []Redirection{
				{Kind: RedirStdout, Mode: ModeAppend, Target: "log.txt"},
				{Kind: RedirStderr, Mode: ModeAppend, Target: "err.txt"},
			}},
		},
		{
			name: "merge",
			in:   "ls missing > out 2>&1",
			want: &Command{Name: "ls", Args: []string{"missing"}, Redirections: []Redirection{
				{Kind: RedirStdout, Target: "out"},
				{Kind: RedirMerge},
			}},
		},
		{
			name: "operator glued to word",
			in:   "echo hi>out",
			want: &Command{Name: "echo", Args: []string{"hi"}, Redirections: []Redirection{
				{Kind: RedirStdout, Target: "out"},
			}},
		},
		{
			name: "digit word is not stderr",
			in:   "echo 12>out",
			want: &Command{Name: "echo", Args: []string{"12"}, Redirections: []Redirection{
				{Kind: RedirStdout, Target: "out"},
			}},
		},
		{
			name: "redirection only",
			in:   "> empty.txt",
			want: &Command{Redirections: []Redirection{{Kind: RedirStdout, Target: "empty.txt"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			cmd, ok := got.(*Command)
			if !ok {
				t.Fatalf("expected *Command, got %T", got)
			}
			if diff := cmp.Diff(tt.want, cmd); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePipeline(t *testing.T) {
	got, err := Parse(`cat notes.txt | grep "a|b" | sort -r > out.txt`)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := got.(*Pipeline)
	if !ok {
		t.Fatalf("expected *Pipeline, got %T", got)
	}
	want := []*Command{
		{Name: "cat", Args: []string{"notes.txt"}},
		{Name: "grep", Args: []string{`"a|b"`}},
		{Name: "sort", Args: []string{"-r"}, Redirections: []Redirection{{Kind: RedirStdout, Target: "out.txt"}}},
	}
	if diff := cmp.Diff(want, p.Stages); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if p.String() != `cat notes.txt | grep "a|b" | sort -r >out.txt` {
		t.Fatalf("String() = %q", p.String())
	}
}

func TestParseBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		got, err := Parse(in)
		if got != nil || err != nil {
			t.Errorf("Parse(%q) = %v, %v; want nil, nil", in, got, err)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"echo >", "syntax error near unexpected token 'newline'"},
		{"cat <", "syntax error near unexpected token 'newline'"},
		{"echo > > x", "syntax error near unexpected token '>'"},
		{"ls |", "syntax error near unexpected token '|'"},
		{"| wc", "syntax error near unexpected token '|'"},
		{"ls || wc", "'||' is not supported: run one command per line"},
		{"mkdir -p a/b && ls", "'&&' is not supported: run one command per line"},
		{"cd /tmp; ls", "';' is not supported: run one command per line"},
		{`echo "open`, `unexpected EOF while looking for matching '"'`},
		{"echo 'open", `unexpected EOF while looking for matching '''`},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		serr, ok := err.(*SyntaxError)
		if !ok {
			t.Errorf("Parse(%q) error = %v, want *SyntaxError", tt.in, err)
			continue
		}
		if serr.Msg != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, serr.Msg, tt.want)
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add("echo ok")
	f.Add("echo ok | cat")
	f.Add("echo ok > out.txt 2>&1")
	f.Add(`grep "a b" 'c|d' < in`)
	f.Add(`echo \"x`)
	if testing.Short() {
		f.Skip("fuzzing skipped in short mode")
	}
	f.Fuzz(func(t *testing.T, in string) {
		got, err := Parse(in)
		if err != nil {
			if _, ok := err.(*SyntaxError); !ok {
				t.Fatalf("unexpected error type %T", err)
			}
			return
		}
		if got == nil {
			return
		}
		for _, c := range got.Commands() {
			for _, r := range c.Redirections {
				if r.Kind != RedirMerge && r.Target == "" {
					t.Fatalf("redirection without target in %q", in)
				}
			}
		}
	})
}
