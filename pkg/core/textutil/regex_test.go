package textutil

import "testing"

func TestTranslateRegexp(t *testing.T) {
	tests := []struct {
		pat      string
		extended bool
		want     string
	}{
		{`a+b`, false, `a\+b`},
		{`a\+b`, false, `a+b`},
		{`\(ab\)*`, false, `(ab)*`},
		{`*star`, false, `\*star`},
		{`^*x`, false, `^\*x`},
		{`a|b`, false, `a\|b`},
		{`a\|b`, false, `a|b`},
		{`a|b`, true, `a|b`},
		{`(a)+`, true, `(a)+`},
		{`[[:digit:]]+`, true, `[[:digit:]]+`},
		{`[]a]`, false, `[]a]`},
		{`\<word\>`, false, `\bword\b`},
		{`a[`, false, `a\[`},
		{`x\.y`, false, `x\.y`},
	}
	for _, tt := range tests {
		if got := TranslateRegexp(tt.pat, tt.extended); got != tt.want {
			t.Errorf("TranslateRegexp(%q, %v) = %q, want %q", tt.pat, tt.extended, got, tt.want)
		}
	}
}

func TestCompileRegexp(t *testing.T) {
	re, err := CompileRegexp(`err\(or\)*`, false, true)
	if err != nil {
		t.Fatal(err)
	}
	if !re.MatchString("ERROROR") || re.MatchString("er") {
		t.Fatalf("unexpected matching for %s", re)
	}
}
