package testutil

import (
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

const MaxFuzzBytes = 2048

func ClampBytes(data []byte, max int) []byte {
	if len(data) > max {
		return data[:max]
	}
	return data
}

func ClampString(data string, max int) string {
	if len(data) > max {
		return data[:max]
	}
	return data
}

// FuzzApplet runs an applet over a seeded filesystem and checks the
// invariants every builtin keeps: it returns and errors carry a message.
func FuzzApplet(t *testing.T, run core.RunFunc, args []string, input string, files map[string]string) core.Result {
	t.Helper()
	ctx := NewContext(NewState(t, files), ClampString(input, MaxFuzzBytes))
	res := run(ctx, args)
	if res.Failed() && res.Output == "" {
		t.Fatalf("args %q: error result without a message", args)
	}
	return res
}
