package validate_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcarmo/go-shellsim/pkg/applets"
	"github.com/rcarmo/go-shellsim/pkg/level"
	"github.com/rcarmo/go-shellsim/pkg/shell"
	"github.com/rcarmo/go-shellsim/pkg/validate"
)

func loadLevel(t *testing.T, doc string) *level.Level {
	t.Helper()
	pack, err := level.Load(strings.NewReader(doc), level.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	return pack.Levels[0]
}

func TestEvaluatePattern(t *testing.T) {
	l := &level.Level{ExpectedCommand: "grep -inE foo"}
	ev := validate.EvaluateSolution(validate.Input{Command: "egrep -ni foo", Level: l})
	if !ev.Success || !ev.Has(validate.MatchPattern) {
		t.Errorf("evaluation = %+v, want a pattern match", ev)
	}
	if len(ev.OtherValidApproaches) != 0 {
		t.Errorf("other approaches = %v, want none", ev.OtherValidApproaches)
	}
}

func TestEvaluatePipelineEquivalence(t *testing.T) {
	l := &level.Level{
		ExpectedCommand:  "grep error app.log | wc -l",
		AcceptedCommands: []string{"grep -c error app.log"},
	}
	ev := validate.EvaluateSolution(validate.Input{Command: "cat app.log | grep error | cat | wc -l", Level: l})
	if ev.Has(validate.MatchPattern) {
		t.Error("unexpected pattern match")
	}
	// the leading cat names a file, so it is not a pass-through stage
	if ev.Has(validate.MatchPipeline) {
		t.Error("unexpected pipeline match")
	}

	ev = validate.EvaluateSolution(validate.Input{Command: "grep error app.log | tee | wc -l", Level: l})
	want := []validate.Match{validate.MatchPipeline}
	if diff := cmp.Diff(want, ev.Matched); diff != "" {
		t.Errorf("matched (-want +got):\n%s", diff)
	}
	if !ev.Success {
		t.Error("pipeline-equivalent command should succeed")
	}
	others := []string{"grep error app.log | wc -l", "grep -c error app.log"}
	if diff := cmp.Diff(others, ev.OtherValidApproaches); diff != "" {
		t.Errorf("other approaches (-want +got):\n%s", diff)
	}
}

func TestEvaluateNoMatch(t *testing.T) {
	l := &level.Level{ExpectedCommand: "ls -la"}
	ev := validate.EvaluateSolution(validate.Input{Command: "ls", Level: l})
	if ev.Success {
		t.Error("ls should not solve ls -la")
	}
	if diff := cmp.Diff([]string{"ls -la"}, ev.OtherValidApproaches); diff != "" {
		t.Errorf("other approaches (-want +got):\n%s", diff)
	}
}

const mkdirLevel = `{"levels": [{
  "id": "mkdir",
  "expectedCommand": "mkdir -p out/alpha",
  "acceptedCommands": ["mkdir out out/alpha"],
  "expectedState": {"cwd": "/home/user", "files": {
    "home": {"type": "dir", "children": {"user": {"type": "dir", "children": {
      "out": {"type": "dir", "children": {"alpha": {"type": "dir"}}}
    }}}},
    "tmp": {"type": "dir"},
    "etc": {"type": "dir", "children": {"hostname": {"type": "file", "content": "sandbox\n"}}}
  }}
}]}`

func TestEvaluateOutcome(t *testing.T) {
	l := loadLevel(t, mkdirLevel)
	tests := []struct {
		name    string
		lines   []string
		wantOK  bool
		matched []validate.Match
	}{
		{
			name:    "expected_command",
			lines:   []string{"mkdir -p out/alpha"},
			wantOK:  true,
			matched: []validate.Match{validate.MatchPattern, validate.MatchPipeline, validate.MatchOutcome},
		},
		{
			name:    "different_route",
			lines:   []string{"mkdir out", "cd out", "mkdir alpha", "cd .."},
			wantOK:  true,
			matched: []validate.Match{validate.MatchOutcome},
		},
		{
			name:    "right_command_wrong_state",
			lines:   []string{"touch stray", "mkdir -p out/alpha"},
			wantOK:  false,
			matched: []validate.Match{validate.MatchPattern, validate.MatchPipeline},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := shell.New(shell.Options{Registry: applets.Default()})
			st := l.Initial()
			var last string
			for _, line := range tt.lines {
				res := e.Execute(line, shell.ExecContext{State: st})
				if res.State != nil {
					st = res.State
				}
				last = line
			}
			ev := validate.EvaluateSolution(validate.Input{
				Command:     last,
				Level:       l,
				Observation: validate.Observation{State: st, System: e.System()},
			})
			if ev.Success != tt.wantOK {
				t.Errorf("success = %v (%s), want %v", ev.Success, ev.Message, tt.wantOK)
			}
			if diff := cmp.Diff(tt.matched, ev.Matched); diff != "" {
				t.Errorf("matched (-want +got):\n%s", diff)
			}
		})
	}
}
