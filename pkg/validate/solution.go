package validate

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/level"
)

// Match names one way a command satisfied a level.
type Match string

const (
	MatchPattern  Match = "pattern"
	MatchPipeline Match = "pipeline-equivalence"
	MatchOutcome  Match = "outcome"
)

// Input is everything EvaluateSolution judges.
type Input struct {
	Command string
	Level   *level.Level
	Observation
}

// Evaluation is the verdict on one typed command.
type Evaluation struct {
	Success bool
	Matched []Match
	Message string
	// OtherValidApproaches are expected or accepted commands shaped
	// differently from the one typed.
	OtherValidApproaches []string
}

// Has reports whether m is among the matches.
func (e Evaluation) Has(m Match) bool {
	for _, got := range e.Matched {
		if got == m {
			return true
		}
	}
	return false
}

// ChecksOutcome reports whether l declares anything beyond the command
// text: an expected state, an expected output or post-conditions.
func ChecksOutcome(l *level.Level) bool {
	return l.Expected() != nil || l.ExpectedOutput != nil || l.PostConditions != nil
}

// EvaluateSolution judges in.Command against in.Level. Levels that check
// an outcome succeed only when the outcome matches; other levels succeed
// on a pattern or pipeline-equivalence match.
func EvaluateSolution(in Input) Evaluation {
	var ev Evaluation
	l := in.Level
	if l == nil {
		ev.Message = "no level"
		return ev
	}
	candidates := append([]string{l.ExpectedCommand}, l.AcceptedCommands...)

	if ValidateCommand(in.Command, l.ExpectedCommand, l.AcceptedCommands...) {
		ev.Matched = append(ev.Matched, MatchPattern)
	}
	if typed := PipelineSignature(in.Command); typed != "" {
		for _, c := range candidates {
			if PipelineSignature(c) == typed {
				ev.Matched = append(ev.Matched, MatchPipeline)
				break
			}
		}
	}

	if ChecksOutcome(l) {
		outcome := ValidateFileSystemState(in.State, l.Expected())
		if outcome.Success {
			outcome = ValidatePostConditions(l, in.Observation)
		}
		if outcome.Success {
			ev.Matched = append(ev.Matched, MatchOutcome)
		}
		ev.Success = outcome.Success
		ev.Message = outcome.Message
	} else {
		ev.Success = len(ev.Matched) > 0
		if !ev.Success {
			ev.Message = "that command does not solve this level"
		}
	}

	typed := Signature(in.Command)
	seen := map[string]bool{typed: true}
	for _, c := range candidates {
		sig := Signature(c)
		if strings.TrimSpace(c) == "" || seen[sig] {
			continue
		}
		seen[sig] = true
		ev.OtherValidApproaches = append(ev.OtherValidApproaches, c)
	}
	return ev
}
