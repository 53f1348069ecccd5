package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Builtin is one named command.
type Builtin interface {
	Name() string
	Description() string
	Run(ctx *Context, args []string) Result
}

// RunFunc is the entry point every applet package exports as Run.
type RunFunc func(ctx *Context, args []string) Result

// Applet adapts an applet package's Run function to Builtin. When Feature is
// set and disabled in the context, the applet reports that it is unavailable
// instead of running.
type Applet struct {
	Command string
	Summary string
	Feature string
	Main    RunFunc
}

func (a Applet) Name() string        { return a.Command }
func (a Applet) Description() string { return a.Summary }

func (a Applet) Run(ctx *Context, args []string) Result {
	if a.Feature != "" && !ctx.Features.Enabled(a.Feature) {
		return Info(a.Command + ": not available in this level")
	}
	return a.Main(ctx, args)
}

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 2

// Registry maps lower-cased command names to builtins.
type Registry struct {
	builtins map[string]Builtin
}

// NewRegistry returns a registry holding builtins.
func NewRegistry(builtins ...Builtin) *Registry {
	r := &Registry{builtins: make(map[string]Builtin, len(builtins))}
	for _, b := range builtins {
		r.Register(b)
	}
	return r
}

// Register adds or replaces b.
func (r *Registry) Register(b Builtin) {
	r.builtins[strings.ToLower(b.Name())] = b
}

// Lookup finds a builtin ignoring case.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	b, ok := r.builtins[strings.ToLower(name)]
	return b, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the registered name nearest to name, or "" when none is
// within two edits. Ties go to the alphabetically first name.
func (r *Registry) Suggest(name string) string {
	name = strings.ToLower(name)
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range r.Names() {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Dispatch runs the named builtin, or returns a "command not found" error.
func (r *Registry) Dispatch(ctx *Context, name string, args []string) Result {
	b, ok := r.Lookup(name)
	if !ok {
		return NotFound(name, r.Suggest(name))
	}
	return b.Run(ctx, args)
}

// NotFound is the error result for an unknown command.
func NotFound(name, suggestion string) Result {
	msg := fmt.Sprintf("%s: command not found", name)
	if suggestion != "" {
		msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
	}
	return Result{Output: msg, Status: StatusError}
}
