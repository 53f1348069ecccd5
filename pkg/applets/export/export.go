// Package export implements the export and unset shell builtins. Both
// mutate the session environment held by the context.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// Run sets NAME=value pairs, or lists the environment when bare.
func Run(ctx *core.Context, args []string) core.Result {
	var operands []string
	for _, a := range args {
		switch a {
		case "-p", "--":
		default:
			operands = append(operands, a)
		}
	}
	if len(operands) == 0 {
		return core.Ok(core.JoinLines(Declarations(ctx.Env)))
	}
	if ctx.Env == nil {
		ctx.Env = map[string]string{}
	}

	var errs []string
	for _, op := range operands {
		name, value, assign := strings.Cut(op, "=")
		if !ValidName(name) {
			errs = append(errs, fmt.Sprintf("export: `%s': not a valid identifier", op))
			continue
		}
		if assign {
			ctx.Env[name] = value
			ctx.Log.Trace("export %s", name)
		} else if _, ok := ctx.Env[name]; !ok {
			ctx.Env[name] = ""
		}
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
	}
	return core.Ok("")
}

// RunUnset removes variables from the environment.
func RunUnset(ctx *core.Context, args []string) core.Result {
	var errs []string
	for _, name := range args {
		if name == "-v" {
			continue
		}
		if !ValidName(name) {
			errs = append(errs, fmt.Sprintf("unset: `%s': not a valid identifier", name))
			continue
		}
		delete(ctx.Env, name)
	}
	if len(errs) > 0 {
		return core.Result{Output: core.JoinLines(errs), Status: core.StatusError}
	}
	return core.Ok("")
}

// Declarations renders env the way "export -p" does, sorted by name.
func Declarations(env map[string]string) []string {
	names := make([]string, 0, len(env))
	for k := range env {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]string, len(names))
	for i, k := range names {
		out[i] = fmt.Sprintf("declare -x %s=%q", k, env[k])
	}
	return out
}

// ValidName reports whether name is a shell identifier.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
