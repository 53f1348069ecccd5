// Package chown implements the chown command.
package chown

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run sets owner and group from an OWNER[:GROUP] spec. ":GROUP" changes the
// group only; "OWNER:" also sets the group to OWNER.
func Run(ctx *core.Context, args []string) core.Result {
	var recursive, verbose bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'R': &recursive, 'v': &verbose},
		Long: map[string]*bool{"recursive": &recursive, "verbose": &verbose},
	}.Parse(args)
	if err != nil {
		return core.UsageError("chown", err.Error())
	}
	switch len(operands) {
	case 0:
		return core.UsageError("chown", "missing operand")
	case 1:
		return core.Errorf("chown", "missing operand after '%s'", operands[0])
	}
	owner, group, err := ParseOwner(operands[0])
	if err != nil {
		return core.Errorf("chown", "%v", err)
	}

	st := ctx.State
	var out, errs []string
	for _, p := range operands[1:] {
		next, err := st.Chown(p, owner, group, recursive)
		if err != nil {
			errs = append(errs, fmt.Sprintf("chown: cannot access '%s': %s", p, vfs.Reason(err)))
			continue
		}
		st = next
		if verbose {
			out = append(out, fmt.Sprintf("changed ownership of '%s' to %s", p, operands[0]))
		}
	}
	output := core.JoinLines(append(errs, out...))
	if len(errs) > 0 {
		return core.Result{Output: output, Status: core.StatusError, State: st}
	}
	return core.Changed(output, st)
}

// ParseOwner splits an OWNER[:GROUP] spec. Either part may be empty but not
// both.
func ParseOwner(spec string) (owner, group string, err error) {
	owner, group, hasGroup := strings.Cut(spec, ":")
	if !hasGroup {
		owner, group, hasGroup = strings.Cut(spec, ".")
	}
	if hasGroup && group == "" {
		group = owner
	}
	if owner == "" && group == "" {
		return "", "", fmt.Errorf("invalid spec: '%s'", spec)
	}
	for _, name := range []string{owner, group} {
		if name != "" && !validName(name) {
			return "", "", fmt.Errorf("invalid user: '%s'", spec)
		}
	}
	return owner, group, nil
}

func validName(name string) bool {
	for i, r := range name {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}
