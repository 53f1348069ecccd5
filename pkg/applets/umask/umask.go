// Package umask implements the umask shell builtin.
package umask

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run prints the file creation mask, or sets it from three octal digits.
// -S prints it symbolically.
func Run(ctx *core.Context, args []string) core.Result {
	var symbolic bool
	operands, err := core.Flags{Bool: map[byte]*bool{'S': &symbolic}}.Parse(args)
	if err != nil {
		return core.UsageError("umask", err.Error())
	}
	if len(operands) > 1 {
		return core.UsageError("umask", "too many arguments")
	}
	if len(operands) == 0 {
		mask := ctx.State.Umask()
		if symbolic {
			return core.Ok(Symbolic(mask))
		}
		return core.Ok(fmt.Sprintf("%04o", uint32(mask)))
	}

	spec := operands[0]
	if len(spec) == 4 && spec[0] == '0' {
		spec = spec[1:]
	}
	mask, ok := vfs.ParseOctalMode(spec)
	if !ok || len(spec) != 3 {
		return core.Errorf("umask", "%s: octal number out of range", operands[0])
	}
	return core.Changed("", ctx.State.WithUmask(mask))
}

// Symbolic renders the permissions a mask leaves, as "u=rwx,g=rx,o=rx".
func Symbolic(mask fs.FileMode) string {
	allowed := ^mask & fs.ModePerm
	parts := make([]string, 0, 3)
	for i, who := range []string{"u", "g", "o"} {
		shift := uint(6 - 3*i)
		var b strings.Builder
		for j, c := range "rwx" {
			if allowed&(1<<(shift+uint(2-j))) != 0 {
				b.WriteRune(c)
			}
		}
		parts = append(parts, who+"="+b.String())
	}
	return strings.Join(parts, ",")
}
