// Package sha256sum prints and verifies content checksums. The digest is
// the reproducible archiveutil checksum, not a real SHA-256.
package sha256sum

import (
	"fmt"
	"strings"

	pluralize "github.com/gertd/go-pluralize"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/archiveutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

var words = pluralize.NewClient()

// Run executes the sha256sum command with the given arguments.
//
// Supported flags:
//
//	-c, --check   Read checksums from FILEs and verify them
//	--quiet       Don't print OK for each verified file
//	--status      Print nothing; the result status reports success
func Run(ctx *core.Context, args []string) core.Result {
	var check, quiet, status bool
	operands, err := core.Flags{
		Bool: map[byte]*bool{'c': &check, 'b': nil, 't': nil},
		Long: map[string]*bool{"check": &check, "quiet": &quiet, "status": &status, "binary": nil, "text": nil},
	}.Parse(args)
	if err != nil {
		return core.UsageError("sha256sum", err.Error())
	}
	if len(operands) == 0 {
		operands = []string{"-"}
	}
	if check {
		return verify(ctx, operands, quiet, status)
	}

	var lines []string
	failed := false
	for _, f := range operands {
		data, err := ctx.ReadFile(f)
		if err != nil {
			lines = append(lines, "sha256sum: "+f+": "+vfs.Reason(err))
			failed = true
			continue
		}
		lines = append(lines, archiveutil.Checksum(data)+"  "+f)
	}
	if failed {
		return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(lines))
}

func verify(ctx *core.Context, lists []string, quiet, status bool) core.Result {
	var lines []string
	checked, mismatched, unreadable, malformed := 0, 0, 0, 0
	for _, list := range lists {
		content, err := ctx.ReadFile(list)
		if err != nil {
			return core.Errorf("sha256sum", "%s: %s", list, vfs.Reason(err))
		}
		for _, line := range core.Lines(content) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			want, name, ok := parseLine(line)
			if !ok {
				malformed++
				continue
			}
			checked++
			data, err := ctx.ReadFile(name)
			switch {
			case err != nil:
				unreadable++
				lines = append(lines, "sha256sum: "+name+": "+vfs.Reason(err), name+": FAILED open or read")
			case archiveutil.Checksum(data) != want:
				mismatched++
				lines = append(lines, name+": FAILED")
			case !quiet:
				lines = append(lines, name+": OK")
			}
		}
	}
	if checked == 0 {
		return core.Errorf("sha256sum", "%s: no properly formatted checksum lines found", lists[0])
	}
	if malformed > 0 {
		lines = append(lines, fmt.Sprintf("sha256sum: WARNING: %s improperly formatted", count(malformed, "line is", "lines are")))
	}
	if unreadable > 0 {
		lines = append(lines, fmt.Sprintf("sha256sum: WARNING: %s could not be read", count(unreadable, "listed file", "")))
	}
	if mismatched > 0 {
		lines = append(lines, fmt.Sprintf("sha256sum: WARNING: %s did NOT match", count(mismatched, "computed checksum", "")))
	}
	ok := mismatched == 0 && unreadable == 0
	if status {
		lines = nil
	}
	if !ok {
		return core.Result{Output: core.JoinLines(lines), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(lines))
}

// parseLine splits "<hex>  name" or "<hex> *name".
func parseLine(line string) (string, string, bool) {
	sum, rest, ok := strings.Cut(line, " ")
	if !ok || len(sum) != 64 || strings.Trim(strings.ToLower(sum), "0123456789abcdef") != "" {
		return "", "", false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(rest, " "), "*")
	if name == "" {
		return "", "", false
	}
	return strings.ToLower(sum), name, true
}

// count phrases n items, pluralizing the noun unless plural is given.
func count(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	if plural == "" {
		plural = words.Plural(singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
