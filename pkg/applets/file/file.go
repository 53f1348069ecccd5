// Package file implements the file command.
package file

import (
	"strings"
	"unicode/utf8"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/archiveutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run reports a guess at the type of each operand from its node kind and
// leading content.
func Run(ctx *core.Context, args []string) core.Result {
	var brief bool
	paths, err := core.Flags{Bool: map[byte]*bool{'b': &brief}}.Parse(args)
	if err != nil {
		return core.UsageError("file", err.Error())
	}
	if len(paths) == 0 {
		return core.UsageError("file", "missing operand")
	}
	out := make([]string, 0, len(paths))
	failed := false
	for _, p := range paths {
		desc := ""
		node, err := ctx.State.Lstat(p)
		if err != nil {
			desc = "cannot open '" + p + "' (" + vfs.Reason(err) + ")"
			failed = true
		} else {
			desc = Describe(node)
		}
		if !brief {
			desc = p + ": " + desc
		}
		out = append(out, desc)
	}
	if failed {
		return core.Result{Output: core.JoinLines(out), Status: core.StatusError}
	}
	return core.Ok(core.JoinLines(out))
}

// Describe names the type of n.
func Describe(n *vfs.Node) string {
	switch {
	case n.IsDir():
		return "directory"
	case n.IsSymlink():
		return "symbolic link to " + n.Target()
	}
	data := n.Content()
	switch {
	case data == "":
		return "empty"
	case strings.HasPrefix(data, "#!"):
		return interpreter(data) + " script, ASCII text executable"
	case isArchive(data):
		return "POSIX tar archive"
	case !utf8.ValidString(data) || strings.ContainsRune(data, 0):
		return "data"
	case strings.HasPrefix(strings.TrimSpace(data), "{") || strings.HasPrefix(strings.TrimSpace(data), "["):
		return "JSON text data"
	}
	for _, r := range data {
		if r > 127 {
			return "Unicode text, UTF-8 text"
		}
	}
	return "ASCII text"
}

func isArchive(data string) bool {
	_, err := archiveutil.Decode(data)
	return err == nil
}

func interpreter(data string) string {
	line, _, _ := strings.Cut(data[2:], "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "a"
	}
	name := vfs.Base(fields[0])
	if name == "env" && len(fields) > 1 {
		name = fields[1]
	}
	switch {
	case name == "bash":
		return "Bourne-Again shell"
	case name == "sh":
		return "POSIX shell"
	case strings.HasPrefix(name, "python"):
		return "Python"
	}
	return "a " + name
}
