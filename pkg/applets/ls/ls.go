// Package ls implements the ls command.
package ls

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Options holds ls command options.
type Options struct {
	All        bool // -a: show hidden files
	Long       bool // -l: long format
	OnePerLine bool // -1: one entry per line
	Recursive  bool // -R: recursive listing
	Reverse    bool // -r: reverse sort order
	Directory  bool // -d: list directories themselves
	Classify   bool // -F: append indicator to entries
}

// Run executes the ls command with the given arguments.
//
// Supported flags:
//
//	-a    Show all entries including those starting with .
//	-A    Same as -a
//	-l    Use long listing format
//	-1    One entry per line
//	-R    List directories recursively
//	-r    Reverse sort order
//	-d    List directories themselves, not their contents
//	-F    Append indicator (/ or @) to entries
func Run(ctx *core.Context, args []string) core.Result {
	opts := Options{}
	paths, err := core.Flags{
		Bool: map[byte]*bool{
			'a': &opts.All, 'l': &opts.Long, '1': &opts.OnePerLine,
			'R': &opts.Recursive, 'r': &opts.Reverse, 'd': &opts.Directory,
			'F': &opts.Classify,
		},
		Aliases: map[byte]byte{'A': 'a'},
		Long:    map[string]*bool{"all": &opts.All, "recursive": &opts.Recursive},
	}.Parse(args)
	if err != nil {
		return core.UsageError("ls", err.Error())
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	st := ctx.State
	var errs, dirs []string
	var fileEntries []vfs.Entry
	for _, p := range paths {
		node, err := st.Stat(p)
		if err != nil {
			// a dangling symlink still lists as itself
			if lnode, lerr := st.Lstat(p); lerr == nil {
				fileEntries = append(fileEntries, vfs.Entry{Name: p, Path: st.Abs(p), Node: lnode})
				continue
			}
			errs = append(errs, "ls: cannot access '"+p+"': "+vfs.Reason(err))
			continue
		}
		if node.IsDir() && !opts.Directory {
			dirs = append(dirs, p)
			continue
		}
		lnode, _ := st.Lstat(p)
		fileEntries = append(fileEntries, vfs.Entry{Name: p, Path: st.Abs(p), Node: lnode})
	}

	var blocks []string
	if len(fileEntries) > 0 {
		blocks = append(blocks, format(fileEntries, &opts))
	}
	headers := len(paths) > 1 || (opts.Recursive && !opts.Long)
	for _, d := range dirs {
		entries, err := st.List(d, vfs.ListOptions{All: opts.All, Recursive: opts.Recursive && opts.Long})
		if err != nil {
			errs = append(errs, "ls: cannot open directory '"+d+"': "+vfs.Reason(err))
			continue
		}
		if opts.Recursive && !opts.Long {
			blocks = append(blocks, recursiveBlocks(st, d, &opts)...)
			continue
		}
		body := format(entries, &opts)
		if headers {
			body = strings.TrimSuffix(d+":\n"+body, "\n")
		}
		blocks = append(blocks, body)
	}

	sep := "\n"
	if headers {
		sep = "\n\n"
	}
	out := strings.Join(nonEmpty(blocks), sep)
	if len(errs) > 0 {
		return core.Result{Output: joinOutput(strings.Join(errs, "\n"), out), Status: core.StatusError}
	}
	return core.Ok(out)
}

// recursiveBlocks lists d and every directory below it, each under a
// "path:" header.
func recursiveBlocks(st *vfs.State, d string, opts *Options) []string {
	entries, err := st.List(d, vfs.ListOptions{All: opts.All})
	if err != nil {
		return nil
	}
	blocks := []string{strings.TrimSuffix(d+":\n"+format(entries, opts), "\n")}
	for _, e := range entries {
		if e.Node.IsDir() {
			blocks = append(blocks, recursiveBlocks(st, strings.TrimSuffix(d, "/")+"/"+e.Name, opts)...)
		}
	}
	return blocks
}

func format(entries []vfs.Entry, opts *Options) string {
	if opts.Reverse {
		rev := make([]vfs.Entry, len(entries))
		for i, e := range entries {
			rev[len(entries)-1-i] = e
		}
		entries = rev
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if opts.Long {
			names = append(names, vfs.FormatLong(e))
			continue
		}
		names = append(names, e.Name+indicator(e.Node, opts))
	}
	if opts.Long || opts.OnePerLine {
		return strings.Join(names, "\n")
	}
	return strings.Join(names, "  ")
}

func indicator(n *vfs.Node, opts *Options) string {
	if !opts.Classify {
		return ""
	}
	switch {
	case n.IsDir():
		return "/"
	case n.IsSymlink():
		return "@"
	case n.IsFile() && n.Perm()&0o111 != 0:
		return "*"
	}
	return ""
}

func nonEmpty(blocks []string) []string {
	out := blocks[:0]
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

func joinOutput(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "\n" + b
}
