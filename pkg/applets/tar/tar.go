// Package tar implements tar over the virtual filesystem. Archives are
// stored as ordinary files holding an archiveutil JSON payload.
package tar

import (
	"fmt"
	"path"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/archiveutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

const maxArchiveBytes = int64(64 << 20)

type options struct {
	create, extract, list bool
	verbose               bool
	compression           string
	file                  string
	dir                   string
}

// Run executes the tar command with the given arguments.
//
// Supported forms:
//
//	tar -c[z|J][v]f ARCHIVE PATH...
//	tar -t[v]f ARCHIVE
//	tar -x[v]f ARCHIVE [-C DIR]
//
// The leading dash of the first cluster is optional ("tar czf ...").
// -z and -J only record the compression name in the archive.
func Run(ctx *core.Context, args []string) core.Result {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append([]string{"-" + args[0]}, args[1:]...)
	}
	var opts options
	var gzip, xz bool
	operands, err := core.Flags{
		Bool:  map[byte]*bool{'c': &opts.create, 'x': &opts.extract, 't': &opts.list, 'v': &opts.verbose, 'z': &gzip, 'J': &xz},
		Value: map[byte]*string{'f': &opts.file, 'C': &opts.dir},
		Long: map[string]*bool{
			"create":  &opts.create,
			"extract": &opts.extract,
			"get":     &opts.extract,
			"list":    &opts.list,
			"verbose": &opts.verbose,
			"gzip":    &gzip,
			"xz":      &xz,
		},
		LongValue: map[string]*string{"file": &opts.file, "directory": &opts.dir},
	}.Parse(args)
	if err != nil {
		return core.UsageError("tar", err.Error())
	}
	switch {
	case gzip:
		opts.compression = archiveutil.CompressionGzip
	case xz:
		opts.compression = archiveutil.CompressionXz
	}

	modes := 0
	for _, m := range []bool{opts.create, opts.extract, opts.list} {
		if m {
			modes++
		}
	}
	switch {
	case modes == 0:
		return core.UsageError("tar", "You must specify one of the '-Acdtrux', '--delete' or '--test-label' options")
	case modes > 1:
		return core.UsageError("tar", "You may not specify more than one '-Acdtrux', '--delete' or  '--test-label' option")
	case opts.file == "":
		return core.UsageError("tar", "Refusing to read archive contents from terminal (missing -f option?)")
	}

	switch {
	case opts.create:
		if len(operands) == 0 {
			return core.UsageError("tar", "Cowardly refusing to create an empty archive")
		}
		return createArchive(ctx, &opts, operands)
	case opts.list:
		return listArchive(ctx, &opts, operands)
	}
	return extractArchive(ctx, &opts, operands)
}

func createArchive(ctx *core.Context, opts *options, paths []string) core.Result {
	a := &archiveutil.Archive{Compression: opts.compression}
	var msgs []string
	failed := false
	for _, p := range paths {
		name := path.Clean(p)
		if strings.HasPrefix(name, "/") {
			msgs = append(msgs, "tar: Removing leading `/' from member names")
			name = strings.TrimLeft(name, "/")
		}
		src := p
		if opts.dir != "" {
			src = path.Join(opts.dir, p)
		}
		node, err := ctx.State.Lstat(src)
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("tar: %s: Cannot stat: %s", p, vfs.Reason(err)))
			failed = true
			continue
		}
		addPath(a, name, node)
	}
	if opts.verbose {
		msgs = append(msgs, a.Manifest...)
	}
	content, err := archiveutil.Encode(a)
	if err != nil {
		return core.Errorf("tar", "%v", err)
	}
	st, err := ctx.State.WriteFile(opts.file, content, false)
	if err != nil {
		return core.FileError("tar", opts.file, err)
	}
	ctx.Log.Debug("tar: wrote %s with %d entries", opts.file, len(a.Entries))
	if failed {
		msgs = append(msgs, "tar: Exiting with failure status due to previous errors")
		return core.Result{Output: core.JoinLines(msgs), Status: core.StatusError, State: st}
	}
	return core.Changed(core.JoinLines(msgs), st)
}

// addPath appends n and, for directories, everything below it.
func addPath(a *archiveutil.Archive, name string, n *vfs.Node) {
	e := archiveutil.Entry{Path: name, Mode: fmt.Sprintf("%o", vfs.Octal(n.Perm()))}
	switch {
	case n.IsDir():
		e.Type = archiveutil.TypeDir
		a.Manifest = append(a.Manifest, name+"/")
	case n.IsSymlink():
		e.Type = archiveutil.TypeSymlink
		e.Target = n.Target()
		a.Manifest = append(a.Manifest, name)
	default:
		e.Type = archiveutil.TypeFile
		e.Content = n.Content()
		a.Manifest = append(a.Manifest, name)
	}
	a.Entries = append(a.Entries, e)
	if !n.IsDir() {
		return
	}
	for _, child := range n.Names() {
		addPath(a, path.Join(name, child), n.Child(child))
	}
}

func readArchive(ctx *core.Context, file string) (*archiveutil.Archive, *core.Result) {
	content, err := ctx.ReadFile(file)
	if err != nil {
		res := core.Errorf("tar", "%s: Cannot open: %s", file, vfs.Reason(err))
		return nil, &res
	}
	a, err := archiveutil.Decode(content)
	if err != nil {
		res := core.Errorf("tar", "%v", err)
		return nil, &res
	}
	return a, nil
}

// memberName is the entry name as tar prints it; directories end in "/".
func memberName(e archiveutil.Entry) string {
	if e.Type == archiveutil.TypeDir {
		return e.Path + "/"
	}
	return e.Path
}

// selected reports whether an entry is covered by the member operands.
func selected(name string, members []string) bool {
	if len(members) == 0 {
		return true
	}
	for _, m := range members {
		m = strings.TrimSuffix(m, "/")
		if name == m || strings.HasPrefix(name, m+"/") {
			return true
		}
	}
	return false
}

func listArchive(ctx *core.Context, opts *options, members []string) core.Result {
	a, errRes := readArchive(ctx, opts.file)
	if errRes != nil {
		return *errRes
	}
	stamp := ctx.System.Clock.Now().Format("2006-01-02 15:04")
	var lines []string
	for _, e := range a.Entries {
		if !selected(e.Path, members) {
			continue
		}
		name := memberName(e)
		if !opts.verbose {
			lines = append(lines, name)
			continue
		}
		kind, size := vfs.KindFile, len(e.Content)
		switch e.Type {
		case archiveutil.TypeDir:
			kind = vfs.KindDir
		case archiveutil.TypeSymlink:
			kind, name = vfs.KindSymlink, name+" -> "+e.Target
		}
		perm, _ := vfs.ParseOctalMode(padMode(e.Mode))
		lines = append(lines, fmt.Sprintf("%s %s/%s %7d %s %s", vfs.FormatMode(kind, perm), ctx.User(), ctx.User(), size, stamp, name))
	}
	return core.Ok(core.JoinLines(lines))
}

func extractArchive(ctx *core.Context, opts *options, members []string) core.Result {
	a, errRes := readArchive(ctx, opts.file)
	if errRes != nil {
		return *errRes
	}
	base := "."
	if opts.dir != "" {
		if !ctx.State.IsDir(opts.dir) {
			return core.Errorf("tar", "%s: Cannot open: No such file or directory", opts.dir)
		}
		base = opts.dir
	}

	st := ctx.State
	var lines []string
	var totalBytes int64
	for _, e := range a.Entries {
		if !selected(e.Path, members) {
			continue
		}
		if unsafe(e.Path) {
			lines = append(lines, fmt.Sprintf("tar: %s: Member name contains '..'", e.Path))
			continue
		}
		totalBytes += int64(len(e.Content))
		if totalBytes > maxArchiveBytes {
			return core.Errorf("tar", "archive too large")
		}
		next, err := extractEntry(st, path.Join(base, e.Path), e)
		if err != nil {
			return core.Result{
				Output: core.JoinLines(append(lines, fmt.Sprintf("tar: %s: Cannot open: %s", e.Path, vfs.Reason(err)))),
				Status: core.StatusError,
				State:  st,
			}
		}
		st = next
		if opts.verbose {
			lines = append(lines, memberName(e))
		}
	}
	ctx.Log.Debug("tar: extracted %s into %s", opts.file, base)
	return core.Changed(core.JoinLines(lines), st)
}

func unsafe(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return true
		}
	}
	return strings.HasPrefix(name, "/")
}

func extractEntry(st *vfs.State, target string, e archiveutil.Entry) (*vfs.State, error) {
	var err error
	if dir := path.Dir(target); !st.IsDir(dir) {
		if st, err = st.Mkdir(dir, true); err != nil {
			return nil, err
		}
	}
	switch e.Type {
	case archiveutil.TypeDir:
		if !st.IsDir(target) {
			if st, err = st.Mkdir(target, false); err != nil {
				return nil, err
			}
		}
	case archiveutil.TypeSymlink:
		if st, err = st.Remove(target, false, true); err != nil {
			return nil, err
		}
		return st.Link(e.Target, target, true)
	default:
		if st, err = st.WriteFile(target, e.Content, false); err != nil {
			return nil, err
		}
	}
	if perm, ok := vfs.ParseOctalMode(padMode(e.Mode)); ok {
		return st.Chmod(target, perm, false)
	}
	return st, nil
}

// padMode turns "644" or "7" style mode strings into three digits.
func padMode(m string) string {
	for len(m) < 3 {
		m = "0" + m
	}
	return m
}
