// Package find implements a minimal subset of find.
package find

import (
	"regexp"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/pattern"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

type actionType int

const (
	actionPrint actionType = iota
	actionDelete
)

type options struct {
	followSymlinks bool
	minDepth       int
	maxDepth       int
	name           *regexp.Regexp
	path           *regexp.Regexp
	typeFilter     byte
	sizeFilter     *sizeFilter
	empty          bool
	actions        []actionType
}

type sizeFilter struct {
	op   byte
	size int64
	unit int64
}

// Run executes the find command with the given arguments.
//
// Supported expressions:
//
//	-name PAT / -iname PAT   Match the base name against a shell pattern
//	-path PAT / -ipath PAT   Match the whole path
//	-type f|d|l              Match the node type
//	-mindepth N, -maxdepth N Limit the depth searched
//	-size [+-]N[ckb]         Match the size
//	-empty                   Match empty files and directories
//	-print, -delete          Actions; -print is the default
//	-L                       Follow symbolic links
func Run(ctx *core.Context, args []string) core.Result {
	opts := options{maxDepth: -1}
	var paths []string
	i := 0
	for i < len(args) && (!strings.HasPrefix(args[i], "-") || args[i] == "-") {
		paths = append(paths, args[i])
		i++
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	for ; i < len(args); i++ {
		arg := args[i]
		value := func() (string, bool) {
			if i+1 >= len(args) {
				return "", false
			}
			i++
			return args[i], true
		}
		switch arg {
		case "-L", "-follow", "-H":
			opts.followSymlinks = true
		case "-xdev", "-mount", "-depth":
		case "-name", "-iname", "-path", "-ipath":
			pat, ok := value()
			if !ok {
				return missing(arg)
			}
			re, err := compile(pat, arg[1] == 'i')
			if err != nil {
				return core.Errorf("find", "invalid pattern '%s'", pat)
			}
			if strings.HasSuffix(arg, "name") {
				opts.name = re
			} else {
				opts.path = re
			}
		case "-type":
			val, ok := value()
			if !ok {
				return missing(arg)
			}
			if len(val) != 1 || strings.IndexByte("fdl", val[0]) < 0 {
				return core.Errorf("find", "Unknown argument to -type: %s", val)
			}
			opts.typeFilter = val[0]
		case "-mindepth", "-maxdepth":
			val, ok := value()
			if !ok {
				return missing(arg)
			}
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return core.Errorf("find", "invalid %s", arg)
			}
			if arg == "-mindepth" {
				opts.minDepth = n
			} else {
				opts.maxDepth = n
			}
		case "-size":
			val, ok := value()
			if !ok {
				return missing(arg)
			}
			filter, err := parseSize(val)
			if err != nil {
				return core.Errorf("find", "invalid -size")
			}
			opts.sizeFilter = filter
		case "-empty":
			opts.empty = true
		case "-print":
			opts.actions = append(opts.actions, actionPrint)
		case "-delete":
			opts.actions = append(opts.actions, actionDelete)
		default:
			if strings.HasPrefix(arg, "-") {
				return core.Errorf("find", "unknown predicate '%s'", arg)
			}
			return core.Errorf("find", "paths must precede expression: '%s'", arg)
		}
	}
	if len(opts.actions) == 0 {
		opts.actions = []actionType{actionPrint}
	}

	w := &walker{st: ctx.State, opts: &opts}
	for _, root := range paths {
		w.walkPath(root)
	}

	st := ctx.State
	// children are deleted before their directory
	for k := len(w.doomed) - 1; k >= 0; k-- {
		p := w.doomed[k]
		next, err := remove(st, p)
		if err != nil {
			w.errs = append(w.errs, "find: cannot delete '"+p+"': "+vfs.Reason(err))
			continue
		}
		st = next
	}

	output := core.JoinLines(append(w.out, w.errs...))
	var res core.Result
	if len(w.errs) > 0 {
		res = core.Result{Output: output, Status: core.StatusError}
	} else {
		res = core.Ok(output)
	}
	if st != ctx.State {
		res.State = st
	}
	return res
}

func missing(arg string) core.Result {
	return core.Errorf("find", "missing argument to '%s'", arg)
}

// compile turns a find shell pattern into an anchored regexp.
func compile(pat string, fold bool) (*regexp.Regexp, error) {
	mode := pattern.EntireString
	expr, err := pattern.Regexp(pat, mode)
	if err != nil {
		return nil, err
	}
	if fold {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

type walker struct {
	st     *vfs.State
	opts   *options
	out    []string
	errs   []string
	doomed []string
}

func (w *walker) walkPath(root string) {
	stat := w.st.Lstat
	if w.opts.followSymlinks {
		stat = w.st.Stat
	}
	node, err := stat(root)
	if err != nil {
		w.errs = append(w.errs, "find: '"+root+"': "+vfs.Reason(err))
		return
	}
	w.walk(root, node, 0)
}

func (w *walker) walk(p string, n *vfs.Node, depth int) {
	if depth >= w.opts.minDepth && w.match(p, n) {
		for _, a := range w.opts.actions {
			switch a {
			case actionPrint:
				w.out = append(w.out, p)
			case actionDelete:
				w.doomed = append(w.doomed, p)
			}
		}
	}
	if !n.IsDir() || w.opts.maxDepth >= 0 && depth >= w.opts.maxDepth {
		return
	}
	for _, name := range n.Names() {
		child := n.Child(name)
		childPath := strings.TrimSuffix(p, "/") + "/" + name
		if w.opts.followSymlinks && child.IsSymlink() {
			resolved, err := w.st.Stat(childPath)
			if err != nil {
				w.errs = append(w.errs, "find: '"+childPath+"': "+vfs.Reason(err))
				continue
			}
			child = resolved
		}
		w.walk(childPath, child, depth+1)
	}
}

func (w *walker) match(p string, n *vfs.Node) bool {
	opts := w.opts
	if opts.name != nil && !opts.name.MatchString(vfs.Base(p)) {
		return false
	}
	if opts.path != nil && !opts.path.MatchString(p) {
		return false
	}
	switch opts.typeFilter {
	case 'f':
		if !n.IsFile() {
			return false
		}
	case 'd':
		if !n.IsDir() {
			return false
		}
	case 'l':
		if !n.IsSymlink() {
			return false
		}
	}
	if opts.sizeFilter != nil && !matchSize(n, opts.sizeFilter) {
		return false
	}
	if opts.empty {
		switch {
		case n.IsDir():
			return n.Len() == 0
		case n.IsFile():
			return n.Content() == ""
		}
		return false
	}
	return true
}

func remove(st *vfs.State, p string) (*vfs.State, error) {
	n, err := st.Lstat(p)
	if err != nil {
		return nil, err
	}
	if n.IsDir() {
		return st.Rmdir(p)
	}
	return st.Remove(p, false, false)
}

func parseSize(val string) (*sizeFilter, error) {
	filter := &sizeFilter{unit: 512}
	if val != "" && (val[0] == '+' || val[0] == '-') {
		filter.op = val[0]
		val = val[1:]
	}
	if val == "" {
		return nil, strconv.ErrSyntax
	}
	switch val[len(val)-1] {
	case 'c':
		filter.unit = 1
		val = val[:len(val)-1]
	case 'k':
		filter.unit = 1024
		val = val[:len(val)-1]
	case 'M':
		filter.unit = 1 << 20
		val = val[:len(val)-1]
	case 'b':
		val = val[:len(val)-1]
	}
	size, err := strconv.ParseInt(val, 10, 64)
	if err != nil || size < 0 {
		return nil, strconv.ErrSyntax
	}
	filter.size = size
	return filter, nil
}

// matchSize rounds the size up to whole units, as find does.
func matchSize(n *vfs.Node, filter *sizeFilter) bool {
	size := (n.Size() + filter.unit - 1) / filter.unit
	switch filter.op {
	case '+':
		return size > filter.size
	case '-':
		return size < filter.size
	default:
		return size == filter.size
	}
}
