package vfs

import (
	"path"
	"strings"
)

// maxSymlinkHops bounds symlink traversal, matching Linux's MAXSYMLINKS.
const maxSymlinkHops = 40

// ResolvePath resolves p against base. Absolute paths are only cleaned;
// relative ones are joined onto base first, so "." and ".." are handled
// lexically. The result is always absolute and clean.
func ResolvePath(base, p string) string {
	if base == "" {
		base = "/"
	}
	if p == "" {
		return path.Clean("/" + base)
	}
	if !strings.HasPrefix(p, "/") {
		p = base + "/" + p
	}
	return path.Clean(p)
}

// Split breaks a clean absolute path into its segments. "/" has none.
func Split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Join is path.Join for absolute virtual paths.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// Base and Dir mirror path.Base and path.Dir.
func Base(p string) string { return path.Base(p) }
func Dir(p string) string  { return path.Dir(p) }

// IsWithin reports whether p equals root or lies below it.
func IsWithin(p, root string) bool {
	if root == "/" {
		return strings.HasPrefix(p, "/")
	}
	return p == root || strings.HasPrefix(p, root+"/")
}

// walk resolves an absolute path segment by segment, following symlinks in
// every intermediate segment and, if followLast is set, in the final one.
// It returns the physical path and the node found there. A missing final
// segment is not an error: the node is nil and the physical path names
// where it would live.
func (s *State) walk(p string, followLast bool) (string, *Node, error) {
	pending := Split(p)
	cur := "/"
	node := s.root
	hops := 0
	for len(pending) > 0 {
		seg := pending[0]
		pending = pending[1:]
		if node.kind != KindDir {
			return "", nil, newError(OpLookup, p, ErrNotDir)
		}
		child, ok := node.children[seg]
		if !ok {
			if len(pending) == 0 {
				return Join(cur, seg), nil, nil
			}
			return "", nil, newError(OpLookup, p, ErrNotExist)
		}
		if child.kind == KindSymlink && (len(pending) > 0 || followLast) {
			hops++
			if hops > maxSymlinkHops {
				return "", nil, newError(OpLookup, p, ErrLoop)
			}
			target := ResolvePath(cur, child.target)
			pending = append(Split(target), pending...)
			cur = "/"
			node = s.root
			continue
		}
		cur = Join(cur, seg)
		node = child
	}
	return cur, node, nil
}

// Physical returns p with every symlink segment dereferenced, including the
// last one. The path must exist.
func (s *State) Physical(p string) (string, error) {
	abs := s.Abs(p)
	phys, node, err := s.walk(abs, true)
	if err != nil {
		return "", err
	}
	if node == nil {
		return "", newError(OpLookup, abs, ErrNotExist)
	}
	return phys, nil
}
