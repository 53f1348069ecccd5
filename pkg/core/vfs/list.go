package vfs

import (
	"fmt"
	"strings"
)

// ListOptions controls List.
type ListOptions struct {
	All       bool // include dot entries
	Recursive bool // descend into subdirectories
}

// Entry is one listed node. Name is relative to the listed directory
// ("out/alpha" for a nested entry) or the path as given for a non-directory.
type Entry struct {
	Name string
	Path string
	Node *Node
}

// List lists p. A file lists as itself; a directory lists its entries in
// name order, depth first when recursive.
func (s *State) List(p string, opts ListOptions) ([]Entry, error) {
	abs := s.Abs(p)
	node, err := s.Stat(abs)
	if err != nil {
		return nil, err
	}
	if node.kind != KindDir {
		return []Entry{{Name: p, Path: abs, Node: node}}, nil
	}
	var out []Entry
	listDir(node, abs, "", opts, &out)
	return out, nil
}

func listDir(dir *Node, abs, prefix string, opts ListOptions, out *[]Entry) {
	for _, name := range dir.Names() {
		if !opts.All && strings.HasPrefix(name, ".") {
			continue
		}
		child := dir.children[name]
		e := Entry{Name: prefix + name, Path: Join(abs, name), Node: child}
		*out = append(*out, e)
		if opts.Recursive && child.kind == KindDir {
			listDir(child, e.Path, e.Name+"/", opts, out)
		}
	}
}

// FormatLong renders an entry as fixed fields: permissions, owner, group,
// size, inode and name. Directories get a trailing slash and symlinks show
// their target.
func FormatLong(e Entry) string {
	n := e.Node
	name := e.Name
	switch n.kind {
	case KindDir:
		name += "/"
	case KindSymlink:
		name += " -> " + n.target
	}
	return fmt.Sprintf("%s %-8s %-8s %6d %6d %s", n.Permissions(), n.owner, n.group, n.Size(), n.inode, name)
}

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(p string, n *Node) error

// Walk visits p and everything below it in name order. Symlinks are
// reported but not followed, except for p itself.
func (s *State) Walk(p string, fn WalkFunc) error {
	abs := s.Abs(p)
	node, err := s.Stat(abs)
	if err != nil {
		return err
	}
	return walkNode(abs, node, fn)
}

func walkNode(p string, n *Node, fn WalkFunc) error {
	if err := fn(p, n); err != nil {
		return err
	}
	if n.kind != KindDir {
		return nil
	}
	for _, name := range n.Names() {
		if err := walkNode(Join(p, name), n.children[name], fn); err != nil {
			return err
		}
	}
	return nil
}

// DiskUsage sums Size over p and its descendants.
func (s *State) DiskUsage(p string) (int64, error) {
	var total int64
	err := s.Walk(p, func(_ string, n *Node) error {
		total += n.Size()
		return nil
	})
	return total, err
}
