package vfs

import (
	"io/fs"
)

// State is one immutable snapshot of the filesystem plus the shell's
// directory context.
type State struct {
	cwd   string
	prev  string
	umask fs.FileMode
	root  *Node
	// next is the inode handed to the next node that lacks one.
	next uint64
}

// New builds a State from an authored tree. The tree is deep-copied so the
// caller may keep using its nodes, and inodes are assigned in path order
// starting at 1 for the root. A nil root yields an empty filesystem.
func New(root *Node, cwd string) *State {
	if root == nil || root.kind != KindDir {
		root = NewDir(nil)
	}
	if cwd == "" {
		cwd = "/"
	}
	s := &State{
		cwd:   ResolvePath("/", cwd),
		umask: DefaultUmask,
		root:  root.Clone(),
		next:  1,
	}
	s.prev = s.cwd
	s.assignInodes(s.root)
	return s
}

// Cwd is the logical current directory.
func (s *State) Cwd() string { return s.cwd }

// PrevDir is the directory "cd -" returns to.
func (s *State) PrevDir() string { return s.prev }

// Umask is the mode mask applied to newly created nodes.
func (s *State) Umask() fs.FileMode { return s.umask }

// Root returns the root directory node.
func (s *State) Root() *Node { return s.root }

// Abs resolves p against the current directory.
func (s *State) Abs(p string) string { return ResolvePath(s.cwd, p) }

// Chdir returns a copy whose current directory is dir and whose previous
// directory is the old current one. dir is not checked.
func (s *State) Chdir(dir string) *State {
	c := *s
	c.prev = s.cwd
	c.cwd = ResolvePath(s.cwd, dir)
	return &c
}

// WithUmask returns a copy using mask for new nodes.
func (s *State) WithUmask(mask fs.FileMode) *State {
	c := *s
	c.umask = mask & fs.ModePerm
	return &c
}

// Lstat returns the node at p without following a final symlink.
func (s *State) Lstat(p string) (*Node, error) {
	abs := s.Abs(p)
	_, node, err := s.walk(abs, false)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, newError(OpLookup, abs, ErrNotExist)
	}
	return node, nil
}

// Stat returns the node at p, following symlinks.
func (s *State) Stat(p string) (*Node, error) {
	abs := s.Abs(p)
	_, node, err := s.walk(abs, true)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, newError(OpLookup, abs, ErrNotExist)
	}
	return node, nil
}

// Exists reports whether p names a node (a dangling symlink counts).
func (s *State) Exists(p string) bool {
	_, err := s.Lstat(p)
	return err == nil
}

// IsDir reports whether p resolves to a directory.
func (s *State) IsDir(p string) bool {
	n, err := s.Stat(p)
	return err == nil && n.kind == KindDir
}

// ReadFile returns the content of the file at p.
func (s *State) ReadFile(p string) (string, error) {
	n, err := s.Stat(p)
	if err != nil {
		return "", err
	}
	if n.kind == KindDir {
		return "", newError(OpRead, s.Abs(p), ErrIsDir)
	}
	return n.content, nil
}

// update rebuilds the spine from the root to the directory at the physical
// path dir and lets fn edit a private copy of that directory. Everything
// off the spine is shared with s.
func (s *State) update(dir string, fn func(d *Node) error) (*State, error) {
	root, err := rebuild(s.root, Split(dir), dir, fn)
	if err != nil {
		return nil, err
	}
	c := *s
	c.root = root
	c.assignInodes(root)
	return &c, nil
}

func rebuild(n *Node, segs []string, dir string, fn func(d *Node) error) (*Node, error) {
	if n.kind != KindDir {
		return nil, newError(OpLookup, dir, ErrNotDir)
	}
	c := n.shallow()
	if len(segs) == 0 {
		if err := fn(c); err != nil {
			return nil, err
		}
		return c, nil
	}
	child, ok := n.children[segs[0]]
	if !ok {
		return nil, newError(OpLookup, dir, ErrNotExist)
	}
	nc, err := rebuild(child, segs[1:], dir, fn)
	if err != nil {
		return nil, err
	}
	c.children[segs[0]] = nc
	return c, nil
}

// replace swaps the node at the physical path p for fn(old).
func (s *State) replace(p string, fn func(old *Node) (*Node, error)) (*State, error) {
	if p == "/" {
		nr, err := fn(s.root)
		if err != nil {
			return nil, err
		}
		c := *s
		c.root = nr
		c.assignInodes(nr)
		return &c, nil
	}
	name := Base(p)
	return s.update(Dir(p), func(d *Node) error {
		old, ok := d.children[name]
		if !ok {
			return newError(OpLookup, p, ErrNotExist)
		}
		nn, err := fn(old)
		if err != nil {
			return err
		}
		d.children[name] = nn
		return nil
	})
}

// assignInodes gives every node without an inode the next number, walking
// in name order so numbering is deterministic. Every node reachable from a
// published State already has one, so only nodes created by the current
// operation are written.
func (s *State) assignInodes(n *Node) {
	if n.inode == 0 {
		n.inode = s.next
		s.next++
	}
	if n.kind != KindDir {
		return
	}
	for _, name := range n.Names() {
		s.assignInodes(n.children[name])
	}
}
