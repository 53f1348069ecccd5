// Package vfs implements the in-memory filesystem the simulated shell runs on.
//
// A State is an immutable snapshot: every mutating operation returns a new
// State that shares untouched subtrees with its input and copies only the
// directories on the path from the root to the changed node. Nodes are never
// modified once they are reachable from a State.
package vfs

import (
	"io/fs"
	"sort"
)

// Kind discriminates the node variants.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// Default ownership and modes for authored and created nodes.
var (
	DefaultOwner = "user"
	DefaultGroup = "user"
)

const (
	DefaultFilePerm    fs.FileMode = 0o644
	DefaultDirPerm     fs.FileMode = 0o755
	DefaultSymlinkPerm fs.FileMode = 0o777
	DefaultUmask       fs.FileMode = 0o022

	// PermMask keeps the rwx bits plus setuid, setgid and sticky.
	PermMask = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

	dirSize = 4096
)

// Node is a file, directory or symbolic link.
type Node struct {
	kind     Kind
	content  string
	target   string
	children map[string]*Node
	perm     fs.FileMode
	owner    string
	group    string
	inode    uint64
}

// Option customises a node built with NewFile, NewDir or NewSymlink.
type Option func(*Node)

// WithPerm sets the permission bits.
func WithPerm(perm fs.FileMode) Option {
	return func(n *Node) { n.perm = perm & PermMask }
}

// WithOwner sets owner and group. An empty group keeps the default.
func WithOwner(owner, group string) Option {
	return func(n *Node) {
		if owner != "" {
			n.owner = owner
		}
		if group != "" {
			n.group = group
		}
	}
}

// NewFile builds a regular file.
func NewFile(content string, opts ...Option) *Node {
	return build(&Node{kind: KindFile, content: content, perm: DefaultFilePerm}, opts)
}

// NewDir builds a directory holding the given entries. The map is copied.
func NewDir(children map[string]*Node, opts ...Option) *Node {
	n := &Node{kind: KindDir, children: make(map[string]*Node, len(children)), perm: DefaultDirPerm}
	for name, child := range children {
		n.children[name] = child
	}
	return build(n, opts)
}

// NewSymlink builds a symbolic link pointing at target.
func NewSymlink(target string, opts ...Option) *Node {
	return build(&Node{kind: KindSymlink, target: target, perm: DefaultSymlinkPerm}, opts)
}

func build(n *Node, opts []Option) *Node {
	n.owner = DefaultOwner
	n.group = DefaultGroup
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) Kind() Kind        { return n.kind }
func (n *Node) IsDir() bool       { return n.kind == KindDir }
func (n *Node) IsFile() bool      { return n.kind == KindFile }
func (n *Node) IsSymlink() bool   { return n.kind == KindSymlink }
func (n *Node) Content() string   { return n.content }
func (n *Node) Target() string    { return n.target }
func (n *Node) Perm() fs.FileMode { return n.perm }
func (n *Node) Owner() string     { return n.owner }
func (n *Node) Group() string     { return n.group }
func (n *Node) Inode() uint64     { return n.inode }
func (n *Node) Child(name string) *Node {
	if n.kind != KindDir {
		return nil
	}
	return n.children[name]
}

// Len is the number of directory entries.
func (n *Node) Len() int { return len(n.children) }

// Size is the content length for files, the target length for links and a
// fixed block size for directories.
func (n *Node) Size() int64 {
	switch n.kind {
	case KindDir:
		return dirSize
	case KindSymlink:
		return int64(len(n.target))
	default:
		return int64(len(n.content))
	}
}

// Names returns the directory entries in byte order.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Permissions formats the mode like ls -l: a type char followed by rwx
// triplets, including setuid/setgid/sticky markers.
func (n *Node) Permissions() string {
	return FormatMode(n.kind, n.perm)
}

// FormatMode renders perm for a node of the given kind.
func FormatMode(kind Kind, perm fs.FileMode) string {
	buf := []byte("----------")
	switch kind {
	case KindDir:
		buf[0] = 'd'
	case KindSymlink:
		buf[0] = 'l'
	}
	const rwx = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			buf[i+1] = rwx[i]
		}
	}
	special := func(idx int, set bool, execChar, plainChar byte) {
		if !set {
			return
		}
		if buf[idx] == 'x' {
			buf[idx] = execChar
		} else {
			buf[idx] = plainChar
		}
	}
	special(3, perm&fs.ModeSetuid != 0, 's', 'S')
	special(6, perm&fs.ModeSetgid != 0, 's', 'S')
	special(9, perm&fs.ModeSticky != 0, 't', 'T')
	return string(buf)
}

// ParseOctalMode parses three or four octal digits ("755", "1777") into
// permission bits.
func ParseOctalMode(s string) (fs.FileMode, bool) {
	if len(s) < 3 || len(s) > 4 {
		return 0, false
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return 0, false
		}
		v = v<<3 | uint32(s[i]-'0')
	}
	return FromOctal(v), true
}

// FromOctal converts a Unix mode number to permission bits.
func FromOctal(v uint32) fs.FileMode {
	perm := fs.FileMode(v) & fs.ModePerm
	if v&0o4000 != 0 {
		perm |= fs.ModeSetuid
	}
	if v&0o2000 != 0 {
		perm |= fs.ModeSetgid
	}
	if v&0o1000 != 0 {
		perm |= fs.ModeSticky
	}
	return perm
}

// Octal is the inverse of FromOctal.
func Octal(perm fs.FileMode) uint32 {
	v := uint32(perm & fs.ModePerm)
	if perm&fs.ModeSetuid != 0 {
		v |= 0o4000
	}
	if perm&fs.ModeSetgid != 0 {
		v |= 0o2000
	}
	if perm&fs.ModeSticky != 0 {
		v |= 0o1000
	}
	return v
}

// Clone returns a deep copy with fresh identity: the copy and all its
// descendants get new inodes when they are placed into a State.
func (n *Node) Clone() *Node {
	c := *n
	c.inode = 0
	if n.kind == KindDir {
		c.children = make(map[string]*Node, len(n.children))
		for name, child := range n.children {
			c.children[name] = child.Clone()
		}
	}
	return &c
}

// shallow copies n keeping its inode, with a private children map.
func (n *Node) shallow() *Node {
	c := *n
	if n.kind == KindDir {
		c.children = make(map[string]*Node, len(n.children))
		for name, child := range n.children {
			c.children[name] = child
		}
	}
	return &c
}

// withAttrs copies n applying fn to the copy; the inode is kept.
func (n *Node) withAttrs(fn func(*Node)) *Node {
	c := n.shallow()
	fn(c)
	return c
}

// withAttrsDeep applies fn to n and every descendant.
func (n *Node) withAttrsDeep(fn func(*Node)) *Node {
	c := n.shallow()
	fn(c)
	for name, child := range c.children {
		c.children[name] = child.withAttrsDeep(fn)
	}
	return c
}
