package vfs

import (
	"io/fs"

	"github.com/pkg/errors"
)

// WriteFile creates or replaces the file at p, or appends to it when
// appendMode is set. A final symlink is followed. The parent directory must
// exist.
func (s *State) WriteFile(p, content string, appendMode bool) (*State, error) {
	abs := s.Abs(p)
	phys, node, err := s.walk(abs, true)
	if err != nil {
		return nil, err
	}
	if phys == "/" || (node != nil && node.kind == KindDir) {
		return nil, newError(OpWrite, abs, ErrIsDir)
	}
	name := Base(phys)
	return s.update(Dir(phys), func(d *Node) error {
		if old, ok := d.children[name]; ok {
			d.children[name] = old.withAttrs(func(n *Node) {
				if appendMode {
					n.content += content
				} else {
					n.content = content
				}
			})
			return nil
		}
		d.children[name] = s.newFile(content)
		return nil
	})
}

// Touch creates an empty file at p unless something already exists there.
func (s *State) Touch(p string) (*State, error) {
	if _, err := s.Stat(p); err == nil {
		return s, nil
	}
	return s.WriteFile(p, "", true)
}

func (s *State) newFile(content string) *Node {
	return NewFile(content, WithPerm(0o666&^s.umask))
}

func (s *State) newDir() *Node {
	return NewDir(nil, WithPerm(0o777&^s.umask))
}

// Mkdir creates the directory p. With parents set, missing ancestors are
// created and an existing directory at p is not an error.
func (s *State) Mkdir(p string, parents bool) (*State, error) {
	abs := s.Abs(p)
	if !parents {
		return s.mkdirOne(abs)
	}
	cur := s
	prefix := "/"
	for _, seg := range Split(abs) {
		prefix = Join(prefix, seg)
		n, err := cur.Stat(prefix)
		if err == nil {
			if n.kind != KindDir {
				return nil, newError(OpMkdir, prefix, ErrNotDir)
			}
			continue
		}
		if cur, err = cur.mkdirOne(prefix); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (s *State) mkdirOne(abs string) (*State, error) {
	phys, node, err := s.walk(abs, false)
	if err != nil {
		return nil, err
	}
	if node != nil || phys == "/" {
		return nil, newError(OpMkdir, abs, ErrExist)
	}
	name := Base(phys)
	return s.update(Dir(phys), func(d *Node) error {
		d.children[name] = s.newDir()
		return nil
	})
}

// destination works out where src lands for cp/mv/ln style operations: inside
// dst when dst is an existing directory, at dst otherwise.
func (s *State) destination(src, dst string) (string, *Node, error) {
	absDst := s.Abs(dst)
	phys, node, err := s.walk(absDst, true)
	if err != nil {
		return "", nil, err
	}
	if node != nil && node.kind == KindDir {
		target := Join(phys, Base(s.Abs(src)))
		n := node.children[Base(target)]
		return target, n, nil
	}
	if node == nil {
		// the parent must exist and be a directory
		parent, err := s.Stat(Dir(phys))
		if err != nil {
			return "", nil, err
		}
		if parent.kind != KindDir {
			return "", nil, newError(OpLookup, Dir(phys), ErrNotDir)
		}
	}
	return phys, node, nil
}

// place stores n at the physical path p, replacing a file but never a
// directory.
func (s *State) place(op, p string, n *Node) (*State, error) {
	name := Base(p)
	return s.update(Dir(p), func(d *Node) error {
		if old, ok := d.children[name]; ok && old.kind == KindDir {
			return newError(op, p, ErrIsDir)
		}
		d.children[name] = n
		return nil
	})
}

// Copy copies src to dst. Directories need recursive. The copy is a deep
// clone with fresh inodes.
func (s *State) Copy(src, dst string, recursive bool) (*State, error) {
	absSrc := s.Abs(src)
	node, err := s.Stat(absSrc)
	if err != nil {
		return nil, err
	}
	if node.kind == KindDir && !recursive {
		return nil, newError(OpCopy, absSrc, ErrIsDir)
	}
	target, existing, err := s.destination(absSrc, dst)
	if err != nil {
		return nil, err
	}
	srcPhys, err := s.Physical(absSrc)
	if err != nil {
		return nil, err
	}
	if target == srcPhys {
		return nil, newError(OpCopy, absSrc, ErrInvalid)
	}
	if node.kind == KindDir && IsWithin(target, srcPhys) {
		return nil, newError(OpCopy, absSrc, ErrInvalid)
	}
	if existing != nil && existing.kind == KindDir && node.kind != KindDir {
		return nil, newError(OpCopy, target, ErrIsDir)
	}
	clone := node.Clone()
	if existing != nil && existing.kind == KindDir {
		// cp -r a b where b/a is already a directory: merge into it.
		return s.mergeDir(target, clone)
	}
	return s.place(OpCopy, target, clone)
}

func (s *State) mergeDir(target string, src *Node) (*State, error) {
	cur := s
	for _, name := range src.Names() {
		child := src.children[name]
		p := Join(target, name)
		existing, err := cur.Lstat(p)
		if err == nil && existing.kind == KindDir && child.kind == KindDir {
			if cur, err = cur.mergeDir(p, child); err != nil {
				return nil, err
			}
			continue
		}
		if cur, err = cur.place(OpCopy, p, child); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Move renames src to dst. The node keeps its identity.
func (s *State) Move(src, dst string) (*State, error) {
	absSrc := s.Abs(src)
	srcPhys, node, err := s.walk(absSrc, false)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, newError(OpMove, absSrc, ErrNotExist)
	}
	if srcPhys == "/" {
		return nil, newError(OpMove, absSrc, ErrInvalid)
	}
	target, existing, err := s.destination(absSrc, dst)
	if err != nil {
		return nil, err
	}
	if target == srcPhys {
		return s, nil
	}
	if node.kind == KindDir && IsWithin(target, srcPhys) {
		return nil, newError(OpMove, absSrc, ErrInvalid)
	}
	if existing != nil && existing.kind == KindDir {
		if node.kind != KindDir {
			return nil, newError(OpMove, target, ErrIsDir)
		}
		if existing.Len() > 0 {
			return nil, newError(OpMove, target, ErrNotEmpty)
		}
	}
	if existing != nil && existing.kind != KindDir && node.kind == KindDir {
		return nil, newError(OpMove, target, ErrNotDir)
	}
	removed, err := s.removePhys(srcPhys)
	if err != nil {
		return nil, err
	}
	name := Base(target)
	return removed.update(Dir(target), func(d *Node) error {
		d.children[name] = node
		return nil
	})
}

// Remove deletes p. Directories need recursive. With ignoreMissing a missing
// path is not an error and s is returned unchanged.
func (s *State) Remove(p string, recursive, ignoreMissing bool) (*State, error) {
	abs := s.Abs(p)
	phys, node, err := s.walk(abs, false)
	if err != nil {
		if ignoreMissing && isNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if node == nil {
		if ignoreMissing {
			return s, nil
		}
		return nil, newError(OpRemove, abs, ErrNotExist)
	}
	if phys == "/" {
		return nil, newError(OpRemove, abs, ErrInvalid)
	}
	if node.kind == KindDir && !recursive {
		return nil, newError(OpRemove, abs, ErrIsDir)
	}
	return s.removePhys(phys)
}

func (s *State) removePhys(phys string) (*State, error) {
	name := Base(phys)
	return s.update(Dir(phys), func(d *Node) error {
		delete(d.children, name)
		return nil
	})
}

// Rmdir removes the empty directory p.
func (s *State) Rmdir(p string) (*State, error) {
	abs := s.Abs(p)
	phys, node, err := s.walk(abs, false)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, newError(OpRmdir, abs, ErrNotExist)
	}
	if node.kind != KindDir {
		return nil, newError(OpRmdir, abs, ErrNotDir)
	}
	if node.Len() > 0 {
		return nil, newError(OpRmdir, abs, ErrNotEmpty)
	}
	if phys == "/" {
		return nil, newError(OpRmdir, abs, ErrInvalid)
	}
	return s.removePhys(phys)
}

// Link creates linkPath pointing at target. Symbolic links store target
// verbatim and may dangle. Hard links deep-copy the target file, so the two
// names do not share later writes. An existing linkPath is an error unless
// it is a directory, in which case the link is created inside it.
func (s *State) Link(target, linkPath string, symbolic bool) (*State, error) {
	var node *Node
	if symbolic {
		node = NewSymlink(target)
	} else {
		src, err := s.Stat(target)
		if err != nil {
			return nil, err
		}
		if src.kind == KindDir {
			return nil, newError(OpLink, s.Abs(target), ErrIsDir)
		}
		node = src.Clone()
	}
	abs := s.Abs(linkPath)
	phys, existing, err := s.walk(abs, true)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.kind == KindDir {
		phys = Join(phys, Base(target))
		if existing.children[Base(phys)] != nil {
			return nil, newError(OpLink, phys, ErrExist)
		}
	} else {
		// walk followed a final symlink; the link name itself must be free
		lphys, lnode, err := s.walk(abs, false)
		if err != nil {
			return nil, err
		}
		if lnode != nil {
			return nil, newError(OpLink, abs, ErrExist)
		}
		phys = lphys
	}
	return s.place(OpLink, phys, node)
}

// Chmod sets the permission bits of p, and of every descendant when
// recursive is set.
func (s *State) Chmod(p string, perm fs.FileMode, recursive bool) (*State, error) {
	return s.setAttrs(OpChmod, p, recursive, func(n *Node) {
		if n.kind == KindSymlink {
			return
		}
		n.perm = perm & PermMask
	})
}

// Chown sets owner and/or group (empty strings are left alone).
func (s *State) Chown(p, owner, group string, recursive bool) (*State, error) {
	return s.setAttrs(OpChown, p, recursive, func(n *Node) {
		if owner != "" {
			n.owner = owner
		}
		if group != "" {
			n.group = group
		}
	})
}

func (s *State) setAttrs(op, p string, recursive bool, fn func(*Node)) (*State, error) {
	phys, err := s.Physical(p)
	if err != nil {
		return nil, err
	}
	return s.replace(phys, func(old *Node) (*Node, error) {
		if recursive {
			return old.withAttrsDeep(fn), nil
		}
		return old.withAttrs(fn), nil
	})
}

func isNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
