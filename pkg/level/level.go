// Package level loads level packs: the authored starting filesystem, the
// command a level expects and the outcome it checks for.
package level

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Format selects the decoder for a pack.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Node types in an authored tree.
const (
	TypeFile    = "file"
	TypeDir     = "dir"
	TypeSymlink = "symlink"
)

// DefaultCwd is where a level starts when its state names no directory.
const DefaultCwd = "/home/user"

// Node is one authored filesystem entry.
type Node struct {
	Type     string           `json:"type"               yaml:"type"`
	Content  string           `json:"content,omitempty"  yaml:"content,omitempty"`
	Target   string           `json:"target,omitempty"   yaml:"target,omitempty"`
	Children map[string]*Node `json:"children,omitempty" yaml:"children,omitempty"`
	Mode     string           `json:"mode,omitempty"     yaml:"mode,omitempty"`
	Owner    string           `json:"owner,omitempty"    yaml:"owner,omitempty"`
	Group    string           `json:"group,omitempty"    yaml:"group,omitempty"`
}

// State is an authored filesystem snapshot. Files holds the children of /.
type State struct {
	Cwd   string           `json:"cwd,omitempty" yaml:"cwd,omitempty"`
	Files map[string]*Node `json:"files"         yaml:"files"`
}

// ProcessConditions name commands that must or must not be running.
type ProcessConditions struct {
	MustHaveCommand    []string `json:"mustHaveCommand,omitempty"    yaml:"mustHaveCommand,omitempty"`
	MustNotHaveCommand []string `json:"mustNotHaveCommand,omitempty" yaml:"mustNotHaveCommand,omitempty"`
}

// CronConditions name crontab lines that must be installed.
type CronConditions struct {
	MustHave []string `json:"mustHave" yaml:"mustHave"`
}

// Checksum pins the checksum of one file.
type Checksum struct {
	File   string `json:"file"   yaml:"file"`
	SHA256 string `json:"sha256" yaml:"sha256"`
}

// ArchiveConditions describe an archive and its extraction. Path names the
// archive to inspect; when empty every archive in the filesystem is tried.
type ArchiveConditions struct {
	Path          string     `json:"path,omitempty"          yaml:"path,omitempty"`
	ManifestPaths []string   `json:"manifestPaths,omitempty" yaml:"manifestPaths,omitempty"`
	ExtractedInto []string   `json:"extractedInto,omitempty" yaml:"extractedInto,omitempty"`
	Checksums     []Checksum `json:"checksums,omitempty"     yaml:"checksums,omitempty"`
}

// FileConditions name paths that must exist.
type FileConditions struct {
	MustExist []string `json:"mustExist" yaml:"mustExist"`
}

// PostConditions are checked on top of the expected filesystem state.
type PostConditions struct {
	Processes *ProcessConditions `json:"processes,omitempty" yaml:"processes,omitempty"`
	Cron      *CronConditions    `json:"cron,omitempty"      yaml:"cron,omitempty"`
	Archive   *ArchiveConditions `json:"archive,omitempty"   yaml:"archive,omitempty"`
	Files     *FileConditions    `json:"files,omitempty"     yaml:"files,omitempty"`
}

// Level is one graded objective. Levels are read-only once loaded.
type Level struct {
	ID               string          `json:"id"                         yaml:"id"`
	Title            string          `json:"title,omitempty"            yaml:"title,omitempty"`
	Objective        string          `json:"objective,omitempty"        yaml:"objective,omitempty"`
	Hint             string          `json:"hint,omitempty"             yaml:"hint,omitempty"`
	ExpectedCommand  string          `json:"expectedCommand"            yaml:"expectedCommand"`
	AcceptedCommands []string        `json:"acceptedCommands,omitempty" yaml:"acceptedCommands,omitempty"`
	InitialState     *State          `json:"initialState,omitempty"     yaml:"initialState,omitempty"`
	ExpectedState    *State          `json:"expectedState,omitempty"    yaml:"expectedState,omitempty"`
	ExpectedOutput   *string         `json:"expectedOutput,omitempty"   yaml:"expectedOutput,omitempty"`
	PostConditions   *PostConditions `json:"postConditions,omitempty"   yaml:"postConditions,omitempty"`
	ConceptKeys      []string        `json:"conceptKeys,omitempty"      yaml:"conceptKeys,omitempty"`
	Features         []string        `json:"features,omitempty"         yaml:"features,omitempty"`

	initial  *vfs.State
	expected *vfs.State
}

// Initial is the filesystem the level starts from. States are immutable,
// so the same snapshot is returned on every call.
func (l *Level) Initial() *vfs.State { return l.initial }

// Expected is the filesystem the level must end in, or nil when the level
// does not check the filesystem.
func (l *Level) Expected() *vfs.State { return l.expected }

// Pack is an ordered list of levels.
type Pack struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Levels []*Level `json:"levels"         yaml:"levels"`
}

// Find returns the level with the given id.
func (p *Pack) Find(id string) (*Level, bool) {
	for _, l := range p.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Load decodes and checks a pack.
func Load(r io.Reader, format Format) (*Pack, error) {
	var pack Pack
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pack); err != nil {
			return nil, errors.Wrap(err, "decode json level pack")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&pack); err != nil {
			return nil, errors.Wrap(err, "decode yaml level pack")
		}
	default:
		return nil, errors.Errorf("unknown level format %d", format)
	}
	if err := pack.prepare(); err != nil {
		return nil, err
	}
	return &pack, nil
}

// LoadFile loads a pack, picking the format from the file extension.
func LoadFile(path string) (*Pack, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	pack, err := Load(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return pack, nil
}

// FormatOf maps .json, .yaml and .yml to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, errors.Errorf("%s: unknown level file type", path)
}

func (p *Pack) prepare() error {
	if len(p.Levels) == 0 {
		return errors.New("level pack has no levels")
	}
	seen := map[string]bool{}
	for i, l := range p.Levels {
		if l == nil {
			return errors.Errorf("level %d is empty", i)
		}
		if l.ID == "" {
			return errors.Errorf("level %d has no id", i)
		}
		if seen[l.ID] {
			return errors.Errorf("duplicate level id %q", l.ID)
		}
		seen[l.ID] = true
		if strings.TrimSpace(l.ExpectedCommand) == "" {
			return errors.Errorf("level %s: missing expectedCommand", l.ID)
		}
		var err error
		if l.initial, err = l.InitialState.Build(); err != nil {
			return errors.Wrapf(err, "level %s: initialState", l.ID)
		}
		if l.ExpectedState != nil {
			if l.expected, err = l.ExpectedState.Build(); err != nil {
				return errors.Wrapf(err, "level %s: expectedState", l.ID)
			}
		}
	}
	return nil
}

// Build turns an authored state into a filesystem snapshot. A nil state
// yields DefaultState.
func (s *State) Build() (*vfs.State, error) {
	if s == nil {
		return DefaultState(), nil
	}
	children, err := buildChildren("", s.Files)
	if err != nil {
		return nil, err
	}
	cwd := s.Cwd
	if cwd == "" {
		cwd = DefaultCwd
	}
	st := vfs.New(vfs.NewDir(children, vfs.WithOwner("root", "root")), cwd)
	if !st.IsDir(cwd) {
		return nil, errors.Errorf("cwd %s is not a directory", cwd)
	}
	return st, nil
}

func buildChildren(parent string, docs map[string]*Node) (map[string]*vfs.Node, error) {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(map[string]*vfs.Node, len(docs))
	for _, name := range names {
		p := parent + "/" + name
		if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
			return nil, errors.Errorf("%s: invalid name", p)
		}
		n, err := docs[name].build(p)
		if err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, nil
}

func (n *Node) build(p string) (*vfs.Node, error) {
	if n == nil {
		return nil, errors.Errorf("%s: empty node", p)
	}
	var opts []vfs.Option
	if n.Mode != "" {
		perm, ok := vfs.ParseOctalMode(n.Mode)
		if !ok {
			return nil, errors.Errorf("%s: invalid mode %q", p, n.Mode)
		}
		opts = append(opts, vfs.WithPerm(perm))
	}
	if n.Owner != "" || n.Group != "" {
		opts = append(opts, vfs.WithOwner(n.Owner, n.Group))
	}
	switch n.Type {
	case TypeFile, "":
		return vfs.NewFile(n.Content, opts...), nil
	case TypeDir, "directory":
		children, err := buildChildren(p, n.Children)
		if err != nil {
			return nil, err
		}
		return vfs.NewDir(children, opts...), nil
	case TypeSymlink:
		if n.Target == "" {
			return nil, errors.Errorf("%s: symlink without target", p)
		}
		return vfs.NewSymlink(n.Target, opts...), nil
	}
	return nil, errors.Errorf("%s: unknown node type %q", p, n.Type)
}

// DefaultState is a home directory for the default user with /tmp and
// /etc beside it.
func DefaultState() *vfs.State {
	root := vfs.NewDir(map[string]*vfs.Node{
		"home": vfs.NewDir(map[string]*vfs.Node{
			"user": vfs.NewDir(nil),
		}, vfs.WithOwner("root", "root")),
		"tmp": vfs.NewDir(nil, vfs.WithPerm(0o1777), vfs.WithOwner("root", "root")),
		"etc": vfs.NewDir(map[string]*vfs.Node{
			"hostname": vfs.NewFile("sandbox\n", vfs.WithOwner("root", "root")),
		}, vfs.WithOwner("root", "root")),
	}, vfs.WithOwner("root", "root"))
	return vfs.New(root, DefaultCwd)
}
