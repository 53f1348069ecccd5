// Package core provides the shared plumbing for shellsim builtins: the
// invocation context, results, the registry and flag parsing.
package core

import (
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core/logging"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Status classifies a Result.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusInfo
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusInfo:
		return "info"
	default:
		return "success"
	}
}

// Result is what a builtin hands back. A nil State means the filesystem is
// unchanged. Output carries no trailing newline.
type Result struct {
	Output string
	Status Status
	State  *vfs.State
}

// Failed reports whether r is an error result.
func (r Result) Failed() bool { return r.Status == StatusError }

// Ok is a successful result with no filesystem change.
func Ok(output string) Result {
	return Result{Output: output}
}

// Changed is a successful result carrying a new filesystem state.
func Changed(output string, state *vfs.State) Result {
	return Result{Output: output, State: state}
}

// Info is an informational, non-error result.
func Info(output string) Result {
	return Result{Output: output, Status: StatusInfo}
}

// Errorf formats an error result prefixed with the applet name.
func Errorf(applet, format string, args ...any) Result {
	return Result{Output: applet + ": " + fmt.Sprintf(format, args...), Status: StatusError}
}

// UsageError reports bad flags or operands.
func UsageError(applet, message string) Result {
	return Errorf(applet, "%s", message)
}

// FileError reports a failure on path using the errno-style reason carried
// by err, e.g. "cat: notes: No such file or directory".
func FileError(applet, path string, err error) Result {
	return Errorf(applet, "%s: %s", path, vfs.Reason(err))
}

// Feature names gate the simulated-subsystem builtins.
const (
	FeatureProcesses = "processes"
	FeatureCron      = "cron"
	FeatureServices  = "services"
	FeatureStorage   = "storage"
	FeaturePackages  = "packages"
	FeatureNetwork   = "network"
	FeatureArchive   = "archive"
)

// AllFeatures lists every gate in display order.
var AllFeatures = []string{
	FeatureProcesses, FeatureCron, FeatureServices, FeatureStorage,
	FeaturePackages, FeatureNetwork, FeatureArchive,
}

// Features is the set of enabled gates. A nil set enables everything.
type Features map[string]bool

// NewFeatures enables exactly the named gates.
func NewFeatures(names ...string) Features {
	f := Features{}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			f[n] = true
		}
	}
	return f
}

// Enabled reports whether name is on.
func (f Features) Enabled(name string) bool {
	if f == nil {
		return true
	}
	return f[name]
}

// Context is everything a builtin may read or mutate while running.
type Context struct {
	State *vfs.State
	// Stdin is the previous stage's output or a redirected file. HasStdin is
	// false when the command runs with no input attached.
	Stdin    string
	HasStdin bool
	Env      map[string]string
	System   *sysstate.System
	Features Features
	Registry *Registry
	History  []string
	Log      *logging.Logger
}

// Getenv returns an environment value or "".
func (c *Context) Getenv(name string) string {
	if c.Env == nil {
		return ""
	}
	return c.Env[name]
}

// Home is $HOME, defaulting to /home/<user>.
func (c *Context) Home() string {
	if h := c.Getenv("HOME"); h != "" {
		return h
	}
	return "/home/" + c.User()
}

// User is $USER, defaulting to "user".
func (c *Context) User() string {
	if u := c.Getenv("USER"); u != "" {
		return u
	}
	return vfs.DefaultOwner
}

// ReadFile returns the content of a file operand; "-" is stdin.
func (c *Context) ReadFile(p string) (string, error) {
	if p == "-" {
		return c.Stdin, nil
	}
	return c.State.ReadFile(p)
}

// Input is the content of one operand.
type Input struct {
	Name string
	Data string
}

// ReadInputs reads files in order, or stdin when files is empty. The first
// unreadable file ends the read with an error result for applet.
func (c *Context) ReadInputs(applet string, files []string) ([]Input, Result) {
	if len(files) == 0 {
		return []Input{{Name: "-", Data: c.Stdin}}, Result{}
	}
	inputs := make([]Input, 0, len(files))
	for _, f := range files {
		data, err := c.ReadFile(f)
		if err != nil {
			return nil, FileError(applet, f, err)
		}
		inputs = append(inputs, Input{Name: f, Data: data})
	}
	return inputs, Result{}
}

// Lines splits text into lines, ignoring one trailing newline.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// JoinLines is the inverse of Lines without the trailing newline.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
