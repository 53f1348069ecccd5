// Package gunzip implements gunzip and zcat over gzip payloads in the
// virtual filesystem.
package gunzip

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/archiveutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

// Run executes the gunzip command.
//
//	-c  Write to stdout, keep the input
//	-k  Keep the input
//	-f  Overwrite an existing output
//	-t  Test integrity only
func Run(ctx *core.Context, args []string) core.Result {
	var toStdout, keep, force, test bool
	files, err := core.Flags{
		Bool: map[byte]*bool{'c': &toStdout, 'k': &keep, 'f': &force, 't': &test, 'q': nil, 'v': nil},
		Long: map[string]*bool{"stdout": &toStdout, "keep": &keep, "force": &force, "test": &test},
	}.Parse(args)
	if err != nil {
		return core.UsageError("gunzip", err.Error())
	}
	return Decompress(ctx, "gunzip", files, Options{Stdout: toStdout, Keep: keep, Force: force, Test: test})
}

// RunZcat is gunzip -c.
func RunZcat(ctx *core.Context, args []string) core.Result {
	files, err := core.Flags{Bool: map[byte]*bool{'f': nil}}.Parse(args)
	if err != nil {
		return core.UsageError("zcat", err.Error())
	}
	return Decompress(ctx, "zcat", files, Options{Stdout: true, Keep: true})
}

// Options select how Decompress treats each file.
type Options struct {
	Stdout bool
	Keep   bool
	Force  bool
	Test   bool
}

// Decompress restores files, or stdin when there are none, reporting
// errors under applet's name.
func Decompress(ctx *core.Context, applet string, files []string, opts Options) core.Result {
	if len(files) == 0 || len(files) == 1 && files[0] == "-" {
		if !ctx.HasStdin {
			return core.UsageError(applet, "compressed data not read from a terminal")
		}
		m, err := archiveutil.Gunzip(ctx.Stdin)
		if err != nil {
			return core.Errorf(applet, "stdin: %v", err)
		}
		if opts.Test {
			return core.Ok("")
		}
		return core.Ok(strings.TrimSuffix(m.Data, "\n"))
	}

	st := ctx.State
	var out, errs []string
	for _, file := range files {
		content, err := st.ReadFile(file)
		if err != nil {
			errs = append(errs, applet+": "+file+": "+vfs.Reason(err))
			continue
		}
		m, err := archiveutil.Gunzip(content)
		if err != nil {
			errs = append(errs, applet+": "+file+": "+err.Error())
			continue
		}
		if opts.Test {
			continue
		}
		if opts.Stdout {
			out = append(out, strings.TrimSuffix(m.Data, "\n"))
			continue
		}
		target, ok := OutputName(file)
		if !ok {
			errs = append(errs, applet+": "+file+": unknown suffix -- ignored")
			continue
		}
		if st.Exists(target) && !opts.Force {
			errs = append(errs, applet+": "+target+" already exists")
			continue
		}
		next, err := st.WriteFile(target, m.Data, false)
		if err != nil {
			errs = append(errs, applet+": "+target+": "+vfs.Reason(err))
			continue
		}
		if !opts.Keep {
			if next, err = next.Remove(file, false, false); err != nil {
				errs = append(errs, applet+": "+file+": "+vfs.Reason(err))
				continue
			}
		}
		st = next
	}

	res := core.Ok(core.JoinLines(append(out, errs...)))
	if len(errs) > 0 {
		res.Status = core.StatusError
	}
	if st != ctx.State {
		res.State = st
	}
	return res
}

// OutputName strips a compression suffix: x.gz becomes x and x.tgz
// becomes x.tar.
func OutputName(file string) (string, bool) {
	switch {
	case strings.HasSuffix(file, ".tgz"):
		return strings.TrimSuffix(file, ".tgz") + ".tar", true
	case strings.HasSuffix(file, ".gz") && len(file) > len(".gz") && !strings.HasSuffix(file, "/.gz"):
		return strings.TrimSuffix(file, ".gz"), true
	}
	return "", false
}
