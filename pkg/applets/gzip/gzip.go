// Package gzip implements gzip over the virtual filesystem. A compressed
// file holds a text payload wrapping a real gzip stream.
package gzip

import (
	"compress/gzip"
	"fmt"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/applets/gunzip"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/archiveutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
)

type options struct {
	toStdout   bool
	keep       bool
	force      bool
	decompress bool
	list       bool
	verbose    bool
	levels     [10]bool
}

func (o *options) level() int {
	for l := 9; l >= 1; l-- {
		if o.levels[l] {
			return l
		}
	}
	return gzip.DefaultCompression
}

// Run executes the gzip command.
//
//	-c     Write to stdout, keep the input
//	-d     Decompress
//	-k     Keep the input
//	-f     Overwrite an existing .gz
//	-l     List compressed and uncompressed sizes
//	-v     Report the ratio for each file
//	-1..-9 Compression level
func Run(ctx *core.Context, args []string) core.Result {
	var opts options
	flags := core.Flags{
		Bool: map[byte]*bool{
			'c': &opts.toStdout, 'd': &opts.decompress, 'k': &opts.keep, 'f': &opts.force,
			'l': &opts.list, 'v': &opts.verbose, 'n': nil, 'q': nil,
		},
		Long: map[string]*bool{
			"stdout": &opts.toStdout, "decompress": &opts.decompress, "keep": &opts.keep,
			"force":  &opts.force, "list": &opts.list, "verbose": &opts.verbose,
		},
	}
	for l := 1; l <= 9; l++ {
		flags.Bool[byte('0'+l)] = &opts.levels[l]
	}
	files, err := flags.Parse(args)
	if err != nil {
		return core.UsageError("gzip", err.Error())
	}
	if opts.decompress {
		return gunzip.Decompress(ctx, "gzip", files, gunzip.Options{Stdout: opts.toStdout, Keep: opts.keep, Force: opts.force})
	}
	if opts.list {
		return list(ctx, files)
	}

	if len(files) == 0 || len(files) == 1 && files[0] == "-" {
		if !ctx.HasStdin {
			return core.UsageError("gzip", "compressed data not written to a terminal")
		}
		payload, err := archiveutil.Gzip("", ctx.Stdin, opts.level())
		if err != nil {
			return core.Errorf("gzip", "%v", err)
		}
		return core.Ok(strings.TrimSuffix(payload, "\n"))
	}

	st := ctx.State
	var out, errs []string
	for _, file := range files {
		n, err := st.Lstat(file)
		switch {
		case err != nil:
			errs = append(errs, "gzip: "+file+": "+vfs.Reason(err))
			continue
		case n.IsDir():
			errs = append(errs, "gzip: "+file+" is a directory -- ignored")
			continue
		case strings.HasSuffix(file, ".gz") || strings.HasSuffix(file, ".tgz"):
			errs = append(errs, "gzip: "+file+" already has .gz suffix -- unchanged")
			continue
		}
		content, err := st.ReadFile(file)
		if err != nil {
			errs = append(errs, "gzip: "+file+": "+vfs.Reason(err))
			continue
		}
		payload, err := archiveutil.Gzip(vfs.Base(file), content, opts.level())
		if err != nil {
			errs = append(errs, "gzip: "+file+": "+err.Error())
			continue
		}
		if opts.toStdout {
			out = append(out, strings.TrimSuffix(payload, "\n"))
			continue
		}
		target := file + ".gz"
		if st.Exists(target) && !opts.force {
			errs = append(errs, "gzip: "+target+" already exists")
			continue
		}
		next, err := st.WriteFile(target, payload, false)
		if err == nil && !opts.keep {
			next, err = next.Remove(file, false, false)
		}
		if err != nil {
			errs = append(errs, "gzip: "+target+": "+vfs.Reason(err))
			continue
		}
		st = next
		if opts.verbose {
			m, _ := archiveutil.Gunzip(payload)
			line := fmt.Sprintf("%s:\t%5.1f%%", file, m.Ratio())
			if !opts.keep {
				line += " -- replaced with " + target
			}
			out = append(out, line)
		}
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

func list(ctx *core.Context, files []string) core.Result {
	lines := []string{fmt.Sprintf("%19s %19s %6s %s", "compressed", "uncompressed", "ratio", "uncompressed_name")}
	var errs []string
	for _, file := range files {
		content, err := ctx.ReadFile(file)
		if err != nil {
			errs = append(errs, "gzip: "+file+": "+vfs.Reason(err))
			continue
		}
		m, err := archiveutil.Gunzip(content)
		if err != nil {
			errs = append(errs, "gzip: "+file+": "+err.Error())
			continue
		}
		name, ok := gunzip.OutputName(file)
		if !ok {
			name = file
		}
		lines = append(lines, fmt.Sprintf("%19d %19d %5.1f%% %s", m.CompressedSize, m.UncompressedSize, m.Ratio(), name))
	}
	res := core.Ok(core.JoinLines(append(lines, errs...)))
	if len(errs) > 0 {
		res.Status = core.StatusError
	}
	return res
}
