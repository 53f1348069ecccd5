package validate

import (
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core/archiveutil"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/level"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Observation is what a command left behind.
type Observation struct {
	State  *vfs.State
	System *sysstate.System
	Stdout string
}

// ValidatePostConditions checks a level's expected output and its
// post-conditions against obs. Every failed check is reported.
func ValidatePostConditions(l *level.Level, obs Observation) Outcome {
	if l == nil {
		return pass()
	}
	var problems []string
	if l.ExpectedOutput != nil && trimOutput(obs.Stdout) != trimOutput(*l.ExpectedOutput) {
		problems = append(problems, "output does not match the expected output")
	}
	if pc := l.PostConditions; pc != nil {
		problems = append(problems, checkProcesses(pc.Processes, obs.System)...)
		problems = append(problems, checkCron(pc.Cron, obs.System)...)
		problems = append(problems, checkFiles(pc.Files, obs.State)...)
		problems = append(problems, checkArchive(pc.Archive, obs.State)...)
	}
	if len(problems) > 0 {
		return fail("%s", strings.Join(problems, "; "))
	}
	return pass()
}

func trimOutput(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

func checkProcesses(c *level.ProcessConditions, sys *sysstate.System) []string {
	if c == nil {
		return nil
	}
	if sys == nil {
		return []string{"process table unavailable"}
	}
	var missing, running []string
	for _, cmd := range c.MustHaveCommand {
		if !sys.Processes.HasCommand(cmd) {
			missing = append(missing, cmd)
		}
	}
	for _, cmd := range c.MustNotHaveCommand {
		if sys.Processes.HasCommand(cmd) {
			running = append(running, cmd)
		}
	}
	var out []string
	if len(missing) > 0 {
		out = append(out, describe("required ", "process", "not running", missing))
	}
	if len(running) > 0 {
		out = append(out, describe("forbidden ", "process", "still running", running))
	}
	return out
}

func checkCron(c *level.CronConditions, sys *sysstate.System) []string {
	if c == nil {
		return nil
	}
	if sys == nil {
		return []string{"cron table unavailable"}
	}
	var missing []string
	for _, line := range c.MustHave {
		if !sys.Cron.Contains(line) {
			missing = append(missing, line)
		}
	}
	if len(missing) > 0 {
		return []string{describe("required cron ", "line", "not installed", missing)}
	}
	return nil
}

func checkFiles(c *level.FileConditions, st *vfs.State) []string {
	if c == nil {
		return nil
	}
	var missing []string
	for _, p := range c.MustExist {
		if st == nil || !st.Exists(p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return []string{describe("required ", "file", "missing", missing)}
	}
	return nil
}

// memberPath drops the trailing slash tar puts on directories and a
// leading "./".
func memberPath(p string) string {
	p = strings.TrimPrefix(p, "./")
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func checkArchive(c *level.ArchiveConditions, st *vfs.State) []string {
	if c == nil {
		return nil
	}
	if st == nil {
		return []string{"filesystem unavailable"}
	}
	var out []string
	if len(c.ManifestPaths) > 0 {
		if msg := checkManifest(c, st); msg != "" {
			out = append(out, msg)
		}
	}

	var notExtracted []string
	for _, dir := range c.ExtractedInto {
		if !st.IsDir(dir) {
			notExtracted = append(notExtracted, dir)
			continue
		}
		for _, mp := range c.ManifestPaths {
			if p := vfs.Join(st.Abs(dir), memberPath(mp)); !st.Exists(p) {
				notExtracted = append(notExtracted, p)
			}
		}
	}
	if len(notExtracted) > 0 {
		out = append(out, describe("", "path", "not extracted", notExtracted))
	}

	var mismatched []string
	for _, sum := range c.Checksums {
		data, err := st.ReadFile(sum.File)
		if err != nil || archiveutil.Checksum(data) != strings.ToLower(sum.SHA256) {
			mismatched = append(mismatched, sum.File)
		}
	}
	if len(mismatched) > 0 {
		out = append(out, describe("", "checksum", "not matching", mismatched))
	}
	return out
}

// checkManifest looks for an archive listing every manifest path. With no
// Path every file that decodes as an archive is a candidate.
func checkManifest(c *level.ArchiveConditions, st *vfs.State) string {
	var candidates []*archiveutil.Archive
	if c.Path != "" {
		data, err := st.ReadFile(c.Path)
		if err != nil {
			return "archive " + c.Path + ": " + vfs.Reason(err)
		}
		a, err := archiveutil.Decode(data)
		if err != nil {
			return "archive " + c.Path + ": " + err.Error()
		}
		candidates = append(candidates, a)
	} else {
		_ = st.Walk("/", func(_ string, n *vfs.Node) error {
			if n.IsFile() {
				if a, err := archiveutil.Decode(n.Content()); err == nil {
					candidates = append(candidates, a)
				}
			}
			return nil
		})
	}
	if len(candidates) == 0 {
		return "no archive found"
	}
	var fewest []string
	for i, a := range candidates {
		have := map[string]bool{}
		for _, m := range a.Manifest {
			have[memberPath(m)] = true
		}
		var missing []string
		for _, mp := range c.ManifestPaths {
			if !have[memberPath(mp)] {
				missing = append(missing, mp)
			}
		}
		if len(missing) == 0 {
			return ""
		}
		if i == 0 || len(missing) < len(fewest) {
			fewest = missing
		}
	}
	return describe("manifest ", "entry", "missing from the archive", fewest)
}
