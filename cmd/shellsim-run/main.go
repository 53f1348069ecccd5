// Command shellsim-run executes one command line against a freshly booted
// simulated machine and exits with its status. Invoked through a symlink
// named after a builtin, it runs that builtin with the given arguments.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildkite/shellwords"

	"github.com/rcarmo/go-shellsim/pkg/applets"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/config"
	"github.com/rcarmo/go-shellsim/pkg/core/logging"
	"github.com/rcarmo/go-shellsim/pkg/level"
	"github.com/rcarmo/go-shellsim/pkg/shell"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

const self = "shellsim-run"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", self, err)
		os.Exit(exitFailure)
	}
	os.Exit(run(cfg, os.Args, os.Stdout))
}

func run(cfg config.Config, argv []string, out io.Writer) int {
	reg := applets.Default()
	line := resolveLine(argv)
	if line == "" {
		printAppletList(reg, out)
		return exitUsage
	}

	umask, err := cfg.UmaskMode()
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", self, err)
		return exitFailure
	}
	engine := shell.New(shell.Options{
		Registry: reg,
		System:   sysstate.New(cfg.Hostname),
		Features: core.NewFeatures(cfg.Features...),
		Env: map[string]string{
			"HOME": cfg.Home,
			"USER": cfg.User,
		},
		Log: logging.Discard(),
	})
	res := engine.Execute(line, shell.ExecContext{State: level.DefaultState().WithUmask(umask)})
	if res.Output != "" {
		fmt.Fprintln(out, res.Output)
	}
	if res.Failed() {
		return exitFailure
	}
	return exitSuccess
}

// resolveLine turns the process arguments into a shell line. As
// "shellsim-run ARGS..." a single argument is taken as a whole line and
// several are quoted word by word; under any other name the name is the
// builtin to run.
func resolveLine(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	name := filepath.Base(argv[0])
	args := argv[1:]
	if name == self {
		if len(args) == 1 {
			return strings.TrimSpace(args[0])
		}
		if len(args) == 0 {
			return ""
		}
		name, args = args[0], args[1:]
	}
	words := []string{name}
	for _, a := range args {
		words = append(words, shellwords.QuotePosix(a))
	}
	return strings.Join(words, " ")
}

func printAppletList(reg *core.Registry, out io.Writer) {
	fmt.Fprintln(out, "Currently defined functions:")
	fmt.Fprintln(out, "\t"+strings.Join(reg.Names(), ", "))
}
