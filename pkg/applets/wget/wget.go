// Package wget implements wget against the simulated network.
package wget

import (
	"errors"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rcarmo/go-shellsim/pkg/applets/netutil"
	"github.com/rcarmo/go-shellsim/pkg/core"
	"github.com/rcarmo/go-shellsim/pkg/core/vfs"
	"github.com/rcarmo/go-shellsim/pkg/sysstate"
)

// Run executes the wget command with the given arguments.
//
// Supported flags:
//
//	-O FILE    Save to FILE ('-' for stdout)
//	-P DIR     Save into DIR
//	-q         Quiet
//	--spider   Only check that the page exists
//
// Without -O an existing file is never overwritten.
func Run(ctx *core.Context, args []string) core.Result {
	var output, prefix, ignored string
	var quiet, spider bool
	flags := core.Flags{
		Bool:      map[byte]*bool{'q': &quiet, 'c': nil, 'S': nil},
		Value:     map[byte]*string{'O': &output, 'P': &prefix, 'T': &ignored, 'U': &ignored},
		Long:      map[string]*bool{"quiet": &quiet, "spider": &spider, "continue": nil, "no-check-certificate": nil},
		LongValue: map[string]*string{"output-document": &output, "directory-prefix": &prefix},
	}
	operands, err := flags.Parse(args)
	if err != nil {
		return core.UsageError("wget", err.Error())
	}
	if len(operands) == 0 {
		return core.UsageError("wget", "missing URL")
	}

	var lines []string
	st := ctx.State
	for _, raw := range operands {
		out, next, res := fetch(ctx, st, raw, output, prefix, quiet, spider)
		if out != "" {
			lines = append(lines, out)
		}
		if res.Failed() {
			res.Output = core.JoinLines(append(lines, res.Output))
			if st != ctx.State {
				res.State = st
			}
			return res
		}
		st = next
	}
	res := core.Ok(core.JoinLines(lines))
	if st != ctx.State {
		res.State = st
	}
	return res
}

func fetch(ctx *core.Context, st *vfs.State, raw, output, prefix string, quiet, spider bool) (string, *vfs.State, core.Result) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", st, core.Errorf("wget", "bad address '%s'", raw)
	}
	port := 80
	switch u.Scheme {
	case "http":
	case "https":
		port = 443
	default:
		return "", st, core.Errorf("wget", "not an http or ftp url: %s", raw)
	}
	if p := u.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return "", st, core.Errorf("wget", "bad port spec '%s'", p)
		}
	}
	host := u.Hostname()
	addr, ok := ctx.System.Network.Resolve(host)
	if !ok {
		return "", st, core.Errorf("wget", "bad address '%s'", host)
	}

	var log []string
	if !quiet {
		log = append(log, "Connecting to "+host+" ("+addr.String()+":"+strconv.Itoa(port)+")")
	}
	if err := ctx.System.Dial(addr, port); err != nil {
		if errors.Is(err, sysstate.ErrTimedOut) {
			ctx.System.Clock.Advance(15 * time.Minute)
			err = errors.New("Connection timed out")
		}
		res := core.Errorf("wget", "can't connect to remote host (%s): %s", addr, err)
		res.Output = core.JoinLines(append(log, res.Output))
		return "", st, res
	}
	if rtt, _, _ := ctx.System.Network.Ping(addr); rtt > 0 {
		ctx.System.Clock.Advance(time.Duration(rtt) * 100 * time.Microsecond)
	}
	resp := netutil.Get(ctx, addr, host, port, u.EscapedPath())
	if resp.Status != 200 {
		res := core.Errorf("wget", "server returned error: %s", resp.StatusLine())
		res.Output = core.JoinLines(append(log, res.Output))
		return "", st, res
	}
	if spider {
		if !quiet {
			log = append(log, "remote file exists")
		}
		return core.JoinLines(log), st, core.Result{}
	}

	if output == "-" {
		if !quiet {
			log = append(log, "writing to stdout")
		}
		log = append(log, strings.TrimSuffix(resp.Body, "\n"))
		return core.JoinLines(log), st, core.Result{}
	}
	name := output
	exclusive := name == ""
	if exclusive {
		name = path.Base(u.Path)
		if name == "" || name == "." || name == "/" {
			name = "index.html"
		}
	}
	if prefix != "" {
		name = path.Join(prefix, name)
	}
	if exclusive && st.Exists(name) {
		res := core.Errorf("wget", "can't open '%s': File exists", name)
		res.Output = core.JoinLines(append(log, res.Output))
		return "", st, res
	}
	next, err := st.WriteFile(name, resp.Body, false)
	if err != nil {
		res := core.FileError("wget", name, err)
		res.Output = core.JoinLines(append(log, res.Output))
		return "", st, res
	}
	if !quiet {
		log = append(log, "saving to '"+name+"'", "'"+name+"' saved")
	}
	return core.JoinLines(log), next, core.Result{}
}
