// Package netutil models the services nc and wget talk to: the banners
// daemons send and the pages the web servers answer with.
package netutil

import (
	"fmt"
	"net/netip"
	"path"
	"strconv"
	"strings"

	"github.com/rcarmo/go-shellsim/pkg/core"
)

// WebRoot is where the local nginx serves files from.
const WebRoot = "/var/www/html"

const nginxWelcome = `<!DOCTYPE html>
<html>
<head>
<title>Welcome to nginx!</title>
</head>
<body>
<h1>Welcome to nginx!</h1>
<p>If you see this page, the nginx web server is successfully installed and
working.</p>
</body>
</html>
`

// Response is an HTTP reply.
type Response struct {
	Status int
	Server string
	Type   string
	Body   string
}

// StatusLine renders "HTTP/1.1 200 OK".
func (r Response) StatusLine() string {
	reason := "OK"
	if r.Status == 404 {
		reason = "Not Found"
	}
	return "HTTP/1.1 " + strconv.Itoa(r.Status) + " " + reason
}

// Header renders the status line and headers, one per line.
func (r Response) Header() string {
	return core.JoinLines([]string{
		r.StatusLine(),
		"Server: " + r.Server,
		"Content-Type: " + r.Type,
		"Content-Length: " + strconv.Itoa(len(r.Body)),
	})
}

// Get answers a GET for target on addr:port. The caller has already
// checked the port accepts connections.
func Get(ctx *core.Context, addr netip.Addr, host string, port int, target string) Response {
	target = "/" + strings.TrimLeft(target, "/")
	if ctx.System.IsLocal(addr) {
		switch port {
		case 8000:
			return app(target)
		default:
			return nginx(ctx, target)
		}
	}
	if target != "/" && target != "/index.html" {
		return notFound("ECAcc (dcd/7D5A)")
	}
	body := fmt.Sprintf("<!doctype html>\n<html>\n<head>\n<title>%s</title>\n</head>\n<body>\n<h1>%s</h1>\n</body>\n</html>\n", host, host)
	return Response{Status: 200, Server: "ECAcc (dcd/7D5A)", Type: "text/html; charset=UTF-8", Body: body}
}

func nginx(ctx *core.Context, target string) Response {
	p := path.Join(WebRoot, path.Clean(target))
	if strings.HasSuffix(target, "/") || ctx.State.IsDir(p) {
		p = path.Join(p, "index.html")
	}
	body, err := ctx.State.ReadFile(p)
	if err != nil {
		if target == "/" {
			body = nginxWelcome
		} else {
			return notFound("nginx/1.24.0 (Ubuntu)")
		}
	}
	return Response{Status: 200, Server: "nginx/1.24.0 (Ubuntu)", Type: contentType(p), Body: body}
}

func app(target string) Response {
	server := "SimpleHTTP/0.6 Python/3.12.3"
	switch target {
	case "/", "/health":
		return Response{Status: 200, Server: server, Type: "application/json", Body: "{\"status\": \"ok\"}\n"}
	}
	r := notFound(server)
	r.Type, r.Body = "application/json", "{\"error\": \"not found\"}\n"
	return r
}

func notFound(server string) Response {
	return Response{Status: 404, Server: server, Type: "text/html", Body: "<html><body><h1>404 Not Found</h1></body></html>\n"}
}

func contentType(p string) string {
	switch path.Ext(p) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	case ".css":
		return "text/css"
	}
	return "text/html"
}

// Banner is what a daemon sends first on connect, if anything.
func Banner(port int) string {
	if port == 22 {
		return "SSH-2.0-OpenSSH_9.6p1 Ubuntu-3ubuntu13"
	}
	return ""
}

// Reply answers a raw request sent to port, the way nc sees it.
func Reply(ctx *core.Context, addr netip.Addr, host string, port int, request string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(request), "\n")
	fields := strings.Fields(first)
	switch {
	case port == 6379 && len(fields) > 0 && strings.EqualFold(fields[0], "PING"):
		return "+PONG"
	case (port == 80 || port == 443 || port == 8000) && len(fields) >= 2:
		method := strings.ToUpper(fields[0])
		if method != "GET" && method != "HEAD" {
			return "HTTP/1.1 405 Method Not Allowed"
		}
		resp := Get(ctx, addr, host, port, fields[1])
		if method == "HEAD" {
			return resp.Header()
		}
		return resp.Header() + "\n\n" + strings.TrimSuffix(resp.Body, "\n")
	}
	return ""
}
