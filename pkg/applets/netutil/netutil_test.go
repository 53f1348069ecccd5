package netutil_test

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/rcarmo/go-shellsim/pkg/applets/netutil"
	"github.com/rcarmo/go-shellsim/pkg/testutil"
)

var (
	loopback = netip.MustParseAddr("127.0.0.1")
	example  = netip.MustParseAddr("93.184.216.34")
)

func TestGet(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, map[string]string{
		"/var/www/html/about.txt": "about us\n",
	}), "")

	tests := []struct {
		name     string
		addr     netip.Addr
		port     int
		target   string
		status   int
		bodyPart string
	}{
		{"nginx_welcome", loopback, 80, "/", 200, "Welcome to nginx!"},
		{"nginx_file", loopback, 80, "/about.txt", 200, "about us"},
		{"nginx_missing", loopback, 80, "/nope", 404, "404 Not Found"},
		{"app_health", loopback, 8000, "/health", 200, `"status": "ok"`},
		{"app_missing", loopback, 8000, "/admin", 404, "not found"},
		{"remote_index", example, 80, "/", 200, "<h1>example.com</h1>"},
		{"remote_missing", example, 443, "/x", 404, "404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := netutil.Get(ctx, tt.addr, "example.com", tt.port, tt.target)
			if resp.Status != tt.status {
				t.Errorf("status %d, want %d", resp.Status, tt.status)
			}
			testutil.AssertOutputContains(t, resp.Body, tt.bodyPart)
		})
	}
}

func TestReply(t *testing.T) {
	ctx := testutil.NewContext(testutil.NewState(t, nil), "")
	if got := netutil.Reply(ctx, loopback, "localhost", 6379, "PING\n"); got != "+PONG" {
		t.Errorf("redis reply %q", got)
	}
	head := netutil.Reply(ctx, loopback, "localhost", 8000, "HEAD / HTTP/1.0\n\n")
	if !strings.HasPrefix(head, "HTTP/1.1 200 OK\nServer: SimpleHTTP") || strings.Contains(head, "status") {
		t.Errorf("head reply %q", head)
	}
	if got := netutil.Reply(ctx, loopback, "localhost", 80, "DELETE / HTTP/1.1"); got != "HTTP/1.1 405 Method Not Allowed" {
		t.Errorf("delete reply %q", got)
	}
	if got := netutil.Reply(ctx, loopback, "localhost", 22, "hello"); got != "" {
		t.Errorf("ssh reply %q", got)
	}
	if netutil.Banner(22) == "" || netutil.Banner(80) != "" {
		t.Error("unexpected banners")
	}
}
