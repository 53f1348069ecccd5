package sysstate

import (
	"errors"
	"fmt"
	"net/netip"
	"sort"
)

// Interface is a network link with its addresses.
type Interface struct {
	Index int
	Name  string
	MAC   string
	MTU   int
	Up    bool
	Addrs []netip.Prefix
}

// Route is one routing table entry. Dest "default" is the default route.
type Route struct {
	Dest string
	Via  string
	Dev  string
}

// Network holds interfaces, routes and the hosts the simulated world can
// reach.
type Network struct {
	ifaces map[string]*Interface
	routes []Route
	hosts  map[string]netip.Addr
	// latency per reachable address, in tenths of a millisecond
	latency map[netip.Addr]int
}

func newNetwork() *Network {
	n := &Network{
		ifaces: map[string]*Interface{
			"lo": {Index: 1, Name: "lo", MAC: "00:00:00:00:00:00", MTU: 65536, Up: true,
				Addrs: []netip.Prefix{netip.MustParsePrefix("127.0.0.1/8")}},
			"eth0": {Index: 2, Name: "eth0", MAC: "52:54:00:12:34:56", MTU: 1500, Up: true,
				Addrs: []netip.Prefix{netip.MustParsePrefix("10.0.2.15/24")}},
		},
		routes: []Route{
			{Dest: "default", Via: "10.0.2.2", Dev: "eth0"},
			{Dest: "10.0.2.0/24", Dev: "eth0"},
		},
		hosts: map[string]netip.Addr{
			"localhost":   netip.MustParseAddr("127.0.0.1"),
			"gateway":     netip.MustParseAddr("10.0.2.2"),
			"example.com": netip.MustParseAddr("93.184.216.34"),
			"google.com":  netip.MustParseAddr("142.250.74.46"),
			"github.com":  netip.MustParseAddr("140.82.121.4"),
		},
	}
	n.latency = map[netip.Addr]int{
		netip.MustParseAddr("127.0.0.1"):     4,
		netip.MustParseAddr("10.0.2.15"):     4,
		netip.MustParseAddr("10.0.2.2"):      31,
		netip.MustParseAddr("93.184.216.34"): 1187,
		netip.MustParseAddr("142.250.74.46"): 142,
		netip.MustParseAddr("140.82.121.4"):  236,
	}
	return n
}

// Interfaces returns the links in index order.
func (n *Network) Interfaces() []Interface {
	out := make([]Interface, 0, len(n.ifaces))
	for _, i := range n.ifaces {
		out = append(out, *i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// Interface returns the named link.
func (n *Network) Interface(name string) (Interface, bool) {
	i, ok := n.ifaces[name]
	if !ok {
		return Interface{}, false
	}
	return *i, true
}

// SetLink brings a link up or down.
func (n *Network) SetLink(name string, up bool) error {
	i, ok := n.ifaces[name]
	if !ok {
		return fmt.Errorf("Cannot find device \"%s\"", name)
	}
	i.Up = up
	return nil
}

// Routes returns the routing table.
func (n *Network) Routes() []Route {
	return append([]Route(nil), n.routes...)
}

// Resolve maps a host name or literal address to an address.
func (n *Network) Resolve(host string) (netip.Addr, bool) {
	if a, err := netip.ParseAddr(host); err == nil {
		return a, true
	}
	a, ok := n.hosts[host]
	return a, ok
}

// Reverse maps an address back to its host name.
func (n *Network) Reverse(addr netip.Addr) (string, bool) {
	var names []string
	for name, a := range n.hosts {
		if a == addr {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return names[0], true
}

// ErrUnreachable means no up interface can carry traffic to the address.
var ErrUnreachable = errors.New("Network is unreachable")

// Ping reports the simulated round trip to addr in tenths of a millisecond.
// ok is false when the host exists on a reachable network but does not
// answer.
func (n *Network) Ping(addr netip.Addr) (rtt int, ok bool, err error) {
	if addr.IsLoopback() {
		if !n.ifaces["lo"].Up {
			return 0, false, ErrUnreachable
		}
		return n.latency[netip.MustParseAddr("127.0.0.1")], true, nil
	}
	eth := n.ifaces["eth0"]
	if !eth.Up {
		return 0, false, ErrUnreachable
	}
	for _, p := range eth.Addrs {
		if p.Addr() == addr {
			return n.latency[addr], true, nil
		}
	}
	rtt, ok = n.latency[addr]
	return rtt, ok, nil
}
