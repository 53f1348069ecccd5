package sysstate

import (
	"errors"
	"net/netip"
	"sort"
	"strconv"
	"strings"
)

// Socket is one row of the socket table.
type Socket struct {
	Netid string
	State string
	Local string
	Peer  string
	PID   int
	Name  string
}

// well-known listeners, keyed by a command line fragment
var listeners = []struct {
	command string
	netid   string
	local   string
}{
	{"sshd", "tcp", "0.0.0.0:22"},
	{"nginx: master", "tcp", "0.0.0.0:80"},
	{"python3 app.py", "tcp", "127.0.0.1:8000"},
	{"named", "udp", "0.0.0.0:53"},
	{"ntpd", "udp", "0.0.0.0:123"},
	{"redis-server", "tcp", "127.0.0.1:6379"},
	{"postgres", "tcp", "127.0.0.1:5432"},
}

// Sockets derives the socket table from the running processes: a
// listener for every known daemon and an established connection for every
// login session, ordered by netid then local address.
func (s *System) Sockets() []Socket {
	var out []Socket
	procs := s.Processes.List()
	for _, l := range listeners {
		for _, p := range procs {
			if !strings.Contains(p.Command, l.command) {
				continue
			}
			state := "LISTEN"
			if l.netid == "udp" {
				state = "UNCONN"
			}
			out = append(out, Socket{Netid: l.netid, State: state, Local: l.local, Peer: "0.0.0.0:*", PID: p.PID, Name: p.Name()})
			break
		}
	}
	local := "10.0.2.15"
	if eth, ok := s.Network.Interface("eth0"); ok && len(eth.Addrs) > 0 {
		local = eth.Addrs[0].Addr().String()
	}
	for i, sess := range s.Processes.Sessions() {
		p, _ := s.Processes.Get(sess.PID)
		out = append(out, Socket{
			Netid: "tcp",
			State: "ESTAB",
			Local: local + ":22",
			Peer:  RemoteHost(s.Network) + ":" + strconv.Itoa(51514+i),
			PID:   p.PPID,
			Name:  "sshd",
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Netid != out[j].Netid {
			return out[i].Netid < out[j].Netid
		}
		return out[i].State > out[j].State
	})
	return out
}

// RemoteHost is the address login sessions come from: the default
// gateway.
func RemoteHost(n *Network) string {
	for _, r := range n.Routes() {
		if r.Dest == "default" && r.Via != "" {
			return r.Via
		}
	}
	return "127.0.0.1"
}

var portNames = map[string]string{
	"22":   "ssh",
	"53":   "domain",
	"80":   "http",
	"123":  "ntp",
	"443":  "https",
	"5432": "postgresql",
	"6379": "redis",
	"8000": "irdmi",
}

// PortName is the /etc/services name of a port number.
func PortName(port string) (string, bool) {
	name, ok := portNames[port]
	return name, ok
}

// remote hosts serve the web and nothing else
var remotePorts = map[int]bool{80: true, 443: true}

var (
	ErrRefused  = errors.New("Connection refused")
	ErrTimedOut = errors.New("Connection timed out")
)

// Dial reports whether a TCP connection to addr:port would be accepted. A
// local address accepts what a running daemon listens on; a reachable
// remote host accepts the web ports.
func (s *System) Dial(addr netip.Addr, port int) error {
	_, ok, err := s.Network.Ping(addr)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTimedOut
	}
	if !s.IsLocal(addr) {
		if remotePorts[port] {
			return nil
		}
		return ErrRefused
	}
	suffix := ":" + strconv.Itoa(port)
	for _, sock := range s.Sockets() {
		if sock.Netid != "tcp" || sock.State != "LISTEN" || !strings.HasSuffix(sock.Local, suffix) {
			continue
		}
		host := strings.TrimSuffix(sock.Local, suffix)
		if host == "0.0.0.0" || host == addr.String() || addr.IsLoopback() && host == "127.0.0.1" {
			return nil
		}
	}
	return ErrRefused
}

// IsLocal reports whether addr belongs to the machine itself.
func (s *System) IsLocal(addr netip.Addr) bool {
	if addr.IsLoopback() {
		return true
	}
	for _, iface := range s.Network.Interfaces() {
		for _, p := range iface.Addrs {
			if p.Addr() == addr {
				return true
			}
		}
	}
	return false
}
