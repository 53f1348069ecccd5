package sysstate

import (
	"fmt"
	"sort"
	"strings"
)

// Process is one row of the process table.
type Process struct {
	PID     int
	PPID    int
	User    string
	Command string
	Nice    int
	TTY     string
	CPU     float64
	Mem     float64
	VSZ     int
	RSS     int
	Stat    string
	Start   string

	// Affinity is the CPU mask; zero means every CPU.
	Affinity uint64
	IOClass  IOClass
	IOLevel  int
}

// CPUMask is the effective affinity mask.
func (p Process) CPUMask() uint64 {
	if p.Affinity == 0 {
		return AllCPUs
	}
	return p.Affinity
}

// Name is the executable name: the base of the first word of Command,
// without a leading '-' for login shells.
func (p Process) Name() string {
	first, _, _ := strings.Cut(p.Command, " ")
	first = strings.TrimPrefix(first, "-")
	if i := strings.LastIndexByte(first, '/'); i >= 0 {
		first = first[i+1:]
	}
	return strings.TrimSuffix(first, ":")
}

// ProcessTable is the pid-keyed process list.
type ProcessTable struct {
	procs   map[int]*Process
	nextPID int
}

func newProcessTable() *ProcessTable {
	t := &ProcessTable{procs: map[int]*Process{}, nextPID: 2000}
	seed := []Process{
		{PID: 1, User: "root", Command: "/sbin/init", VSZ: 167744, RSS: 11520, Start: "09:00"},
		{PID: 412, PPID: 1, User: "root", Command: "/usr/sbin/sshd -D", VSZ: 15436, RSS: 9020, Start: "09:00"},
		{PID: 530, PPID: 1, User: "root", Command: "/usr/sbin/cron -f", VSZ: 9640, RSS: 2700, Start: "09:00"},
		{PID: 601, PPID: 1, User: "root", Command: "nginx: master process /usr/sbin/nginx", VSZ: 55280, RSS: 5800, Start: "09:01"},
		{PID: 602, PPID: 601, User: "www-data", Command: "nginx: worker process", VSZ: 55900, RSS: 6100, Start: "09:01"},
		{PID: 1024, PPID: 1, User: "user", Command: "python3 app.py", CPU: 2.5, Mem: 1.2, VSZ: 31200, RSS: 24800, Start: "11:42"},
		{PID: 1100, PPID: 412, User: "user", Command: "-bash", TTY: "pts/0", VSZ: 8900, RSS: 5300, Start: "12:10"},
	}
	for i := range seed {
		p := seed[i]
		if p.TTY == "" {
			p.TTY = "?"
		}
		p.Stat = "S"
		t.procs[p.PID] = &p
	}
	return t
}

// List returns a copy of every process ordered by pid.
func (t *ProcessTable) List() []Process {
	out := make([]Process, 0, len(t.procs))
	for _, p := range t.procs {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// Get returns the process with pid.
func (t *ProcessTable) Get(pid int) (Process, bool) {
	p, ok := t.procs[pid]
	if !ok {
		return Process{}, false
	}
	return *p, true
}

// Start adds a process and returns it.
func (t *ProcessTable) Start(user, command string, nice int, ppid int) Process {
	pid := t.nextPID
	t.nextPID++
	p := &Process{
		PID:     pid,
		PPID:    ppid,
		User:    user,
		Command: command,
		Nice:    nice,
		TTY:     "pts/0",
		Stat:    "S",
		VSZ:     4300,
		RSS:     1800,
		Start:   "12:30",
	}
	if nice > 0 {
		p.Stat = "SN"
	} else if nice < 0 {
		p.Stat = "S<"
	}
	t.procs[pid] = p
	return *p
}

// ErrNoProcess is returned for an unknown pid.
type ErrNoProcess int

func (e ErrNoProcess) Error() string { return fmt.Sprintf("(%d) - No such process", int(e)) }

// ErrPermission is returned when user may not signal or renice pid.
type ErrPermission int

func (e ErrPermission) Error() string { return fmt.Sprintf("(%d) - Operation not permitted", int(e)) }

func (t *ProcessTable) owned(pid int, user string) (*Process, error) {
	p, ok := t.procs[pid]
	if !ok {
		return nil, ErrNoProcess(pid)
	}
	if user != "root" && p.User != user {
		return nil, ErrPermission(pid)
	}
	return p, nil
}

// Kill removes pid on behalf of user. Any signal terminates except 0, which
// only probes, and the non-fatal job control and user signals.
func (t *ProcessTable) Kill(pid int, signal int, user string) error {
	if pid == 1 {
		return ErrPermission(pid)
	}
	if _, err := t.owned(pid, user); err != nil {
		return err
	}
	switch signal {
	case 0, SIGCONT, SIGUSR1, SIGUSR2, SIGHUP:
		return nil
	case SIGSTOP, SIGTSTP:
		t.procs[pid].Stat = "T"
		return nil
	}
	delete(t.procs, pid)
	for _, p := range t.procs {
		if p.PPID == pid {
			delete(t.procs, p.PID)
		}
	}
	return nil
}

// Renice sets pid's niceness. Only root may lower it.
func (t *ProcessTable) Renice(pid, nice int, user string) (old int, err error) {
	p, err := t.owned(pid, user)
	if err != nil {
		return 0, err
	}
	if nice < p.Nice && user != "root" {
		return 0, ErrPermission(pid)
	}
	old = p.Nice
	p.Nice = clampNice(nice)
	switch {
	case p.Nice > 0:
		p.Stat = "SN"
	case p.Nice < 0:
		p.Stat = "S<"
	default:
		p.Stat = "S"
	}
	return old, nil
}

func clampNice(n int) int {
	if n < -20 {
		return -20
	}
	if n > 19 {
		return 19
	}
	return n
}

// ErrInvalidArgument is returned for an affinity or I/O priority the
// machine cannot honour.
type ErrInvalidArgument int

func (e ErrInvalidArgument) Error() string { return fmt.Sprintf("(%d) - Invalid argument", int(e)) }

// SetAffinity pins pid to the CPUs in mask.
func (t *ProcessTable) SetAffinity(pid int, mask uint64, user string) error {
	p, err := t.owned(pid, user)
	if err != nil {
		return err
	}
	if mask&AllCPUs == 0 {
		return ErrInvalidArgument(pid)
	}
	p.Affinity = mask & AllCPUs
	return nil
}

// SetIOPriority sets pid's I/O scheduling class and level. Only root may
// use the realtime class.
func (t *ProcessTable) SetIOPriority(pid int, class IOClass, level int, user string) error {
	p, err := t.owned(pid, user)
	if err != nil {
		return err
	}
	if level < 0 || level > 7 || class > IOIdle {
		return ErrInvalidArgument(pid)
	}
	if class == IORealtime && user != "root" {
		return ErrPermission(pid)
	}
	p.IOClass, p.IOLevel = class, level
	return nil
}

// Detach moves pid into a new session with no controlling terminal.
func (t *ProcessTable) Detach(pid int) {
	if p, ok := t.procs[pid]; ok {
		p.PPID, p.TTY = 1, "?"
	}
}

// IOClass is an I/O scheduling class as ionice names them.
type IOClass int

const (
	IONone IOClass = iota
	IORealtime
	IOBestEffort
	IOIdle
)

func (c IOClass) String() string {
	switch c {
	case IORealtime:
		return "realtime"
	case IOBestEffort:
		return "best-effort"
	case IOIdle:
		return "idle"
	}
	return "none"
}

// HasCommand reports whether any process command line contains substr.
func (t *ProcessTable) HasCommand(substr string) bool {
	for _, p := range t.procs {
		if strings.Contains(p.Command, substr) {
			return true
		}
	}
	return false
}

// Session is a logged-in user: a login shell attached to a terminal.
type Session struct {
	User  string
	TTY   string
	Login string
	PID   int
}

// Sessions lists login shells in pid order.
func (t *ProcessTable) Sessions() []Session {
	var out []Session
	for _, p := range t.List() {
		if !strings.HasPrefix(p.Command, "-") || p.TTY == "?" {
			continue
		}
		out = append(out, Session{User: p.User, TTY: p.TTY, Login: p.Start, PID: p.PID})
	}
	return out
}

// Signal numbers as on Linux x86.
const (
	SIGHUP  = 1
	SIGINT  = 2
	SIGQUIT = 3
	SIGKILL = 9
	SIGUSR1 = 10
	SIGUSR2 = 12
	SIGTERM = 15
	SIGCONT = 18
	SIGSTOP = 19
	SIGTSTP = 20
)

// SignalNames maps numbers to names without the SIG prefix.
var SignalNames = map[int]string{
	SIGHUP:  "HUP",
	SIGINT:  "INT",
	SIGQUIT: "QUIT",
	SIGKILL: "KILL",
	SIGUSR1: "USR1",
	SIGUSR2: "USR2",
	SIGTERM: "TERM",
	SIGCONT: "CONT",
	SIGSTOP: "STOP",
	SIGTSTP: "TSTP",
}
