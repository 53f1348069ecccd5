package sysstate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Service is one systemd unit.
type Service struct {
	Name        string
	Description string
	Exec        string
	Enabled     bool
	PID         int
}

// ServiceTable tracks units. A unit is active while its main process is in
// the process table, so killing the process stops the service.
type ServiceTable struct {
	units   map[string]*Service
	procs   *ProcessTable
	journal *Journal
}

func newServiceTable(procs *ProcessTable, journal *Journal) *ServiceTable {
	t := &ServiceTable{units: map[string]*Service{}, procs: procs, journal: journal}
	for _, s := range []Service{
		{Name: "cron", Description: "Regular background program processing daemon", Exec: "/usr/sbin/cron -f", Enabled: true, PID: 530},
		{Name: "nginx", Description: "A high performance web server and a reverse proxy server", Exec: "nginx: master process /usr/sbin/nginx", Enabled: true, PID: 601},
		{Name: "ssh", Description: "OpenBSD Secure Shell server", Exec: "/usr/sbin/sshd -D", Enabled: true, PID: 412},
		{Name: "apache2", Description: "The Apache HTTP Server", Exec: "/usr/sbin/apache2 -k start"},
		{Name: "mysql", Description: "MySQL Community Server", Exec: "/usr/sbin/mysqld"},
		{Name: "docker", Description: "Docker Application Container Engine", Exec: "/usr/bin/dockerd"},
	} {
		t.units[s.Name] = &s
	}
	return t
}

// UnitName strips a ".service" suffix.
func UnitName(name string) string {
	return strings.TrimSuffix(name, ".service")
}

// ErrNoUnit is returned for an unknown unit.
type ErrNoUnit string

func (e ErrNoUnit) Error() string { return fmt.Sprintf("Unit %s.service not found.", string(e)) }

// Get returns a copy of the unit.
func (t *ServiceTable) Get(name string) (Service, bool) {
	s, ok := t.units[UnitName(name)]
	if !ok {
		return Service{}, false
	}
	return *s, true
}

// Active reports whether the unit's main process is running.
func (t *ServiceTable) Active(name string) bool {
	s, ok := t.units[UnitName(name)]
	if !ok || s.PID == 0 {
		return false
	}
	_, running := t.procs.Get(s.PID)
	return running
}

// List returns every unit in name order.
func (t *ServiceTable) List() []Service {
	out := make([]Service, 0, len(t.units))
	for _, s := range t.units {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *ServiceTable) unit(name string) (*Service, error) {
	s, ok := t.units[UnitName(name)]
	if !ok {
		return nil, ErrNoUnit(UnitName(name))
	}
	return s, nil
}

// Start launches the unit's process unless it is already running.
func (t *ServiceTable) Start(name string) error {
	s, err := t.unit(name)
	if err != nil {
		return err
	}
	if t.Active(s.Name) {
		return nil
	}
	p := t.procs.Start("root", s.Exec, 0, 1)
	s.PID = p.PID
	t.journal.Append(s.Name, PriInfo, "Started "+s.Description+".")
	return nil
}

// Stop terminates the unit's process.
func (t *ServiceTable) Stop(name string) error {
	s, err := t.unit(name)
	if err != nil {
		return err
	}
	if t.Active(s.Name) {
		_ = t.procs.Kill(s.PID, SIGTERM, "root")
		t.journal.Append(s.Name, PriInfo, "Stopped "+s.Description+".")
	}
	s.PID = 0
	return nil
}

// Restart stops then starts the unit.
func (t *ServiceTable) Restart(name string) error {
	if err := t.Stop(name); err != nil {
		return err
	}
	return t.Start(name)
}

// SetEnabled toggles start at boot.
func (t *ServiceTable) SetEnabled(name string, enabled bool) error {
	s, err := t.unit(name)
	if err != nil {
		return err
	}
	s.Enabled = enabled
	return nil
}

// Syslog priorities.
const (
	PriEmerg = iota
	PriAlert
	PriCrit
	PriErr
	PriWarning
	PriNotice
	PriInfo
	PriDebug
)

var priorityNames = []string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}

// PriorityName is the syslog keyword for p.
func PriorityName(p int) string {
	if p < 0 || p >= len(priorityNames) {
		return strconv.Itoa(p)
	}
	return priorityNames[p]
}

// ParsePriority accepts a number, a name or a facility.name pair.
func ParsePriority(s string) (int, bool) {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '7' {
		return int(s[0] - '0'), true
	}
	switch s {
	case "error":
		return PriErr, true
	case "warn":
		return PriWarning, true
	}
	for i, n := range priorityNames {
		if n == s {
			return i, true
		}
	}
	return 0, false
}

// JournalEntry is one log record.
type JournalEntry struct {
	Time     time.Time
	Unit     string
	Priority int
	Message  string
}

// Journal is the append-only system log.
type Journal struct {
	entries []JournalEntry
	clock   *Clock
	host    string
}

// Append records a message at the current simulated time.
func (j *Journal) Append(unit string, priority int, message string) {
	j.entries = append(j.entries, JournalEntry{Time: j.clock.Now(), Unit: unit, Priority: priority, Message: message})
}

// Query returns entries for unit (all when empty) at or more severe than
// maxPriority, keeping only the last n when n > 0.
func (j *Journal) Query(unit string, maxPriority, n int) []JournalEntry {
	var out []JournalEntry
	for _, e := range j.entries {
		if unit != "" && e.Unit != UnitName(unit) {
			continue
		}
		if e.Priority > maxPriority {
			continue
		}
		out = append(out, e)
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// Format renders e in the short journalctl style.
func (j *Journal) Format(e JournalEntry) string {
	return fmt.Sprintf("%s %s %s: %s", e.Time.Format("Jan 02 15:04:05"), j.host, e.Unit, e.Message)
}
