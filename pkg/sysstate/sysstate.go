// Package sysstate holds the closed-world machine the simulated shell
// pretends to run on: processes, cron, services and their journal,
// packages, network and storage. A System belongs to one session and is
// passed to builtins through their context; nothing here is global.
//
// Tables are mutated in place by the builtins that own them. Access is
// single-threaded by construction, so there is no locking.
package sysstate

import (
	"time"
)

// CPUs is the processor count the machine reports.
const CPUs = 2

// AllCPUs is the affinity mask covering every CPU.
const AllCPUs uint64 = 1<<CPUs - 1

// Epoch is the simulated boot time.
var Epoch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// Clock is the simulated wall clock. It only moves when told to.
type Clock struct {
	now      time.Time
	deadline time.Time
	hit      bool
}

func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d. Negative durations are ignored.
// Under a Deadline the clock stops at the deadline.
func (c *Clock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	next := c.now.Add(d)
	if !c.deadline.IsZero() && next.After(c.deadline) {
		next, c.hit = c.deadline, true
	}
	c.now = next
}

// Deadline caps the clock d from now until the returned release func is
// called. Release reports whether anything ran into the cap and restores
// the previous deadline.
func (c *Clock) Deadline(d time.Duration) (release func() bool) {
	prevDeadline, prevHit := c.deadline, c.hit
	inner := prevDeadline.IsZero() || c.now.Add(d).Before(prevDeadline)
	if inner {
		c.deadline = c.now.Add(d)
	}
	c.hit = false
	return func() bool {
		hit := c.hit
		c.deadline = prevDeadline
		// an outer deadline that stopped the clock stays hit
		c.hit = prevHit || hit && !inner
		return hit
	}
}

// Uptime is the time since Epoch.
func (c *Clock) Uptime() time.Duration { return c.now.Sub(Epoch) }

// System bundles every simulated subsystem.
type System struct {
	Hostname  string
	Clock     *Clock
	Processes *ProcessTable
	Cron      *CronTable
	Services  *ServiceTable
	Journal   *Journal
	Packages  *PackageIndex
	Network   *Network
	Storage   *Storage
}

// New returns a freshly booted machine with the default seed data.
func New(hostname string) *System {
	if hostname == "" {
		hostname = "sandbox"
	}
	clock := &Clock{now: Epoch.Add(3*time.Hour + 17*time.Minute)}
	procs := newProcessTable()
	journal := &Journal{clock: clock, host: hostname}
	return &System{
		Hostname:  hostname,
		Clock:     clock,
		Processes: procs,
		Cron:      newCronTable(),
		Services:  newServiceTable(procs, journal),
		Journal:   journal,
		Packages:  newPackageIndex(),
		Network:   newNetwork(),
		Storage:   newStorage(),
	}
}
