package status

import (
	"sync"
	"sync/atomic"
)

// Stats holds the counters shown in the header and footer. Each field has a
// single writer; readers take a Snapshot.
type Stats struct {
	freeHeap       atomic.Uint32
	entries        atomic.Uint32
	devices        atomic.Uint32 // seen in the last scan cycle
	sessionDevices atomic.Uint32
	newDevices     atomic.Uint32 // inserted in the last scan cycle
	storage        atomic.Int32
	clockValid     atomic.Bool

	mu     sync.RWMutex
	time   string
	uptime string
}

// Snapshot is a consistent-enough copy of Stats for painting.
type Snapshot struct {
	FreeHeap       uint32
	Entries        uint32
	Devices        uint32
	SessionDevices uint32
	NewDevices     uint32
	Storage        StorageState
	ClockValid     bool
	Time           string
	Uptime         string
}

// SetFreeHeap records the last free memory reading.
func (s *Stats) SetFreeHeap(v uint32) { s.freeHeap.Store(v) }

// SetEntries records how many devices storage holds.
func (s *Stats) SetEntries(v uint32) { s.entries.Store(v) }

// SetStorage records the storage state.
func (s *Stats) SetStorage(st StorageState) { s.storage.Store(int32(st)) }

// SetClockValid records whether the wall clock can be trusted.
func (s *Stats) SetClockValid(v bool) { s.clockValid.Store(v) }

// ClockValid reports the last SetClockValid value.
func (s *Stats) ClockValid() bool { return s.clockValid.Load() }

// BeginCycle resets the per-cycle counters at the start of a scan.
func (s *Stats) BeginCycle() {
	s.devices.Store(0)
	s.newDevices.Store(0)
}

// CountDevice records one device seen in the current cycle.
func (s *Stats) CountDevice(inserted bool) {
	s.devices.Add(1)
	s.sessionDevices.Add(1)
	if inserted {
		s.newDevices.Add(1)
	}
}

// SetTimes stores the formatted clock and uptime.
func (s *Stats) SetTimes(now, uptime string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.time = now
	s.uptime = uptime
}

// Snapshot copies every field.
func (s *Stats) Snapshot() Snapshot {
	s.mu.RLock()
	now, uptime := s.time, s.uptime
	s.mu.RUnlock()
	return Snapshot{
		FreeHeap:       s.freeHeap.Load(),
		Entries:        s.entries.Load(),
		Devices:        s.devices.Load(),
		SessionDevices: s.sessionDevices.Load(),
		NewDevices:     s.newDevices.Load(),
		Storage:        StorageState(s.storage.Load()),
		ClockValid:     s.clockValid.Load(),
		Time:           now,
		Uptime:         uptime,
	}
}
