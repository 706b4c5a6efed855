package heap

import (
	"math"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Source reports free memory in bytes. Zero is reserved for "unknown".
type Source interface {
	Free() uint32
}

// SourceFunc adapts a function to Source.
type SourceFunc func() uint32

// Free calls f.
func (f SourceFunc) Free() uint32 {
	return f()
}

// DefaultHeadroom is the budget HostSource grants above the resident size it
// measures on first read.
const DefaultHeadroom = 256 * 1024

// HostSource measures this process against a fixed byte budget: free memory is
// the budget minus the current resident set size.
type HostSource struct {
	mu     sync.Mutex
	budget uint64
	proc   *process.Process
}

// NewHostSource creates a source with the given budget. A zero budget is set
// on first read to the resident size at that moment plus DefaultHeadroom.
func NewHostSource(budget uint64) *HostSource {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &HostSource{budget: budget, proc: proc}
}

// Free returns budget minus RSS, clamped into [1, MaxUint32]. When the process
// cannot be inspected it falls back to system available memory.
func (h *HostSource) Free() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()

	used, ok := h.rss()
	if !ok {
		vm, err := mem.VirtualMemory()
		if err != nil {
			return 0
		}
		return clampFree(vm.Available)
	}
	if h.budget == 0 {
		h.budget = used + DefaultHeadroom
	}
	if used >= h.budget {
		return 1
	}
	return clampFree(h.budget - used)
}

func (h *HostSource) rss() (uint64, bool) {
	if h.proc == nil {
		return 0, false
	}
	info, err := h.proc.MemoryInfo()
	if err != nil || info == nil {
		return 0, false
	}
	return info.RSS, true
}

func clampFree(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	if v == 0 {
		return 1
	}
	return uint32(v)
}

// SimulatedSource is a seeded random walk that holds each value for a period,
// so consumers polling faster than the period see it unchanged.
type SimulatedSource struct {
	mu     sync.Mutex
	rng    *rand.Rand
	value  uint32
	step   uint32
	low    uint32
	high   uint32
	drift  int64
	period time.Duration
	next   time.Time
	now    func() time.Time
}

// SimulatedOptions tunes a SimulatedSource.
type SimulatedOptions struct {
	Start  uint32
	Step   uint32 // max change per period, either direction
	Low    uint32
	High   uint32
	Drift  int64 // added every period; negative values model a leak
	Period time.Duration
	Seed   uint64
}

// NewSimulatedSource creates a random-walk source.
func NewSimulatedSource(opts SimulatedOptions) *SimulatedSource {
	if opts.Start == 0 {
		opts.Start = 140000
	}
	if opts.Step == 0 {
		opts.Step = 2000
	}
	if opts.Low == 0 {
		opts.Low = 1
	}
	if opts.High == 0 || opts.High < opts.Start {
		opts.High = opts.Start * 2
	}
	return &SimulatedSource{
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9E3779B97F4A7C15)),
		value:  opts.Start,
		step:   opts.Step,
		low:    opts.Low,
		high:   opts.High,
		drift:  opts.Drift,
		period: opts.Period,
		now:    time.Now,
	}
}

// Free returns the current value, stepping the walk when the period elapsed.
// A zero period steps on every call.
func (s *SimulatedSource) Free() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.period > 0 && now.Before(s.next) {
		return s.value
	}
	s.next = now.Add(s.period)

	delta := s.rng.Int64N(2*int64(s.step)+1) - int64(s.step) + s.drift
	v := int64(s.value) + delta
	if v < int64(s.low) {
		v = int64(s.low)
	}
	if v > int64(s.high) {
		v = int64(s.high)
	}
	s.value = uint32(v)
	return s.value
}
