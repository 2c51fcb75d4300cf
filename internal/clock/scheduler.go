// Package clock implements the master-clock scheduler that interleaves
// CPU, PPU, APU and DMA ticks by cycle budget.
package clock

import (
	"container/heap"

	"nescore/internal/debug"
)

// Ticker is anything the scheduler can advance. Tick runs the ticker's own
// unit of work and returns how many of the ticker's internal cycles it
// consumed; the scheduler multiplies that by the ticker's factor to advance
// elapsed_cycles.
type Ticker interface {
	Tick() uint64
}

// entry is the scheduler's bookkeeping record for one attached Ticker.
type entry struct {
	name    string
	t       Ticker
	factor  uint64 // master cycles per internal tick
	next    uint64 // next_tick_cycle
	seq     uint64 // insertion order, breaks exact ties
	heapIdx int
}

// entryHeap is a binary min-heap over next, falling back to seq so ties
// resolve in attach order.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].next != h[j].next {
		return h[i].next < h[j].next
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}
func (h *entryHeap) Push(x interface{}) {
	e := x.(*entry)
	e.heapIdx = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Scheduler is the master clock: a min-priority queue keyed by
// next_tick_cycle.
type Scheduler struct {
	elapsed uint64
	queue   entryHeap
	nextSeq uint64
	logger  *debug.Logger
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// SetLogger attaches a logger; nil disables scheduler logging.
func (s *Scheduler) SetLogger(logger *debug.Logger) {
	s.logger = logger
}

// Attach registers a ticker whose Tick() consumes factor*n master cycles,
// where n is the value Tick() returns. The new ticker's next_tick_cycle
// starts at the scheduler's current elapsed cycle, so it is eligible
// immediately and ties with existing tickers break by attach order.
func (s *Scheduler) Attach(name string, t Ticker, factor uint64) {
	e := &entry{
		name:   name,
		t:      t,
		factor: factor,
		next:   s.elapsed,
		seq:    s.nextSeq,
	}
	s.nextSeq++
	heap.Push(&s.queue, e)
}

// Step pops the ticker with the minimum next_tick_cycle, advances
// elapsed_cycles to it, calls Tick(), and reschedules the ticker at
// next_tick_cycle += factor*n. Returns the number of master cycles the
// scheduler advanced by: 0 when no ticker is attached, and also when
// the chosen ticker was due at the cycle the scheduler already stood on.
func (s *Scheduler) Step() uint64 {
	if s.queue.Len() == 0 {
		return 0
	}

	e := s.queue[0]
	before := s.elapsed
	s.elapsed = e.next

	n := e.t.Tick()
	// A ticker that reports no work (an idle DMA controller) is polled
	// again one factor later, so it cannot be picked at this cycle forever.
	if n == 0 {
		n = 1
	}
	e.next = s.elapsed + e.factor*n
	heap.Fix(&s.queue, e.heapIdx)

	if s.logger != nil && s.logger.IsComponentEnabled(debug.ComponentScheduler) {
		s.logger.LogSchedulerf(debug.LogLevelTrace,
			"step: %s elapsed=%d->%d next=%d", e.name, before, s.elapsed, e.next)
	}

	return s.elapsed - before
}

// StepCycles advances the scheduler until at least cycles master cycles
// have elapsed since the call began.
func (s *Scheduler) StepCycles(cycles uint64) {
	target := s.elapsed + cycles
	for s.elapsed < target && s.queue.Len() > 0 {
		s.Step()
	}
}

// Elapsed returns elapsed_cycles, the current master clock cycle count.
func (s *Scheduler) Elapsed() uint64 {
	return s.elapsed
}

// Reset rewinds elapsed_cycles to zero and re-seeds every attached
// ticker's next_tick_cycle to zero, preserving attach order for tie-breaks.
func (s *Scheduler) Reset() {
	s.elapsed = 0
	for _, e := range s.queue {
		e.next = 0
	}
	heap.Init(&s.queue)
}
