package clock

import "testing"

type countingTicker struct {
	calls int
	n     uint64
}

func (c *countingTicker) Tick() uint64 {
	c.calls++
	return c.n
}

func TestStepPicksMinimumNextCycle(t *testing.T) {
	s := New()
	slow := &countingTicker{n: 1}
	fast := &countingTicker{n: 1}
	s.Attach("slow", slow, 12)
	s.Attach("fast", fast, 4)

	// fast has factor 4, slow has factor 12: after 3 steps of fast for
	// every 1 step of slow, both should have the same next_tick_cycle.
	for i := 0; i < 4; i++ {
		s.Step()
	}

	if fast.calls != 3 {
		t.Errorf("expected fast ticker to run 3 times, got %d", fast.calls)
	}
	if slow.calls != 1 {
		t.Errorf("expected slow ticker to run 1 time, got %d", slow.calls)
	}
}

func TestElapsedMonotonicallyNonDecreasing(t *testing.T) {
	s := New()
	s.Attach("a", &countingTicker{n: 2}, 3)
	s.Attach("b", &countingTicker{n: 1}, 7)

	prev := s.Elapsed()
	for i := 0; i < 50; i++ {
		s.Step()
		if s.Elapsed() < prev {
			t.Fatalf("elapsed decreased: %d -> %d", prev, s.Elapsed())
		}
		prev = s.Elapsed()
	}
}

func TestTieBreaksByInsertionOrder(t *testing.T) {
	s := New()
	var order []string
	first := tickerFunc(func() uint64 { order = append(order, "first"); return 1 })
	second := tickerFunc(func() uint64 { order = append(order, "second"); return 1 })
	s.Attach("first", first, 5)
	s.Attach("second", second, 5)

	s.Step()
	s.Step()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected tie-break by insertion order, got %v", order)
	}
}

type tickerFunc func() uint64

func (f tickerFunc) Tick() uint64 { return f() }

func TestResetRewindsElapsedAndNextCycles(t *testing.T) {
	s := New()
	s.Attach("a", &countingTicker{n: 4}, 6)
	for i := 0; i < 10; i++ {
		s.Step()
	}
	if s.Elapsed() == 0 {
		t.Fatal("expected elapsed to advance before reset")
	}
	s.Reset()
	if s.Elapsed() != 0 {
		t.Errorf("expected elapsed 0 after reset, got %d", s.Elapsed())
	}
}
