package counter

import (
	"iter"
	"testing"
	"time"

	"github.com/Zachkp/storyfolio/frame"
	"github.com/Zachkp/storyfolio/observe"
	"github.com/Zachkp/storyfolio/scroll"
	"github.com/Zachkp/storyfolio/visibility"
)

// framesEvery yields n timestamps spaced by step.
func framesEvery(step time.Duration, n int) iter.Seq[time.Time] {
	base := time.Unix(1000, 0)
	return func(yield func(time.Time) bool) {
		for i := 0; i < n; i++ {
			if !yield(base.Add(time.Duration(i) * step)) {
				return
			}
		}
	}
}

func TestValueAt(t *testing.T) {
	tests := []struct {
		target   int
		duration time.Duration
		elapsed  time.Duration
		want     int
	}{
		{100, time.Second, 0, 0},
		{100, time.Second, 333 * time.Millisecond, 33},
		{100, time.Second, 999 * time.Millisecond, 99},
		{100, time.Second, time.Second, 100},
		{100, time.Second, 5 * time.Second, 100},
		{3, 2 * time.Second, time.Second, 1},
		{60, 0, 0, 60},
		{0, time.Second, time.Second, 0},
		{-5, time.Second, time.Second, 0},
	}
	for _, tc := range tests {
		if got := ValueAt(tc.target, tc.duration, tc.elapsed); got != tc.want {
			t.Errorf("ValueAt(%d, %v, %v): expected %d, got %d", tc.target, tc.duration, tc.elapsed, tc.want, got)
		}
	}
}

func TestDriveReachesTargetExactly(t *testing.T) {
	var samples []int
	for v := range Drive(100, time.Second, framesEvery(16*time.Millisecond, 1000)) {
		samples = append(samples, v)
	}

	if len(samples) == 0 {
		t.Fatalf("Expected samples")
	}
	if samples[0] < 0 {
		t.Errorf("Expected first sample >= 0, got %d", samples[0])
	}
	if last := samples[len(samples)-1]; last != 100 {
		t.Errorf("Expected last sample 100, got %d", last)
	}
	if len(samples) > 70 {
		t.Errorf("Expected the sequence to stop at the target, got %d samples", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i] < samples[i-1] {
			t.Fatalf("sequence decreased at %d: %v", i, samples)
		}
	}
}

func TestDriveStopsWhenConsumerStops(t *testing.T) {
	n := 0
	for range Drive(100, time.Second, framesEvery(time.Millisecond, 1000)) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("Expected 3 samples, got %d", n)
	}
}

func TestCounterWaitsForTrigger(t *testing.T) {
	frames := frame.NewScheduler()
	var got []int
	c := New(10, 100*time.Millisecond, frames, func(v int) { got = append(got, v) })

	frames.Tick(time.Unix(0, 0))
	if len(got) != 0 || c.Value() != 0 {
		t.Fatalf("Expected no samples before trigger, got %v", got)
	}

	c.Trigger()
	c.Trigger()
	base := time.Unix(10, 0)
	frames.Tick(base)
	frames.Tick(base.Add(50 * time.Millisecond))
	frames.Tick(base.Add(100 * time.Millisecond))
	frames.Tick(base.Add(150 * time.Millisecond))

	want := []int{0, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
	if !c.Done() || frames.Pending() != 0 {
		t.Errorf("Expected finished counter with no pending frames")
	}
}

func TestCounterCloseMidAnimation(t *testing.T) {
	frames := frame.NewScheduler()
	calls := 0
	c := New(100, time.Second, frames, func(int) { calls++ })

	c.Trigger()
	frames.Tick(time.Unix(0, 0))
	c.Close()
	frames.Tick(time.Unix(0, int64(500*time.Millisecond)))

	if calls != 1 {
		t.Errorf("Expected no samples after Close, got %d calls", calls)
	}
	c.Trigger()
	if frames.Pending() != 0 {
		t.Errorf("Expected closed counter to ignore Trigger")
	}
}

func TestCounterBindStartsOnVisibility(t *testing.T) {
	layout := scroll.NewLayout()
	vp := observe.NewValue(scroll.Viewport{ScrollY: 0, Height: 800})
	obs := visibility.NewObserver(layout, vp)
	frames := frame.NewScheduler()
	layout.Register("impact-metric-0", scroll.Bounds{Top: 2000, Height: 300})

	var last int
	c := New(60, 10*time.Millisecond, frames, func(v int) { last = v })
	c.Bind(obs, "impact-metric-0")
	defer c.Close()

	frames.Tick(time.Unix(0, 0))
	if frames.Pending() != 0 {
		t.Fatalf("Expected counter idle while out of view")
	}

	vp.Set(scroll.Viewport{ScrollY: 1500, Height: 800})
	frames.Tick(time.Unix(1, 0))
	frames.Tick(time.Unix(2, 0))
	if last != 60 {
		t.Errorf("Expected counter to reach 60, got %d", last)
	}

	// Leaving and re-entering does not restart it.
	vp.Set(scroll.Viewport{ScrollY: 0, Height: 800})
	vp.Set(scroll.Viewport{ScrollY: 1500, Height: 800})
	if frames.Pending() != 0 {
		t.Errorf("Expected no restart on re-entry")
	}
}
