package animation

import (
	"math"
	"testing"
	"time"
)

func TestAnimation_Progress(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	anim := Animation{Duration: 100 * time.Millisecond}

	cases := []struct {
		name     string
		at       time.Duration
		want     float64
		wantDone bool
	}{
		{"at start", 0, 0, false},
		{"halfway", 50 * time.Millisecond, 0.5, false},
		{"at end", 100 * time.Millisecond, 1, true},
		{"past end", 250 * time.Millisecond, 1, true},
	}
	for _, tc := range cases {
		got, done := anim.Progress(start, start.Add(tc.at))
		if math.Abs(got-tc.want) > 1e-9 || done != tc.wantDone {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tc.name, got, done, tc.want, tc.wantDone)
		}
	}
}

func TestAnimation_Delay(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	anim := Animation{Duration: 100 * time.Millisecond, Delay: 50 * time.Millisecond}

	if got, done := anim.Progress(start, start.Add(25*time.Millisecond)); got != 0 || done {
		t.Errorf("expected progress 0 during delay, got (%v, %v)", got, done)
	}
	if got, _ := anim.Progress(start, start.Add(100*time.Millisecond)); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected progress 0.5 after delay, got %v", got)
	}
}

func TestAnimation_ZeroDurationCompletesImmediately(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got, done := Animation{}.Progress(start, start)
	if got != 1 || !done {
		t.Errorf("expected (1, true), got (%v, %v)", got, done)
	}
}

func TestAnimation_Loops(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	anim := Animation{Duration: 100 * time.Millisecond, Loops: 2}

	// 150ms is halfway through the second iteration.
	if got, done := anim.Progress(start, start.Add(150*time.Millisecond)); math.Abs(got-0.5) > 1e-9 || done {
		t.Errorf("expected (0.5, false) in second loop, got (%v, %v)", got, done)
	}
	if _, done := anim.Progress(start, start.Add(200*time.Millisecond)); !done {
		t.Error("expected completion after two loops")
	}

	forever := Animation{Duration: 100 * time.Millisecond, Loops: -1}
	if _, done := forever.Progress(start, start.Add(time.Hour)); done {
		t.Error("expected infinite loop to never complete")
	}
}

func TestCubicBezier_Endpoints(t *testing.T) {
	for _, curve := range []func(float64) float64{LinearCurve, Ease, EaseIn, EaseOut, EaseInOut} {
		if got := curve(0); got != 0 {
			t.Errorf("curve(0) = %v, want 0", got)
		}
		if got := curve(1); got != 1 {
			t.Errorf("curve(1) = %v, want 1", got)
		}
	}
}

func TestCubicBezier_Monotonic(t *testing.T) {
	curve := CubicBezier(0.4, 0.0, 0.2, 1.0)
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := curve(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("curve not monotonic at t=%v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
}

func TestLerpFloat64(t *testing.T) {
	if got := LerpFloat64(10, 20, 0.5); got != 15 {
		t.Errorf("LerpFloat64(10, 20, 0.5) = %v, want 15", got)
	}
}

func TestLerpInt_Rounds(t *testing.T) {
	if got := LerpInt(0, 10, 0.55); got != 6 {
		t.Errorf("LerpInt(0, 10, 0.55) = %v, want 6", got)
	}
}

func TestLerpColor(t *testing.T) {
	black := Color(0xFF000000)
	white := Color(0xFFFFFFFF)
	mid := LerpColor(black, white, 0.5)
	if (mid>>24)&0xFF != 0xFF {
		t.Errorf("alpha should stay opaque, got %08x", uint32(mid))
	}
	if r := (mid >> 16) & 0xFF; r < 0x7E || r > 0x80 {
		t.Errorf("red channel should be near 0x7F, got %02x", r)
	}
}

func TestDriver_TickRemovesCompleted(t *testing.T) {
	d := NewDriver()
	ticks := 0
	d.Schedule(func(now time.Time) bool {
		ticks++
		return ticks >= 2
	})

	now := time.Now()
	d.Tick(now)
	if !d.HasActive() {
		t.Fatal("animation should still be active after first tick")
	}
	d.Tick(now)
	if d.HasActive() {
		t.Fatal("animation should be removed after completion")
	}
	d.Tick(now)
	if ticks != 2 {
		t.Errorf("expected 2 ticks, got %d", ticks)
	}
}

func TestDriver_Cancel(t *testing.T) {
	d := NewDriver()
	ran := false
	cancel := d.Schedule(func(now time.Time) bool {
		ran = true
		return false
	})
	cancel()
	d.Tick(time.Now())
	if ran {
		t.Error("cancelled animation should not tick")
	}
	if d.HasActive() {
		t.Error("cancelled animation should not count as active")
	}
}

func TestSetClock_Restores(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	prev := SetClock(fixedClock{fixed})
	defer SetClock(prev)

	if got := Now(); !got.Equal(fixed) {
		t.Errorf("Now() = %v, want %v", got, fixed)
	}
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }
