package confetti

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	var fired []string
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	stopped := c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "b") })
	c.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })

	if !stopped.Stop() {
		t.Fatal("Stop() = false for a pending timer")
	}
	if stopped.Stop() {
		t.Error("second Stop() = true")
	}

	c.Advance(9 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}
	c.Advance(25 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "c" {
		t.Errorf("fired = %v, want [a c]", fired)
	}
	if got := c.Now(); !got.Equal(start.Add(34 * time.Millisecond)) {
		t.Errorf("Now() = %v", got)
	}

	c.Advance(time.Second)
	if len(fired) != 2 {
		t.Errorf("timers fired twice: %v", fired)
	}
}
