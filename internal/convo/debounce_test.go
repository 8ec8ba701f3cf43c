package convo

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebounceCoalesces(t *testing.T) {
	d := NewDebounce(20 * time.Millisecond)
	var fired atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("fired %d times, want 1", got)
	}
}

func TestDebounceStopCancels(t *testing.T) {
	d := NewDebounce(20 * time.Millisecond)
	var fired atomic.Int32

	d.Trigger(func() { fired.Add(1) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("fired %d times after Stop, want 0", got)
	}
}
