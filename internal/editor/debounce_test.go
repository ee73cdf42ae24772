package editor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		d.Call()
	}
	if !d.IsPending() {
		t.Error("IsPending() = false after Call()")
	}
	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("callback ran %d times, want 1", n)
	}
	if d.IsPending() {
		t.Error("IsPending() = true after callback ran")
	}
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	d.Call()
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("callback ran %d times after Cancel(), want 0", n)
	}
}

func TestDebouncerFlush(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(time.Hour, func() { calls.Add(1) })

	d.Flush()
	if n := calls.Load(); n != 0 {
		t.Errorf("Flush() with nothing pending ran callback %d times", n)
	}
	d.Call()
	d.Flush()
	if n := calls.Load(); n != 1 {
		t.Errorf("Flush() ran callback %d times, want 1", n)
	}
}

func TestDebouncerSetDelay(t *testing.T) {
	d := NewDebouncer(time.Second, func() {})
	d.SetDelay(5 * time.Millisecond)
	if d.Delay() != 5*time.Millisecond {
		t.Errorf("Delay() = %v, want 5ms", d.Delay())
	}
}
