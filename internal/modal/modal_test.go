package modal_test

import (
	"testing"

	"taskdeck/internal/modal"
)

type fakeLocker struct {
	locked bool
	calls  int
}

func (f *fakeLocker) SetScrollLocked(locked bool) {
	f.locked = locked
	f.calls++
}

func TestOpenLocksAndCloseRestores(t *testing.T) {
	l := &fakeLocker{}
	m := modal.New(l)

	m.Open("Error", "Failed to create task")
	if !m.IsOpen() || !l.locked {
		t.Fatal("expected open dialog with locked scroll")
	}
	if m.Title() != "Error" || m.Message() != "Failed to create task" {
		t.Errorf("unexpected content %q / %q", m.Title(), m.Message())
	}

	m.Close()
	if m.IsOpen() || l.locked {
		t.Error("expected closed dialog with scroll restored")
	}
}

func TestOpenWhileOpenReplacesMessage(t *testing.T) {
	l := &fakeLocker{}
	m := modal.New(l)

	m.Open("Error", "first")
	m.Open("Error", "second")

	if m.Message() != "second" {
		t.Errorf("expected newest message, got %q", m.Message())
	}
	if l.calls != 1 {
		t.Errorf("expected a single lock call, got %d", l.calls)
	}
	m.Close()
	if m.IsOpen() {
		t.Error("one close should dismiss the dialog")
	}
}

func TestClickInsideKeepsOpen(t *testing.T) {
	m := modal.New(nil)
	m.Open("Error", "msg")
	m.SetContentBounds(modal.Rect{X: 10, Y: 5, Width: 20, Height: 6})

	if !m.Click(15, 7) {
		t.Error("click should be consumed while open")
	}
	if !m.IsOpen() {
		t.Error("click inside content must not close")
	}
}

func TestClickBackdropCloses(t *testing.T) {
	l := &fakeLocker{}
	m := modal.New(l)
	m.Open("Error", "msg")
	m.SetContentBounds(modal.Rect{X: 10, Y: 5, Width: 20, Height: 6})

	m.Click(30, 7) // one past the right edge
	if m.IsOpen() {
		t.Error("click on backdrop should close")
	}
	if l.locked {
		t.Error("scroll should be restored")
	}
}

func TestClickWhenClosed(t *testing.T) {
	m := modal.New(nil)
	if m.Click(0, 0) {
		t.Error("closed dialog should not consume clicks")
	}
}

func TestTeardownRestoresWhileOpen(t *testing.T) {
	l := &fakeLocker{}
	m := modal.New(l)
	m.Open("Error", "msg")

	m.Teardown()
	if l.locked {
		t.Error("teardown must restore scroll")
	}
}

func TestRectContains(t *testing.T) {
	r := modal.Rect{X: 1, Y: 1, Width: 2, Height: 2}
	if !r.Contains(1, 1) || !r.Contains(2, 2) {
		t.Error("expected corners inside")
	}
	if r.Contains(3, 1) || r.Contains(1, 0) {
		t.Error("expected outside points")
	}
}
