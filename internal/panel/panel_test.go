package panel

import "testing"

func TestVisibilityCycle(t *testing.T) {
	s := New()

	if s.Visibility() != Closed {
		t.Fatalf("initial visibility = %v, want closed", s.Visibility())
	}

	if !s.RequestOpen() {
		t.Fatal("RequestOpen from closed should be accepted")
	}
	if s.Visibility() != Opening {
		t.Fatalf("visibility = %v, want opening", s.Visibility())
	}

	s.FinishTransition()
	if s.Visibility() != Open {
		t.Fatalf("visibility = %v, want open", s.Visibility())
	}

	if !s.RequestClose() {
		t.Fatal("RequestClose from open should be accepted")
	}
	if s.Visibility() != Closing {
		t.Fatalf("visibility = %v, want closing", s.Visibility())
	}

	s.FinishTransition()
	if s.Visibility() != Closed {
		t.Fatalf("visibility = %v, want closed", s.Visibility())
	}
}

func TestReentrantRequestsIgnored(t *testing.T) {
	s := New()

	s.RequestOpen()
	if s.RequestOpen() {
		t.Error("RequestOpen while opening should be ignored")
	}
	if s.RequestClose() {
		t.Error("RequestClose while opening should be ignored")
	}

	s.FinishTransition()
	s.RequestClose()
	if s.RequestClose() {
		t.Error("RequestClose while closing should be ignored")
	}
	if s.RequestOpen() {
		t.Error("RequestOpen while closing should be ignored")
	}
}

func TestFinishTransitionInTerminalStateIsNoop(t *testing.T) {
	s := New()

	s.FinishTransition()
	if s.Visibility() != Closed {
		t.Errorf("visibility = %v, want closed", s.Visibility())
	}

	s.RequestOpen()
	s.FinishTransition()
	s.FinishTransition()
	if s.Visibility() != Open {
		t.Errorf("visibility = %v, want open", s.Visibility())
	}
}

func TestUnreadCounting(t *testing.T) {
	s := New()

	// Closed: messages count as unread.
	s.MarkUnread()
	s.MarkUnread()
	if s.Unread() != 2 {
		t.Fatalf("Unread = %d, want 2", s.Unread())
	}

	// Accepted open request resets the count.
	s.RequestOpen()
	if s.Unread() != 0 {
		t.Fatalf("Unread after open = %d, want 0", s.Unread())
	}

	// Opening counts as open: no increments.
	s.MarkUnread()
	if s.Unread() != 0 {
		t.Errorf("Unread while opening = %d, want 0", s.Unread())
	}

	s.FinishTransition()
	s.MarkUnread()
	if s.Unread() != 0 {
		t.Errorf("Unread while open = %d, want 0", s.Unread())
	}

	// Closing no longer counts as open.
	s.RequestClose()
	s.MarkUnread()
	if s.Unread() != 1 {
		t.Errorf("Unread while closing = %d, want 1", s.Unread())
	}

	s.FinishTransition()
	s.MarkUnread()
	if s.Unread() != 2 {
		t.Errorf("Unread while closed = %d, want 2", s.Unread())
	}
}

func TestEffectivelyOpen(t *testing.T) {
	s := New()

	tests := []struct {
		step func()
		want bool
	}{
		{func() {}, false},                       // closed
		{func() { s.RequestOpen() }, true},       // opening
		{func() { s.FinishTransition() }, true},  // open
		{func() { s.RequestClose() }, false},     // closing
		{func() { s.FinishTransition() }, false}, // closed
	}

	for i, tt := range tests {
		tt.step()
		if got := s.EffectivelyOpen(); got != tt.want {
			t.Errorf("step %d (%v): EffectivelyOpen = %v, want %v", i, s.Visibility(), got, tt.want)
		}
	}
}
