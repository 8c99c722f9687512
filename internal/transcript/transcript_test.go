package transcript

import "testing"

func TestAppendPreservesOrder(t *testing.T) {
	s := NewStore()

	s.Append(New(Assistant, "welcome"))
	s.Append(New(User, "first"))
	s.Append(New(Assistant, "reply"))

	got := s.Snapshot()
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3", len(got))
	}

	wantTexts := []string{"welcome", "first", "reply"}
	for i, want := range wantTexts {
		if got[i].Text != want {
			t.Errorf("message %d: Text = %q, want %q", i, got[i].Text, want)
		}
	}
	if got[0].Author != Assistant || got[1].Author != User {
		t.Errorf("unexpected authors: %v, %v", got[0].Author, got[1].Author)
	}
}

func TestMessagesHaveIdentity(t *testing.T) {
	a := New(User, "same text")
	b := New(User, "same text")

	if a.ID == "" || b.ID == "" {
		t.Fatal("messages must have IDs")
	}
	if a.ID == b.ID {
		t.Errorf("IDs must be unique, both %q", a.ID)
	}
	if a.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
}

func TestNewError(t *testing.T) {
	msg := NewError("it broke")

	if msg.Author != Assistant {
		t.Errorf("Author = %v, want assistant", msg.Author)
	}
	if !msg.Err {
		t.Error("Err flag must be set")
	}
}

func TestReplaceAll(t *testing.T) {
	s := NewStore()
	s.Append(New(Assistant, "welcome"))
	s.Append(New(User, "question"))
	s.Append(New(Assistant, "answer"))

	s.ReplaceAll([]Message{New(Assistant, "bagong simula")})

	got := s.Snapshot()
	if len(got) != 1 {
		t.Fatalf("Len = %d, want 1", len(got))
	}
	if got[0].Text != "bagong simula" {
		t.Errorf("Text = %q, want %q", got[0].Text, "bagong simula")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Append(New(Assistant, "welcome"))

	snap := s.Snapshot()
	snap[0].Text = "mutated"

	if s.Snapshot()[0].Text != "welcome" {
		t.Error("mutating a snapshot must not affect the store")
	}
}
