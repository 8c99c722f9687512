// Package transcript holds the ordered, append-only chat history.
package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Author identifies who produced a message.
type Author string

const (
	User      Author = "user"
	Assistant Author = "assistant"
)

// Message is a single entry in the transcript. Messages are never edited in
// place; ordering is strictly by append sequence.
type Message struct {
	ID        string
	Author    Author
	Text      string
	Timestamp time.Time
	// Err marks an assistant message that stands in for a failed exchange.
	Err bool
}

// New creates a message with a fresh ID and timestamp.
func New(author Author, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// NewError creates an error-flagged assistant message.
func NewError(text string) Message {
	msg := New(Assistant, text)
	msg.Err = true
	return msg
}

// Store is the ordered message list for the current session.
type Store struct {
	mu       sync.Mutex
	messages []Message
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a message at the end. It never reorders or deduplicates.
func (s *Store) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// ReplaceAll swaps the entire transcript. Used by language switches and
// explicit clears only.
func (s *Store) ReplaceAll(messages []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]Message(nil), messages...)
}

// Snapshot returns a copy of the transcript in append order.
func (s *Store) Snapshot() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
