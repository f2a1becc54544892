// Package session holds the conversational edit history for the detail
// viewer. One artwork is viewed at a time; opening a different artwork
// resets the conversation.
package session

import "sync"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role
	Text string
	// ImageURL carries the resulting artwork for assistant messages
	// that completed an edit.
	ImageURL string
}

type Store struct {
	mu        sync.Mutex
	artworkID string
	messages  []Message
}

func NewStore() *Store {
	return &Store{}
}

// Open switches the session to an artwork. History is kept when
// reopening the same artwork and reset otherwise.
func (s *Store) Open(artworkID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artworkID != artworkID {
		s.messages = nil
	}
	s.artworkID = artworkID
}

func (s *Store) Append(msgs ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
}

// Messages returns a snapshot of the conversation.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) ArtworkID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artworkID
}
