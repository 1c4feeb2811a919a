package storage

import "sync"

// SessionStorage keeps per-chat values in memory.
type SessionStorage[T any] struct {
	mu       sync.RWMutex
	sessions map[int64]T
}

// NewSessionStorage creates an empty SessionStorage.
func NewSessionStorage[T any]() *SessionStorage[T] {
	return &SessionStorage[T]{
		sessions: make(map[int64]T),
	}
}

// Store saves the value for a chat, replacing any previous one.
func (s *SessionStorage[T]) Store(chatID int64, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = v
}

// Get returns the value of a chat.
func (s *SessionStorage[T]) Get(chatID int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[chatID]
	return v, ok
}

// GetOrCreate returns the value of a chat, storing create() first when there is none.
func (s *SessionStorage[T]) GetOrCreate(chatID int64, create func() T) T {
	s.mu.RLock()
	v, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.sessions[chatID]; ok {
		return v
	}
	v = create()
	s.sessions[chatID] = v
	return v
}

// Delete removes the value of a chat.
func (s *SessionStorage[T]) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len returns the number of stored chats.
func (s *SessionStorage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
