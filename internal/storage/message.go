package storage

import (
	"sync"
	"time"
)

// QuestionMessage points at the chat message that shows the open question.
type QuestionMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// MessageStorage remembers the open question message of every chat so its
// keyboard can be removed once the question is scored.
type MessageStorage struct {
	mu       sync.RWMutex
	messages map[int64]QuestionMessage
	now      func() time.Time
}

func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		messages: make(map[int64]QuestionMessage),
		now:      time.Now,
	}
}

func (s *MessageStorage) Get(chatID int64) (QuestionMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[chatID]
	return msg, ok
}

func (s *MessageStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

// Replace stores messageID as the open question of the chat and returns the
// message it replaced.
func (s *MessageStorage) Replace(chatID int64, messageID int) (prev QuestionMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = QuestionMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    s.now(),
	}

	return prev, hadPrev
}

// Take removes and returns the open question message of the chat.
func (s *MessageStorage) Take(chatID int64) (QuestionMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[chatID]
	delete(s.messages, chatID)
	return msg, ok
}
