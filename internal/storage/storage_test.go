package storage

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStorage(t *testing.T) {
	t.Parallel()

	s := NewSessionStorage[string]()

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Store(1, "a")
	v, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	assert.Equal(t, "a", s.GetOrCreate(1, func() string { return "b" }))
	assert.Equal(t, "c", s.GetOrCreate(2, func() string { return "c" }))
	assert.Equal(t, 2, s.Len())

	s.Delete(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestSessionStorage_GetOrCreateConcurrent(t *testing.T) {
	t.Parallel()

	s := NewSessionStorage[*int]()
	var created atomic.Int32

	var wg sync.WaitGroup
	results := make([]*int, 50)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.GetOrCreate(7, func() *int {
				created.Add(1)
				return new(int)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestMessageStorage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMessageStorage()
	s.now = func() time.Time { return now }

	_, had := s.Replace(5, 100)
	assert.False(t, had)

	prev, had := s.Replace(5, 101)
	require.True(t, had)
	assert.Equal(t, QuestionMessage{ChatID: 5, MessageID: 100, SentAt: now}, prev)

	msg, ok := s.Get(5)
	require.True(t, ok)
	assert.Equal(t, 101, msg.MessageID)

	msg, ok = s.Take(5)
	require.True(t, ok)
	assert.Equal(t, 101, msg.MessageID)

	_, ok = s.Take(5)
	assert.False(t, ok)

	s.Replace(6, 1)
	s.Delete(6)
	_, ok = s.Get(6)
	assert.False(t, ok)
}
