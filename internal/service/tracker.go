package service

import (
	"math"
	"time"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// SessionTracker owns the SessionState of one quiz run and scores answers.
// It is not safe for concurrent use.
type SessionTracker struct {
	state        entities.SessionState
	sessionWrong []entities.WrongRecord
	now          func() time.Time
}

// NewSessionTracker creates a tracker for a module with the given word count.
func NewSessionTracker(moduleTotalWords int) *SessionTracker {
	return &SessionTracker{
		state: entities.SessionState{ModuleTotalWords: moduleTotalWords},
		now:   time.Now,
	}
}

// State returns the current state. The wrong log is shared with the tracker
// and must not be modified by the caller.
func (t *SessionTracker) State() *entities.SessionState {
	return &t.state
}

// RecordAnswer scores an answer to q. A nil chosen key means the question
// timed out and is always scored as incorrect.
func (t *SessionTracker) RecordAnswer(q *entities.Question, chosen *entities.OptionKey) entities.AnswerOutcome {
	t.state.TotalAsked++

	correctKey, found := correctOption(q)
	outcome := entities.AnswerOutcome{
		CorrectKey:  correctKey,
		CorrectText: entities.AnswerUnknown,
		TimedOut:    chosen == nil,
	}
	if found {
		outcome.CorrectText = q.Options[correctKey]
	}

	switch {
	case chosen == nil:
		outcome.ChosenText = entities.AnswerTimeout
	default:
		text, ok := q.Options[*chosen]
		if !ok {
			text = entities.AnswerUnknown
		}
		outcome.ChosenText = text
	}

	if found && chosen != nil && *chosen == correctKey {
		t.state.TotalCorrect++
		outcome.Correct = true
		return outcome
	}

	record := entities.WrongRecord{
		Word:              q.CorrectItem.Word,
		Definition:        q.CorrectItem.Definition,
		QuestionText:      q.Text,
		UserAnswerText:    outcome.ChosenText,
		CorrectAnswerText: outcome.CorrectText,
		Timestamp:         t.now().Format(entities.TimestampLayout),
	}
	t.state.WrongLog = append(t.state.WrongLog, record)
	if !t.state.ReviewMode {
		t.sessionWrong = append(t.sessionWrong, record)
	}

	return outcome
}

// Statistics derives accuracy and the mastery estimate from the current state.
func (t *SessionTracker) Statistics() entities.Statistics {
	return ComputeStatistics(&t.state)
}

// SetReviewMode turns review mode on or off. It changes nothing else.
func (t *SessionTracker) SetReviewMode(on bool) {
	t.state.ReviewMode = on
}

// Reset starts a new run. Counters are cleared; the wrong log survives only in
// review mode so the missed words can be practised.
func (t *SessionTracker) Reset(moduleTotalWords int) {
	t.state.TotalAsked = 0
	t.state.TotalCorrect = 0
	t.state.ModuleTotalWords = moduleTotalWords
	if !t.state.ReviewMode {
		t.state.WrongLog = nil
	}
	t.sessionWrong = nil
}

// MergeWrongLog appends records to the wrong log and returns how many were added.
func (t *SessionTracker) MergeWrongLog(records []entities.WrongRecord) int {
	t.state.WrongLog = append(t.state.WrongLog, records...)
	return len(records)
}

// RemoveWrong drops every wrong log entry for word and returns how many were removed.
func (t *SessionTracker) RemoveWrong(word string) int {
	kept := t.state.WrongLog[:0]
	removed := 0
	for _, r := range t.state.WrongLog {
		if r.Word == word {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	t.state.WrongLog = kept
	return removed
}

// SessionWrongLog returns the mistakes made in this run outside review mode.
func (t *SessionTracker) SessionWrongLog() []entities.WrongRecord {
	out := make([]entities.WrongRecord, len(t.sessionWrong))
	copy(out, t.sessionWrong)
	return out
}

// ClearSessionWrongLog forgets the mistakes of this run without touching the wrong log.
func (t *SessionTracker) ClearSessionWrongLog() {
	t.sessionWrong = nil
}

// ComputeStatistics derives statistics from a session state.
func ComputeStatistics(s *entities.SessionState) entities.Statistics {
	stats := entities.Statistics{
		TotalAsked:       s.TotalAsked,
		TotalCorrect:     s.TotalCorrect,
		TotalWrong:       s.TotalAsked - s.TotalCorrect,
		ModuleTotalWords: s.ModuleTotalWords,
	}

	if s.TotalAsked > 0 {
		stats.Accuracy = float64(s.TotalCorrect) / float64(s.TotalAsked) * 100
	}

	if s.ModuleTotalWords > 0 {
		stats.EstimatedKnowledgeRate = math.Min(100, stats.Accuracy)
		stats.EstimatedMasteredCount = int(math.Floor(float64(s.ModuleTotalWords) * stats.EstimatedKnowledgeRate / 100))
	}

	return stats
}

// correctOption finds the key of the correct option: first by the value the
// mode dictates, then by the question text.
func correctOption(q *entities.Question) (entities.OptionKey, bool) {
	target := q.Mode.OptionText(q.CorrectItem)
	for _, k := range entities.OptionKeys {
		if text, ok := q.Options[k]; ok && text == target {
			return k, true
		}
	}

	for _, k := range entities.OptionKeys {
		if text, ok := q.Options[k]; ok && text == q.Text {
			return k, true
		}
	}

	return "", false
}
