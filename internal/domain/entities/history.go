package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionResult is a finished quiz run as stored in the history.
type SessionResult struct {
	ID           uuid.UUID
	Owner        string // who took the quiz: a chat id for the bot, a local name for the terminal
	ModuleID     string
	ModuleName   string
	Mode         Mode
	TotalAsked   int
	TotalCorrect int
	WrongLog     []WrongRecord // mistakes made during the run
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Accuracy returns the share of correct answers in percent.
func (r *SessionResult) Accuracy() float64 {
	if r.TotalAsked == 0 {
		return 0
	}
	return float64(r.TotalCorrect) / float64(r.TotalAsked) * 100
}

// Favorite is a word the user marked for later study.
type Favorite struct {
	Owner     string
	Word      string
	CreatedAt time.Time
}
