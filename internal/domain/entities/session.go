package entities

// Sentinel answer texts stored in wrong records.
const (
	AnswerTimeout = "超时"
	AnswerUnknown = "未知"
)

// TimestampLayout is the layout used for every timestamp the quiz records or exports.
const TimestampLayout = "2006-01-02 15:04:05"

// WrongRecord captures one missed question. It is never modified after creation.
type WrongRecord struct {
	Word              string
	Definition        string
	QuestionText      string
	UserAnswerText    string
	CorrectAnswerText string
	Timestamp         string
}

// SessionState holds the mutable state of one quiz run.
type SessionState struct {
	TotalAsked       int
	TotalCorrect     int
	WrongLog         []WrongRecord
	ReviewMode       bool
	ModuleTotalWords int
}

// Statistics are derived from a SessionState.
type Statistics struct {
	TotalAsked             int
	TotalCorrect           int
	TotalWrong             int
	Accuracy               float64 // percent, 0 when nothing was asked
	ModuleTotalWords       int
	EstimatedKnowledgeRate float64 // percent, accuracy capped at 100
	EstimatedMasteredCount int
}

// DistinctWrongWords returns the number of distinct words in the wrong log.
func (s *SessionState) DistinctWrongWords() int {
	seen := make(map[string]struct{}, len(s.WrongLog))
	for _, r := range s.WrongLog {
		seen[r.Word] = struct{}{}
	}
	return len(seen)
}
