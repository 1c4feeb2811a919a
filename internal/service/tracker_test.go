package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

func appleQuestion() *entities.Question {
	return &entities.Question{
		CorrectItem: entities.WordEntry{Word: "apple", Definition: "苹果"},
		Options: map[entities.OptionKey]string{
			entities.Option1: "banana",
			entities.Option2: "apple",
			entities.Option3: "cherry",
			entities.Option4: "grape",
		},
		Text: "苹果",
		Mode: entities.ModeChinese,
	}
}

func fixedTracker(words int) *SessionTracker {
	t := NewSessionTracker(words)
	t.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	return t
}

func keyPtr(k entities.OptionKey) *entities.OptionKey { return &k }

func TestSessionTracker_RecordAnswer(t *testing.T) {
	tests := []struct {
		name        string
		chosen      *entities.OptionKey
		wantCorrect bool
		wantChosen  string
		wantTimeout bool
	}{
		{name: "correct", chosen: keyPtr(entities.Option2), wantCorrect: true, wantChosen: "apple"},
		{name: "wrong", chosen: keyPtr(entities.Option1), wantChosen: "banana"},
		{name: "unknown key", chosen: keyPtr("9"), wantChosen: entities.AnswerUnknown},
		{name: "timeout", chosen: nil, wantChosen: entities.AnswerTimeout, wantTimeout: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := fixedTracker(100)
			out := tr.RecordAnswer(appleQuestion(), tt.chosen)

			assert.Equal(t, tt.wantCorrect, out.Correct)
			assert.Equal(t, tt.wantChosen, out.ChosenText)
			assert.Equal(t, tt.wantTimeout, out.TimedOut)
			assert.Equal(t, entities.Option2, out.CorrectKey)
			assert.Equal(t, "apple", out.CorrectText)

			st := tr.State()
			assert.Equal(t, 1, st.TotalAsked)
			if tt.wantCorrect {
				assert.Equal(t, 1, st.TotalCorrect)
				assert.Empty(t, st.WrongLog)
				return
			}

			assert.Equal(t, 0, st.TotalCorrect)
			require.Len(t, st.WrongLog, 1)
			assert.Equal(t, entities.WrongRecord{
				Word:              "apple",
				Definition:        "苹果",
				QuestionText:      "苹果",
				UserAnswerText:    tt.wantChosen,
				CorrectAnswerText: "apple",
				Timestamp:         "2024-05-01 10:30:00",
			}, st.WrongLog[0])
		})
	}
}

func TestSessionTracker_CorrectOptionMissing(t *testing.T) {
	t.Parallel()

	q := appleQuestion()
	q.Options[entities.Option2] = "pear"

	tr := fixedTracker(10)
	out := tr.RecordAnswer(q, keyPtr(entities.Option2))

	assert.False(t, out.Correct)
	assert.Equal(t, entities.OptionKey(""), out.CorrectKey)
	assert.Equal(t, entities.AnswerUnknown, out.CorrectText)
	require.Len(t, tr.State().WrongLog, 1)
	assert.Equal(t, entities.AnswerUnknown, tr.State().WrongLog[0].CorrectAnswerText)
}

func TestSessionTracker_CorrectOptionFallsBackToQuestionText(t *testing.T) {
	t.Parallel()

	q := appleQuestion()
	q.Options[entities.Option3] = "苹果"
	q.Options[entities.Option2] = "pear"

	out := fixedTracker(10).RecordAnswer(q, keyPtr(entities.Option3))

	assert.True(t, out.Correct)
	assert.Equal(t, entities.Option3, out.CorrectKey)
}

func TestSessionTracker_Statistics(t *testing.T) {
	t.Parallel()

	tr := fixedTracker(3000)
	assert.Equal(t, entities.Statistics{ModuleTotalWords: 3000}, tr.Statistics())

	for i := 0; i < 8; i++ {
		tr.RecordAnswer(appleQuestion(), keyPtr(entities.Option2))
	}
	tr.RecordAnswer(appleQuestion(), keyPtr(entities.Option1))
	tr.RecordAnswer(appleQuestion(), nil)

	stats := tr.Statistics()
	assert.Equal(t, 10, stats.TotalAsked)
	assert.Equal(t, 8, stats.TotalCorrect)
	assert.Equal(t, 2, stats.TotalWrong)
	assert.InDelta(t, 80.0, stats.Accuracy, 1e-9)
	assert.InDelta(t, 80.0, stats.EstimatedKnowledgeRate, 1e-9)
	assert.Equal(t, 2400, stats.EstimatedMasteredCount)
}

func TestComputeStatistics_NoWords(t *testing.T) {
	t.Parallel()

	stats := ComputeStatistics(&entities.SessionState{TotalAsked: 4, TotalCorrect: 1})

	assert.InDelta(t, 25.0, stats.Accuracy, 1e-9)
	assert.Zero(t, stats.EstimatedKnowledgeRate)
	assert.Zero(t, stats.EstimatedMasteredCount)
}

func TestComputeStatistics_MasteredIsFloored(t *testing.T) {
	t.Parallel()

	stats := ComputeStatistics(&entities.SessionState{TotalAsked: 3, TotalCorrect: 1, ModuleTotalWords: 10})

	assert.Equal(t, 3, stats.EstimatedMasteredCount)
}

func TestSessionTracker_Reset(t *testing.T) {
	t.Run("normal mode clears the wrong log", func(t *testing.T) {
		t.Parallel()

		tr := fixedTracker(10)
		tr.RecordAnswer(appleQuestion(), keyPtr(entities.Option1))
		tr.Reset(20)

		st := tr.State()
		assert.Zero(t, st.TotalAsked)
		assert.Zero(t, st.TotalCorrect)
		assert.Equal(t, 20, st.ModuleTotalWords)
		assert.Empty(t, st.WrongLog)
		assert.Empty(t, tr.SessionWrongLog())
	})

	t.Run("review mode keeps the wrong log", func(t *testing.T) {
		t.Parallel()

		tr := fixedTracker(10)
		tr.RecordAnswer(appleQuestion(), keyPtr(entities.Option1))
		tr.SetReviewMode(true)
		tr.Reset(20)

		st := tr.State()
		assert.Zero(t, st.TotalAsked)
		assert.True(t, st.ReviewMode)
		assert.Len(t, st.WrongLog, 1)
		assert.Empty(t, tr.SessionWrongLog())
	})
}

func TestSessionTracker_ReviewMistakesStayOutOfSessionLog(t *testing.T) {
	t.Parallel()

	tr := fixedTracker(10)
	tr.RecordAnswer(appleQuestion(), keyPtr(entities.Option1))
	tr.SetReviewMode(true)
	tr.RecordAnswer(appleQuestion(), keyPtr(entities.Option3))

	assert.Len(t, tr.State().WrongLog, 2)
	assert.Len(t, tr.SessionWrongLog(), 1)

	tr.ClearSessionWrongLog()
	assert.Empty(t, tr.SessionWrongLog())
	assert.Len(t, tr.State().WrongLog, 2)
}

func TestSessionTracker_MergeAndRemove(t *testing.T) {
	t.Parallel()

	tr := fixedTracker(10)
	n := tr.MergeWrongLog([]entities.WrongRecord{
		{Word: "apple"}, {Word: "pear"}, {Word: "apple"},
	})
	require.Equal(t, 3, n)

	assert.Equal(t, 2, tr.RemoveWrong("apple"))
	assert.Equal(t, 0, tr.RemoveWrong("apple"))
	assert.Equal(t, []entities.WrongRecord{{Word: "pear"}}, tr.State().WrongLog)
}
