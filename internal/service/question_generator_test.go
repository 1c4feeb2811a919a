package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

func testVocab(n int) []entities.WordEntry {
	words := make([]entities.WordEntry, n)
	for i := range words {
		words[i] = entities.WordEntry{
			Word:       fmt.Sprintf("word%d", i),
			Definition: fmt.Sprintf("释义%d", i),
		}
	}
	return words
}

func countText(q *entities.Question, text string) int {
	n := 0
	for _, v := range q.Options {
		if v == text {
			n++
		}
	}
	return n
}

func TestQuestionGenerator_Generate(t *testing.T) {
	tests := []struct {
		name string
		mode entities.Mode
	}{
		{name: "chinese", mode: entities.ModeChinese},
		{name: "english", mode: entities.ModeEnglish},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewQuestionGenerator(rand.New(rand.NewSource(7)))
			vocab := testVocab(20)

			for i := 0; i < 50; i++ {
				q := g.Generate(vocab, tt.mode, &entities.SessionState{})
				require.NotNil(t, q)

				require.Len(t, q.Options, entities.OptionCount)
				for _, k := range entities.OptionKeys {
					assert.Contains(t, q.Options, k)
				}

				assert.Equal(t, tt.mode, q.Mode)
				assert.False(t, q.Review)
				assert.Equal(t, tt.mode.QuestionText(q.CorrectItem), q.Text)
				assert.Equal(t, 1, countText(q, tt.mode.OptionText(q.CorrectItem)))
				assert.Contains(t, vocab, q.CorrectItem)
			}
		})
	}
}

func TestQuestionGenerator_EmptyVocabulary(t *testing.T) {
	t.Parallel()

	g := NewQuestionGenerator(rand.New(rand.NewSource(1)))
	assert.Nil(t, g.Generate(nil, entities.ModeChinese, &entities.SessionState{}))
}

func TestQuestionGenerator_SameSeedSameQuestions(t *testing.T) {
	t.Parallel()

	vocab := testVocab(30)
	a := NewQuestionGenerator(rand.New(rand.NewSource(42)))
	b := NewQuestionGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		qa := a.Generate(vocab, entities.ModeEnglish, nil)
		qb := b.Generate(vocab, entities.ModeEnglish, nil)
		assert.Equal(t, qa, qb)
	}
}

func TestQuestionGenerator_ReviewDrawsFromWrongLog(t *testing.T) {
	t.Parallel()

	g := NewQuestionGenerator(rand.New(rand.NewSource(3)))
	state := &entities.SessionState{
		ReviewMode: true,
		WrongLog: []entities.WrongRecord{
			{Word: "word3", Definition: "释义3"},
			{Word: "word5", Definition: "释义5"},
		},
	}

	for i := 0; i < 30; i++ {
		q := g.Generate(testVocab(10), entities.ModeChinese, state)
		require.NotNil(t, q)

		assert.True(t, q.Review)
		assert.Contains(t, []string{"word3", "word5"}, q.CorrectItem.Word)
		assert.Equal(t, 1, countText(q, q.CorrectItem.Word))
	}
}

func TestQuestionGenerator_ReviewWithEmptyLogFallsBack(t *testing.T) {
	t.Parallel()

	g := NewQuestionGenerator(rand.New(rand.NewSource(3)))
	q := g.Generate(testVocab(10), entities.ModeChinese, &entities.SessionState{ReviewMode: true})

	require.NotNil(t, q)
	assert.False(t, q.Review)
}

func TestOptionGenerator_Distractors(t *testing.T) {
	correct := entities.WordEntry{Word: "apple", Definition: "苹果"}

	tests := []struct {
		name       string
		candidates []entities.WordEntry
	}{
		{name: "many candidates", candidates: testVocab(10)},
		{name: "exactly three", candidates: testVocab(3)},
		{name: "two candidates", candidates: testVocab(2)},
		{name: "one candidate", candidates: testVocab(1)},
		{name: "no candidates", candidates: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewOptionGenerator(rand.New(rand.NewSource(11)))
			got := g.Distractors(tt.candidates, correct)

			require.Len(t, got, distractorCount)
			for _, d := range got {
				assert.NotEqual(t, correct.Word, d.Word)
				assert.NotEqual(t, correct.Definition, d.Definition)
				if len(tt.candidates) > 0 {
					assert.Contains(t, tt.candidates, d)
				}
			}

			if len(tt.candidates) >= distractorCount {
				seen := make(map[string]bool)
				for _, d := range got {
					assert.False(t, seen[d.Word], "distractor %q repeated", d.Word)
					seen[d.Word] = true
				}
			}
			if len(tt.candidates) > 0 && len(tt.candidates) < distractorCount {
				for _, c := range tt.candidates {
					assert.Contains(t, got, c)
				}
			}
		})
	}
}

func TestOptionGenerator_PlaceholdersAreDistinct(t *testing.T) {
	t.Parallel()

	g := NewOptionGenerator(rand.New(rand.NewSource(5)))
	got := g.Distractors(nil, entities.WordEntry{Word: "solo", Definition: "独自"})

	seen := make(map[string]bool)
	for _, d := range got {
		assert.NotEmpty(t, d.Word)
		assert.False(t, seen[d.Word])
		seen[d.Word] = true
	}
}

func TestQuestionGenerator_SingleWordVocabulary(t *testing.T) {
	t.Parallel()

	g := NewQuestionGenerator(rand.New(rand.NewSource(9)))
	vocab := []entities.WordEntry{{Word: "solo", Definition: "独自"}}

	q := g.Generate(vocab, entities.ModeEnglish, nil)
	require.NotNil(t, q)

	assert.Len(t, q.Options, entities.OptionCount)
	assert.Equal(t, 1, countText(q, "独自"))
}
