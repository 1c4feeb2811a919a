package service

import (
	"math/rand"
	"time"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// NewRand returns a random source for the quiz. A zero seed seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// QuestionGenerator builds multiple choice questions from a word list.
// It is not safe for concurrent use; each session owns its own generator.
type QuestionGenerator struct {
	rng     *rand.Rand
	options *OptionGenerator
}

// NewQuestionGenerator creates a generator drawing all randomness from rng.
func NewQuestionGenerator(rng *rand.Rand) *QuestionGenerator {
	return &QuestionGenerator{
		rng:     rng,
		options: NewOptionGenerator(rng),
	}
}

// Generate returns a new question or nil when vocab is empty.
//
// In review mode with a non-empty wrong log the target is a previously missed
// word; otherwise it is drawn uniformly from vocab. Distractors always come
// from vocab.
func (g *QuestionGenerator) Generate(
	vocab []entities.WordEntry,
	mode entities.Mode,
	state *entities.SessionState,
) *entities.Question {
	if len(vocab) == 0 {
		return nil
	}

	var (
		correct    entities.WordEntry
		candidates []entities.WordEntry
		review     bool
	)

	if state != nil && state.ReviewMode && len(state.WrongLog) > 0 {
		wrong := state.WrongLog[g.rng.Intn(len(state.WrongLog))]
		correct = entities.WordEntry{Word: wrong.Word, Definition: wrong.Definition}
		candidates = excludeWord(vocab, correct.Word)
		review = true
	} else {
		correct = vocab[g.rng.Intn(len(vocab))]
		candidates = excludeEntry(vocab, correct)
	}

	distractors := g.options.Distractors(candidates, correct)

	return &entities.Question{
		CorrectItem: correct,
		Options:     g.options.Options(correct, distractors, mode),
		Text:        mode.QuestionText(correct),
		Mode:        mode,
		Review:      review,
	}
}

// excludeEntry returns the entries of vocab that are not equal to target.
func excludeEntry(vocab []entities.WordEntry, target entities.WordEntry) []entities.WordEntry {
	out := make([]entities.WordEntry, 0, len(vocab))
	for _, w := range vocab {
		if !w.Equal(target) {
			out = append(out, w)
		}
	}
	return out
}

// excludeWord returns the entries of vocab whose word differs from word.
func excludeWord(vocab []entities.WordEntry, word string) []entities.WordEntry {
	out := make([]entities.WordEntry, 0, len(vocab))
	for _, w := range vocab {
		if w.Word != word {
			out = append(out, w)
		}
	}
	return out
}
