package service

import (
	"fmt"
	"math/rand"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// distractorCount is the number of wrong options per question.
const distractorCount = entities.OptionCount - 1

// OptionGenerator picks distractors and lays out the four options of a question.
type OptionGenerator struct {
	rng *rand.Rand
}

// NewOptionGenerator creates a new option generator drawing from rng.
func NewOptionGenerator(rng *rand.Rand) *OptionGenerator {
	return &OptionGenerator{rng: rng}
}

// Distractors returns exactly three wrong items for correct, drawn from candidates.
// With three or more candidates they are sampled without replacement. With one or
// two, all of them are used and the rest is padded by sampling with replacement.
// Without candidates, placeholder items are synthesized.
func (g *OptionGenerator) Distractors(candidates []entities.WordEntry, correct entities.WordEntry) []entities.WordEntry {
	switch n := len(candidates); {
	case n >= distractorCount:
		return g.sample(candidates, distractorCount)
	case n > 0:
		out := make([]entities.WordEntry, 0, distractorCount)
		out = append(out, candidates...)
		for len(out) < distractorCount {
			out = append(out, candidates[g.rng.Intn(n)])
		}
		return out
	default:
		return g.placeholders(correct, distractorCount)
	}
}

// Options shuffles the correct item together with the distractors and assigns
// keys "1".."4" by position. Option texts are rendered for mode.
func (g *OptionGenerator) Options(
	correct entities.WordEntry,
	distractors []entities.WordEntry,
	mode entities.Mode,
) map[entities.OptionKey]string {
	items := make([]entities.WordEntry, 0, 1+len(distractors))
	items = append(items, correct)
	items = append(items, distractors...)

	g.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	options := make(map[entities.OptionKey]string, len(items))
	for i, item := range items {
		if i >= entities.OptionCount {
			break
		}
		options[entities.OptionKeys[i]] = mode.OptionText(item)
	}

	return options
}

// sample draws k items without replacement using a partial Fisher-Yates shuffle.
func (g *OptionGenerator) sample(items []entities.WordEntry, k int) []entities.WordEntry {
	pool := make([]entities.WordEntry, len(items))
	copy(pool, items)

	for i := 0; i < k; i++ {
		j := i + g.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}

// placeholders synthesizes count filler items whose texts differ from each other
// and from the correct item.
func (g *OptionGenerator) placeholders(correct entities.WordEntry, count int) []entities.WordEntry {
	out := make([]entities.WordEntry, 0, count)
	used := make(map[int]bool, count)

	for len(out) < count {
		n := 1000 + g.rng.Intn(9000)
		if used[n] {
			continue
		}

		item := entities.WordEntry{
			Word:       fmt.Sprintf("干扰词_%d", n),
			Definition: fmt.Sprintf("干扰释义_%d", n),
		}
		if item.Word == correct.Word || item.Definition == correct.Definition {
			continue
		}

		used[n] = true
		out = append(out, item)
	}

	return out
}
