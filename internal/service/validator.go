package service

import (
	"strings"
	"unicode"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// AnswerMatcher resolves typed answers to option keys. A typed answer may be
// the key itself or the text of an option, with small typos tolerated.
type AnswerMatcher struct {
	threshold float64 // similarity required for a fuzzy match (0.0 - 1.0)
}

func NewAnswerMatcher() *AnswerMatcher {
	return &AnswerMatcher{threshold: 0.8}
}

// Resolve returns the option key the input refers to. Fuzzy matches are
// accepted only when a single option reaches the threshold.
func (m *AnswerMatcher) Resolve(q *entities.Question, input string) (entities.OptionKey, bool) {
	input = strings.TrimSpace(input)
	if key, ok := entities.ParseOptionKey(input); ok {
		return key, true
	}

	typed := normalizeAnswer(input)
	if typed == "" {
		return "", false
	}

	for _, k := range entities.OptionKeys {
		if normalizeAnswer(q.Options[k]) == typed {
			return k, true
		}
	}

	var (
		best  entities.OptionKey
		found int
	)
	for _, k := range entities.OptionKeys {
		if similarity(typed, normalizeAnswer(q.Options[k])) >= m.threshold {
			best = k
			found++
		}
	}
	if found != 1 {
		return "", false
	}

	return best, true
}

// normalizeAnswer lowercases, drops punctuation and collapses whitespace.
func normalizeAnswer(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// similarity calculates the similarity of two strings using Levenshtein distance.
func similarity(s1, s2 string) float64 {
	maxLen := max(len([]rune(s1)), len([]rune(s2)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(s1, s2))/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	cols := len(r2) + 1

	// Two rows are enough.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
