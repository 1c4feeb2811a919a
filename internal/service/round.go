package service

import "github.com/aliskhannn/vocabulary-tester/internal/domain/entities"

// Round is one asked question. It accepts a single answer or a timeout,
// whichever comes first; later calls are ignored.
type Round struct {
	session  *Session
	question *entities.Question
	done     bool // guarded by session.mu
}

// Question returns the question of the round.
func (r *Round) Question() *entities.Question {
	return r.question
}

// Answer scores the chosen key. ok is false when the round was already scored.
func (r *Round) Answer(key entities.OptionKey) (outcome entities.AnswerOutcome, ok bool) {
	return r.score(&key)
}

// Timeout scores the round as unanswered. ok is false when the round was already scored.
func (r *Round) Timeout() (outcome entities.AnswerOutcome, ok bool) {
	return r.score(nil)
}

// Done reports whether the round has been scored.
func (r *Round) Done() bool {
	r.session.mu.Lock()
	defer r.session.mu.Unlock()
	return r.done
}

func (r *Round) score(key *entities.OptionKey) (entities.AnswerOutcome, bool) {
	r.session.mu.Lock()
	defer r.session.mu.Unlock()

	if r.done {
		return entities.AnswerOutcome{}, false
	}
	r.done = true

	return r.session.tracker.RecordAnswer(r.question, key), true
}
