package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// DefaultWrongBookName is the file the wrong book is exported to inside the data directory.
const DefaultWrongBookName = "wrong_book.json"

var ErrInvalidMode = errors.New("invalid test mode")

// SessionConfig holds the per-run options of a Session.
type SessionConfig struct {
	Owner         string        // recorded with the history entry
	DataDir       string        // where wrong books are written
	WrongBookName string        // JSON export file name, DefaultWrongBookName when empty
	Mode          entities.Mode // initial mode, ModeChinese when unset
	Seed          int64         // 0 seeds from the clock
}

// Session is the owning handle of one quiz run. It ties the vocabulary store,
// the question generator, the tracker and wrong book persistence together.
// All methods are safe for concurrent use.
type Session struct {
	vocab   VocabularySource
	books   WrongBookStore
	history HistoryRecorder
	logger  *zap.Logger
	cfg     SessionConfig
	now     func() time.Time

	mu        sync.Mutex
	id        uuid.UUID
	module    *entities.Module
	words     []entities.WordEntry
	mode      entities.Mode
	generator *QuestionGenerator
	tracker   *SessionTracker
	startedAt time.Time
}

// NewSession creates a session without a loaded module. history may be nil.
func NewSession(
	vocab VocabularySource,
	books WrongBookStore,
	history HistoryRecorder,
	cfg SessionConfig,
	logger *zap.Logger,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Mode.Valid() {
		cfg.Mode = entities.ModeChinese
	}
	if cfg.WrongBookName == "" {
		cfg.WrongBookName = DefaultWrongBookName
	}

	return &Session{
		vocab:     vocab,
		books:     books,
		history:   history,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		id:        uuid.New(),
		mode:      cfg.Mode,
		generator: NewQuestionGenerator(NewRand(cfg.Seed)),
		tracker:   NewSessionTracker(0),
	}
}

// ID identifies the current run. It changes with every LoadModule.
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// LoadModule selects a module and starts a new run on it. Counters are reset;
// the wrong log is kept only in review mode.
func (s *Session) LoadModule(moduleID string) error {
	m, err := s.vocab.Module(moduleID)
	if err != nil {
		return err
	}

	words, err := s.vocab.Load(moduleID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.module = &m
	s.words = words
	s.id = uuid.New()
	s.startedAt = s.now()
	s.tracker.Reset(len(words))

	s.logger.Info("module loaded",
		zap.String("session_id", s.id.String()),
		zap.String("module_id", m.ID),
		zap.Int("words", len(words)),
		zap.Bool("review_mode", s.tracker.State().ReviewMode),
	)

	return nil
}

// Module returns the loaded module.
func (s *Session) Module() (entities.Module, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.module == nil {
		return entities.Module{}, false
	}
	return *s.module, true
}

// SetMode changes the mode of the following questions.
func (s *Session) SetMode(mode entities.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return nil
}

// Mode returns the current mode.
func (s *Session) Mode() entities.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// GenerateQuestion returns the next question of the run.
func (s *Session) GenerateQuestion() (*entities.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateLocked()
}

func (s *Session) generateLocked() (*entities.Question, error) {
	if s.module == nil {
		return nil, entities.ErrNoModuleLoaded
	}

	q := s.generator.Generate(s.words, s.mode, s.tracker.State())
	if q == nil {
		return nil, fmt.Errorf("module %s: %w", s.module.ID, entities.ErrEmptyVocabulary)
	}

	return q, nil
}

// RecordAnswer scores an answer. A nil key records a timeout. Callers that
// may race a timer against user input should use Ask instead.
func (s *Session) RecordAnswer(q *entities.Question, chosen *entities.OptionKey) entities.AnswerOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.RecordAnswer(q, chosen)
}

// GetStatistics returns the statistics of the current run.
func (s *Session) GetStatistics() entities.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Statistics()
}

// SetReviewMode turns review mode on or off.
func (s *Session) SetReviewMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.SetReviewMode(on)
}

// ReviewMode reports whether review mode is on.
func (s *Session) ReviewMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.State().ReviewMode
}

// WrongLog returns a copy of the wrong log.
func (s *Session) WrongLog() []entities.WrongRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.tracker.State().WrongLog
	out := make([]entities.WrongRecord, len(log))
	copy(out, log)
	return out
}

// SessionWrongLog returns the mistakes made in this run outside review mode.
func (s *Session) SessionWrongLog() []entities.WrongRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.SessionWrongLog()
}

// RemoveWrong drops a word from the wrong log.
func (s *Session) RemoveWrong(word string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.RemoveWrong(word)
}

// ExportWrongBook builds the deduplicated export document of the wrong log.
func (s *Session) ExportWrongBook() entities.WrongBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportWrongBook(s.tracker.State(), s.moduleIDLocked(), s.mode, s.now())
}

// SaveWrongBook writes the JSON wrong book. An empty path writes to the data
// directory. The path written is returned.
func (s *Session) SaveWrongBook(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveWrongBookLocked(path)
}

func (s *Session) saveWrongBookLocked(path string) (string, error) {
	if path == "" {
		path = filepath.Join(s.cfg.DataDir, s.cfg.WrongBookName)
	}

	book := ExportWrongBook(s.tracker.State(), s.moduleIDLocked(), s.mode, s.now())
	if err := s.books.Save(path, book); err != nil {
		return "", err
	}

	s.logger.Info("wrong book saved",
		zap.String("path", path),
		zap.Int("items", book.Metadata.TotalWrongItems),
	)

	return path, nil
}

// SaveWrongBookText writes the wrong log in the plain-text layout. An empty
// path picks a timestamped file in the data directory.
func (s *Session) SaveWrongBookText(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	name := s.moduleNameLocked()
	if path == "" {
		path = filepath.Join(s.cfg.DataDir, fmt.Sprintf("错题本_%s_%s.txt", name, now.Format("20060102_150405")))
	}

	if err := s.books.SaveText(path, RenderWrongBookText(s.tracker.State(), name, now)); err != nil {
		return "", err
	}

	return path, nil
}

// ImportWrongBook appends the records of a stored wrong book to the wrong
// log and returns how many were added. Nothing is overwritten.
func (s *Session) ImportWrongBook(path string) (int, error) {
	records, err := s.books.Import(path)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().Format(entities.TimestampLayout)
	for i := range records {
		r := &records[i]
		if r.QuestionText == "" {
			r.QuestionText = s.mode.QuestionText(entities.WordEntry{Word: r.Word, Definition: r.Definition})
		}
		if r.Timestamp == "" {
			r.Timestamp = ts
		}
	}

	n := s.tracker.MergeWrongLog(records)
	s.logger.Info("wrong book imported", zap.String("path", path), zap.Int("records", n))

	return n, nil
}

// Ask generates a question wrapped in a Round that scores at most one answer.
func (s *Session) Ask() (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.generateLocked()
	if err != nil {
		return nil, err
	}

	return &Round{session: s, question: q}, nil
}

// Finish ends the run: review mode is turned off, a non-empty wrong log is
// exported to the data directory and the result is stored in the history.
// The result is returned even when saving fails.
func (s *Session) Finish(ctx context.Context) (*entities.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.SetReviewMode(false)
	state := s.tracker.State()

	result := &entities.SessionResult{
		ID:           s.id,
		Owner:        s.cfg.Owner,
		ModuleID:     s.moduleIDLocked(),
		ModuleName:   s.moduleNameLocked(),
		Mode:         s.mode,
		TotalAsked:   state.TotalAsked,
		TotalCorrect: state.TotalCorrect,
		WrongLog:     s.tracker.SessionWrongLog(),
		StartedAt:    s.startedAt,
		FinishedAt:   s.now(),
	}

	var errs []error
	if len(state.WrongLog) > 0 {
		if _, err := s.saveWrongBookLocked(""); err != nil {
			errs = append(errs, err)
		}
	}

	if s.history != nil && result.TotalAsked > 0 {
		if err := s.history.Record(ctx, result); err != nil {
			errs = append(errs, fmt.Errorf("record history: %w", err))
		}
	}

	s.tracker.ClearSessionWrongLog()

	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("finish session", zap.String("session_id", s.id.String()), zap.Error(err))
		return result, err
	}

	s.logger.Info("session finished",
		zap.String("session_id", s.id.String()),
		zap.Int("asked", result.TotalAsked),
		zap.Int("correct", result.TotalCorrect),
	)

	return result, nil
}

func (s *Session) moduleIDLocked() string {
	if s.module == nil {
		return ""
	}
	return s.module.ID
}

func (s *Session) moduleNameLocked() string {
	if s.module == nil {
		return entities.AnswerUnknown
	}
	return s.module.Name
}
