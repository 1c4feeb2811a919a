package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

var ErrEmptyWord = errors.New("word is empty")

// HistoryService keeps finished quiz runs and favorite words.
type HistoryService struct {
	repo   HistoryRepository
	logger *zap.Logger
}

func NewHistoryService(repo HistoryRepository, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{repo: repo, logger: logger}
}

// Record stores a finished run. Runs without a single answer are skipped.
func (s *HistoryService) Record(ctx context.Context, result *entities.SessionResult) error {
	if result == nil || result.TotalAsked == 0 {
		return nil
	}

	if err := s.repo.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("save session result: %w", err)
	}

	s.logger.Debug("session result recorded",
		zap.String("session_id", result.ID.String()),
		zap.String("owner", result.Owner),
		zap.String("module_id", result.ModuleID),
	)

	return nil
}

// Recent returns the latest runs of owner, newest first.
func (s *HistoryService) Recent(ctx context.Context, owner string, limit int) ([]*entities.SessionResult, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	results, err := s.repo.ListResults(ctx, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("list session results: %w", err)
	}

	return results, nil
}

// ToggleFavorite marks or unmarks a word and reports whether it is a favorite now.
func (s *HistoryService) ToggleFavorite(ctx context.Context, owner, word string) (bool, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return false, ErrEmptyWord
	}

	on, err := s.repo.ToggleFavorite(ctx, owner, word)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	return on, nil
}

// Favorites returns the favorite words of owner in alphabetical order.
func (s *HistoryService) Favorites(ctx context.Context, owner string) ([]*entities.Favorite, error) {
	favs, err := s.repo.ListFavorites(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}
