package service

import (
	"context"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// VocabularySource provides the configured modules and their word lists.
type VocabularySource interface {
	Module(moduleID string) (entities.Module, error)
	Load(moduleID string) ([]entities.WordEntry, error)
}

// WrongBookStore writes and reads wrong book files.
type WrongBookStore interface {
	Save(path string, book entities.WrongBook) error
	SaveText(path string, text string) error
	Import(path string) ([]entities.WrongRecord, error)
}

// HistoryRecorder stores finished quiz runs.
type HistoryRecorder interface {
	Record(ctx context.Context, result *entities.SessionResult) error
}

// HistoryRepository persists finished sessions and favorite words.
type HistoryRepository interface {
	SaveResult(ctx context.Context, result *entities.SessionResult) error
	ListResults(ctx context.Context, owner string, limit int) ([]*entities.SessionResult, error)
	ToggleFavorite(ctx context.Context, owner, word string) (bool, error)
	ListFavorites(ctx context.Context, owner string) ([]*entities.Favorite, error)
}
