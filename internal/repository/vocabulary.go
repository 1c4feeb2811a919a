package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

var errNotAList = errors.New("vocabulary file is not a JSON array")

// VocabularyRepository loads vocabulary modules from JSON files and keeps the
// normalized word lists in memory.
type VocabularyRepository struct {
	dir     string
	modules []entities.Module
	byID    map[string]entities.Module
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string][]entities.WordEntry
}

// NewVocabularyRepository creates a repository for the given modules. Files are
// resolved relative to dir and read lazily on the first Load.
func NewVocabularyRepository(dir string, modules []entities.Module, logger *zap.Logger) *VocabularyRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	byID := make(map[string]entities.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}

	return &VocabularyRepository{
		dir:     dir,
		modules: modules,
		byID:    byID,
		logger:  logger,
		cache:   make(map[string][]entities.WordEntry),
	}
}

// Modules returns the configured modules in configuration order.
func (r *VocabularyRepository) Modules() []entities.Module {
	out := make([]entities.Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Module returns the module with the given id.
func (r *VocabularyRepository) Module(moduleID string) (entities.Module, error) {
	m, ok := r.byID[moduleID]
	if !ok {
		return entities.Module{}, fmt.Errorf("module %q: %w", moduleID, entities.ErrModuleNotFound)
	}
	return m, nil
}

// Load returns the normalized word list of a module. The list is read from
// disk once and served from memory afterwards; callers must not modify it.
func (r *VocabularyRepository) Load(moduleID string) ([]entities.WordEntry, error) {
	m, err := r.Module(moduleID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	words, ok := r.cache[moduleID]
	r.mu.RUnlock()
	if ok {
		return words, nil
	}

	words, err = r.readModule(m)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[moduleID] = words
	r.mu.Unlock()

	r.logger.Info("vocabulary loaded",
		zap.String("module_id", m.ID),
		zap.String("module", m.Name),
		zap.Int("words", len(words)),
	)

	return words, nil
}

// TotalWords returns the number of usable entries of a module, loading it if needed.
func (r *VocabularyRepository) TotalWords(moduleID string) (int, error) {
	words, err := r.Load(moduleID)
	if err != nil {
		return 0, err
	}
	return len(words), nil
}

// Preload loads several modules concurrently. With no ids every configured
// module is loaded. The first failure cancels the remaining loads.
func (r *VocabularyRepository) Preload(ctx context.Context, moduleIDs ...string) error {
	if len(moduleIDs) == 0 {
		for _, m := range r.modules {
			moduleIDs = append(moduleIDs, m.ID)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range moduleIDs {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := r.Load(id); err != nil {
				return fmt.Errorf("preload module %s: %w", id, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func (r *VocabularyRepository) readModule(m entities.Module) ([]entities.WordEntry, error) {
	path := filepath.Join(r.dir, m.File)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.LoadError{ModuleID: m.ID, Path: path, Err: err}
	}

	var top json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &entities.LoadError{ModuleID: m.ID, Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(top, &records); err != nil || records == nil {
		return nil, &entities.LoadError{ModuleID: m.ID, Path: path, Err: errNotAList}
	}

	words := normalize(records)
	if dropped := len(records) - len(words); dropped > 0 {
		r.logger.Debug("skipped incomplete vocabulary records",
			zap.String("module_id", m.ID),
			zap.Int("skipped", dropped),
		)
	}

	return words, nil
}
