package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/config"
	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
	"github.com/aliskhannn/vocabulary-tester/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/vocabulary-tester/internal/infra/postgres/repository"
	"github.com/aliskhannn/vocabulary-tester/internal/infra/sqlite"
	sqliterepo "github.com/aliskhannn/vocabulary-tester/internal/infra/sqlite/repository"
	"github.com/aliskhannn/vocabulary-tester/internal/repository"
	"github.com/aliskhannn/vocabulary-tester/internal/service"
)

// App holds the dependencies shared by the terminal and the bot.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Vocabulary *repository.VocabularyRepository
	WrongBooks *repository.WrongBookRepository
	History    *service.HistoryService // nil when history is disabled

	closers []func()
}

// New wires the repositories and services selected by cfg.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		Config:     cfg,
		Logger:     logger,
		Vocabulary: repository.NewVocabularyRepository(cfg.Vocabulary.Dir, Modules(cfg), logger.Named("vocabulary")),
		WrongBooks: repository.NewWrongBookRepository(service.ParseWrongBook),
	}

	repo, err := a.historyRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if repo != nil {
		a.History = service.NewHistoryService(repo, logger.Named("history"))
	}

	return a, nil
}

func (a *App) historyRepository(ctx context.Context) (service.HistoryRepository, error) {
	switch a.Config.History.Driver {
	case config.HistoryDriverPostgres:
		dsn, err := a.Config.DB.DSN()
		if err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(a.Config.DB.MaxConnections),
			MaxConnLifetime: a.Config.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return nil, err
		}

		a.Logger.Info("history stored in postgres")
		return newPostgresHistory(pool), nil

	case config.HistoryDriverSQLite:
		db, err := sqlite.Open(a.Config.History.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { closeDB(db, a.Logger) })

		a.Logger.Info("history stored in sqlite", zap.String("path", a.Config.History.SQLitePath))
		return sqliterepo.NewHistoryRepository(db), nil

	default:
		a.Logger.Info("history disabled")
		return nil, nil
	}
}

func newPostgresHistory(pool *pgxpool.Pool) *pgrepo.HistoryRepository {
	return pgrepo.NewHistoryRepository(pool, postgres.NewTransactor(pool))
}

// NewSession creates a quiz session for owner with the configured defaults.
func (a *App) NewSession(owner, wrongBookName string) *service.Session {
	mode, err := entities.ParseMode(a.Config.Preferences.DefaultMode)
	if err != nil {
		mode = entities.ModeChinese
	}

	var history service.HistoryRecorder
	if a.History != nil {
		history = a.History
	}

	return service.NewSession(a.Vocabulary, a.WrongBooks, history, service.SessionConfig{
		Owner:         owner,
		DataDir:       a.Config.DataDir,
		WrongBookName: wrongBookName,
		Mode:          mode,
		Seed:          a.Config.Quiz.Seed,
	}, a.Logger.Named("session"))
}

// Close releases the database connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Modules converts the configured module list.
func Modules(cfg *config.Config) []entities.Module {
	out := make([]entities.Module, 0, len(cfg.Vocabulary.Modules))
	for _, m := range cfg.Vocabulary.Modules {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		out = append(out, entities.Module{ID: m.ID, Name: name, File: m.File})
	}
	return out
}

func closeDB(db *sql.DB, logger *zap.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("close sqlite", zap.Error(err))
	}
}
