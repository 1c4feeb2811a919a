package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
	"github.com/aliskhannn/vocabulary-tester/internal/infra/postgres"
)

type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// HistoryRepository stores quiz results and favorites in PostgreSQL.
type HistoryRepository struct {
	db postgres.DBTX
	tx txRunner
}

// NewHistoryRepository creates a repository. Writes spanning several rows go
// through tx.
func NewHistoryRepository(db postgres.DBTX, tx txRunner) *HistoryRepository {
	return &HistoryRepository{db: db, tx: tx}
}

// SaveResult inserts a result together with its wrong answers.
func (r *HistoryRepository) SaveResult(ctx context.Context, result *entities.SessionResult) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO quiz_results (
				id, owner, module_id, module_name, mode,
				total_asked, total_correct, started_at, finished_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err := tx.Exec(
			ctx,
			query,
			result.ID,
			result.Owner,
			result.ModuleID,
			result.ModuleName,
			result.Mode.String(),
			result.TotalAsked,
			result.TotalCorrect,
			result.StartedAt,
			result.FinishedAt,
		)
		if err != nil {
			return fmt.Errorf("insert quiz result: %w", err)
		}

		for _, w := range result.WrongLog {
			query := `
				INSERT INTO quiz_wrong_answers (
					result_id, word, definition, question,
					user_answer, correct_answer, answered_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7)
			`

			_, err := tx.Exec(
				ctx,
				query,
				result.ID,
				w.Word,
				w.Definition,
				w.QuestionText,
				w.UserAnswerText,
				w.CorrectAnswerText,
				w.Timestamp,
			)
			if err != nil {
				return fmt.Errorf("insert wrong answer: %w", err)
			}
		}

		return nil
	})
}

// ListResults returns the latest results of owner, newest first. Wrong
// answers are not loaded.
func (r *HistoryRepository) ListResults(ctx context.Context, owner string, limit int) ([]*entities.SessionResult, error) {
	query := `
		SELECT id, owner, module_id, module_name, mode,
		       total_asked, total_correct, started_at, finished_at
		FROM quiz_results
		WHERE owner = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var results []*entities.SessionResult
	for rows.Next() {
		var (
			res  entities.SessionResult
			mode string
		)
		if err := rows.Scan(
			&res.ID,
			&res.Owner,
			&res.ModuleID,
			&res.ModuleName,
			&mode,
			&res.TotalAsked,
			&res.TotalCorrect,
			&res.StartedAt,
			&res.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}

		res.Mode, err = entities.ParseMode(mode)
		if err != nil {
			return nil, fmt.Errorf("scan quiz result %s: %w", res.ID, err)
		}

		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}

	return results, nil
}

// ToggleFavorite removes the word when it is a favorite and adds it otherwise.
func (r *HistoryRepository) ToggleFavorite(ctx context.Context, owner, word string) (bool, error) {
	var added bool

	err := r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM favorites WHERE owner = $1 AND word = $2`, owner, word)
		if err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		_, err = tx.Exec(
			ctx,
			`INSERT INTO favorites (owner, word, created_at) VALUES ($1, $2, $3)`,
			owner, word, time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert favorite: %w", err)
		}

		added = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return added, nil
}

// ListFavorites returns the favorites of owner ordered by word.
func (r *HistoryRepository) ListFavorites(ctx context.Context, owner string) ([]*entities.Favorite, error) {
	query := `
		SELECT owner, word, created_at
		FROM favorites
		WHERE owner = $1
		ORDER BY word
	`

	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var favs []*entities.Favorite
	for rows.Next() {
		var f entities.Favorite
		if err := rows.Scan(&f.Owner, &f.Word, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favs = append(favs, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return favs, nil
}
