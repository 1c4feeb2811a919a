package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// HistoryRepository stores quiz results and favorites in SQLite.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// SaveResult inserts a result together with its wrong answers.
func (r *HistoryRepository) SaveResult(ctx context.Context, result *entities.SessionResult) error {
	return r.withinTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quiz_results (
				id, owner, module_id, module_name, mode,
				total_asked, total_correct, started_at, finished_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.ID.String(),
			result.Owner,
			result.ModuleID,
			result.ModuleName,
			result.Mode.String(),
			result.TotalAsked,
			result.TotalCorrect,
			formatTime(result.StartedAt),
			formatTime(result.FinishedAt),
		)
		if err != nil {
			return fmt.Errorf("insert quiz result: %w", err)
		}

		for _, w := range result.WrongLog {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO quiz_wrong_answers (
					result_id, word, definition, question,
					user_answer, correct_answer, answered_at
				) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				result.ID.String(),
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

// ListResults returns the latest results of owner, newest first, with their
// wrong answers.
func (r *HistoryRepository) ListResults(ctx context.Context, owner string, limit int) ([]*entities.SessionResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner, module_id, module_name, mode,
		       total_asked, total_correct, started_at, finished_at
		FROM quiz_results
		WHERE owner = ?
		ORDER BY finished_at DESC
		LIMIT ?`,
		owner, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}

	var results []*entities.SessionResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	_ = rows.Close()

	// The pool holds a single connection, so wrong answers are read after
	// the result rows are closed.
	for _, res := range results {
		res.WrongLog, err = r.wrongAnswers(ctx, res.ID)
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (r *HistoryRepository) wrongAnswers(ctx context.Context, resultID uuid.UUID) ([]entities.WrongRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT word, definition, question, user_answer, correct_answer, answered_at
		FROM quiz_wrong_answers
		WHERE result_id = ?
		ORDER BY id`,
		resultID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query wrong answers: %w", err)
	}
	defer rows.Close()

	var out []entities.WrongRecord
	for rows.Next() {
		var w entities.WrongRecord
		if err := rows.Scan(
			&w.Word,
			&w.Definition,
			&w.QuestionText,
			&w.UserAnswerText,
			&w.CorrectAnswerText,
			&w.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan wrong answer: %w", err)
		}
		out = append(out, w)
	}

	return out, rows.Err()
}

// ToggleFavorite removes the word when it is a favorite and adds it otherwise.
func (r *HistoryRepository) ToggleFavorite(ctx context.Context, owner, word string) (bool, error) {
	var added bool

	err := r.withinTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE owner = ? AND word = ?`, owner, word)
		if err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		if n > 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO favorites (owner, word, created_at) VALUES (?, ?, ?)`,
			owner, word, formatTime(time.Now()),
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
	rows, err := r.db.QueryContext(ctx,
		`SELECT owner, word, created_at FROM favorites WHERE owner = ? ORDER BY word`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var favs []*entities.Favorite
	for rows.Next() {
		var (
			f       entities.Favorite
			created string
		)
		if err := rows.Scan(&f.Owner, &f.Word, &created); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		if f.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("scan favorite %s: %w", f.Word, err)
		}
		favs = append(favs, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return favs, nil
}

func (r *HistoryRepository) withinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func scanResult(rows *sql.Rows) (*entities.SessionResult, error) {
	var (
		res                         entities.SessionResult
		id, mode, started, finished string
	)
	if err := rows.Scan(
		&id,
		&res.Owner,
		&res.ModuleID,
		&res.ModuleName,
		&mode,
		&res.TotalAsked,
		&res.TotalCorrect,
		&started,
		&finished,
	); err != nil {
		return nil, fmt.Errorf("scan quiz result: %w", err)
	}

	var err error
	if res.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("scan quiz result id: %w", err)
	}
	if res.Mode, err = entities.ParseMode(mode); err != nil {
		return nil, fmt.Errorf("scan quiz result %s: %w", id, err)
	}
	if res.StartedAt, err = parseTime(started); err != nil {
		return nil, fmt.Errorf("scan quiz result %s: %w", id, err)
	}
	if res.FinishedAt, err = parseTime(finished); err != nil {
		return nil, fmt.Errorf("scan quiz result %s: %w", id, err)
	}

	return &res, nil
}

// timeLayout has a fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
