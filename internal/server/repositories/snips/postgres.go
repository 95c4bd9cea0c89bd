package snips

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/dbx"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Snip) (*models.Snip, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO snips (id, category_id, title, code, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.CategoryID, s.Title, s.Code, s.Timestamp); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID string) ([]*models.Snip, error) {
	query := `
		SELECT id, category_id, title, code, created_at
		FROM snips
		WHERE category_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Snip, 0)
	for rows.Next() {
		s := &models.Snip{}
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Title, &s.Code, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func scanOne(row *sql.Row) (*models.Snip, error) {
	s := &models.Snip{}
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Title, &s.Code, &s.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) GetOwned(ctx context.Context, userID, id string) (*models.Snip, error) {
	query := `
		SELECT s.id, s.category_id, s.title, s.code, s.created_at
		FROM snips s
		JOIN categories c ON c.id = s.category_id
		WHERE c.user_id = $1 AND s.id = $2
	`
	return scanOne(r.db.QueryRowContext(ctx, query, userID, id))
}

func (r *PostgresRepository) FindByValue(ctx context.Context, categoryID, title, code string, ts time.Time) (*models.Snip, error) {
	query := `
		SELECT id, category_id, title, code, created_at
		FROM snips
		WHERE category_id = $1 AND title = $2 AND code = $3 AND created_at = $4
		ORDER BY id
		LIMIT 1
	`
	return scanOne(r.db.QueryRowContext(ctx, query, categoryID, title, code, ts))
}

func (r *PostgresRepository) FindByTimestamp(ctx context.Context, categoryID string, ts time.Time) (*models.Snip, error) {
	query := `
		SELECT id, category_id, title, code, created_at
		FROM snips
		WHERE category_id = $1 AND created_at = $2
		ORDER BY id
		LIMIT 1
	`
	return scanOne(r.db.QueryRowContext(ctx, query, categoryID, ts))
}

func (r *PostgresRepository) exec(ctx context.Context, mustAffect bool, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		// a malformed id matches no row
		if dbx.IsInvalidTextRepresentation(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	if !mustAffect {
		return nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, title, code string) error {
	return r.exec(ctx, true, `UPDATE snips SET title = $2, code = $3 WHERE id = $1`, id, title, code)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, true, `DELETE FROM snips WHERE id = $1`, id)
}

func (r *PostgresRepository) DeleteByCategory(ctx context.Context, categoryID string) error {
	return r.exec(ctx, false, `DELETE FROM snips WHERE category_id = $1`, categoryID)
}

func (r *PostgresRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM snips
		WHERE category_id IN (SELECT id FROM categories WHERE user_id = $1)
	`
	return r.exec(ctx, false, query, userID)
}
