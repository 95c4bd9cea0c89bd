package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO categories (id, user_id, name, ord)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.Name, c.Order); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) NextOrder(ctx context.Context, userID string) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(ord) + 1, 0) FROM categories WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&next); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return next, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Category, error) {
	query := `
		SELECT id, name, ord
		FROM categories
		WHERE user_id = $1
		ORDER BY ord, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Category, 0)
	for rows.Next() {
		var (
			c    = &models.Category{UserID: userID}
			name sql.NullString
		)
		if err := rows.Scan(&c.ID, &name, &c.Order); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		// malformed row
		if !name.Valid {
			continue
		}
		c.Name = name.String
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row, userID string) (*models.Category, error) {
	c := &models.Category{UserID: userID}
	if err := row.Scan(&c.ID, &c.Name, &c.Order); err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Category, error) {
	query := `
		SELECT id, name, ord
		FROM categories
		WHERE user_id = $1 AND id = $2 AND name IS NOT NULL
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, id), userID)
}

func (r *PostgresRepository) FindByName(ctx context.Context, userID, name string) (*models.Category, error) {
	query := `
		SELECT id, name, ord
		FROM categories
		WHERE user_id = $1 AND name = $2
		ORDER BY ord, id
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, name), userID)
}

func (r *PostgresRepository) update(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		// a malformed id matches no row
		if dbx.IsInvalidTextRepresentation(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
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

func (r *PostgresRepository) Rename(ctx context.Context, userID, id, name string) error {
	return r.update(ctx, `UPDATE categories SET name = $3 WHERE user_id = $1 AND id = $2`, userID, id, name)
}

func (r *PostgresRepository) SetOrder(ctx context.Context, userID, id string, order int) error {
	return r.update(ctx, `UPDATE categories SET ord = $3 WHERE user_id = $1 AND id = $2`, userID, id, order)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	return r.update(ctx, `DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
}

func (r *PostgresRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
