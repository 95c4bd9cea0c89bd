package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/dbx"
)

const (
	keyUserID       = "uid"
	keyEmail        = "email"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

const upsertQuery = `
	INSERT INTO metadata (key, value) VALUES %s
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata WHERE key IN (?, ?, ?, ?)`,
		keyUserID, keyEmail, keyAccessToken, keyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 4)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = string(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	if values[keyUserID] == "" {
		return nil, nil
	}

	return &models.Session{
		UserID:       values[keyUserID],
		Email:        values[keyEmail],
		AccessToken:  values[keyAccessToken],
		RefreshToken: values[keyRefreshToken],
	}, nil
}

// Save replaces the stored session with a single statement.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(upsertQuery, "(?, ?), (?, ?), (?, ?), (?, ?)"),
		keyUserID, []byte(s.UserID),
		keyEmail, []byte(s.Email),
		keyAccessToken, []byte(s.AccessToken),
		keyRefreshToken, []byte(s.RefreshToken),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(upsertQuery, "(?, ?), (?, ?)"),
		keyAccessToken, []byte(accessToken),
		keyRefreshToken, []byte(refreshToken),
	)
	if err != nil {
		return fmt.Errorf("failed to update session tokens: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?, ?, ?)`,
		keyUserID, keyEmail, keyAccessToken, keyRefreshToken)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
