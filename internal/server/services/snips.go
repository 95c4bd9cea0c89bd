package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/dbx"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/repomanager"
)

// CategoryRef addresses a category by ID or, when ID is empty, by name. Name
// lookups take the first match in list order.
type CategoryRef struct {
	ID   string
	Name string
}

type SnipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSnipService(db *sql.DB, m repomanager.RepositoryManager) *SnipService {
	return &SnipService{db: db, repomanager: m, now: time.Now}
}

// timestamp is truncated to what PostgreSQL stores so a snip read back
// compares equal to the one returned at creation.
func (s *SnipService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *SnipService) resolve(ctx context.Context, db dbx.DBTX, userID string, ref CategoryRef) (*models.Category, error) {
	repo := s.repomanager.Categories(db)

	var (
		c   *models.Category
		err error
	)
	switch {
	case ref.ID != "":
		c, err = repo.Get(ctx, userID, ref.ID)
	case ref.Name != "":
		c, err = repo.FindByName(ctx, userID, ref.Name)
	default:
		return nil, common.ErrCategoryNotFound
	}
	if err != nil {
		return nil, notFound(err, common.ErrCategoryNotFound)
	}
	return c, nil
}

func validSnip(title, code string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(code) == "" {
		return common.ErrFieldEmpty
	}
	return nil
}

func (s *SnipService) Create(ctx context.Context, userID string, ref CategoryRef, title, code string) (*models.Snip, error) {
	if err := validSnip(title, code); err != nil {
		return nil, err
	}

	c, err := s.resolve(ctx, s.db, userID, ref)
	if err != nil {
		return nil, err
	}

	snip, err := s.repomanager.Snips(s.db).Create(ctx, &models.Snip{
		CategoryID: c.ID,
		Title:      title,
		Code:       code,
		Timestamp:  s.timestamp(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating snip: %w", err)
	}
	return snip, nil
}

func (s *SnipService) List(ctx context.Context, userID string, ref CategoryRef) ([]*models.Snip, error) {
	c, err := s.resolve(ctx, s.db, userID, ref)
	if err != nil {
		return nil, err
	}

	list, err := s.repomanager.Snips(s.db).ListByCategory(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing snips: %w", err)
	}
	return list, nil
}

// Update rewrites title and code. The snip is found by id, or by its original
// timestamp within ref when id is empty. The timestamp never changes.
func (s *SnipService) Update(ctx context.Context, userID string, ref CategoryRef, id string, ts time.Time, title, code string) error {
	if err := validSnip(title, code); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Snips(tx)

		target, err := s.locate(ctx, tx, userID, ref, id, func(categoryID string) (*models.Snip, error) {
			return repo.FindByTimestamp(ctx, categoryID, ts.UTC())
		})
		if err != nil {
			return err
		}

		if err := repo.Update(ctx, target.ID, title, code); err != nil {
			return fmt.Errorf("error updating snip: %w", notFound(err, common.ErrSnipNotFound))
		}
		return nil
	})
}

// Delete removes the snip found by id, or by an exact (title, code,
// timestamp) match within ref when id is empty.
func (s *SnipService) Delete(ctx context.Context, userID string, ref CategoryRef, id, title, code string, ts time.Time) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Snips(tx)

		target, err := s.locate(ctx, tx, userID, ref, id, func(categoryID string) (*models.Snip, error) {
			return repo.FindByValue(ctx, categoryID, title, code, ts.UTC())
		})
		if err != nil {
			return err
		}

		if err := repo.Delete(ctx, target.ID); err != nil {
			return fmt.Errorf("error deleting snip: %w", notFound(err, common.ErrSnipNotFound))
		}
		return nil
	})
}

func (s *SnipService) locate(ctx context.Context, tx dbx.DBTX, userID string, ref CategoryRef, id string,
	byValue func(categoryID string) (*models.Snip, error)) (*models.Snip, error) {

	if id != "" {
		snip, err := s.repomanager.Snips(tx).GetOwned(ctx, userID, id)
		if err != nil {
			return nil, notFound(err, common.ErrSnipNotFound)
		}
		return snip, nil
	}

	c, err := s.resolve(ctx, tx, userID, ref)
	if err != nil {
		return nil, err
	}

	snip, err := byValue(c.ID)
	if err != nil {
		return nil, notFound(err, common.ErrSnipNotFound)
	}
	return snip, nil
}
