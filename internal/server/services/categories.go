package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/dbx"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/repomanager"
)

type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return sentinel
	}
	return err
}

// Create appends a category after the user's last one. The profile row lock
// serializes concurrent creates so each gets a distinct order.
func (s *CategoryService) Create(ctx context.Context, userID, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.ErrFieldEmpty
	}

	var created *models.Category
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Profiles(tx).Lock(ctx, userID); err != nil {
			return notFound(err, common.ErrUserNotFound)
		}

		repo := s.repomanager.Categories(tx)

		order, err := repo.NextOrder(ctx, userID)
		if err != nil {
			return err
		}

		created, err = repo.Create(ctx, &models.Category{UserID: userID, Name: name, Order: order})
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}
	return created, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]*models.Category, error) {
	list, err := s.repomanager.Categories(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return list, nil
}

func (s *CategoryService) Rename(ctx context.Context, userID, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return common.ErrFieldEmpty
	}

	err := s.repomanager.Categories(s.db).Rename(ctx, userID, id, name)
	if err != nil {
		return fmt.Errorf("error renaming category: %w", notFound(err, common.ErrCategoryNotFound))
	}
	return nil
}

// Reorder takes the complete desired sequence of the user's category ids and
// writes order = index for each, all or nothing.
func (s *CategoryService) Reorder(ctx context.Context, userID string, ids []string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Profiles(tx).Lock(ctx, userID); err != nil {
			return notFound(err, common.ErrUserNotFound)
		}

		repo := s.repomanager.Categories(tx)

		current, err := repo.List(ctx, userID)
		if err != nil {
			return err
		}

		if err := validatePermutation(current, ids); err != nil {
			return err
		}

		for i, id := range ids {
			if err := repo.SetOrder(ctx, userID, id, i); err != nil {
				return notFound(err, common.ErrCategoryNotFound)
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("error reordering categories: %w", err)
	}
	return nil
}

func validatePermutation(current []*models.Category, ids []string) error {
	known := make(map[string]bool, len(current))
	for _, c := range current {
		known[c.ID] = false
	}

	for _, id := range ids {
		seen, ok := known[id]
		if !ok {
			return common.ErrCategoryNotFound
		}
		if seen {
			return common.ErrInvalidReorder
		}
		known[id] = true
	}

	if len(ids) != len(current) {
		return common.ErrInvalidReorder
	}
	return nil
}

// Delete removes the category's snips and then the category itself.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		categories := s.repomanager.Categories(tx)

		if _, err := categories.Get(ctx, userID, id); err != nil {
			return notFound(err, common.ErrCategoryNotFound)
		}
		if err := s.repomanager.Snips(tx).DeleteByCategory(ctx, id); err != nil {
			return err
		}
		return notFound(categories.Delete(ctx, userID, id), common.ErrCategoryNotFound)
	})

	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	return nil
}
