package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
)

var errUsage = errors.New("usage")

func (a *App) printCategories() {
	list := a.categories.Categories()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No categories yet")
		return
	}
	for i, c := range list {
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, c.Name)
	}
}

func (a *App) ListCategories(ctx context.Context) error {
	if err := a.categories.Load(ctx); err != nil {
		return a.report(a.categories, err)
	}
	a.printCategories()
	return nil
}

func (a *App) AddCategory(ctx context.Context, name string) error {
	if name == "" {
		var err error
		if name, err = getSimpleText(a.reader, "Category name", a.out); err != nil {
			return err
		}
	}

	if err := a.categories.Create(ctx, name); err != nil {
		return a.report(a.categories, err)
	}
	a.printCategories()
	return nil
}

// findCategory resolves name to the first category carrying it.
func (a *App) findCategory(ctx context.Context, name string) (*models.Category, error) {
	c, err := a.categoryStore.Find(ctx, name)
	if err != nil {
		fmt.Fprintf(a.out, "Category %q not found\n", name)
		return nil, err
	}
	return c, nil
}

func (a *App) RenameCategory(ctx context.Context, name string) error {
	c, err := a.findCategory(ctx, name)
	if err != nil {
		return err
	}

	newName, err := getSimpleText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}

	if err := a.categories.Rename(ctx, c.ID, newName); err != nil {
		return a.report(a.categories, err)
	}
	a.printCategories()
	return nil
}

// MoveCategory takes two 1-based positions as shown by ListCategories.
func (a *App) MoveCategory(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: movecat <from> <to>")
		return errUsage
	}
	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(a.out, "Positions must be numbers")
		return errUsage
	}

	if err := a.categories.Load(ctx); err != nil {
		return a.report(a.categories, err)
	}
	if err := a.categories.Move(ctx, from-1, to-1); err != nil {
		return a.report(a.categories, err)
	}
	a.printCategories()
	return nil
}

// DeleteCategory removes the category with all its snips after confirmation.
func (a *App) DeleteCategory(ctx context.Context, name string) error {
	c, err := a.findCategory(ctx, name)
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q and all its snips? (y/n)", c.Name), a.out)
	if err != nil {
		return err
	}
	if answer != "y" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.categories.Delete(ctx, *c); err != nil {
		return a.report(a.categories, err)
	}
	a.printCategories()
	return nil
}
