package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cs []models.Category) []string {
	res := make([]string, len(cs))
	for i, c := range cs {
		res[i] = c.Name
	}
	return res
}

func TestCategoryStore_CreateListIsDense(t *testing.T) {
	store := NewCategoryStore(newFakeClient())
	ctx := context.Background()

	for _, n := range []string{"Python", "Shell", "Go"} {
		_, err := store.Create(ctx, n)
		require.NoError(t, err)
	}

	list, err := store.List(ctx)
	require.NoError(t, err)

	want := []models.Category{{Name: "Python", Order: 0}, {Name: "Shell", Order: 1}, {Name: "Go", Order: 2}}
	if diff := cmp.Diff(want, list, cmpopts.IgnoreFields(models.Category{}, "ID")); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryStore_Reorder(t *testing.T) {
	store := NewCategoryStore(newFakeClient())
	ctx := context.Background()

	python, err := store.Create(ctx, "Python")
	require.NoError(t, err)
	shell, err := store.Create(ctx, "Shell")
	require.NoError(t, err)

	require.NoError(t, store.Reorder(ctx, []models.Category{*shell, *python}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Category{
		{ID: shell.ID, Name: "Shell", Order: 0},
		{ID: python.ID, Name: "Python", Order: 1},
	}, list)

	err = store.ReorderIDs(ctx, []string{python.ID})
	require.ErrorIs(t, err, common.ErrInvalidReorder)
}

func TestCategoryStore_Validation(t *testing.T) {
	c := newFakeClient()
	store := NewCategoryStore(c)
	ctx := context.Background()

	_, err := store.Create(ctx, " ")
	require.ErrorIs(t, err, common.ErrFieldEmpty)
	require.ErrorIs(t, store.Rename(ctx, "c1", ""), common.ErrFieldEmpty)
	assert.Empty(t, c.calls)

	require.ErrorIs(t, store.Rename(ctx, "missing", "x"), common.ErrCategoryNotFound)
	require.ErrorIs(t, store.Delete(ctx, models.Category{ID: "missing"}), common.ErrCategoryNotFound)
}

func TestCategoryStore_RenameAndFind(t *testing.T) {
	store := NewCategoryStore(newFakeClient())
	ctx := context.Background()

	c, err := store.Create(ctx, "Pyhton")
	require.NoError(t, err)
	require.NoError(t, store.Rename(ctx, c.ID, "Python"))

	found, err := store.Find(ctx, "Python")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	_, err = store.Find(ctx, "Pyhton")
	require.ErrorIs(t, err, common.ErrCategoryNotFound)
}

func TestCategoryStore_WrapsFailures(t *testing.T) {
	c := newFakeClient()
	c.failures["ListCategories"] = errors.New("boom")
	store := NewCategoryStore(c)

	_, err := store.List(context.Background())
	require.ErrorContains(t, err, "list categories: boom")
}

func TestCategoryDelete_Cascades(t *testing.T) {
	c := newFakeClient()
	cats := NewCategoryStore(c)
	snips := NewSnipStore(c)
	ctx := context.Background()

	py, err := cats.Create(ctx, "Python")
	require.NoError(t, err)
	_, err = snips.Create(ctx, "Python", "hello", "print(1)")
	require.NoError(t, err)

	require.NoError(t, cats.Delete(ctx, *py))

	_, err = snips.List(ctx, "Python")
	require.ErrorIs(t, err, common.ErrCategoryNotFound)
	assert.Empty(t, c.snips)
}

func TestSnipStore_CreateList(t *testing.T) {
	c := newFakeClient()
	cats := NewCategoryStore(c)
	store := NewSnipStore(c)
	ctx := context.Background()

	_, err := store.Create(ctx, "Python", "hello", "print(1)")
	require.ErrorIs(t, err, common.ErrCategoryNotFound)

	py, err := cats.Create(ctx, "Python")
	require.NoError(t, err)

	sn, err := store.Create(ctx, "Python", "hello", "print(1)")
	require.NoError(t, err)
	assert.NotEmpty(t, sn.ID)

	list, err := store.List(ctx, "Python")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Title)
	assert.Equal(t, "print(1)", list[0].Code)
	assert.False(t, list[0].Timestamp.IsZero())

	_, err = store.CreateIn(ctx, py.ID, "second", "print(2)")
	require.NoError(t, err)
	list, err = store.ListIn(ctx, py.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = store.Create(ctx, "Python", "", "x")
	require.ErrorIs(t, err, common.ErrFieldEmpty)
}

func TestSnipStore_DeleteByValue(t *testing.T) {
	c := newFakeClient()
	_, err := NewCategoryStore(c).Create(context.Background(), "Python")
	require.NoError(t, err)
	store := NewSnipStore(c)
	ctx := context.Background()

	sn, err := store.Create(ctx, "Python", "hello", "print(1)")
	require.NoError(t, err)

	err = store.Delete(ctx, "Python", "hello", "print(2)", sn.Timestamp)
	require.ErrorIs(t, err, common.ErrSnipNotFound)

	err = store.Delete(ctx, "Python", "hello", "print(1)", sn.Timestamp.Add(time.Microsecond))
	require.ErrorIs(t, err, common.ErrSnipNotFound)

	require.NoError(t, store.Delete(ctx, "Python", "hello", "print(1)", sn.Timestamp))

	list, err := store.List(ctx, "Python")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSnipStore_UpdateAndDeleteByID(t *testing.T) {
	c := newFakeClient()
	_, err := NewCategoryStore(c).Create(context.Background(), "Go")
	require.NoError(t, err)
	store := NewSnipStore(c)
	ctx := context.Background()

	sn, err := store.Create(ctx, "Go", "main", "package main")
	require.NoError(t, err)

	require.NoError(t, store.UpdateByID(ctx, sn.ID, "main.go", "package main\n"))
	require.NoError(t, store.Update(ctx, "Go", models.Snip{Title: "by ts", Code: "x", Timestamp: sn.Timestamp}))
	require.ErrorIs(t, store.UpdateByID(ctx, sn.ID, "", "x"), common.ErrFieldEmpty)

	list, err := store.List(ctx, "Go")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "by ts", list[0].Title)
	assert.Equal(t, sn.Timestamp, list[0].Timestamp, "timestamp is kept")

	require.NoError(t, store.DeleteByID(ctx, sn.ID))
	require.ErrorIs(t, store.DeleteByID(ctx, sn.ID), common.ErrSnipNotFound)
}

func TestSnipStore_Export(t *testing.T) {
	c := newFakeClient()
	store := NewSnipStore(c)

	e, err := store.Export(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "https://exports/c1", e.URL)

	c.failures["ExportCategory"] = common.ErrorInternal
	_, err = store.Export(context.Background(), "c1")
	require.ErrorIs(t, err, common.ErrorInternal)
}
