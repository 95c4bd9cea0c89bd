package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/dbx"
	"github.com/dmitrijs2005/savvysnip/internal/logging"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/categories"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/snips"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/users"
	"github.com/google/uuid"
)

// ---- helpers ----

var errForeignKey = errors.New("snips_category_id_fkey violation")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// expectTx registers one transaction that either commits or rolls back.
func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func quietLogger() logging.Logger { return logging.Discard() }

// ---- in-memory store behind every fake repository ----

type memStore struct {
	mu         sync.Mutex
	users      map[string]*models.User
	profiles   map[string]*models.Profile
	categories map[string]*models.Category
	snips      map[string]*models.Snip
	refresh    map[string]*models.RefreshToken
	resets     map[string]*models.ResetToken
	failures   map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*models.User{},
		profiles:   map[string]*models.Profile{},
		categories: map[string]*models.Category{},
		snips:      map[string]*models.Snip{},
		refresh:    map[string]*models.RefreshToken{},
		resets:     map[string]*models.ResetToken{},
		failures:   map[string]error{},
	}
}

// failOn makes the named operation (e.g. "categories.Create") return err.
func (m *memStore) failOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

func (m *memStore) fail(op string) error {
	return m.failures[op]
}

func (m *memStore) addProfile(uid, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[uid] = &models.Profile{UID: uid, Email: email}
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return fakeUsers{m.s} }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository           { return fakeProfiles{m.s} }
func (m *fakeRepoManager) Categories(dbx.DBTX) categories.Repository       { return fakeCategories{m.s} }
func (m *fakeRepoManager) Snips(dbx.DBTX) snips.Repository                 { return fakeSnips{m.s} }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return fakeRefresh{m.s} }
func (m *fakeRepoManager) ResetTokens(dbx.DBTX) resettokens.Repository     { return fakeResets{m.s} }

// ---- users ----

type fakeUsers struct{ s *memStore }

func (f fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("users.Create"); err != nil {
		return nil, err
	}
	for _, existing := range f.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrEmailAlreadyInUse
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	cp := *u
	f.s.users[u.ID] = &cp
	return u, nil
}

func (f fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if err := f.s.fail("users.GetByEmail"); err != nil {
		return nil, err
	}
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f fakeUsers) GetBySubject(_ context.Context, provider, subject string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Provider == provider && u.Subject == subject })
}

func (f fakeUsers) UpdatePasswordHash(_ context.Context, id string, hash []byte) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f fakeUsers) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("users.Delete"); err != nil {
		return err
	}
	if _, ok := f.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.s.users, id)
	return nil
}

// ---- profiles ----

type fakeProfiles struct{ s *memStore }

func (f fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.profiles[p.UID]; !ok {
		cp := *p
		f.s.profiles[p.UID] = &cp
	}
	return nil
}

func (f fakeProfiles) Lock(_ context.Context, uid string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.profiles[uid]; !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (f fakeProfiles) Delete(_ context.Context, uid string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("profiles.Delete"); err != nil {
		return err
	}
	delete(f.s.profiles, uid)
	return nil
}

// ---- categories ----

type fakeCategories struct{ s *memStore }

func (f fakeCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("categories.Create"); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	f.s.categories[c.ID] = &cp
	return c, nil
}

func (f fakeCategories) NextOrder(_ context.Context, userID string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	next := 0
	for _, c := range f.s.categories {
		if c.UserID == userID && c.Order+1 > next {
			next = c.Order + 1
		}
	}
	return next, nil
}

func (f fakeCategories) sorted(userID string) []*models.Category {
	var out []*models.Category
	for _, c := range f.s.categories {
		if c.UserID == userID && c.Name != "" {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f fakeCategories) List(_ context.Context, userID string) ([]*models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("categories.List"); err != nil {
		return nil, err
	}
	out := f.sorted(userID)
	if out == nil {
		out = []*models.Category{}
	}
	return out, nil
}

func (f fakeCategories) Get(_ context.Context, userID, id string) (*models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.categories[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCategories) FindByName(_ context.Context, userID, name string) (*models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.sorted(userID) {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeCategories) owned(userID, id string) (*models.Category, error) {
	c, ok := f.s.categories[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f fakeCategories) Rename(_ context.Context, userID, id, name string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, err := f.owned(userID, id)
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}

func (f fakeCategories) SetOrder(_ context.Context, userID, id string, order int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("categories.SetOrder"); err != nil {
		return err
	}
	c, err := f.owned(userID, id)
	if err != nil {
		return err
	}
	c.Order = order
	return nil
}

func (f fakeCategories) Delete(_ context.Context, userID, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, err := f.owned(userID, id); err != nil {
		return err
	}
	for _, sn := range f.s.snips {
		if sn.CategoryID == id {
			return errForeignKey
		}
	}
	delete(f.s.categories, id)
	return nil
}

func (f fakeCategories) DeleteAllByUser(_ context.Context, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("categories.DeleteAllByUser"); err != nil {
		return err
	}
	for id, c := range f.s.categories {
		if c.UserID == userID {
			delete(f.s.categories, id)
		}
	}
	return nil
}

// ---- snips ----

type fakeSnips struct{ s *memStore }

func (f fakeSnips) Create(_ context.Context, sn *models.Snip) (*models.Snip, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("snips.Create"); err != nil {
		return nil, err
	}
	if sn.ID == "" {
		sn.ID = uuid.NewString()
	}
	cp := *sn
	f.s.snips[sn.ID] = &cp
	return sn, nil
}

func (f fakeSnips) ListByCategory(_ context.Context, categoryID string) ([]*models.Snip, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("snips.ListByCategory"); err != nil {
		return nil, err
	}
	out := []*models.Snip{}
	for _, sn := range f.s.snips {
		if sn.CategoryID == categoryID {
			cp := *sn
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f fakeSnips) first(match func(*models.Snip) bool) (*models.Snip, error) {
	for _, sn := range f.s.snips {
		if match(sn) {
			cp := *sn
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeSnips) GetOwned(_ context.Context, userID, id string) (*models.Snip, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.first(func(sn *models.Snip) bool {
		c, ok := f.s.categories[sn.CategoryID]
		return sn.ID == id && ok && c.UserID == userID
	})
}

func (f fakeSnips) FindByValue(_ context.Context, categoryID, title, code string, ts time.Time) (*models.Snip, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.first(func(sn *models.Snip) bool {
		return sn.CategoryID == categoryID && sn.Title == title && sn.Code == code && sn.Timestamp.Equal(ts)
	})
}

func (f fakeSnips) FindByTimestamp(_ context.Context, categoryID string, ts time.Time) (*models.Snip, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.first(func(sn *models.Snip) bool {
		return sn.CategoryID == categoryID && sn.Timestamp.Equal(ts)
	})
}

func (f fakeSnips) Update(_ context.Context, id, title, code string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sn, ok := f.s.snips[id]
	if !ok {
		return common.ErrorNotFound
	}
	sn.Title, sn.Code = title, code
	return nil
}

func (f fakeSnips) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.snips[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.s.snips, id)
	return nil
}

func (f fakeSnips) DeleteByCategory(_ context.Context, categoryID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("snips.DeleteByCategory"); err != nil {
		return err
	}
	for id, sn := range f.s.snips {
		if sn.CategoryID == categoryID {
			delete(f.s.snips, id)
		}
	}
	return nil
}

func (f fakeSnips) DeleteAllByUser(_ context.Context, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("snips.DeleteAllByUser"); err != nil {
		return err
	}
	for id, sn := range f.s.snips {
		if c, ok := f.s.categories[sn.CategoryID]; ok && c.UserID == userID {
			delete(f.s.snips, id)
		}
	}
	return nil
}

// ---- tokens ----

type fakeRefresh struct{ s *memStore }

func (f fakeRefresh) Create(_ context.Context, userID, token string, validity time.Duration) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.fail("refresh.Create"); err != nil {
		return err
	}
	f.s.refresh[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f fakeRefresh) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	rt, ok := f.s.refresh[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *rt
	return &cp, nil
}

func (f fakeRefresh) Delete(_ context.Context, token string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.refresh, token)
	return nil
}

func (f fakeRefresh) Consume(_ context.Context, token string) (*models.RefreshToken, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	rt, ok := f.s.refresh[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.s.refresh, token)
	return rt, nil
}

func (f fakeRefresh) DeleteAllByUser(_ context.Context, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for k, rt := range f.s.refresh {
		if rt.UserID == userID {
			delete(f.s.refresh, k)
		}
	}
	return nil
}

type fakeResets struct{ s *memStore }

func (f fakeResets) Create(_ context.Context, userID, token string, validity time.Duration) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.resets[token] = &models.ResetToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f fakeResets) Consume(_ context.Context, token string) (*models.ResetToken, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	rt, ok := f.s.resets[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.s.resets, token)
	return rt, nil
}

func (m *memStore) seedCategory(userID, name string, order int) *models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &models.Category{ID: uuid.NewString(), UserID: userID, Name: name, Order: order}
	m.categories[c.ID] = c
	cp := *c
	return &cp
}

func (m *memStore) seedSnip(categoryID, title, code string, ts time.Time) *models.Snip {
	m.mu.Lock()
	defer m.mu.Unlock()
	sn := &models.Snip{ID: uuid.NewString(), CategoryID: categoryID, Title: title, Code: code, Timestamp: ts}
	m.snips[sn.ID] = sn
	cp := *sn
	return &cp
}

func (m *memStore) count(what string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch what {
	case "users":
		return len(m.users)
	case "profiles":
		return len(m.profiles)
	case "categories":
		return len(m.categories)
	case "snips":
		return len(m.snips)
	case "refresh":
		return len(m.refresh)
	case "resets":
		return len(m.resets)
	}
	return -1
}
