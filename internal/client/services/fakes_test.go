package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/common"
)

// fakeClient is an in-memory stand-in for the server, for a single account.
type fakeClient struct {
	mu sync.Mutex

	calls    []string
	failures map[string]error

	accounts map[string]string // email -> password
	tokens   [2]string

	categories []models.Category
	snips      []models.Snip
	nextID     int
	now        time.Time
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		failures: map[string]error{},
		accounts: map[string]string{},
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeClient) call(name string) error {
	f.calls = append(f.calls, name)
	return f.failures[name]
}

func (f *fakeClient) id(prefix string) string {
	f.nextID++
	return prefix + strconv.Itoa(f.nextID)
}

func (f *fakeClient) session(email string) *models.Session {
	return &models.Session{UserID: "uid-" + email, Email: email, AccessToken: "at-" + email, RefreshToken: "rt-" + email}
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.call("Ping")
}

func (f *fakeClient) SetTokens(accessToken, refreshToken string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = [2]string{accessToken, refreshToken}
}

func (f *fakeClient) Register(ctx context.Context, email, password string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Register"); err != nil {
		return nil, err
	}
	if _, ok := f.accounts[email]; ok {
		return nil, common.ErrEmailAlreadyInUse
	}
	f.accounts[email] = password
	return f.session(email), nil
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("SignIn"); err != nil {
		return nil, err
	}
	pw, ok := f.accounts[email]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	if pw != password {
		return nil, common.ErrWrongPassword
	}
	return f.session(email), nil
}

func (f *fakeClient) SignInWithCredential(ctx context.Context, idToken string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("SignInWithCredential"); err != nil {
		return nil, err
	}
	return f.session(idToken + "@external"), nil
}

func (f *fakeClient) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = [2]string{}
	return f.call("SignOut")
}

func (f *fakeClient) RequestPasswordReset(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.call("RequestPasswordReset")
}

func (f *fakeClient) DeleteAccount(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DeleteAccount"); err != nil {
		return err
	}
	f.categories = nil
	f.snips = nil
	return nil
}

func (f *fakeClient) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreateCategory"); err != nil {
		return nil, err
	}
	order := 0
	for _, c := range f.categories {
		if c.Order >= order {
			order = c.Order + 1
		}
	}
	c := models.Category{ID: f.id("c"), Name: name, Order: order}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ListCategories"); err != nil {
		return nil, err
	}
	res := append([]models.Category(nil), f.categories...)
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Order != res[j].Order {
			return res[i].Order < res[j].Order
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (f *fakeClient) findCategory(id string) int {
	for i, c := range f.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeClient) RenameCategory(ctx context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("RenameCategory"); err != nil {
		return err
	}
	i := f.findCategory(id)
	if i < 0 {
		return common.ErrCategoryNotFound
	}
	f.categories[i].Name = name
	return nil
}

func (f *fakeClient) ReorderCategories(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ReorderCategories"); err != nil {
		return err
	}
	if len(ids) != len(f.categories) {
		return common.ErrInvalidReorder
	}
	for _, id := range ids {
		if f.findCategory(id) < 0 {
			return common.ErrCategoryNotFound
		}
	}
	for n, id := range ids {
		f.categories[f.findCategory(id)].Order = n
	}
	return nil
}

func (f *fakeClient) DeleteCategory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DeleteCategory"); err != nil {
		return err
	}
	i := f.findCategory(id)
	if i < 0 {
		return common.ErrCategoryNotFound
	}
	kept := f.snips[:0]
	for _, sn := range f.snips {
		if sn.CategoryID != id {
			kept = append(kept, sn)
		}
	}
	f.snips = kept
	f.categories = append(f.categories[:i], f.categories[i+1:]...)
	return nil
}

func (f *fakeClient) resolve(ref models.CategoryRef) (string, error) {
	if ref.ID != "" {
		if f.findCategory(ref.ID) < 0 {
			return "", common.ErrCategoryNotFound
		}
		return ref.ID, nil
	}
	best := -1
	for i, c := range f.categories {
		if c.Name == ref.Name && (best < 0 || c.Order < f.categories[best].Order) {
			best = i
		}
	}
	if best < 0 {
		return "", common.ErrCategoryNotFound
	}
	return f.categories[best].ID, nil
}

func (f *fakeClient) CreateSnip(ctx context.Context, ref models.CategoryRef, title, code string) (*models.Snip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreateSnip"); err != nil {
		return nil, err
	}
	cid, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}
	f.now = f.now.Add(time.Minute)
	sn := models.Snip{ID: f.id("s"), CategoryID: cid, Title: title, Code: code, Timestamp: f.now}
	f.snips = append(f.snips, sn)
	return &sn, nil
}

func (f *fakeClient) ListSnips(ctx context.Context, ref models.CategoryRef) ([]models.Snip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ListSnips"); err != nil {
		return nil, err
	}
	cid, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}
	var res []models.Snip
	for _, sn := range f.snips {
		if sn.CategoryID == cid {
			res = append(res, sn)
		}
	}
	return res, nil
}

func (f *fakeClient) locate(ref models.CategoryRef, snip models.Snip, byValue bool) (int, error) {
	if snip.ID != "" {
		for i, sn := range f.snips {
			if sn.ID == snip.ID {
				return i, nil
			}
		}
		return -1, common.ErrSnipNotFound
	}
	cid, err := f.resolve(ref)
	if err != nil {
		return -1, err
	}
	for i, sn := range f.snips {
		if sn.CategoryID != cid || !sn.Timestamp.Equal(snip.Timestamp) {
			continue
		}
		if !byValue || (sn.Title == snip.Title && sn.Code == snip.Code) {
			return i, nil
		}
	}
	return -1, common.ErrSnipNotFound
}

func (f *fakeClient) UpdateSnip(ctx context.Context, ref models.CategoryRef, snip models.Snip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("UpdateSnip"); err != nil {
		return err
	}
	i, err := f.locate(ref, snip, false)
	if err != nil {
		return err
	}
	f.snips[i].Title = snip.Title
	f.snips[i].Code = snip.Code
	return nil
}

func (f *fakeClient) DeleteSnip(ctx context.Context, ref models.CategoryRef, snip models.Snip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DeleteSnip"); err != nil {
		return err
	}
	i, err := f.locate(ref, snip, true)
	if err != nil {
		return err
	}
	f.snips = append(f.snips[:i], f.snips[i+1:]...)
	return nil
}

func (f *fakeClient) ExportCategory(ctx context.Context, categoryID string) (*models.Export, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ExportCategory"); err != nil {
		return nil, err
	}
	return &models.Export{URL: "https://exports/" + categoryID, Key: "exports/" + categoryID}, nil
}

// memSessions is an in-memory session.Repository.
type memSessions struct {
	s       *models.Session
	loadErr error
	saveErr error
}

func (m *memSessions) Load(context.Context) (*models.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.s == nil {
		return nil, nil
	}
	cp := *m.s
	return &cp, nil
}

func (m *memSessions) Save(_ context.Context, s *models.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *s
	m.s = &cp
	return nil
}

func (m *memSessions) UpdateTokens(_ context.Context, at, rt string) error {
	if m.s != nil {
		m.s.AccessToken, m.s.RefreshToken = at, rt
	}
	return nil
}

func (m *memSessions) Clear(context.Context) error {
	m.s = nil
	return nil
}
