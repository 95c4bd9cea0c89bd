package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/config"
	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/client/viewmodel"
	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/logging"
)

type fakeAuth struct {
	account *models.Account

	regEmail, regPass string
	regErr            error
	signInErr         error
	signOutErr        error
	resetEmail        string
	deleteErr         error
	deleted           bool
	pingErr           error
	pings             atomic.Int32
	closed            bool
}

func (f *fakeAuth) Register(_ context.Context, email, password string) (*models.Account, error) {
	f.regEmail, f.regPass = email, password
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.account = &models.Account{UserID: "u1", Email: email}
	return f.account, nil
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (*models.Account, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.account = &models.Account{UserID: "u1", Email: email}
	return f.account, nil
}

func (f *fakeAuth) SignInWithExternalCredential(_ context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrFieldEmpty
	}
	f.account = &models.Account{UserID: "ext", Email: "ext@example.org"}
	return f.account, nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.account = nil
	return nil
}

func (f *fakeAuth) CurrentAccount(context.Context) (*models.Account, error) { return f.account, nil }
func (f *fakeAuth) Resume(context.Context) (*models.Account, error)         { return f.account, nil }

func (f *fakeAuth) ResetPassword(_ context.Context, email string) error {
	if email == "" {
		return common.ErrFieldEmpty
	}
	f.resetEmail = email
	return nil
}

func (f *fakeAuth) DeleteAccount(context.Context) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
	f.account = nil
	return nil
}

func (f *fakeAuth) Ping(context.Context) error {
	f.pings.Add(1)
	return f.pingErr
}

func (f *fakeAuth) Close(context.Context) error {
	f.closed = true
	return nil
}

// memCatalog implements both store interfaces over one in-memory catalog.
type memCatalog struct {
	cats   []models.Category
	snips  []models.Snip
	next   int
	now    time.Time
	export *models.Export
	err    error
}

func (m *memCatalog) id(prefix string) string {
	m.next++
	return fmt.Sprintf("%s%d", prefix, m.next)
}

func (m *memCatalog) Create(_ context.Context, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.ErrFieldEmpty
	}
	c := models.Category{ID: m.id("c"), Name: name, Order: len(m.cats)}
	m.cats = append(m.cats, c)
	return &c, nil
}

func (m *memCatalog) List(context.Context) ([]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Category(nil), m.cats...), nil
}

func (m *memCatalog) Rename(_ context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return common.ErrFieldEmpty
	}
	for i := range m.cats {
		if m.cats[i].ID == id {
			m.cats[i].Name = name
			return nil
		}
	}
	return common.ErrCategoryNotFound
}

func (m *memCatalog) Reorder(_ context.Context, cs []models.Category) error {
	m.cats = nil
	for i, c := range cs {
		c.Order = i
		m.cats = append(m.cats, c)
	}
	return nil
}

func (m *memCatalog) Delete(_ context.Context, c models.Category) error {
	var rest []models.Category
	for _, x := range m.cats {
		if x.ID != c.ID {
			x.Order = len(rest)
			rest = append(rest, x)
		}
	}
	m.cats = rest

	var keep []models.Snip
	for _, s := range m.snips {
		if s.CategoryID != c.ID {
			keep = append(keep, s)
		}
	}
	m.snips = keep
	return nil
}

func (m *memCatalog) Find(_ context.Context, name string) (*models.Category, error) {
	for _, c := range m.cats {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, common.ErrCategoryNotFound
}

type memSnips struct{ *memCatalog }

func (s memSnips) Create(ctx context.Context, category, title, code string) (*models.Snip, error) {
	c, err := s.Find(ctx, category)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(code) == "" {
		return nil, common.ErrFieldEmpty
	}
	s.now = s.now.Add(time.Minute)
	sn := models.Snip{ID: s.id("s"), CategoryID: c.ID, Title: title, Code: code, Timestamp: s.now}
	s.snips = append(s.snips, sn)
	return &sn, nil
}

func (s memSnips) List(ctx context.Context, category string) ([]models.Snip, error) {
	c, err := s.Find(ctx, category)
	if err != nil {
		return nil, err
	}
	var res []models.Snip
	for _, sn := range s.snips {
		if sn.CategoryID == c.ID {
			res = append(res, sn)
		}
	}
	return res, nil
}

func (s memSnips) Update(_ context.Context, _ string, sn models.Snip) error {
	for i := range s.snips {
		if s.snips[i].ID == sn.ID {
			s.snips[i].Title, s.snips[i].Code = sn.Title, sn.Code
			return nil
		}
	}
	return common.ErrSnipNotFound
}

func (s memSnips) Delete(_ context.Context, _ string, title, code string, ts time.Time) error {
	return s.remove(func(sn models.Snip) bool {
		return sn.Title == title && sn.Code == code && sn.Timestamp.Equal(ts)
	})
}

func (s memSnips) DeleteByID(_ context.Context, id string) error {
	return s.remove(func(sn models.Snip) bool { return sn.ID == id })
}

func (s memSnips) remove(match func(models.Snip) bool) error {
	for i := range s.snips {
		if match(s.snips[i]) {
			s.snips = append(s.snips[:i], s.snips[i+1:]...)
			return nil
		}
	}
	return common.ErrSnipNotFound
}

func (s memSnips) Export(context.Context, string) (*models.Export, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.export, nil
}

type testApp struct {
	*App
	authFake *fakeAuth
	catalog  *memCatalog
	out      *bytes.Buffer
}

// newTestApp wires an App over fakes. input feeds every prompt, one answer
// per line.
func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()

	fa := &fakeAuth{}
	cat := &memCatalog{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	out := &bytes.Buffer{}

	a := &App{
		config:        &config.Config{OnlineCheckInterval: time.Millisecond},
		logger:        logging.Discard(),
		authService:   fa,
		categoryStore: cat,
		snipStore:     memSnips{cat},
		auth:          viewmodel.NewAuthModel(fa),
		categories:    viewmodel.NewCategoriesModel(cat),
		exportBase:    t.TempDir(),
		reader:        bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:           out,
	}
	return &testApp{App: a, authFake: fa, catalog: cat, out: out}
}

func (ta *testApp) signIn(t *testing.T) {
	t.Helper()
	ta.authFake.account = &models.Account{UserID: "u1", Email: "alice@example.org"}
	if err := ta.auth.Load(context.Background()); err != nil {
		t.Fatalf("load account: %v", err)
	}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
