package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/client/viewmodel"
	"github.com/dmitrijs2005/savvysnip/internal/filex"
	"github.com/dmitrijs2005/savvysnip/internal/netx"
)

// getMultiline is swapped in tests like getSimpleText.
var getMultiline = GetMultiline

// openSnips loads the snips of the named category, newest first.
func (a *App) openSnips(ctx context.Context, name string) (*viewmodel.SnipsModel, error) {
	c, err := a.findCategory(ctx, name)
	if err != nil {
		return nil, err
	}

	m := viewmodel.NewSnipsModel(a.snipStore, *c)
	if err := m.Load(ctx); err != nil {
		return nil, a.report(m, err)
	}
	return m, nil
}

func (a *App) printSnips(m *viewmodel.SnipsModel) {
	list := m.Snips()
	if len(list) == 0 {
		fmt.Fprintf(a.out, "No snips in %s\n", m.Category().Name)
		return
	}
	for i, s := range list {
		fmt.Fprintf(a.out, "%3d. %s  [%s]\n", i+1, s.Title, s.Timestamp.Local().Format(time.DateTime))
		for _, line := range strings.Split(s.Code, "\n") {
			fmt.Fprintf(a.out, "       %s\n", line)
		}
	}
}

func (a *App) ListSnips(ctx context.Context, category string) error {
	m, err := a.openSnips(ctx, category)
	if err != nil {
		return err
	}
	a.printSnips(m)
	return nil
}

func (a *App) AddSnip(ctx context.Context, category string) error {
	m, err := a.openSnips(ctx, category)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	code, err := getMultiline(a.reader, "Code", a.out)
	if err != nil {
		return err
	}

	if err := m.Create(ctx, title, code); err != nil {
		return a.report(m, err)
	}
	a.printSnips(m)
	return nil
}

// pickSnip asks for a 1-based position in the printed list.
func (a *App) pickSnip(m *viewmodel.SnipsModel) (*models.Snip, error) {
	a.printSnips(m)
	list := m.Snips()
	if len(list) == 0 {
		return nil, errUsage
	}

	answer, err := getSimpleText(a.reader, "Snip number", a.out)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(list) {
		fmt.Fprintln(a.out, "No such snip")
		return nil, errUsage
	}
	return &list[n-1], nil
}

// EditSnip replaces title and code of a chosen snip. Empty answers keep the
// current values.
func (a *App) EditSnip(ctx context.Context, category string) error {
	m, err := a.openSnips(ctx, category)
	if err != nil {
		return err
	}
	s, err := a.pickSnip(m)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", s.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = s.Title
	}
	code, err := getMultiline(a.reader, "Code (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if code == "" {
		code = s.Code
	}

	if err := m.Update(ctx, *s, title, code); err != nil {
		return a.report(m, err)
	}
	a.printSnips(m)
	return nil
}

func (a *App) DeleteSnip(ctx context.Context, category string) error {
	m, err := a.openSnips(ctx, category)
	if err != nil {
		return err
	}
	s, err := a.pickSnip(m)
	if err != nil {
		return err
	}

	if err := m.Delete(ctx, *s); err != nil {
		return a.report(m, err)
	}
	a.printSnips(m)
	return nil
}

// Export asks the server for a JSON export of the category and downloads it
// into the exports directory.
func (a *App) Export(ctx context.Context, category string) error {
	c, err := a.findCategory(ctx, category)
	if err != nil {
		return err
	}

	m := viewmodel.NewSnipsModel(a.snipStore, *c)
	e, err := m.Export(ctx)
	if err != nil {
		return a.report(m, err)
	}

	dir, err := filex.EnsureSubDir(a.exportBase, exportsDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filex.ExportFileName(c.Name, time.Now()))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = netx.DownloadPresignedURL(ctx, a.httpClient, e.URL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		fmt.Fprintf(a.out, "Download failed, the export stays available until %s:\n%s\n",
			e.ExpiresAt.Local().Format(time.DateTime), e.URL)
		return err
	}

	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}
