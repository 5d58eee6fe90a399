package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"glossgraph/internal/controller"
	"glossgraph/internal/domain"
	"glossgraph/internal/layout"
	"glossgraph/internal/loader"
	"glossgraph/internal/render"
	"glossgraph/internal/repository/sqlite"
	"glossgraph/internal/service"
	"glossgraph/internal/store"
)

// openStore builds the store described by the config. The returned close
// func releases a catalog database when one was opened.
func (a *app) openStore() (*store.Store, func(), error) {
	policy, err := store.ParseDanglingPolicy(a.cfg.Store.DanglingEdges)
	if err != nil {
		return nil, nil, err
	}

	sc := a.cfg.Store
	closer := func() {}
	var src store.Source

	switch {
	case a.sample:
		if a.assets.Seed == nil {
			return nil, nil, fmt.Errorf("no embedded sample glossary")
		}
		terms, err := loader.LoadTermsFS(a.assets.Seed, DefaultSeedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load sample glossary: %w", err)
		}
		src = store.StaticSource{Name: "sample " + DefaultSeedPath, Payload: domain.PayloadFromTerms(terms)}
	case sc.File != "":
		src = store.NewFileSource(sc.File)
	case sc.Catalog != "":
		repo, err := sqlite.New(sc.Catalog)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: %w", err)
		}
		closer = func() { repo.Close() }
		src = store.NewCatalogSource(repo, sc.Catalog)
	default:
		src = store.NewHTTPSource(sc.Endpoint, store.HTTPOptions{
			Timeout: sc.Timeout.Duration(),
			Retries: sc.Retries,
			Backoff: sc.Backoff.Duration(),
		}, a.log)
	}

	return store.New(src, policy, a.log), closer, nil
}

func (a *app) layoutOptions() layout.Options {
	lc := a.cfg.Layout
	return layout.Options{
		Width:          lc.Width,
		Height:         lc.Height,
		LinkDistance:   lc.LinkDistance,
		ChargeStrength: lc.ChargeStrength,
		CollideRadius:  lc.CollideRadius,
	}
}

func (a *app) locale() (controller.Locale, error) {
	return controller.LocaleFor(a.cfg.View.Locale)
}

func (a *app) sessionOptions() (service.Options, error) {
	loc, err := a.locale()
	if err != nil {
		return service.Options{}, err
	}
	return service.Options{
		TickInterval: a.cfg.Layout.TickInterval.Duration(),
		LoadTimeout:  loadBudget(a.cfg.Store.Timeout.Duration(), a.cfg.Store.Backoff.Duration(), a.cfg.Store.Retries),
		Layout:       a.layoutOptions(),
		Palette:      render.DefaultPalette(),
		Locale:       loc,
	}, nil
}

// newServer applies the timeouts both servers share. There is no write
// timeout since /events streams for as long as the page is open.
func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// loadBudget covers every attempt plus the doubling backoff between them
func loadBudget(timeout, backoff time.Duration, retries int) time.Duration {
	total := timeout * time.Duration(retries+1)
	for i := 0; i < retries; i++ {
		total += backoff
		backoff *= 2
	}
	return total
}

// createFile opens an output file; tests swap it to observe close failures
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeOutput runs write against stdout for "" or "-" and against a new file
// at path otherwise. A failed close is returned since it can mean the file
// was truncated.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(stdout)
	}

	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
