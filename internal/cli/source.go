package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"glossgraph/internal/handler"
	"glossgraph/internal/loader"
	"glossgraph/internal/metrics"
	"glossgraph/internal/repository"
	"glossgraph/internal/repository/sqlite"
	"glossgraph/internal/watcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func sourceCmd(a *app) *cobra.Command {
	var (
		addr    string
		seed    string
		db      string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "source",
		Short: "Serve a glossary as the graph endpoint",
		Long: `Store a glossary in SQLite and serve it at /api/graph and /api/terms.

The seed file is imported on start and again whenever it changes. With no
seed, an empty catalog gets the built-in sample glossary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Source.Addr = addr
			}
			if seed != "" {
				a.cfg.Source.Seed = seed
			}
			if db != "" {
				a.cfg.Source.Database = db
			}
			if noWatch {
				a.cfg.Source.Watch = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.source(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :5001)")
	cmd.Flags().StringVar(&seed, "seed", "", "Glossary seed file (JSON or YAML)")
	cmd.Flags().StringVar(&db, "db", "", "SQLite database path, or :memory:")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not re-import the seed file on change")

	return cmd
}

func (a *app) source(ctx context.Context) error {
	repo, err := sqlite.New(a.cfg.Source.Database)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer repo.Close()

	if err := a.seedCatalog(ctx, repo); err != nil {
		return err
	}

	collector := metrics.NewCollector("glossgraph_source")
	router := handler.NewSourceRouter(handler.NewSourceHandler(repo, a.log), collector, collector.Handler(), a.log)
	server := newServer(a.cfg.Source.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	if path := a.cfg.Source.Seed; path != "" && a.cfg.Source.Watch {
		w := watcher.New(path, func() {
			a.importSeed(gctx, repo, path)
		}, a.log)
		g.Go(func() error {
			if err := w.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Warn("Seed watching stopped", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		a.log.Info("Glossary source listening",
			zap.String("addr", server.Addr),
			zap.String("database", a.cfg.Source.Database))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("source server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// seedCatalog imports the configured seed, or the built-in sample into an
// empty catalog
func (a *app) seedCatalog(ctx context.Context, repo *sqlite.Repository) error {
	if path := a.cfg.Source.Seed; path != "" {
		if !a.importSeed(ctx, repo, path) {
			return fmt.Errorf("import seed %s failed", path)
		}
		return nil
	}

	count, err := repo.CountTerms(ctx)
	if err != nil {
		return err
	}
	if count > 0 || a.assets.Seed == nil {
		return nil
	}

	terms, err := loader.LoadTermsFS(a.assets.Seed, DefaultSeedPath)
	if err != nil {
		return err
	}
	result, err := repo.ImportTerms(ctx, terms, repository.ImportReplace)
	if err != nil {
		return err
	}
	a.log.Info("Imported sample glossary", zap.Int("terms", result.TermsCreated), zap.Int("links", result.Links))
	return nil
}

func (a *app) importSeed(ctx context.Context, repo *sqlite.Repository, path string) bool {
	strategy := repository.ImportStrategy(a.cfg.Source.Import)
	result, err := loader.Seed(ctx, repo, path, strategy)
	if err != nil {
		a.log.Error("Seed import failed", zap.String("path", path), zap.Error(err))
		return false
	}
	a.log.Info("Imported seed",
		zap.String("path", path),
		zap.String("strategy", string(result.Strategy)),
		zap.Int("created", result.TermsCreated),
		zap.Int("updated", result.TermsUpdated),
		zap.Int("links", result.Links))
	return true
}
