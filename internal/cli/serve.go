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
	"glossgraph/internal/hub"
	"glossgraph/internal/metrics"
	"glossgraph/internal/service"
	"glossgraph/internal/watcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive glossary viewer",
		Long: `Fetch the glossary graph, run the force layout and serve the page.

  glossgraph serve                                  # fetch from store.endpoint
  glossgraph serve --file glossary.yaml             # read a local file, reload on change
  glossgraph serve --endpoint http://host:5001/api/graph
  glossgraph serve --sample                         # embedded sample glossary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :3000)")
	addStoreFlags(cmd, a)

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	st, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	opts, err := a.sessionOptions()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector("glossgraph")
	bus := service.NewEventBus()
	session := service.NewSession(st, bus, collector, opts, a.log)

	sse := hub.New(a.log)
	sse.OnClientCount(collector.SetClients)
	events := make(chan service.Event, 256)
	bus.Subscribe(events)

	if a.assets.Web == nil {
		return errors.New("no embedded web assets")
	}
	router := handler.NewViewerRouter(handler.NewViewerHandler(session, a.log).WithClients(sse), handler.ViewerRoutes{
		Events:      sse,
		Metrics:     collector.Handler(),
		Recorder:    collector,
		Static:      a.assets.Web,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, a.log)
	server := newServer(a.cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := session.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sse.Run(gctx)
		return nil
	})
	g.Go(func() error {
		hub.Forward(gctx, sse, events)
		return nil
	})

	if path := a.cfg.Store.File; path != "" && !a.sample && a.cfg.Source.Watch {
		w := watcher.New(path, func() {
			a.log.Info("Glossary file changed, reloading", zap.String("path", path))
			if err := session.Reload(gctx); err != nil {
				a.log.Warn("Reload failed; keeping previous graph", zap.Error(err))
			}
		}, a.log)
		g.Go(func() error {
			if err := w.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Warn("File watching stopped", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		a.log.Info("Viewer listening",
			zap.String("addr", server.Addr),
			zap.String("source", st.Source().Describe()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("viewer server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("Shutting down viewer")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
