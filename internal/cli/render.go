package cli

import (
	"context"

	"glossgraph/internal/controller"
	"glossgraph/internal/layout"
	"glossgraph/internal/render"
	"glossgraph/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// headless is a loaded graph with a settled layout and no event loop
type headless struct {
	store    *store.Store
	sim      *layout.Simulation
	ctrl     *controller.Controller
	renderer *render.Renderer
	ticks    int
}

// loadHeadless fetches the graph and runs the layout for at most ticks steps
func (a *app) loadHeadless(ctx context.Context, ticks int) (*headless, func(), error) {
	st, closeStore, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	if err := st.Load(ctx); err != nil {
		closeStore()
		return nil, nil, err
	}
	loc, err := a.locale()
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	palette := render.DefaultPalette()
	sim := layout.NewSimulation(st.Nodes(), st.Edges(), a.layoutOptions())
	h := &headless{
		store: st,
		sim:   sim,
		ctrl:  controller.New(st, sim, palette, loc, a.log),
		ticks: sim.Settle(ticks),
	}
	opts := sim.Options()
	h.renderer = render.New(st.Nodes(), st.Edges(), int(opts.Width), int(opts.Height), palette)
	return h, closeStore, nil
}

func renderCmd(a *app) *cobra.Command {
	var (
		out      string
		ticks    int
		selectID string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out the glossary and write it as SVG",
		Long: `Load the graph, run the force layout until it cools (or --ticks runs
out) and write the scene as SVG.

  glossgraph render --file glossary.yaml -o graph.svg
  glossgraph render --select 1 --search api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, closeStore, err := a.loadHeadless(cmd.Context(), ticks)
			if err != nil {
				return err
			}
			defer closeStore()

			if search != "" {
				h.ctrl.Search(search)
			}
			if selectID != "" {
				if err := h.ctrl.Click(selectID); err != nil {
					return err
				}
			}
			h.renderer.Recolor(h.ctrl.Fills())

			if err := writeOutput(cmd.OutOrStdout(), out, h.renderer.WriteSVG); err != nil {
				return err
			}

			nodes, edges := h.store.Counts()
			a.log.Info("Rendered graph",
				zap.Int("nodes", nodes),
				zap.Int("edges", edges),
				zap.Int("ticks", h.ticks),
				zap.Float64("alpha", h.sim.Alpha()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().IntVar(&ticks, "ticks", 300, "Maximum simulation ticks")
	cmd.Flags().StringVar(&selectID, "select", "", "Highlight a node as if clicked")
	cmd.Flags().StringVar(&search, "search", "", "Highlight nodes whose label contains this text")
	addStoreFlags(cmd, a)

	return cmd
}

// addStoreFlags lets a command pick the graph source
func addStoreFlags(cmd *cobra.Command, a *app) {
	var file, endpoint, catalog string
	cmd.Flags().StringVar(&file, "file", "", "Read the glossary from a JSON or YAML file")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Glossary graph endpoint")
	cmd.Flags().StringVar(&catalog, "catalog", "", "Read the glossary from a SQLite catalog")
	cmd.Flags().BoolVar(&a.sample, "sample", false, "Use the embedded sample glossary")

	prev := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if file != "" {
			a.cfg.Store.File = file
		}
		if endpoint != "" {
			a.cfg.Store.Endpoint = endpoint
		}
		if catalog != "" {
			a.cfg.Store.Catalog = catalog
		}
		if prev != nil {
			return prev(cmd, args)
		}
		return nil
	}
}
