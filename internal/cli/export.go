package cli

import (
	"io"

	"glossgraph/internal/codec"

	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	var (
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the normalized graph as JSON or YAML",
		Long: `Load and resolve the graph, then write it back as {nodes, edges} with
string ids. Dangling edges are dropped or rejected per store.dangling_edges.

  glossgraph export --endpoint http://localhost:5001/api/graph -o glossary.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codec.ForPath("export." + format)
			if err != nil {
				return err
			}
			if out != "" && out != "-" && !cmd.Flags().Changed("format") {
				if byExt, err := codec.ForPath(out); err == nil {
					c = byExt
				}
			}

			st, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			if err := st.Load(cmd.Context()); err != nil {
				return err
			}
			graph, err := st.Snapshot()
			if err != nil {
				return err
			}

			payload := graph.Payload()
			return writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return c.Export(payload, w)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml; defaults to the output extension")
	addStoreFlags(cmd, a)

	return cmd
}
