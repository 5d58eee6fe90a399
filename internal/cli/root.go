// Package cli implements the glossgraph command tree.
package cli

import (
	"fmt"
	"io/fs"

	"glossgraph/internal/config"
	"glossgraph/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.3.0"

// Assets are the files embedded in the binary
type Assets struct {
	Web  fs.FS // page served at / by the viewer, rooted at the page directory
	Seed fs.FS // default glossary imported into an empty catalog
}

// DefaultSeedPath is the seed file inside Assets.Seed
const DefaultSeedPath = "seed/glossary.yaml"

type app struct {
	assets Assets

	configPath string
	envFiles   []string
	logLevel   string
	sample     bool

	cfg *config.Config
	log *zap.Logger
}

// Execute runs the command line
func Execute(assets Assets) error {
	return NewRootCmd(assets).Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd(assets Assets) *cobra.Command {
	a := &app{assets: assets}

	root := &cobra.Command{
		Use:   "glossgraph",
		Short: "Interactive force-directed glossary graph",
		Long: Brand.Sprint("glossgraph") + " serves a glossary as a draggable term graph\n" +
			Subtle.Sprint("Run `glossgraph source` for the glossary and `glossgraph serve` for the viewer"),
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.SetVersionTemplate("glossgraph {{ .Version }}\n")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (yaml or toml)")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "Dotenv files to load before the config")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		serveCmd(a),
		sourceCmd(a),
		renderCmd(a),
		inspectCmd(a),
		exportCmd(a),
		configCmd(a),
	)

	return root
}

// setup loads dotenv files, the config and the logger
func (a *app) setup() error {
	if err := config.LoadDotEnv(a.envFiles...); err != nil {
		return err
	}

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.configPath != "" {
		cfg, path, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	if err := logger.Init(cfg.IsProduction(), cfg.Log.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg = cfg
	a.log = logger.Get()

	if path != "" {
		a.log.Debug("Loaded config", zap.String("path", path))
	}
	return nil
}
