// Package cmd provides the crabbysite command-line interface.
//
// Configuration is read with the following precedence (highest first):
//  1. command-line flags (--port, --features, ...)
//  2. CRABBYSITE_<SECTION>_<OPTION> environment variables
//  3. the config file: --config, CRABBYSITE_CONFIG_FILE, or .crabbysite.yml
//  4. built-in defaults
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crabby-lang/website/internal/assets"
	"github.com/crabby-lang/website/internal/components"
	"github.com/crabby-lang/website/internal/config"
	"github.com/crabby-lang/website/internal/logging"
)

// app carries state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  logging.Logger
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "crabbysite",
		Short: "Render and preview the Crabby homepage features",
		Long: `crabbysite renders the feature cards shown on the Crabby homepage
("Simplicity", "Efficiency", "Versatility") and serves a live preview.

Quick Start:
  crabbysite render               Print the features section HTML
  crabbysite render --page        Print a standalone preview page
  crabbysite features validate    Check a features file
  crabbysite serve                Start the preview server`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .crabbysite.yml, can also use CRABBYSITE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newFeaturesCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	used, err := config.Init(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc := cfg.LoggerConfig()
	lc.Output = cmd.ErrOrStderr()
	a.logger = logging.NewLogger(lc)

	if used != "" {
		a.logger.Debug(cmd.Context(), "Using config file", "path", used)
	}
	return nil
}

func (a *app) iconLoader() *assets.FSLoader {
	if a.cfg.Site.AssetsDir != "" {
		return assets.DirLoader(a.cfg.Site.AssetsDir)
	}
	return assets.Embedded()
}

func (a *app) renderer() *components.Renderer {
	return components.NewRenderer(
		components.WithIcons(a.iconLoader()),
		components.WithLogger(a.logger),
	)
}

// openOutput returns the destination for generated output: stdout when
// path is empty or "-", otherwise the named file.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
