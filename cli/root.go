package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"solar-system-scene/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config  string
	Assets  string
	Verbose bool
}

// NewRootCommand creates the root command for the solarsystem CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "solarsystem",
		Short: "Animated 3D solar system",
		Long: `An animated 3D solar system: a sun and eight planets orbiting and
spinning inside a star skybox, with orbit rings, an orbiting camera and
background music.

The scene can be opened in a window, served over HTTP, or sampled at a
given time.`,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&opts.Assets, "assets", "", "assets directory (overrides the config file)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewViewCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSnapshotCommand(opts))

	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return nil, err
	}
	if o.Assets != "" {
		cfg.Assets = o.Assets
	}
	return cfg, nil
}

// logger returns a text logger on w, at debug level with --verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}
