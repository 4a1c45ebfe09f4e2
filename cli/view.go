package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"solar-system-scene/gui"
	"solar-system-scene/metrics"
)

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the scene in a window",
		Long: `Open the animated scene in a window.

Drag to orbit the camera and scroll to zoom. If the background music cannot
start right away, a prompt asks for a click anywhere in the window.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			log := rootOpts.logger(cmd.ErrOrStderr())
			return gui.Run(cmd.Context(), cfg, metrics.NewCollector(prometheus.NewRegistry()), log)
		},
	}

	return cmd
}
