package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"solar-system-scene/engine/headless"
	"solar-system-scene/frame"
	"solar-system-scene/motion"
	"solar-system-scene/scene"
)

// ValidFormats defines the allowed snapshot output formats.
var ValidFormats = []string{"yaml", "json"}

// SnapshotOptions holds flags for the snapshot command.
type SnapshotOptions struct {
	*RootOptions
	Time   float64
	Frames int
	Format string
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print body positions at a given time",
		Long: `Run the scene without a window and print every body's position and
rotation.

The scene is stepped --frames times at evenly spaced times ending at --t
milliseconds. Positions depend only on --t; rotations grow with the number
of frames. With --frames 0 only positions are computed.

Example:
  solarsystem snapshot --t 1000
  solarsystem snapshot --t 60000 --frames 3600 --format json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Float64Var(&opts.Time, "t", 0, "time in milliseconds")
	cmd.Flags().IntVar(&opts.Frames, "frames", 1, "number of frames to step")
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "output format (yaml|json)")

	return cmd
}

func runSnapshot(opts *SnapshotOptions, w io.Writer) error {
	if !isValidFormat(opts.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	if opts.Frames == 0 {
		snap, err := motion.At(cfg.Bodies, cfg.Motion.SpeedMultiplier, opts.Time)
		if err != nil {
			return err
		}
		return writeSnapshot(w, snap, opts.Format)
	}

	st, err := scene.NewComposer(headless.New(), cfg).Compose(1280, 720)
	if err != nil {
		return fmt.Errorf("compose scene: %w", err)
	}
	times := make([]float64, opts.Frames)
	for i := range times {
		times[i] = opts.Time * float64(i+1) / float64(opts.Frames)
	}
	driver := frame.NewDriver(st, frame.NewManualScheduler(times...),
		frame.WithLogger(opts.logger(io.Discard)),
	)
	if err := driver.Run(context.Background()); err != nil {
		return err
	}

	return writeSnapshot(w, driver.Snapshot(), opts.Format)
}

func writeSnapshot(w io.Writer, snap *motion.Snapshot, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
