// tiny - a small software rasterizer, one lesson at a time.
//
// Each subcommand renders one fixed scene and writes it to an image file:
//
//	pixels     - two pixels
//	lines      - Bresenham lines
//	triangles  - filled triangles (scanline, barycentric or outline)
//	wireframe  - a mesh drawn as edges
//	flat       - a flat-shaded mesh
//	render     - a mesh scene from a TOML file, optionally re-rendered on change
//	view       - a mesh spinning in the terminal
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// app holds state shared by every subcommand.
type app struct {
	logLevel string
	logger   *log.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tiny",
		Short: "A tutorial software rasterizer",
		Long: "tiny paints lines, triangles and flat-shaded meshes into an image " +
			"with nothing but integer arithmetic and a few dot products.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.newPixelsCmd(),
		a.newLinesCmd(),
		a.newTrianglesCmd(),
		a.newWireframeCmd(),
		a.newFlatCmd(),
		a.newRenderCmd(),
		a.newViewCmd(),
	)
	return root
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "tiny",
	})
	l.SetLevel(lvl)
	return l, nil
}
