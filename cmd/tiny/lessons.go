package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/tiny/internal/lessons"
	"github.com/taigrr/tiny/internal/scene"
	"github.com/taigrr/tiny/pkg/render"
)

// outputFlags are the flags of every image-writing command.
type outputFlags struct {
	output string
	scale  int
}

func (o *outputFlags) register(cmd *cobra.Command, defaultOutput string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", defaultOutput, "output image (.png, .webp or .tga)")
	cmd.Flags().IntVar(&o.scale, "scale", 1, "enlarge the output by this integer factor")
}

// write flips, scales and saves a lesson framebuffer.
func (a *app) write(fb *render.Framebuffer, o outputFlags) error {
	if o.scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1, got %d", scene.ErrInvalidScene, o.scale)
	}
	if err := scene.Export(fb, o.output, o.scale); err != nil {
		return err
	}
	a.logger.Info("wrote image", "output", o.output, "width", fb.Width*o.scale, "height", fb.Height*o.scale)
	return nil
}

func (a *app) newPixelsCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "pixels",
		Short: "Set two pixels",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fb := lessons.Pixels()
			a.logger.Debug("pixel", "x", 10, "y", 10, "color", fb.GetPixel(10, 10))
			return a.write(fb, out)
		},
	}
	out.register(cmd, "lesson0.png")
	return cmd
}

func (a *app) newLinesCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Draw three lines with Bresenham's algorithm",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.write(lessons.Lines(), out)
		},
	}
	out.register(cmd, "lesson1.png")
	return cmd
}

func (a *app) newTrianglesCmd() *cobra.Command {
	var (
		out  outputFlags
		fill string
	)
	cmd := &cobra.Command{
		Use:   "triangles",
		Short: "Fill the three tutorial triangles",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			mode, ok := render.ParseFillMode(fill)
			if !ok {
				return fmt.Errorf("%w: unknown fill %q", scene.ErrInvalidScene, fill)
			}
			a.logger.Debug("filling triangles", "fill", mode)
			return a.write(lessons.Triangles(mode), out)
		},
	}
	out.register(cmd, "triangles.png")
	cmd.Flags().StringVar(&fill, "fill", render.FillScanline.String(), "fill algorithm (scanline, barycentric, outline)")
	return cmd
}
