package main

import (
	"github.com/spf13/cobra"
	"github.com/taigrr/tiny/internal/scene"
	"github.com/taigrr/tiny/internal/watch"
)

// sceneFlags override a mesh scene from the command line.
type sceneFlags struct {
	config string
	mesh   string
	output string
	mode   string
	fill   string
	light  string
	width  int
	height int
	scale  int
}

func (f *sceneFlags) register(cmd *cobra.Command, withMode bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "TOML scene file; flags override its values")
	fl.StringVarP(&f.mesh, "mesh", "m", "", "mesh file (.obj, .glb or .gltf)")
	fl.StringVarP(&f.output, "output", "o", "", "output image (.png, .webp or .tga)")
	fl.StringVar(&f.fill, "fill", "", "fill algorithm (scanline, barycentric, outline)")
	fl.StringVar(&f.light, "light", "", "light direction as x,y,z")
	fl.IntVar(&f.width, "width", 0, "image width in pixels")
	fl.IntVar(&f.height, "height", 0, "image height in pixels")
	fl.IntVar(&f.scale, "scale", 0, "enlarge the output by this integer factor")
	if withMode {
		fl.StringVar(&f.mode, "mode", "", "render mode (flat, wireframe)")
	}
}

// resolve layers the config file and the flags over base.
func (f *sceneFlags) resolve(base scene.Scene) (scene.Scene, error) {
	s := base
	if f.config != "" {
		var err error
		if s, err = scene.Load(f.config, base); err != nil {
			return s, err
		}
	}

	flags := scene.Flags{
		Width:  f.width,
		Height: f.height,
		Mesh:   f.mesh,
		Output: f.output,
		Mode:   f.mode,
		Fill:   f.fill,
		Scale:  f.scale,
	}
	if f.light != "" {
		light, err := scene.ParseLight(f.light)
		if err != nil {
			return s, err
		}
		flags.Light = &light
	}
	s.Resolve(flags)
	return s, s.Validate()
}

func (a *app) runScene(f *sceneFlags, base scene.Scene) error {
	s, err := f.resolve(base)
	if err != nil {
		return err
	}
	_, err = s.Run(a.logger)
	return err
}

func (a *app) newWireframeCmd() *cobra.Command {
	var f sceneFlags
	cmd := &cobra.Command{
		Use:   "wireframe",
		Short: "Draw every face of a mesh as three lines",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runScene(&f, scene.Wireframe())
		},
	}
	f.register(cmd, false)
	return cmd
}

func (a *app) newFlatCmd() *cobra.Command {
	var f sceneFlags
	cmd := &cobra.Command{
		Use:   "flat",
		Short: "Render a mesh with one gray per face",
		Long: "Render a mesh with flat shading: every face facing the light is " +
			"filled with a single gray, faces turned away are skipped.",
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runScene(&f, scene.Default())
		},
	}
	f.register(cmd, false)
	return cmd
}

func (a *app) newRenderCmd() *cobra.Command {
	var (
		f       sceneFlags
		watchIt bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene described by a TOML file",
		Example: `  tiny render --config scene.toml
  tiny render --config scene.toml --watch --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := f.resolve(scene.Default())
			if err != nil {
				return err
			}
			if _, err := s.Run(a.logger); err != nil {
				if !watchIt {
					return err
				}
				a.logger.Error("render failed", "err", err)
			}
			if !watchIt {
				return nil
			}

			paths := []string{s.Mesh}
			if f.config != "" {
				paths = append(paths, f.config)
			}
			w, err := watch.New(paths, a.logger)
			if err != nil {
				return err
			}
			defer w.Close()

			a.logger.Info("watching for changes", "paths", paths)
			return w.Run(cmd.Context(), func() error {
				return a.runScene(&f, scene.Default())
			})
		},
	}
	f.register(cmd, true)
	cmd.Flags().BoolVarP(&watchIt, "watch", "w", false, "render again whenever the scene or mesh changes")
	return cmd
}
