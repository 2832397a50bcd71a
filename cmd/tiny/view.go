package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/tiny/internal/scene"
	"github.com/taigrr/tiny/pkg/math3d"
	"github.com/taigrr/tiny/pkg/models"
	"github.com/taigrr/tiny/pkg/render"
)

const (
	torqueStrength = 3.0
	minZoom        = 0.2
	maxZoom        = 3.0
)

type viewFlags struct {
	mesh  string
	fps   int
	fill  string
	light string
	bg    string
	color string
	flip  bool
}

// viewer is the interactive state of the view command.
type viewer struct {
	rotation  *RotationState
	torque    struct{ pitch, yaw, roll float64 }
	zoom      float64
	wireframe bool
	fill      render.FillMode
	light     math3d.Vec3

	// Light positioning: the mouse moves a pending light until clicked.
	lightMode    bool
	pendingLight math3d.Vec3

	mouseDown  bool
	lastMouseX int
	lastMouseY int
}

func (a *app) newViewCmd() *cobra.Command {
	f := viewFlags{fps: 30, fill: "scanline", light: "0,0,-1", bg: "#1e1e28", color: "#00ff80"}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Spin a flat-shaded mesh in the terminal",
		Long: `Render a mesh into the terminal with half blocks, two pixels per cell.

Controls:
  w/a/s/d, arrows  rotate
  q/e              roll
  mouse drag       rotate
  space            random spin
  +/-, wheel       zoom
  x                toggle wireframe
  f                cycle fill algorithm
  l                position the light with the mouse, click to set
  r                reset
  esc, ctrl+c      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd.Context(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.mesh, "mesh", "m", scene.Default().Mesh, "mesh file (.obj, .glb or .gltf)")
	fl.IntVar(&f.fps, "fps", f.fps, "target frames per second")
	fl.StringVar(&f.fill, "fill", f.fill, "fill algorithm (scanline, barycentric, outline)")
	fl.StringVar(&f.light, "light", f.light, "light direction as x,y,z")
	fl.StringVar(&f.bg, "bg", f.bg, "background color")
	fl.StringVar(&f.color, "wire-color", f.color, "wireframe color")
	fl.BoolVar(&f.flip, "flip-winding", false, "reverse the vertex order of glTF faces")
	return cmd
}

func (a *app) view(ctx context.Context, f viewFlags) error {
	if f.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", f.fps)
	}
	fill, ok := render.ParseFillMode(f.fill)
	if !ok {
		return fmt.Errorf("%w: unknown fill %q", scene.ErrInvalidScene, f.fill)
	}
	light, err := scene.ParseLight(f.light)
	if err != nil {
		return err
	}
	bg, err := scene.ParseColor(f.bg)
	if err != nil {
		return err
	}
	wireColor, err := scene.ParseColor(f.color)
	if err != nil {
		return err
	}

	loaded, err := scene.LoadMesh(f.mesh, f.flip, a.logger)
	if err != nil {
		return err
	}
	mesh := loaded.Clone()
	mesh.Fit()

	v := &viewer{
		rotation: NewRotationState(f.fps),
		zoom:     0.9,
		fill:     fill,
		light:    math3d.V3(light[0], light[1], light[2]),
	}
	return v.run(ctx, mesh, f.fps, bg, wireColor)
}

func (v *viewer) run(ctx context.Context, mesh *models.Mesh, fps int, bg, wireColor render.Color) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fb := render.NewFramebuffer(termRenderer.FramebufferSize())
	rasterizer := render.NewRenderer(fb)

	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()
	events := term.Events()

	for {
		// Drain input between frames so state is only touched here.
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if resize, ok := ev.(uv.WindowSizeEvent); ok {
					width, height = resize.Width, resize.Height
					term.Erase()
					term.Resize(width, height)
					termRenderer.Resize(width, height)
					fb = render.NewFramebuffer(termRenderer.FramebufferSize())
					rasterizer = render.NewRenderer(fb)
					continue
				}
				if v.handle(ev, width, height) {
					return nil
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		// Key release events are unreliable, so held torque fades out.
		v.rotation.ApplyImpulse(v.torque.pitch*dt, v.torque.yaw*dt, v.torque.roll*dt)
		v.torque.pitch *= 0.9
		v.torque.yaw *= 0.9
		v.torque.roll *= 0.9
		v.rotation.Update()

		transform := viewTransform(v.rotation.Matrix(), v.zoom, fb.Width, fb.Height)

		fb.Clear(bg)
		rasterizer.ResetStats()
		if v.wireframe {
			rasterizer.DrawMeshWireframe(mesh, transform, wireColor)
		} else {
			rasterizer.Fill = v.fill
			rasterizer.DrawMeshFlat(mesh, transform, v.currentLight())
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

func (v *viewer) currentLight() math3d.Vec3 {
	if v.lightMode {
		return v.pendingLight
	}
	return v.light
}

// handle applies one input event and reports whether the viewer should quit.
func (v *viewer) handle(ev uv.Event, width, height int) bool {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape"):
			if !v.lightMode {
				return true
			}
			v.lightMode = false
		case ev.MatchString("ctrl+c"):
			return true
		case ev.MatchString("w", "up"):
			v.torque.pitch = -torqueStrength
		case ev.MatchString("s", "down"):
			v.torque.pitch = torqueStrength
		case ev.MatchString("a", "left"):
			v.torque.yaw = -torqueStrength
		case ev.MatchString("d", "right"):
			v.torque.yaw = torqueStrength
		case ev.MatchString("q"):
			v.torque.roll = -torqueStrength
		case ev.MatchString("e"):
			v.torque.roll = torqueStrength
		case ev.MatchString("space"):
			v.rotation.ApplyImpulse(
				(rand.Float64()-0.5)*1.5,
				(rand.Float64()-0.5)*1.5,
				(rand.Float64()-0.5)*1.5,
			)
		case ev.MatchString("+", "="):
			v.zoomBy(0.1)
		case ev.MatchString("-", "_"):
			v.zoomBy(-0.1)
		case ev.MatchString("x"):
			v.wireframe = !v.wireframe
		case ev.MatchString("f"):
			v.fill = (v.fill + 1) % (render.FillOutline + 1)
		case ev.MatchString("l"):
			v.lightMode = true
			v.pendingLight = v.light
		case ev.MatchString("r"):
			v.rotation.Reset()
			v.torque.pitch, v.torque.yaw, v.torque.roll = 0, 0, 0
			v.zoom = 0.9
		}

	case uv.KeyReleaseEvent:
		switch {
		case ev.MatchString("w", "up", "s", "down"):
			v.torque.pitch = 0
		case ev.MatchString("a", "left", "d", "right"):
			v.torque.yaw = 0
		case ev.MatchString("q", "e"):
			v.torque.roll = 0
		}

	case uv.MouseClickEvent:
		if v.lightMode {
			v.light = v.pendingLight
			v.lightMode = false
		} else {
			v.mouseDown = true
			v.lastMouseX, v.lastMouseY = ev.X, ev.Y
		}

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.lightMode {
			v.pendingLight = ScreenToLightDir(ev.X, ev.Y, width, height)
		} else if v.mouseDown {
			dx := ev.X - v.lastMouseX
			dy := ev.Y - v.lastMouseY
			v.rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
			v.lastMouseX, v.lastMouseY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.zoomBy(0.1)
		case uv.MouseWheelDown:
			v.zoomBy(-0.1)
		}
	}
	return false
}

func (v *viewer) zoomBy(d float64) {
	v.zoom = min(maxZoom, max(minZoom, v.zoom+d))
}
