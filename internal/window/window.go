// Package window runs a scene in a desktop window through ebiten.
package window

import (
	"context"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/raycast/internal/game"
	"github.com/samdwyer/raycast/internal/gamedata"
	"github.com/samdwyer/raycast/internal/scene"
	"github.com/samdwyer/raycast/internal/telemetry"
)

// windowTitle is shown in the desktop window's title bar.
const windowTitle = "Raycast Renderer"

// Window drives a scene in a desktop window. ebiten owns the event loop and
// frame pacing; Window supplies update and draw.
type Window struct {
	ctx   context.Context
	scene *scene.Scene
	frame []byte
	state game.State
}

// Run opens a window and runs the scene until it is closed or Escape is pressed.
func Run(ctx context.Context, cfg game.Config) error {
	w, err := newWindow(ctx, cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	log.Printf("Opening %dx%d window at %d FPS", cfg.Width, cfg.Height, cfg.FPS)
	return ebiten.RunGame(w)
}

func newWindow(ctx context.Context, cfg game.Config) (*Window, error) {
	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	defer initSpan.End()

	def, err := gamedata.LoadScene(cfg.Scene)
	if err != nil {
		return nil, err
	}
	s, err := game.BuildScene(def, cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", cfg.Scene, err)
	}

	initSpan.SetAttributes(
		attribute.String("game.backend", string(game.BackendWindow)),
		attribute.String("scene.name", def.Name),
		attribute.Int("view.width", cfg.Width),
		attribute.Int("view.height", cfg.Height),
	)

	return &Window{
		ctx:   ctx,
		scene: s,
		frame: make([]byte, s.FrameLen()),
		state: game.StateRunning,
	}, nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if err := w.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.state = w.state.Toggle()
	}

	if w.state == game.StateRunning {
		// ebiten calls Update at a fixed rate, so dt is one tick.
		w.scene.Update(w.ctx, windowInput{}, 1/float64(ebiten.TPS()))
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if err := w.scene.Render(w.ctx, w.frame); err != nil {
		log.Printf("Render failed: %v", err)
		return
	}
	screen.WritePixels(w.frame)
}

// Layout implements ebiten.Game. The render resolution is fixed; ebiten
// scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.scene.Size()
}

// bindings maps each action to the keys that hold it.
var bindings = map[scene.Action][]ebiten.Key{
	scene.ActionTurnLeft:     {ebiten.KeyLeft, ebiten.KeyA},
	scene.ActionTurnRight:    {ebiten.KeyRight, ebiten.KeyD},
	scene.ActionMoveForward:  {ebiten.KeyUp, ebiten.KeyW},
	scene.ActionMoveBackward: {ebiten.KeyDown, ebiten.KeyS},
}

// windowInput reads held keys straight from ebiten.
type windowInput struct{}

// Held implements scene.Input.
func (windowInput) Held(a scene.Action) bool {
	for _, k := range bindings[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
