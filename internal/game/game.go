package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/raycast/internal/gamedata"
	"github.com/samdwyer/raycast/internal/scene"
	"github.com/samdwyer/raycast/internal/telemetry"
	"github.com/samdwyer/raycast/internal/ui"
)

// Game drives a scene in the terminal: it polls keys, paces frames and
// presents each rendered frame as half-block cells.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	scene    *scene.Scene
	keys     *heldKeys
	frame    []byte
	state    State
	running  bool
}

// New creates a new terminal driver.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		keys:     newHeldKeys(cfg.KeyHold),
		state:    StateRunning,
		running:  true,
	}, nil
}

// Run executes the frame loop until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.init(ctx); err != nil {
		return err
	}

	// PollEvent blocks, so it gets its own goroutine; it returns nil once
	// the screen is closed.
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.FPS))
	defer ticker.Stop()
	last := time.Now()

	// Main frame loop
	for g.running {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			g.handleEvent(ev)
		case now := <-ticker.C:
			dt := frameDelta(now.Sub(last), g.cfg.MaxDelta)
			last = now
			if err := g.step(ctx, dt); err != nil {
				return err
			}
		}
	}
	return nil
}

// init loads the configured scene sized to the terminal (traced).
func (g *Game) init(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	defer initSpan.End()

	def, err := gamedata.LoadScene(g.cfg.Scene)
	if err != nil {
		return err
	}

	width, height := g.renderer.ViewSize()
	g.scene, err = BuildScene(def, width, height)
	if err != nil {
		return fmt.Errorf("build scene %s: %w", g.cfg.Scene, err)
	}
	g.frame = make([]byte, g.scene.FrameLen())

	initSpan.SetAttributes(
		attribute.String("game.backend", string(BackendTerminal)),
		attribute.String("scene.name", def.Name),
		attribute.Int("map.width", def.Map.Width),
		attribute.Int("map.height", def.Map.Height),
		attribute.Int("view.width", width),
		attribute.Int("view.height", height),
	)
	return nil
}

// step advances and draws one frame.
func (g *Game) step(ctx context.Context, dt float64) error {
	if g.state == StateRunning {
		g.scene.Update(ctx, g.keys, dt)
	}

	if err := g.scene.Render(ctx, g.frame); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	width, height := g.scene.Size()
	g.renderer.Present(g.frame, width, height)
	g.renderer.RenderMessage(g.status(), height/2)
	g.renderer.Show()
	return nil
}

// status returns the text for the line below the view.
func (g *Game) status() string {
	p := g.scene.Player()
	return fmt.Sprintf(" %s | pos %.2f,%.2f dir %+.2f,%+.2f | arrows/WASD move, p pause, q quit",
		g.state, p.Pos.X, p.Pos.Y, p.Dir.X, p.Dir.Y)
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventResize:
		g.renderer.Resize()
		g.resize()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
			return
		case 'p', 'P':
			g.state = g.state.Toggle()
			g.keys.Reset()
			return
		}
	}

	if a, ok := terminalAction(ev); ok {
		g.keys.Press(a)
	}
}

// resize matches the scene's viewport to the terminal.
func (g *Game) resize() {
	width, height := g.renderer.ViewSize()
	if w, h := g.scene.Size(); w == width && h == height {
		return
	}
	if err := g.scene.Resize(width, height); err != nil {
		return
	}
	g.frame = make([]byte, g.scene.FrameLen())
}
