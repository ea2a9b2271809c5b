package scene

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/raycast/internal/entity"
	"github.com/samdwyer/raycast/internal/geom"
	"github.com/samdwyer/raycast/internal/telemetry"
	"github.com/samdwyer/raycast/internal/world"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480

	// Displacements at or below this are treated as standing still.
	minStep = 1e-12
)

var (
	// ErrInvalidViewport is returned when a scene is created with a non-positive viewport.
	ErrInvalidViewport = errors.New("scene: viewport dimensions must be positive")
	// ErrFrameSize is returned when a frame buffer is not width*height*4 bytes.
	ErrFrameSize = errors.New("scene: frame buffer has wrong size")
)

// Options tunes the viewport, movement and shading of a scene.
type Options struct {
	Width  int // Output image width in pixels, one ray per column
	Height int // Output image height in pixels

	FOV          float64 // Horizontal field of view in radians
	RotateSpeed  float64 // Radians per second
	ForwardSpeed float64 // Tiles per second

	// Clearance is the gap kept between the player and a wall after moving.
	Clearance float64
	// ProbeDistance is how far ahead the movement ray looks for walls.
	ProbeDistance float64

	Palette       Palette
	ShowCrosshair bool

	// Attenuation enables distance falloff: light = clamp(Falloff/dist, MinLight, 1).
	// Off by default, in which case every wall is drawn at full light.
	Attenuation bool
	Falloff     float64
	MinLight    float64

	// Workers bounds the goroutines used per render phase. Zero means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the stock 640x480 view with a 60° field of view.
func DefaultOptions() Options {
	return Options{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		FOV:           60 * math.Pi / 180,
		RotateSpeed:   math.Pi,
		ForwardSpeed:  3.0,
		Clearance:     0.1,
		ProbeDistance: 1.0,
		Palette:       DefaultPalette(),
		ShowCrosshair: true,
		Falloff:       10.0,
		MinLight:      0.1,
	}
}

// Scene holds the map and the player and renders the player's view.
type Scene struct {
	grid   *world.Grid
	player *entity.Player
	opts   Options
	tracer trace.Tracer
}

// New creates a scene over grid with the player as the viewer.
func New(grid *world.Grid, player *entity.Player, opts Options) (*Scene, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, opts.Width, opts.Height)
	}
	if grid == nil || player == nil {
		return nil, errors.New("scene: grid and player are required")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	return &Scene{
		grid:   grid,
		player: player,
		opts:   opts,
		tracer: telemetry.Tracer("scene"),
	}, nil
}

// Grid returns the scene's map.
func (s *Scene) Grid() *world.Grid {
	return s.grid
}

// Player returns the viewer.
func (s *Scene) Player() *entity.Player {
	return s.player
}

// Size returns the output image dimensions in pixels.
func (s *Scene) Size() (width, height int) {
	return s.opts.Width, s.opts.Height
}

// Resize changes the output image dimensions. Frames passed to Render must
// match the new size afterwards.
func (s *Scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	s.opts.Width = width
	s.opts.Height = height
	return nil
}

// FrameLen returns the number of bytes Render expects.
func (s *Scene) FrameLen() int {
	return s.opts.Width * s.opts.Height * 4
}

// Update turns and moves the player for one frame of dt seconds. Movement is
// cut short in front of walls so the player keeps Clearance from them, and
// the final position is clamped to the map bounds.
func (s *Scene) Update(ctx context.Context, in Input, dt float64) {
	_, span := s.tracer.Start(ctx, "scene.update")
	defer span.End()

	rotation := axis(in, ActionTurnLeft, ActionTurnRight) * s.opts.RotateSpeed * dt
	posD := axis(in, ActionMoveForward, ActionMoveBackward) * s.opts.ForwardSpeed * dt

	s.player.Rotate(rotation)

	if math.Abs(posD) > minStep {
		step := s.allowedStep(posD)
		s.player.Advance(step)
		span.SetAttributes(
			attribute.Float64("move.intended", posD),
			attribute.Float64("move.allowed", step),
		)
	}

	s.player.ClampTo(float64(s.grid.Width), float64(s.grid.Height))
}

// allowedStep shortens a signed displacement along the facing direction so it
// stops Clearance short of the first wall within ProbeDistance.
func (s *Scene) allowedStep(posD float64) float64 {
	moveDir := s.player.Dir.Scale(posD).Normalize()
	hit, ok := s.grid.CastRay(s.player.Pos, moveDir, s.opts.ProbeDistance)
	if !ok {
		return posD
	}

	room := geom.Clamp(hit.Point.Sub(s.player.Pos).Len()-s.opts.Clearance, 0, s.opts.ProbeDistance)
	step := math.Min(math.Abs(posD), room)
	return math.Copysign(step, posD)
}
