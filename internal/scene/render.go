package scene

import (
	"context"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/raycast/internal/geom"
)

// Render draws the player's view into frame, a row-major RGBA8 buffer of
// exactly FrameLen bytes. Rays are cast for every column first; only then is
// every pixel shaded from the finished column table.
func (s *Scene) Render(ctx context.Context, frame []byte) error {
	if len(frame) != s.FrameLen() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(frame), s.FrameLen())
	}

	_, span := s.tracer.Start(ctx, "scene.render")
	defer span.End()

	columns := s.castColumns()
	s.shade(columns, frame)

	// Hashing the frame costs a full pass; skip it when nobody records.
	if span.IsRecording() {
		span.SetAttributes(renderAttributes(s.opts, columns, frame)...)
	}
	return nil
}

func renderAttributes(opts Options, columns []Column, frame []byte) []attribute.KeyValue {
	hits := 0
	for _, c := range columns {
		if c.Wall {
			hits++
		}
	}
	return []attribute.KeyValue{
		attribute.Int("render.width", opts.Width),
		attribute.Int("render.height", opts.Height),
		attribute.Int("render.wall_columns", hits),
		attribute.String("render.checksum", fmt.Sprintf("%016x", Checksum(frame))),
	}
}

// Columns casts one ray per screen column and returns the projected wall
// spans. Render uses the same table; it is exported for inspection.
func (s *Scene) Columns() []Column {
	return s.castColumns()
}

// Checksum returns a fast 64-bit digest of a frame buffer.
func Checksum(frame []byte) uint64 {
	return xxhash.Sum64(frame)
}

func (s *Scene) castColumns() []Column {
	width := s.opts.Width
	columns := make([]Column, width)

	pos, dir := s.player.Pos, s.player.Dir
	midX := float64(width / 2)
	viewDist := midX / math.Tan(s.opts.FOV/2)

	forEachBand(width, s.opts.Workers, func(lo, hi int) {
		for x := lo; x < hi; x++ {
			screenX := float64(x) - midX
			angle := math.Atan2(viewDist, screenX) - math.Pi/2
			ray := dir.Rotate(angle).Normalize()

			hit, ok := s.grid.CastRay(pos, ray, math.Inf(1))
			if !ok {
				columns[x] = NoWall
				continue
			}
			columns[x] = Column{
				Span:  ComputeSpan(pos, dir, hit.Point, s.opts.Height),
				Light: s.light(hit.Light, hit.Point.Sub(pos)),
				Wall:  true,
			}
		}
	})
	return columns
}

// light applies distance falloff to a hit's base light when enabled.
func (s *Scene) light(base float64, diff geom.Vec2) float64 {
	if !s.opts.Attenuation {
		return base
	}
	dist := diff.Len()
	if dist == 0 {
		return base
	}
	return base * geom.Clamp(s.opts.Falloff/dist, s.opts.MinLight, 1)
}

func (s *Scene) shade(columns []Column, frame []byte) {
	width := s.opts.Width
	midY := s.opts.Height / 2
	midX := width / 2
	pal := s.opts.Palette

	forEachBand(len(frame)/4, s.opts.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			x := i % width
			y := i / width
			col := columns[x]

			c := pal.Floor
			switch {
			case col.Contains(y):
				if s.opts.ShowCrosshair && x == midX {
					c = pal.Crosshair
				} else {
					c = lit(pal.Wall, col.Light)
				}
			case y <= midY:
				c = pal.Ceiling
			}

			px := frame[i*4 : i*4+4 : i*4+4]
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		}
	})
}

// forEachBand splits [0, n) into at most workers contiguous bands and runs fn
// on each concurrently, returning once every band is done. Bands never
// overlap, so fn may write its own slots without locking.
func forEachBand(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	per := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += per {
		hi := min(lo+per, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
