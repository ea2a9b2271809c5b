package scene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/raycast/internal/entity"
	"github.com/samdwyer/raycast/internal/geom"
	"github.com/samdwyer/raycast/internal/world"
)

const (
	testWidth  = 64
	testHeight = 48
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width = testWidth
	opts.Height = testHeight
	opts.Workers = 3
	return opts
}

func defaultRoomScene(t *testing.T, opts Options) *Scene {
	t.Helper()
	grid, err := world.NewRoom(8, 8)
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}
	s, err := New(grid, entity.NewPlayer(geom.V(2, 2), geom.V(1, 0)), opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func pixelAt(frame []byte, x, y int) color.RGBA {
	i := (y*testWidth + x) * 4
	return color.RGBA{R: frame[i], G: frame[i+1], B: frame[i+2], A: frame[i+3]}
}

func TestRenderRejectsWrongFrameSize(t *testing.T) {
	s := defaultRoomScene(t, smallOptions())

	for _, n := range []int{0, s.FrameLen() - 4, s.FrameLen() + 1} {
		err := s.Render(context.Background(), make([]byte, n))
		if !errors.Is(err, ErrFrameSize) {
			t.Errorf("Render(%d bytes) error = %v, want ErrFrameSize", n, err)
		}
	}
}

func TestRenderWritesEveryPixel(t *testing.T) {
	s := defaultRoomScene(t, smallOptions())
	pal := DefaultPalette()
	frame := make([]byte, s.FrameLen())

	if err := s.Render(context.Background(), frame); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	allowed := map[color.RGBA]bool{
		pal.Wall:      true,
		pal.Ceiling:   true,
		pal.Floor:     true,
		pal.Crosshair: true,
	}
	for y := 0; y < testHeight; y++ {
		for x := 0; x < testWidth; x++ {
			if c := pixelAt(frame, x, y); !allowed[c] {
				t.Fatalf("pixel (%d,%d) = %v, not a palette color", x, y, c)
			}
		}
	}
}

func TestRenderLayout(t *testing.T) {
	s := defaultRoomScene(t, smallOptions())
	pal := DefaultPalette()
	frame := make([]byte, s.FrameLen())

	if err := s.Render(context.Background(), frame); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"top row is ceiling", 10, 0, pal.Ceiling},
		{"bottom row is floor", 10, testHeight - 1, pal.Floor},
		{"wall left of center", testWidth/2 - 1, testHeight / 2, pal.Wall},
		{"crosshair at center", testWidth / 2, testHeight / 2, pal.Crosshair},
		{"crosshair only on wall", testWidth / 2, 0, pal.Ceiling},
	}

	for _, tt := range tests {
		if got := pixelAt(frame, tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderWithoutCrosshair(t *testing.T) {
	opts := smallOptions()
	opts.ShowCrosshair = false
	s := defaultRoomScene(t, opts)
	frame := make([]byte, s.FrameLen())

	if err := s.Render(context.Background(), frame); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := DefaultPalette().Wall
	if got := pixelAt(frame, testWidth/2, testHeight/2); got != want {
		t.Errorf("center pixel = %v, want wall %v", got, want)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	s := defaultRoomScene(t, smallOptions())
	a := make([]byte, s.FrameLen())
	b := make([]byte, s.FrameLen())
	for i := range b {
		b[i] = 0xAA
	}

	if err := s.Render(context.Background(), a); err != nil {
		t.Fatalf("first Render failed: %v", err)
	}
	if err := s.Render(context.Background(), b); err != nil {
		t.Fatalf("second Render failed: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("two renders of the same scene differ")
	}
	if Checksum(a) != Checksum(b) {
		t.Errorf("Checksum mismatch: %x != %x", Checksum(a), Checksum(b))
	}
}

func TestRenderOpenMapShowsOnlyCeilingAndFloor(t *testing.T) {
	grid, err := world.NewGrid(8, 8)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	s, err := New(grid, entity.NewPlayer(geom.V(4, 4), geom.V(0, 1)), smallOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	frame := make([]byte, s.FrameLen())

	if err := s.Render(context.Background(), frame); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	pal := DefaultPalette()
	for y := 0; y < testHeight; y++ {
		want := pal.Floor
		if y <= testHeight/2 {
			want = pal.Ceiling
		}
		for x := 0; x < testWidth; x++ {
			if got := pixelAt(frame, x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	for x, c := range s.Columns() {
		if c.Wall {
			t.Errorf("column %d reports a wall in an open map", x)
		}
	}
}

func TestColumnsConstantLight(t *testing.T) {
	s := defaultRoomScene(t, smallOptions())

	for x, c := range s.Columns() {
		if !c.Wall {
			t.Errorf("column %d missed inside a closed room", x)
			continue
		}
		if c.Light != 1.0 {
			t.Errorf("column %d light = %v, want 1.0", x, c.Light)
		}
	}
}

func TestLightAttenuation(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		falloff float64
		diff    geom.Vec2
		want    float64
	}{
		{"disabled", false, 2.5, geom.V(5, 0), 1.0},
		{"half", true, 2.5, geom.V(5, 0), 0.5},
		{"floor", true, 0.1, geom.V(5, 0), 0.1},
		{"near", true, 10, geom.V(0, 5), 1.0},
		{"at eye", true, 10, geom.V(0, 0), 1.0},
	}

	for _, tt := range tests {
		opts := smallOptions()
		opts.Attenuation = tt.enabled
		opts.Falloff = tt.falloff
		s := defaultRoomScene(t, opts)

		if got := s.light(1.0, tt.diff); got != tt.want {
			t.Errorf("%s: light = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestForEachBandCoversEachIndexOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{64, 7},
		{3072, 3},
		{5, 16},
		{1, 1},
		{10, 0},
	} {
		counts := make([]int, tc.n)
		forEachBand(tc.n, tc.workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				counts[i]++
			}
		})
		for i, c := range counts {
			if c != 1 {
				t.Errorf("n=%d workers=%d: index %d visited %d times", tc.n, tc.workers, i, c)
			}
		}
	}
}

func TestResize(t *testing.T) {
	s := defaultRoomScene(t, smallOptions())

	if err := s.Resize(0, 10); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Resize(0, 10) error = %v, want ErrInvalidViewport", err)
	}
	if w, h := s.Size(); w != testWidth || h != testHeight {
		t.Errorf("Size() after rejected Resize = %dx%d, want %dx%d", w, h, testWidth, testHeight)
	}

	if err := s.Resize(20, 10); err != nil {
		t.Fatalf("Resize(20, 10) failed: %v", err)
	}
	if s.FrameLen() != 20*10*4 {
		t.Errorf("FrameLen() = %d, want %d", s.FrameLen(), 20*10*4)
	}
	if err := s.Render(context.Background(), make([]byte, 20*10*4)); err != nil {
		t.Errorf("Render after Resize failed: %v", err)
	}
	if got := len(s.Columns()); got != 20 {
		t.Errorf("len(Columns()) = %d, want 20", got)
	}
}

func TestRenderTracesChecksumWhenRecording(t *testing.T) {
	s := defaultRoomScene(t, smallOptions())
	recorder := tracetest.NewSpanRecorder()
	s.tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	frame := make([]byte, s.FrameLen())
	if err := s.Render(context.Background(), frame); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Name() != "scene.render" {
		t.Fatalf("recorded %d spans, want one scene.render", len(spans))
	}
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if want := fmt.Sprintf("%016x", Checksum(frame)); attrs["render.checksum"] != want {
		t.Errorf("render.checksum = %q, want %q", attrs["render.checksum"], want)
	}
	if attrs["render.width"] != "64" || attrs["render.height"] != "48" {
		t.Errorf("render size attributes = %sx%s, want 64x48", attrs["render.width"], attrs["render.height"])
	}
}
