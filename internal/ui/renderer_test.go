package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, cols, rows int) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := newScreen(sim)
	if err != nil {
		t.Fatalf("newScreen failed: %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(s.Close)
	return s
}

// solidFrame builds a frame whose top half is one color and bottom half another.
func solidFrame(width, height int, top, bottom [3]byte) []byte {
	frame := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		c := top
		if y >= height/2 {
			c = bottom
		}
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			frame[i], frame[i+1], frame[i+2], frame[i+3] = c[0], c[1], c[2], 0xFF
		}
	}
	return frame
}

func TestViewSize(t *testing.T) {
	s := newTestScreen(t, 40, 13)
	r := NewRenderer(s)

	w, h := r.ViewSize()
	if w != 40 || h != 24 {
		t.Errorf("ViewSize() = %dx%d, want 40x24", w, h)
	}
}

func TestPresentHalfBlocks(t *testing.T) {
	s := newTestScreen(t, 4, 3)
	r := NewRenderer(s)

	// 4x4 pixels map onto 4 columns x 2 rows of half blocks.
	frame := solidFrame(4, 4, [3]byte{0xFF, 0xFF, 0xFF}, [3]byte{0xBC, 0x78, 0xA2})
	r.Present(frame, 4, 4)

	white := tcell.NewRGBColor(0xFF, 0xFF, 0xFF)
	mauve := tcell.NewRGBColor(0xBC, 0x78, 0xA2)

	tests := []struct {
		x, y   int
		fg, bg tcell.Color
	}{
		{0, 0, white, white},
		{3, 0, white, white},
		{0, 1, mauve, mauve},
		{2, 1, mauve, mauve},
	}

	for _, tt := range tests {
		ch, _, style, _ := s.screen.GetContent(tt.x, tt.y)
		if ch != halfBlock {
			t.Errorf("cell (%d,%d) rune = %q, want %q", tt.x, tt.y, ch, halfBlock)
		}
		fg, bg, _ := style.Decompose()
		if fg != tt.fg || bg != tt.bg {
			t.Errorf("cell (%d,%d) colors = %v/%v, want %v/%v", tt.x, tt.y, fg, bg, tt.fg, tt.bg)
		}
	}
}

func TestPresentIgnoresShortFrame(t *testing.T) {
	s := newTestScreen(t, 4, 3)
	r := NewRenderer(s)

	r.Present(make([]byte, 8), 4, 4)

	if ch, _, _, _ := s.screen.GetContent(0, 0); ch == halfBlock {
		t.Error("Present drew from a frame that was too short")
	}
}

func TestRenderMessage(t *testing.T) {
	s := newTestScreen(t, 6, 2)
	r := NewRenderer(s)

	r.RenderMessage("hello world", 1)

	want := "hello "
	for x, w := range want {
		if ch, _, _, _ := s.screen.GetContent(x, 1); ch != w {
			t.Errorf("cell (%d,1) = %q, want %q", x, ch, w)
		}
	}
}

func TestResizeClearsOldFrame(t *testing.T) {
	s := newTestScreen(t, 4, 3)
	r := NewRenderer(s)

	r.Present(solidFrame(4, 4, [3]byte{0xFF, 0, 0}, [3]byte{0, 0, 0xFF}), 4, 4)
	r.RenderMessage("hi", 2)
	r.Resize()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if ch, _, _, _ := s.screen.GetContent(x, y); ch != ' ' {
				t.Errorf("cell (%d,%d) after Resize = %q, want blank", x, y, ch)
			}
		}
	}
}
