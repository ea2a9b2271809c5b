package ui

import (
	"github.com/gdamore/tcell/v2"
)

// StatusLines is the number of terminal rows reserved below the view.
const StatusLines = 1

// halfBlock draws the upper half of a cell in the foreground color; the
// background fills the lower half. Each terminal cell shows two pixel rows.
const halfBlock = '▀'

// Renderer draws RGBA frames and status text to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// ViewSize returns the pixel dimensions that map one-to-one onto the
// terminal area above the status line.
func (r *Renderer) ViewSize() (width, height int) {
	cols, rows := r.screen.Size()
	rows -= StatusLines
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows * 2
}

// Present draws a row-major RGBA8 frame of width x height pixels into the
// view area, scaling with nearest-neighbor sampling if the sizes differ.
func (r *Renderer) Present(frame []byte, width, height int) {
	if width <= 0 || height <= 0 || len(frame) < width*height*4 {
		return
	}

	cols, pixelRows := r.ViewSize()
	rows := pixelRows / 2

	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * height / pixelRows
		bottom := (2*cy + 1) * height / pixelRows
		for cx := 0; cx < cols; cx++ {
			px := cx * width / cols
			style := tcell.StyleDefault.
				Foreground(pixelColor(frame, width, px, top)).
				Background(pixelColor(frame, width, px, bottom))
			r.screen.SetContent(cx, cy, halfBlock, style)
		}
	}
}

// RenderMessage displays a message on the given row, blanking the rest of it.
func (r *Renderer) RenderMessage(msg string, y int) {
	cols, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, ch := range msg {
		if x >= cols {
			break
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	for ; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', style)
	}
}

// Resize drops everything drawn at the old terminal size and forces a full
// redraw on the next Show.
func (r *Renderer) Resize() {
	r.screen.Clear()
	r.screen.Sync()
}

// Show flushes everything drawn since the last call.
func (r *Renderer) Show() {
	r.screen.Show()
}

func pixelColor(frame []byte, width, x, y int) tcell.Color {
	i := (y*width + x) * 4
	return tcell.NewRGBColor(int32(frame[i]), int32(frame[i+1]), int32(frame[i+2]))
}
