package scene

import (
	"math"

	"github.com/samdwyer/raycast/internal/geom"
)

// Span is an inclusive range of pixel rows. Rows may lie outside the image;
// the shading pass clips them.
type Span struct {
	Top, Bottom int
}

// Contains returns true if row y lies inside the span.
func (s Span) Contains(y int) bool {
	return y >= s.Top && y <= s.Bottom
}

// Height returns the number of rows covered by the span.
func (s Span) Height() int {
	if s.Bottom < s.Top {
		return 0
	}
	return s.Bottom - s.Top + 1
}

// Column is the per-frame result for one screen column.
type Column struct {
	Span  Span
	Light float64
	Wall  bool // False when the ray escaped without hitting anything
}

// NoWall is the column for a ray that left the map. It covers no rows.
var NoWall = Column{Span: Span{Top: 1, Bottom: 0}, Light: 1}

// Contains returns true if row y should be shaded as wall.
func (c Column) Contains(y int) bool {
	return c.Wall && c.Span.Contains(y)
}

// ComputeSpan projects a wall hit at hit, seen from pos facing dir, onto a
// screen screenHeight rows tall. Distance is measured along the view axis so
// walls do not bow outward at the screen edges.
func ComputeSpan(pos, dir, hit geom.Vec2, screenHeight int) Span {
	diff := hit.Sub(pos)
	beta := diff.Angle(dir)
	dist := diff.Len() * math.Cos(beta)

	// A hit at (or behind) the eye fills the column.
	if !(dist > 0) {
		return Span{Top: 0, Bottom: screenHeight - 1}
	}

	limit := float64(screenHeight)
	mid := float64(screenHeight / 2)
	half := limit / dist / 2

	// Keep very near walls finite before converting to int.
	top := geom.Clamp(math.Round(mid-half), -limit, 2*limit)
	bottom := geom.Clamp(math.Round(mid+half), -limit, 2*limit)
	return Span{Top: int(top), Bottom: int(bottom)}
}
