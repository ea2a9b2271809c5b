package world

import (
	"math"

	"github.com/samdwyer/raycast/internal/geom"
)

// FullLight is the light factor reported for every hit. Distance falloff is
// applied by the renderer when enabled, not here.
const FullLight = 1.0

// RayHit describes where a ray first entered a wall cell.
type RayHit struct {
	Point    geom.Vec2 // Exact crossing point, not snapped to the grid
	Distance float64   // Ray length from the origin to Point
	Cell     Cell      // The wall cell that was entered
	Light    float64   // Attenuation factor in (0, 1]
}

// CastRay walks the grid from origin along dir using DDA and reports the first
// wall cell entered. The result is absent when the ray leaves the grid or
// travels further than maxDist. dir is expected to be unit length; a zero
// vector never hits.
func (g *Grid) CastRay(origin, dir geom.Vec2, maxDist float64) (RayHit, bool) {
	if dir.X == 0 && dir.Y == 0 {
		return RayHit{}, false
	}

	// Ray length needed to cross one whole cell along each axis. An axis the
	// ray never moves along gets an unreachable step so it is never chosen.
	stepLenX, stepLenY := math.Inf(1), math.Inf(1)
	if dir.X != 0 {
		dydx := dir.Y / dir.X
		stepLenX = math.Sqrt(1 + dydx*dydx)
	}
	if dir.Y != 0 {
		dxdy := dir.X / dir.Y
		stepLenY = math.Sqrt(1 + dxdy*dxdy)
	}

	cellX := math.Floor(origin.X)
	cellY := math.Floor(origin.Y)
	// Distance along each axis from the origin to the first grid line crossed.
	toLineX := cellX + 1 - origin.X
	toLineY := cellY + 1 - origin.Y
	stepX, stepY := 1, 1
	if dir.X < 0 {
		stepX = -1
		toLineX = origin.X - cellX
	}
	if dir.Y < 0 {
		stepY = -1
		toLineY = origin.Y - cellY
	}

	// Accumulated ray length to the next grid line on each axis.
	lenX := sideLength(toLineX, stepLenX)
	lenY := sideLength(toLineY, stepLenY)

	mapX := int(cellX)
	mapY := int(cellY)

	for {
		var f float64
		// Ties advance along x.
		if lenY < lenX {
			mapY += stepY
			f = lenY
			lenY += stepLenY
		} else {
			mapX += stepX
			f = lenX
			lenX += stepLenX
		}

		if f > maxDist {
			return RayHit{}, false
		}

		tile, ok := g.At(mapX, mapY)
		if !ok {
			return RayHit{}, false
		}
		if !tile.IsPassable() {
			return RayHit{
				Point:    origin.Add(dir.Scale(f)),
				Distance: f,
				Cell:     Cell{X: mapX, Y: mapY},
				Light:    FullLight,
			}, true
		}
	}
}

// sideLength scales the distance to the first grid line by the per-cell step,
// keeping an unreachable axis unreachable even when the distance is zero.
func sideLength(toLine, stepLen float64) float64 {
	if math.IsInf(stepLen, 1) {
		return stepLen
	}
	return toLine * stepLen
}
