// Package entity provides the player entity that moves through the map.
package entity

import "github.com/samdwyer/raycast/internal/geom"

// Player is the viewer: a continuous position and a unit facing direction.
type Player struct {
	Pos geom.Vec2 // Position in tile units
	Dir geom.Vec2 // Facing direction, always unit length
}

// NewPlayer creates a player at pos facing dir. A zero dir faces +x.
func NewPlayer(pos, dir geom.Vec2) *Player {
	if dir.Len() == 0 {
		dir = geom.V(1, 0)
	}
	return &Player{
		Pos: pos,
		Dir: dir.Normalize(),
	}
}

// Rotate turns the player counter-clockwise by theta radians and renormalizes
// the facing direction so rounding never accumulates.
func (p *Player) Rotate(theta float64) {
	p.Dir = p.Dir.Rotate(theta).Normalize()
}

// Advance moves the player by d units along the facing direction.
// Negative d moves backwards.
func (p *Player) Advance(d float64) {
	p.Pos = p.Pos.Add(p.Dir.Scale(d))
}

// ClampTo keeps the player inside [0, width] × [0, height].
func (p *Player) ClampTo(width, height float64) {
	p.Pos.X = geom.Clamp(p.Pos.X, 0, width)
	p.Pos.Y = geom.Clamp(p.Pos.Y, 0, height)
}
