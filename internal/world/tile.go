// Package world provides the tile grid and ray casting against it.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileEmpty represents open space a ray passes through.
	TileEmpty Tile = '.'
	// TileWall represents a solid wall tile that stops rays and the player.
	TileWall Tile = '#'
)

// IsPassable returns true if rays and the player can pass through the tile.
func (t Tile) IsPassable() bool {
	return t == TileEmpty
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
