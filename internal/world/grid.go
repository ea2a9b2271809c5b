package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSize is returned when a grid is constructed with a non-positive dimension.
var ErrInvalidSize = errors.New("world: grid dimensions must be positive")

// Cell is an integer tile coordinate.
type Cell struct {
	X, Y int
}

// DefaultInterior is the fixed set of interior walls placed by NewRoom.
var DefaultInterior = []Cell{{X: 3, Y: 3}}

// Grid is a fixed-size tile map stored as a flat slice indexed by x + y*Width.
type Grid struct {
	Width  int
	Height int
	tiles  []Tile
}

// NewGrid creates an empty grid of the given size.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = TileEmpty
	}

	return &Grid{
		Width:  width,
		Height: height,
		tiles:  tiles,
	}, nil
}

// NewRoom creates a closed room: walls on every border cell plus DefaultInterior.
func NewRoom(width, height int) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	g.Populate(DefaultInterior)
	return g, nil
}

// Populate walls off the border of the grid and places the given interior walls.
// Interior cells outside the grid are ignored.
func (g *Grid) Populate(interior []Cell) {
	for x := 0; x < g.Width; x++ {
		g.Set(x, 0, TileWall)
		g.Set(x, g.Height-1, TileWall)
	}
	for y := 0; y < g.Height; y++ {
		g.Set(0, y, TileWall)
		g.Set(g.Width-1, y, TileWall)
	}
	for _, c := range interior {
		g.Set(c.X, c.Y, TileWall)
	}
}

// InBounds returns true if (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y). The second result is false outside the grid.
func (g *Grid) At(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return g.tiles[g.index(x, y)], true
}

// Set changes the tile at (x, y). Coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[g.index(x, y)] = t
}

// Size returns the number of cells in the grid.
func (g *Grid) Size() int {
	return len(g.tiles)
}

// String renders the grid one row per line, for debugging.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			b.WriteRune(g.tiles[g.index(x, y)].Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) index(x, y int) int {
	return x + y*g.Width
}
