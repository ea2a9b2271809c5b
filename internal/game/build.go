package game

import (
	"fmt"
	"math"

	"github.com/samdwyer/raycast/internal/entity"
	"github.com/samdwyer/raycast/internal/gamedata"
	"github.com/samdwyer/raycast/internal/geom"
	"github.com/samdwyer/raycast/internal/scene"
	"github.com/samdwyer/raycast/internal/world"
)

// BuildScene constructs the map, player and scene described by def, rendering
// at width x height pixels.
func BuildScene(def gamedata.SceneDef, width, height int) (*scene.Scene, error) {
	grid, err := world.NewGrid(def.Map.Width, def.Map.Height)
	if err != nil {
		return nil, err
	}
	interior := make([]world.Cell, 0, len(def.Map.Walls))
	for _, w := range def.Map.Walls {
		interior = append(interior, world.Cell{X: w[0], Y: w[1]})
	}
	grid.Populate(interior)

	player := entity.NewPlayer(
		geom.V(def.Player.X, def.Player.Y),
		geom.V(def.Player.DirX, def.Player.DirY),
	)

	palette, err := buildPalette(def.Palette)
	if err != nil {
		return nil, err
	}

	opts := scene.DefaultOptions()
	opts.Width = width
	opts.Height = height
	opts.FOV = def.View.FOVDegrees * math.Pi / 180
	opts.ShowCrosshair = def.View.Crosshair
	opts.RotateSpeed = def.Movement.RotateSpeed
	opts.ForwardSpeed = def.Movement.ForwardSpeed
	opts.Clearance = def.Movement.Clearance
	opts.ProbeDistance = def.Movement.ProbeDistance
	opts.Palette = palette
	opts.Attenuation = def.Lighting.Attenuation
	opts.Falloff = def.Lighting.Falloff
	opts.MinLight = def.Lighting.MinLight

	return scene.New(grid, player, opts)
}

func buildPalette(p gamedata.PaletteDef) (scene.Palette, error) {
	var pal scene.Palette
	var err error
	if pal.Wall, err = gamedata.ParseHexColor(p.Wall); err != nil {
		return pal, fmt.Errorf("palette wall: %w", err)
	}
	if pal.Ceiling, err = gamedata.ParseHexColor(p.Ceiling); err != nil {
		return pal, fmt.Errorf("palette ceiling: %w", err)
	}
	if pal.Floor, err = gamedata.ParseHexColor(p.Floor); err != nil {
		return pal, fmt.Errorf("palette floor: %w", err)
	}
	if pal.Crosshair, err = gamedata.ParseHexColor(p.Crosshair); err != nil {
		return pal, fmt.Errorf("palette crosshair: %w", err)
	}
	return pal, nil
}
