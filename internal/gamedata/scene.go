package gamedata

import (
	"errors"
	"fmt"
)

// DefaultScene is the scene used when none is configured.
const DefaultScene = "room"

// SceneDef is the JSON definition of a map, its starting pose and tuning.
type SceneDef struct {
	Name     string      `json:"name"`
	Map      MapDef      `json:"map"`
	Player   PlayerDef   `json:"player"`
	Movement MovementDef `json:"movement"`
	View     ViewDef     `json:"view"`
	Palette  PaletteDef  `json:"palette"`
	Lighting LightingDef `json:"lighting"`
}

// MapDef describes a closed room. Border walls are implied; Walls lists
// the interior wall cells as [x, y] pairs.
type MapDef struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Walls  [][2]int `json:"walls"`
}

// PlayerDef is the starting position and facing direction.
type PlayerDef struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	DirX float64 `json:"dir_x"`
	DirY float64 `json:"dir_y"`
}

// MovementDef holds movement speeds and collision tuning.
type MovementDef struct {
	RotateSpeed   float64 `json:"rotate_speed"`   // Radians per second
	ForwardSpeed  float64 `json:"forward_speed"`  // Tiles per second
	Clearance     float64 `json:"clearance"`      // Gap kept in front of walls
	ProbeDistance float64 `json:"probe_distance"` // Collision ray length
}

// ViewDef holds camera settings.
type ViewDef struct {
	FOVDegrees float64 `json:"fov_degrees"`
	Crosshair  bool    `json:"crosshair"`
}

// PaletteDef holds hex colors for the shading pass.
type PaletteDef struct {
	Wall      string `json:"wall"`
	Ceiling   string `json:"ceiling"`
	Floor     string `json:"floor"`
	Crosshair string `json:"crosshair"`
}

// LightingDef controls distance falloff. Falloff is off unless Attenuation is set.
type LightingDef struct {
	Attenuation bool    `json:"attenuation"`
	Falloff     float64 `json:"falloff"`
	MinLight    float64 `json:"min_light"`
}

// LoadScene loads and validates the embedded scene with the given name.
func LoadScene(name string) (SceneDef, error) {
	def, err := Load[SceneDef](name + ".json")
	if err != nil {
		return SceneDef{}, err
	}
	if err := def.Validate(); err != nil {
		return SceneDef{}, fmt.Errorf("scene %s: %w", name, err)
	}
	return def, nil
}

// Validate checks that the definition describes a usable scene.
func (d SceneDef) Validate() error {
	var errs []error

	if d.Map.Width <= 0 || d.Map.Height <= 0 {
		errs = append(errs, fmt.Errorf("map size %dx%d must be positive", d.Map.Width, d.Map.Height))
	}
	if d.Player.X < 0 || d.Player.X > float64(d.Map.Width) ||
		d.Player.Y < 0 || d.Player.Y > float64(d.Map.Height) {
		errs = append(errs, fmt.Errorf("player start (%g,%g) is outside the map", d.Player.X, d.Player.Y))
	}
	if d.Player.DirX == 0 && d.Player.DirY == 0 {
		errs = append(errs, errors.New("player direction must be non-zero"))
	}
	if d.Movement.RotateSpeed < 0 || d.Movement.ForwardSpeed < 0 {
		errs = append(errs, errors.New("movement speeds must not be negative"))
	}
	if d.Movement.Clearance < 0 || d.Movement.ProbeDistance <= 0 {
		errs = append(errs, errors.New("clearance must be >= 0 and probe_distance > 0"))
	}
	if d.View.FOVDegrees <= 0 || d.View.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("fov_degrees %g must be in (0, 180)", d.View.FOVDegrees))
	}
	if d.Lighting.Attenuation && (d.Lighting.MinLight <= 0 || d.Lighting.MinLight > 1) {
		errs = append(errs, fmt.Errorf("min_light %g must be in (0, 1]", d.Lighting.MinLight))
	}
	for _, hex := range []string{d.Palette.Wall, d.Palette.Ceiling, d.Palette.Floor, d.Palette.Crosshair} {
		if _, err := ParseHexColor(hex); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
