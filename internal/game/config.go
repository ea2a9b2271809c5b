package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/samdwyer/raycast/internal/gamedata"
	"github.com/samdwyer/raycast/internal/scene"
)

// Backend selects the frame driver.
type Backend string

const (
	// BackendTerminal draws half-block pixels into the terminal with tcell.
	BackendTerminal Backend = "terminal"
	// BackendWindow opens a desktop window with ebiten.
	BackendWindow Backend = "window"
)

// ErrUnknownBackend is returned for a RAYCAST_BACKEND value that names no driver.
var ErrUnknownBackend = errors.New("unknown backend")

// Config holds renderer configuration options.
type Config struct {
	// Backend is the frame driver to run.
	Backend Backend

	// Width and Height are the window backend's render resolution. The
	// terminal backend sizes the view to the terminal instead.
	Width  int
	Height int

	// FPS is the target frame rate.
	FPS int

	// MaxDelta caps the elapsed time fed to a single update so a stalled
	// frame cannot move the player past the collision probe.
	MaxDelta time.Duration

	// KeyHold is how long a terminal key press counts as held. Terminals
	// report presses and repeats but never releases.
	KeyHold time.Duration

	// Scene names the embedded scene definition to load.
	Scene string
}

// DefaultConfig returns the configuration used when no environment overrides are set.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendTerminal,
		Width:    scene.DefaultWidth,
		Height:   scene.DefaultHeight,
		FPS:      60,
		MaxDelta: 100 * time.Millisecond,
		KeyHold:  250 * time.Millisecond,
		Scene:    gamedata.DefaultScene,
	}
}

// LoadConfig builds a Config from RAYCAST_* environment variables on top of
// DefaultConfig.
func LoadConfig() (Config, error) {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if v := getenv("RAYCAST_BACKEND"); v != "" {
		switch b := Backend(v); b {
		case BackendTerminal, BackendWindow:
			cfg.Backend = b
		default:
			errs = append(errs, fmt.Errorf("RAYCAST_BACKEND: %w %q", ErrUnknownBackend, v))
		}
	}

	positiveInt(getenv, "RAYCAST_WIDTH", &cfg.Width, &errs)
	positiveInt(getenv, "RAYCAST_HEIGHT", &cfg.Height, &errs)
	positiveInt(getenv, "RAYCAST_FPS", &cfg.FPS, &errs)

	var holdMS int
	if positiveInt(getenv, "RAYCAST_KEY_HOLD_MS", &holdMS, &errs) {
		cfg.KeyHold = time.Duration(holdMS) * time.Millisecond
	}

	if v := getenv("RAYCAST_SCENE"); v != "" {
		cfg.Scene = v
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// positiveInt parses the named variable into dst when it is set. It reports
// whether dst was changed; parse failures are appended to errs.
func positiveInt(getenv func(string) string, name string, dst *int, errs *[]error) bool {
	v := getenv(name)
	if v == "" {
		return false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", name, err))
		return false
	}
	if n <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: must be positive, got %d", name, n))
		return false
	}
	*dst = n
	return true
}

// frameDelta converts the time since the last update into seconds, capped at max.
func frameDelta(elapsed, max time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	if max > 0 && elapsed > max {
		elapsed = max
	}
	return elapsed.Seconds()
}
