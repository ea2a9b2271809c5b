package game

import (
	"errors"
	"testing"
	"time"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envFrom(nil))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("loadConfig() = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(envFrom(map[string]string{
		"RAYCAST_BACKEND":     "window",
		"RAYCAST_WIDTH":       "320",
		"RAYCAST_HEIGHT":      "240",
		"RAYCAST_FPS":         "30",
		"RAYCAST_KEY_HOLD_MS": "400",
		"RAYCAST_SCENE":       "pillars",
	}))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Backend != BackendWindow {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendWindow)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if cfg.KeyHold != 400*time.Millisecond {
		t.Errorf("KeyHold = %v, want 400ms", cfg.KeyHold)
	}
	if cfg.Scene != "pillars" {
		t.Errorf("Scene = %q, want %q", cfg.Scene, "pillars")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"RAYCAST_BACKEND": "opengl"}},
		{"non-numeric width", map[string]string{"RAYCAST_WIDTH": "wide"}},
		{"zero height", map[string]string{"RAYCAST_HEIGHT": "0"}},
		{"negative fps", map[string]string{"RAYCAST_FPS": "-5"}},
		{"bad hold", map[string]string{"RAYCAST_KEY_HOLD_MS": "1.5"}},
	}

	for _, tt := range tests {
		if _, err := loadConfig(envFrom(tt.env)); err == nil {
			t.Errorf("%s: loadConfig() returned no error", tt.name)
		}
	}

	_, err := loadConfig(envFrom(map[string]string{"RAYCAST_BACKEND": "opengl"}))
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v, want ErrUnknownBackend", err)
	}
}

func TestFrameDelta(t *testing.T) {
	tests := []struct {
		elapsed, max time.Duration
		want         float64
	}{
		{16 * time.Millisecond, 100 * time.Millisecond, 0.016},
		{time.Second, 100 * time.Millisecond, 0.1},
		{-time.Millisecond, 100 * time.Millisecond, 0},
		{time.Second, 0, 1},
	}

	for _, tt := range tests {
		if got := frameDelta(tt.elapsed, tt.max); got != tt.want {
			t.Errorf("frameDelta(%v, %v) = %v, want %v", tt.elapsed, tt.max, got, tt.want)
		}
	}
}
