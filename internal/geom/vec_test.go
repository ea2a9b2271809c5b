package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		in   Vec2
		want Vec2
	}{
		{V(3, 4), V(0.6, 0.8)},
		{V(-2, 0), V(-1, 0)},
		{V(0, 0), V(0, 0)},
	}

	for _, tt := range tests {
		got := tt.in.Normalize()
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("%v.Normalize() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVec2Rotate(t *testing.T) {
	got := V(1, 0).Rotate(math.Pi / 2)
	if !near(got.X, 0) || !near(got.Y, 1) {
		t.Errorf("(1,0).Rotate(π/2) = %v, want (0,1)", got)
	}

	got = V(0, 1).Rotate(-math.Pi / 2)
	if !near(got.X, 1) || !near(got.Y, 0) {
		t.Errorf("(0,1).Rotate(-π/2) = %v, want (1,0)", got)
	}
}

func TestVec2Angle(t *testing.T) {
	tests := []struct {
		a, b Vec2
		want float64
	}{
		{V(1, 0), V(1, 0), 0},
		{V(1, 0), V(0, 1), math.Pi / 2},
		{V(1, 0), V(0, -3), math.Pi / 2},
		{V(1, 0), V(-1, 0), math.Pi},
		{V(0, 0), V(1, 0), 0},
		// Nearly parallel vectors must not produce NaN.
		{V(1, 1e-17), V(1, 0), 0},
	}

	for _, tt := range tests {
		got := tt.a.Angle(tt.b)
		if math.IsNaN(got) || math.Abs(got-tt.want) > 1e-7 {
			t.Errorf("%v.Angle(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Errorf("Clamp(-1, 0, 5) = %v, want 0", got)
	}
	if got := Clamp(7, 0, 5); got != 5 {
		t.Errorf("Clamp(7, 0, 5) = %v, want 5", got)
	}
	if got := Clamp(2.5, 0, 5); got != 2.5 {
		t.Errorf("Clamp(2.5, 0, 5) = %v, want 2.5", got)
	}
}
