package units

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1.234, 1.23},
		{0.125, 0.13},
		{-0.125, -0.12},
		{100, 100},
		{-0.001, 0},
		{33.333333, 33.33},
	}

	for _, tt := range tests {
		result := Round2(tt.input)
		if result != tt.expected {
			t.Errorf("Round2(%v) = %v, expected %v", tt.input, result, tt.expected)
		}
		if result == 0 && math.Signbit(result) {
			t.Errorf("Round2(%v) returned negative zero", tt.input)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := PercentX(50, 200); got != 25 {
		t.Errorf("PercentX(50, 200) = %v, expected 25", got)
	}
	if got := PercentY(0, 100); got != 100 {
		t.Errorf("PercentY(0, 100) = %v, expected 100", got)
	}
	if got := PercentY(100, 100); got != 0 {
		t.Errorf("PercentY(100, 100) = %v, expected 0", got)
	}
}

func TestToPixels(t *testing.T) {
	if got := ToPixels(1); got != ConversionFactor {
		t.Errorf("ToPixels(1) = %v, expected %v", got, ConversionFactor)
	}
}

func TestRotate(t *testing.T) {
	x, y := Rotate(1, 0, math.Pi/2)
	if math.Abs(x) > 1e-9 || math.Abs(y-1) > 1e-9 {
		t.Errorf("Rotate(1, 0, pi/2) = (%v, %v), expected (0, 1)", x, y)
	}
}

func TestIsInsideTriangle(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"centroid", 1, 1, true},
		{"vertex", 0, 0, true},
		{"edge", 1.5, 0, true},
		{"outside right", 4, 1, false},
		{"outside below", 1, -1, false},
	}

	for _, tt := range tests {
		result := IsInsideTriangle(tt.x, tt.y, 0, 0, 3, 0, 0, 3)
		if result != tt.expected {
			t.Errorf("%s: IsInsideTriangle(%v, %v) = %v, expected %v",
				tt.name, tt.x, tt.y, result, tt.expected)
		}
	}
}

func TestIsReflexAngle(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		x3, y3         float64
		expected       bool
	}{
		// start at 45 deg, end at -45 deg, control at 180 deg: arc through the
		// control point spans 270 deg.
		{"reflex", 1, 1, 1, -1, -1, 0, true},
		// same endpoints, control at 0 deg: arc spans 90 deg.
		{"minor", 1, 1, 1, -1, 1, 0, false},
		// both endpoints on the same side of the control point.
		{"same side", 1, 1, 0, 1, 1, 0, false},
	}

	for _, tt := range tests {
		result := IsReflexAngle(0, 0, tt.x1, tt.y1, tt.x2, tt.y2, tt.x3, tt.y3)
		if result != tt.expected {
			t.Errorf("%s: IsReflexAngle = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{190, -170},
		{-190, 170},
		{90, 90},
		{180, 180},
	}

	for _, tt := range tests {
		if result := NormalizeDegrees(tt.input); result != tt.expected {
			t.Errorf("NormalizeDegrees(%v) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}
