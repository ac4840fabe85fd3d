package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "Round up", input: 1.006, expected: 1.01},
		{name: "Round down", input: 1.004, expected: 1.0},
		{name: "Negative", input: -2.567, expected: -2.57},
		{name: "Already exact", input: 10.10, expected: 10.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Round(tt.input); result != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Error("expected 0.005 to be within currency tolerance of zero")
	}
	if IsZero(0.02) {
		t.Error("expected 0.02 to be outside currency tolerance")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.5, 1.0) {
		t.Error("expected 100.0 and 100.5 within tolerance 1.0")
	}
	if WithinTolerance(100.0, 102.0, 1.0) {
		t.Error("expected 100.0 and 102.0 outside tolerance 1.0")
	}
}

func TestMinMax(t *testing.T) {
	if Min(1.5, 2.5) != 1.5 {
		t.Error("Min(1.5, 2.5) != 1.5")
	}
	if Max(1.5, 2.5) != 2.5 {
		t.Error("Max(1.5, 2.5) != 2.5")
	}
}

func TestApplyPercentage(t *testing.T) {
	if result := ApplyPercentage(300000, 20); result != 60000 {
		t.Errorf("ApplyPercentage(300000, 20) = %v, expected 60000", result)
	}
}
