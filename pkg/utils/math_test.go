package utils

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		value, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.value, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.value, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestClampFloat64(t *testing.T) {
	if got := ClampFloat64(1.2, 0, 1); got != 1 {
		t.Errorf("ClampFloat64(1.2, 0, 1) = %v, want 1", got)
	}
	if got := ClampFloat64(-0.2, 0, 1); got != 0 {
		t.Errorf("ClampFloat64(-0.2, 0, 1) = %v, want 0", got)
	}
	if got := ClampFloat64(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampFloat64(0.5, 0, 1) = %v, want 0.5", got)
	}
}

func TestMean(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(values); got != 5 {
		t.Errorf("Mean = %v, want 5", got)
	}
	if got := Sum(values); got != 40 {
		t.Errorf("Sum = %v, want 40", got)
	}
}

func TestMeanEmpty(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     float64
	}{
		{52.349, 1, 52.3},
		{52.35, 1, 52.4},
		{0.5, 0, 1},
		{123.456, 2, 123.46},
	}
	for _, tt := range tests {
		if got := Round(tt.value, tt.decimals); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.value, tt.decimals, got, tt.want)
		}
	}
}

func TestGenerateJobIDUnique(t *testing.T) {
	a := GenerateJobID()
	b := GenerateJobID()
	if a == "" || b == "" {
		t.Fatalf("expected non-empty ids")
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
}
