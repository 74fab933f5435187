package filter

import (
	"math"
	"testing"
)

func TestGaussianWeight(t *testing.T) {
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{1, math.Exp(-0.5)},
		{2, math.Exp(-1)},
		{Support, math.Exp(-0.5 * Support)},
		{Support + 0.01, 0},
		{-1, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := GaussianWeight(tt.q); math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("GaussianWeight(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestGaussianWeightMonotonic(t *testing.T) {
	prev := GaussianWeight(0)
	for q := 0.01; q <= Support; q += 0.01 {
		w := GaussianWeight(q)
		if w > prev {
			t.Fatalf("GaussianWeight not decreasing at %v: %v > %v", q, w, prev)
		}
		prev = w
	}
}
