package pixel

import (
	"math"
	"testing"
)

// =============================================================================
// Clamp / Quantize Tests
// =============================================================================

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -12, 0},
		{"zero", 0, 0},
		{"mid", 1234.5, 1234.5},
		{"max", QuantumRange, QuantumRange},
		{"over", QuantumRange + 1, QuantumRange},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want uint16
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{32767.6, 32768},
		{70000, 65535},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// Inversion Tests
// =============================================================================

func TestInvertedRoundTrip(t *testing.T) {
	p := Pixel{Red: 1, Green: 200, Blue: 65535, Black: 4000, Alpha: 777, Colorspace: CMYK}
	q := p.Inverted()
	if q.Alpha != p.Alpha {
		t.Errorf("Inverted changed alpha: %v -> %v", p.Alpha, q.Alpha)
	}
	if q.Red != QuantumRange-1 || q.Black != QuantumRange-4000 {
		t.Errorf("Inverted() = %+v", q)
	}
	if back := q.Inverted(); back != p {
		t.Errorf("Inverted twice = %+v, want %+v", back, p)
	}
}

// =============================================================================
// Intensity Tests
// =============================================================================

func TestIntensity(t *testing.T) {
	white := Pixel{Red: QuantumRange, Green: QuantumRange, Blue: QuantumRange}
	if got := white.Intensity(); math.Abs(got-QuantumRange) > 1e-9 {
		t.Errorf("white Intensity() = %v, want %v", got, QuantumRange)
	}
	red := Pixel{Red: QuantumRange}
	if got, want := red.Intensity(), 0.299*QuantumRange; math.Abs(got-want) > 1e-9 {
		t.Errorf("red Intensity() = %v, want %v", got, want)
	}
}

// =============================================================================
// Similar Tests
// =============================================================================

func TestSimilar(t *testing.T) {
	base := Pixel{Red: 1000, Green: 2000, Blue: 3000, Alpha: QuantumRange}
	near := base
	near.Red += 50

	tests := []struct {
		name string
		p, q Pixel
		fuzz float64
		want bool
	}{
		{"exact equal", base, base, 0, true},
		{"exact differs", base, near, 0, false},
		{"within fuzz", base, near, 100, true},
		{"outside fuzz", base, near, 10, false},
		{"both transparent", Pixel{Red: 10}, Pixel{Blue: 60000}, 1, true},
		{"alpha differs", base, Pixel{Red: 1000, Green: 2000, Blue: 3000}, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similar(tt.p, tt.q, tt.fuzz); got != tt.want {
				t.Errorf("Similar() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarIgnoresBlackOutsideCMYK(t *testing.T) {
	p := Pixel{Red: 5, Alpha: QuantumRange}
	q := p
	q.Black = 30000
	if !Similar(p, q, 1) {
		t.Error("Similar() compared black on RGB pixels")
	}
	p.Colorspace, q.Colorspace = CMYK, CMYK
	if Similar(p, q, 1) {
		t.Error("Similar() ignored black on CMYK pixels")
	}
}

// =============================================================================
// Channel Tests
// =============================================================================

func TestChannelString(t *testing.T) {
	tests := []struct {
		c    Channel
		want string
	}{
		{0, "None"},
		{RedChannel | AlphaChannel, "RA"},
		{AllChannels, "RGBKA"},
		{CyanChannel | YellowChannel, "RB"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Channel(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestChannelHas(t *testing.T) {
	s := RedChannel | BlueChannel
	if !s.Has(RedChannel) || !s.Has(RedChannel|BlueChannel) {
		t.Error("Has() missed a member")
	}
	if s.Has(RedChannel | GreenChannel) {
		t.Error("Has() accepted a partial set")
	}
}
