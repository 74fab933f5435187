// Package pixel defines the normalized floating-point pixel used by every
// compositing formula.
//
// Channel values are kept in quantum units, [0, QuantumRange], as float64.
// Blend math normalizes with QuantumScale, works in [0,1] and scales back
// before the pixel is stored. Alpha is stored as alpha (QuantumRange is
// fully opaque), never as opacity.
package pixel

import "math"

const (
	// QuantumRange is the largest sample value of the 16-bit pixel cache.
	QuantumRange = 65535.0

	// QuantumScale converts a quantum sample to [0,1].
	QuantumScale = 1.0 / QuantumRange

	// Epsilon guards divisions and near-equality tests in blend math.
	Epsilon = 1.0e-12

	// Midpoint is the neutral value of displacement and modulate fields.
	Midpoint = (QuantumRange + 1.0) / 2.0
)

// Pixel is one pixel with unquantized channels.
type Pixel struct {
	Red, Green, Blue float64
	// Black is meaningful only when Colorspace is CMYK.
	Black float64
	Alpha float64

	Colorspace Colorspace
}

// Transparent returns a fully transparent black pixel in colorspace cs.
func Transparent(cs Colorspace) Pixel {
	return Pixel{Colorspace: cs}
}

// Opaque reports whether the pixel carries full alpha.
func (p Pixel) Opaque() bool {
	return p.Alpha >= QuantumRange
}

// Intensity returns the Rec.601 luma of the color channels, in quantum units.
func (p Pixel) Intensity() float64 {
	return 0.299*p.Red + 0.587*p.Green + 0.114*p.Blue
}

// Inverted maps a subtractive pixel to the additive domain (and back).
// Only color channels are inverted; alpha is unchanged.
func (p Pixel) Inverted() Pixel {
	p.Red = QuantumRange - p.Red
	p.Green = QuantumRange - p.Green
	p.Blue = QuantumRange - p.Blue
	p.Black = QuantumRange - p.Black
	return p
}

// Clamped returns p with every channel limited to [0, QuantumRange].
// NaN channels become 0.
func (p Pixel) Clamped() Pixel {
	p.Red = Clamp(p.Red)
	p.Green = Clamp(p.Green)
	p.Blue = Clamp(p.Blue)
	p.Black = Clamp(p.Black)
	p.Alpha = Clamp(p.Alpha)
	return p
}

// Clamp limits v to [0, QuantumRange].
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= QuantumRange:
		return QuantumRange
	default:
		return v
	}
}

// Quantize rounds a channel value to the nearest 16-bit sample.
func Quantize(v float64) uint16 {
	return uint16(Clamp(v) + 0.5)
}

// Similar reports whether p and q are the same color within fuzz, a
// distance in quantum units. A zero fuzz requires exact equality.
// Color distance is weighted by the product of both alphas so that two
// nearly transparent pixels compare as similar.
func Similar(p, q Pixel, fuzz float64) bool {
	if fuzz <= 0 {
		return p.Red == q.Red && p.Green == q.Green && p.Blue == q.Blue &&
			p.Black == q.Black && p.Alpha == q.Alpha
	}
	limit := fuzz * fuzz

	d := p.Alpha - q.Alpha
	distance := d * d
	if distance > limit {
		return false
	}
	scale := QuantumScale * p.Alpha * QuantumScale * q.Alpha
	if scale <= Epsilon {
		return true
	}

	channels := [...]float64{
		p.Red - q.Red,
		p.Green - q.Green,
		p.Blue - q.Blue,
		p.Black - q.Black,
	}
	n := len(channels)
	if p.Colorspace != CMYK || q.Colorspace != CMYK {
		n--
	}
	for _, c := range channels[:n] {
		distance += scale * c * c
		if distance > limit {
			return false
		}
	}
	return true
}
