package blend

import "github.com/gogpu/composite/internal/pixel"

// Mode selects between alpha-aware and per-channel arithmetic.
type Mode uint8

const (
	// Synced composites the pixel as a whole with alpha-weighted math.
	Synced Mode = iota

	// Independent blends every selected channel, alpha included, in
	// isolation with Sa = Da = 1.
	Independent
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Synced:
		return "Synced"
	case Independent:
		return "Independent"
	default:
		return "Unknown"
	}
}

// Separable applies one channel function to every color channel.
type Separable struct {
	Fn Func

	// Straight passes non-premultiplied channels to Fn.
	Straight bool

	Rule AlphaRule

	// Swap exchanges the roles of source and destination in Fn and Rule.
	Swap bool
}

// fn calls Fn with the arguments in source, destination order.
func (c Separable) fn(sc, sa, dc, da float64) float64 {
	if c.Swap {
		return c.Fn(dc, da, sc, sa)
	}
	return c.Fn(sc, sa, dc, da)
}

// Composite blends s onto d with alpha-weighted math. The black channel
// is blended only when d is subtractive.
func (c Separable) Composite(s, d pixel.Pixel) pixel.Pixel {
	sa := pixel.QuantumScale * s.Alpha
	da := pixel.QuantumScale * d.Alpha
	gamma := c.Rule.Gamma(sa, da)
	if c.Swap {
		gamma = c.Rule.Gamma(da, sa)
	}
	scale := pixel.QuantumRange * Reciprocal(gamma)

	channel := func(sv, dv float64) float64 {
		sc := pixel.QuantumScale * sv
		dc := pixel.QuantumScale * dv
		if c.Straight {
			return scale * c.fn(sc, sa, dc, da)
		}
		return scale * c.fn(sc*sa, sa, dc*da, da)
	}

	out := d
	out.Alpha = pixel.QuantumRange * gamma
	out.Red = channel(s.Red, d.Red)
	out.Green = channel(s.Green, d.Green)
	out.Blue = channel(s.Blue, d.Blue)
	if d.Colorspace.Subtractive() {
		out.Black = channel(s.Black, d.Black)
	}
	return out
}

// Independent blends each channel in channels as a plain value, ignoring
// both alphas. Unselected channels keep the destination value.
func (c Separable) Independent(s, d pixel.Pixel, channels pixel.Channel) pixel.Pixel {
	channel := func(sv, dv float64) float64 {
		return pixel.QuantumRange * c.fn(pixel.QuantumScale*sv, 1, pixel.QuantumScale*dv, 1)
	}

	out := d
	if channels&pixel.AlphaChannel != 0 {
		out.Alpha = channel(s.Alpha, d.Alpha)
	}
	if channels&pixel.RedChannel != 0 {
		out.Red = channel(s.Red, d.Red)
	}
	if channels&pixel.GreenChannel != 0 {
		out.Green = channel(s.Green, d.Green)
	}
	if channels&pixel.BlueChannel != 0 {
		out.Blue = channel(s.Blue, d.Blue)
	}
	if channels&pixel.BlackChannel != 0 && d.Colorspace.Subtractive() {
		out.Black = channel(s.Black, d.Black)
	}
	return out
}

var (
	over = Separable{Fn: Over, Rule: AlphaOver}
	plus = Separable{Fn: LinearDodge, Rule: AlphaPlus}
)

// CompositeOver places s with alpha sa over d with alpha da. Alphas are
// in quantum units and replace the pixels' own.
func CompositeOver(s pixel.Pixel, sa float64, d pixel.Pixel, da float64) pixel.Pixel {
	s.Alpha, d.Alpha = sa, da
	return over.Composite(s, d)
}

// CompositePlus sums s with alpha sa and d with alpha da; both the
// colors and the alphas add.
func CompositePlus(s pixel.Pixel, sa float64, d pixel.Pixel, da float64) pixel.Pixel {
	s.Alpha, d.Alpha = sa, da
	return plus.Composite(s, d)
}

// CompositeBlend is CompositePlus with the alphas of s and d scaled by
// the factors sf and df.
func CompositeBlend(s pixel.Pixel, sf float64, d pixel.Pixel, df float64) pixel.Pixel {
	return CompositePlus(s, sf*s.Alpha, d, df*d.Alpha)
}
