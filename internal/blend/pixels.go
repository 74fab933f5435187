package blend

import (
	"math"

	"github.com/gogpu/composite/internal/pixel"
)

// Params carries the per-call parameters of whole-pixel operators.
type Params struct {
	Mode     Mode
	Channels pixel.Channel

	// SourceDissolve and DestDissolve scale the alphas of Dissolve and
	// Blend.
	SourceDissolve float64
	DestDissolve   float64

	// Brightness and Saturation are the Modulate percentages.
	Brightness float64
	Saturation float64

	// Threshold is in quantum units; Amount is a fraction.
	Threshold float64
	Amount    float64

	// Fuzz is the color distance under which ChangeMask treats pixels as
	// equal.
	Fuzz float64

	SourceMatte      bool
	SourceColorspace pixel.Colorspace
}

// PixelFunc composites a whole source pixel onto a destination pixel.
type PixelFunc func(s, d pixel.Pixel, p *Params) pixel.Pixel

// Clear yields a transparent black pixel.
func Clear(_, d pixel.Pixel, _ *Params) pixel.Pixel {
	return pixel.Transparent(d.Colorspace)
}

// Source replaces the destination with the source.
func Source(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	s.Colorspace = d.Colorspace
	return s
}

// Destination keeps the destination.
func Destination(_, d pixel.Pixel, _ *Params) pixel.Pixel {
	return d
}

// SourceOver is the over primitive with the pixels' own alphas.
func SourceOver(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	return CompositeOver(s, s.Alpha, d, d.Alpha)
}

// DestinationOver places the destination over the source.
func DestinationOver(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	return CompositeOver(d, d.Alpha, s, s.Alpha)
}

// Plus sums both pixels in synced mode and sums channels independently
// otherwise.
func Plus(s, d pixel.Pixel, p *Params) pixel.Pixel {
	if p.Mode == Independent {
		return plus.Independent(s, d, p.Channels)
	}
	return CompositePlus(s, s.Alpha, d, d.Alpha)
}

// Dissolve places the source over the destination with both alphas
// scaled by their dissolve factors.
func Dissolve(s, d pixel.Pixel, p *Params) pixel.Pixel {
	return CompositeOver(s, p.SourceDissolve*s.Alpha, d, p.DestDissolve*d.Alpha)
}

// Blend is the plus primitive with both alphas scaled by their factors.
func Blend(s, d pixel.Pixel, p *Params) pixel.Pixel {
	return CompositeBlend(s, p.SourceDissolve, d, p.DestDissolve)
}

// DarkenIntensity keeps the pixel with the lower intensity. Synced mode
// weights each intensity by its alpha and takes the whole pixel;
// independent mode copies only the selected channels.
func DarkenIntensity(s, d pixel.Pixel, p *Params) pixel.Pixel {
	return pickIntensity(s, d, p, func(si, di float64) bool { return si < di })
}

// LightenIntensity keeps the pixel with the higher intensity.
func LightenIntensity(s, d pixel.Pixel, p *Params) pixel.Pixel {
	return pickIntensity(s, d, p, func(si, di float64) bool { return si > di })
}

func pickIntensity(s, d pixel.Pixel, p *Params, better func(si, di float64) bool) pixel.Pixel {
	if p.Mode == Synced {
		sa := pixel.QuantumScale * s.Alpha
		da := pixel.QuantumScale * d.Alpha
		if better(sa*s.Intensity(), da*d.Intensity()) {
			s.Colorspace = d.Colorspace
			return s
		}
		return d
	}
	if !better(s.Intensity(), d.Intensity()) {
		return d
	}
	return copyChannels(s, d, p.Channels)
}

// copyChannels copies the selected channels of s into d.
func copyChannels(s, d pixel.Pixel, channels pixel.Channel) pixel.Pixel {
	if channels&pixel.AlphaChannel != 0 {
		d.Alpha = s.Alpha
	}
	if channels&pixel.RedChannel != 0 {
		d.Red = s.Red
	}
	if channels&pixel.GreenChannel != 0 {
		d.Green = s.Green
	}
	if channels&pixel.BlueChannel != 0 {
		d.Blue = s.Blue
	}
	if channels&pixel.BlackChannel != 0 && d.Colorspace.Subtractive() {
		d.Black = s.Black
	}
	return d
}

// CopyRed copies the red (cyan) channel.
func CopyRed(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	d.Red = s.Red
	return d
}

// CopyGreen copies the green (magenta) channel.
func CopyGreen(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	d.Green = s.Green
	return d
}

// CopyBlue copies the blue (yellow) channel.
func CopyBlue(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	d.Blue = s.Blue
	return d
}

// CopyBlack copies the black channel into a subtractive destination.
// Pixels arrive in the additive domain, where black is stored inverted,
// so an additive source contributes max(r,g,b): the inverse of its
// undercolor min(c,m,y).
func CopyBlack(s, d pixel.Pixel, p *Params) pixel.Pixel {
	if !d.Colorspace.Subtractive() {
		return d
	}
	if p.SourceColorspace.Subtractive() {
		d.Black = s.Black
		return d
	}
	d.Black = math.Max(s.Red, math.Max(s.Green, s.Blue))
	return d
}

// CopyOpacity takes the alpha from the source, or from its intensity
// when the source has no alpha channel.
func CopyOpacity(s, d pixel.Pixel, p *Params) pixel.Pixel {
	if !p.SourceMatte {
		d.Alpha = math.Round(s.Intensity())
		return d
	}
	d.Alpha = s.Alpha
	return d
}

// ChangeMask makes the destination transparent where it is already
// mostly transparent or where it matches the source within Fuzz, and
// opaque elsewhere.
func ChangeMask(s, d pixel.Pixel, p *Params) pixel.Pixel {
	if d.Alpha < pixel.QuantumRange/2 || pixel.Similar(s, d, p.Fuzz) {
		d.Alpha = 0
		return d
	}
	d.Alpha = pixel.QuantumRange
	return d
}

// Bumpmap shades the destination by the source intensity. The alpha is
// the source opacity shaded the same way; no over blending takes place.
func Bumpmap(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	if s.Alpha == 0 {
		return d
	}
	shade := pixel.QuantumScale * s.Intensity()
	out := d
	out.Red = shade * d.Red
	out.Green = shade * d.Green
	out.Blue = shade * d.Blue
	if d.Colorspace.Subtractive() {
		out.Black = shade * d.Black
	}
	out.Alpha = pixel.QuantumRange - shade*(pixel.QuantumRange-s.Alpha)
	return out
}

// threshold moves q toward p by amount when they differ by at least
// half the threshold.
func threshold(p, q, limit, amount float64) float64 {
	delta := p - q
	if math.Abs(2*delta) < limit {
		return q
	}
	return q + delta*amount
}

// Threshold applies the threshold step to every color channel. The alpha
// is stepped in opacity terms and stored inverted.
func Threshold(s, d pixel.Pixel, p *Params) pixel.Pixel {
	out := d
	out.Red = threshold(s.Red, d.Red, p.Threshold, p.Amount)
	out.Green = threshold(s.Green, d.Green, p.Threshold, p.Amount)
	out.Blue = threshold(s.Blue, d.Blue, p.Threshold, p.Amount)
	if d.Colorspace.Subtractive() {
		out.Black = threshold(s.Black, d.Black, p.Threshold, p.Amount)
	}
	out.Alpha = threshold(pixel.QuantumRange-s.Alpha, pixel.QuantumRange-d.Alpha,
		p.Threshold, p.Amount)
	return out
}
