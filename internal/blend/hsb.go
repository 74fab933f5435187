package blend

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/composite/internal/pixel"
)

// RGBToHSB converts quantum red, green and blue to hue, saturation and
// brightness, all in [0,1], using the six-sector hexcone.
func RGBToHSB(r, g, b float64) (hue, saturation, brightness float64) {
	c := colorful.Color{
		R: pixel.QuantumScale * r,
		G: pixel.QuantumScale * g,
		B: pixel.QuantumScale * b,
	}
	h, s, v := c.Hsv()
	return h / 360, s, v
}

// HSBToRGB converts hue, saturation and brightness back to quantum red,
// green and blue. Hue wraps; out-of-range brightness is not clamped.
func HSBToRGB(hue, saturation, brightness float64) (r, g, b float64) {
	hue -= math.Floor(hue)
	c := colorful.Hsv(360*hue, saturation, brightness)
	return pixel.QuantumRange * c.R, pixel.QuantumRange * c.G, pixel.QuantumRange * c.B
}

// hsbComposite handles the alpha cases shared by the HSB operators and
// calls mix for two visible pixels. The result keeps the smaller alpha.
func hsbComposite(s, d pixel.Pixel, mix func(sh, ss, sb, dh, ds, db float64) (h, sat, b float64)) pixel.Pixel {
	if s.Alpha == 0 {
		return d
	}
	if d.Alpha == 0 {
		s.Colorspace = d.Colorspace
		return s
	}
	sh, ss, sb := RGBToHSB(s.Red, s.Green, s.Blue)
	dh, ds, db := RGBToHSB(d.Red, d.Green, d.Blue)

	out := d
	out.Red, out.Green, out.Blue = HSBToRGB(mix(sh, ss, sb, dh, ds, db))
	out.Alpha = math.Min(s.Alpha, d.Alpha)
	return out
}

// Hue takes the source hue.
func Hue(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	return hsbComposite(s, d, func(sh, _, _, _, ds, db float64) (float64, float64, float64) {
		return sh, ds, db
	})
}

// Saturate takes the source saturation.
func Saturate(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	return hsbComposite(s, d, func(_, ss, _, dh, _, db float64) (float64, float64, float64) {
		return dh, ss, db
	})
}

// Luminize takes the source brightness.
func Luminize(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	return hsbComposite(s, d, func(_, _, sb, dh, ds, _ float64) (float64, float64, float64) {
		return dh, ds, sb
	})
}

// Colorize takes the source hue and saturation.
func Colorize(s, d pixel.Pixel, _ *Params) pixel.Pixel {
	return hsbComposite(s, d, func(sh, ss, _, _, _, db float64) (float64, float64, float64) {
		return sh, ss, db
	})
}

// Modulate shifts the destination brightness by the source intensity
// relative to the midpoint and scales its saturation. The source acts as
// a map: its alpha only gates the effect.
func Modulate(s, d pixel.Pixel, p *Params) pixel.Pixel {
	if s.Alpha == 0 {
		return d
	}
	offset := math.Round(s.Intensity()) - pixel.Midpoint
	if offset == 0 {
		return d
	}
	h, sat, b := RGBToHSB(d.Red, d.Green, d.Blue)
	b += 0.01 * p.Brightness * offset / pixel.Midpoint
	sat *= 0.01 * p.Saturation

	out := d
	out.Red, out.Green, out.Blue = HSBToRGB(h, sat, b)
	return out
}
