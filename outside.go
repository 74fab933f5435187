package composite

import "github.com/gogpu/composite/internal/pixel"

// outside returns the result for a destination pixel d the overlay does
// not cover. s is the virtual overlay pixel at the same position.
func (p *plan) outside(s, d pixel.Pixel) pixel.Pixel {
	switch p.info.outside {
	case outsideDissolve:
		d.Alpha *= p.params.DestDissolve
		return d
	case outsideClear:
		return pixel.Transparent(d.Colorspace)
	case outsideTransparent:
		d.Alpha = 0
		return d
	default:
		s.Colorspace = d.Colorspace
		return s
	}
}

// blend returns the result for a covered destination pixel.
func (p *plan) blend(s, d pixel.Pixel) pixel.Pixel {
	if p.info.fn != nil {
		return p.info.fn(s, d, &p.params)
	}
	if p.params.Mode == Independent {
		return p.info.sep.Independent(s, d, p.params.Channels)
	}
	return p.info.sep.Composite(s, d)
}

// toAdditive maps a stored pixel of colorspace from into the additive
// domain of colorspace to. Subtractive pixels are inverted; a CMYK pixel
// bound for an additive image has its black folded into the colors, and
// an additive pixel bound for a CMYK image gets no black ink.
func toAdditive(p pixel.Pixel, from, to Colorspace) pixel.Pixel {
	if from.Subtractive() {
		p = p.Inverted()
	}
	switch {
	case from.Subtractive() && !to.Subtractive():
		k := pixel.QuantumScale * p.Black
		p.Red *= k
		p.Green *= k
		p.Blue *= k
		p.Black = 0
	case !from.Subtractive() && to.Subtractive():
		p.Black = pixel.QuantumRange
	}
	p.Colorspace = to
	return p
}

// fromAdditive maps a blend result back to the stored form of cs.
func fromAdditive(p pixel.Pixel, cs Colorspace) pixel.Pixel {
	if cs.Subtractive() {
		p = p.Inverted()
	}
	p = p.Clamped()
	p.Colorspace = cs
	return p
}
