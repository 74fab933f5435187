package image

import (
	"math"

	"github.com/gogpu/composite/internal/pixel"
)

// Interpolate samples the view at the fractional position (x, y) with
// bilinear weights. Integer coordinates address pixel centers, so
// Interpolate(x, y) for integral x and y returns that pixel exactly.
//
// Colors are weighted by alpha so transparent neighbors do not bleed
// their color into the result.
func (v *View) Interpolate(x, y float64) (pixel.Pixel, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return pixel.Transparent(v.colorspace), nil
	}
	fx, fy := math.Floor(x), math.Floor(y)
	tx, ty := x-fx, y-fy

	corners, err := v.Virtual(int(fx), int(fy), 2, 2)
	if err != nil {
		return pixel.Pixel{}, err
	}
	weights := [4]float64{
		(1 - tx) * (1 - ty),
		tx * (1 - ty),
		(1 - tx) * ty,
		tx * ty,
	}

	var out pixel.Pixel
	var gamma float64
	for i, c := range corners {
		w := weights[i]
		if w == 0 {
			continue
		}
		a := pixel.QuantumScale * c.Alpha * w
		out.Red += a * c.Red
		out.Green += a * c.Green
		out.Blue += a * c.Blue
		out.Black += a * c.Black
		out.Alpha += w * c.Alpha
		gamma += a
	}
	if gamma > pixel.Epsilon {
		g := 1 / gamma
		out.Red *= g
		out.Green *= g
		out.Blue *= g
		out.Black *= g
	}
	out.Colorspace = v.colorspace
	return out, nil
}
