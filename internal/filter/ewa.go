package filter

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/composite/internal/pixel"
)

// maxExtent bounds the footprint half-size so a degenerate Jacobian
// cannot request an unbounded read.
const maxExtent = 256

// Source is the pixel access a Resampler reads through. It must accept
// out-of-bounds coordinates. *image.View satisfies it.
type Source interface {
	Virtual(x, y, width, height int) ([]pixel.Pixel, error)
}

// Resampler averages a Source over an elliptical footprint.
//
// Thread safety: a Resampler must not be shared between goroutines.
type Resampler struct {
	src Source
	cs  pixel.Colorspace

	// inverse covariance as a row-major 2x2 matrix
	inv f64.Vec4
	// footprint half-size in x and y
	extent f64.Vec2
}

// NewResampler returns a Resampler over src. Results are tagged with cs.
// The footprint starts as the unit ellipse.
func NewResampler(src Source, cs pixel.Colorspace) *Resampler {
	r := &Resampler{src: src, cs: cs}
	r.Scale(0, 0, 0, 0)
	return r
}

// Scale sets the footprint from the Jacobian of the destination to source
// mapping: (dux, duy) is the source displacement for a unit step in x and
// (dvx, dvy) for a unit step in y.
func (r *Resampler) Scale(dux, duy, dvx, dvy float64) {
	// Σ = J·Jᵀ + ¼I with J = [[dux, dvx], [duy, dvy]].
	a := dux*dux + dvx*dvx + 0.25
	b := dux*duy + dvx*dvy
	c := duy*duy + dvy*dvy + 0.25

	det := a*c - b*b
	if !(det > pixel.Epsilon) || math.IsInf(det, 0) {
		a, b, c, det = 0.25, 0, 0.25, 0.0625
	}
	r.inv = f64.Vec4{c / det, -b / det, -b / det, a / det}
	r.extent = f64.Vec2{
		math.Min(math.Sqrt(Support*a), maxExtent),
		math.Min(math.Sqrt(Support*c), maxExtent),
	}
}

// Sample returns the weighted average around (u, v). Integer coordinates
// address pixel centers. Colors are weighted by alpha. The footprint always
// spans at least one pixel in each direction.
func (r *Resampler) Sample(u, v float64) (pixel.Pixel, error) {
	if math.IsNaN(u) || math.IsNaN(v) || math.IsInf(u, 0) || math.IsInf(v, 0) {
		return pixel.Transparent(r.cs), nil
	}
	x0 := int(math.Ceil(u - r.extent[0]))
	x1 := int(math.Floor(u + r.extent[0]))
	y0 := int(math.Ceil(v - r.extent[1]))
	y1 := int(math.Floor(v + r.extent[1]))
	w := x1 - x0 + 1
	px, err := r.src.Virtual(x0, y0, w, y1-y0+1)
	if err != nil {
		return pixel.Pixel{}, err
	}

	var out pixel.Pixel
	var weight, gamma float64
	for j := y0; j <= y1; j++ {
		dy := float64(j) - v
		row := px[(j-y0)*w : (j-y0+1)*w]
		for i, p := range row {
			dx := float64(x0+i) - u
			q := r.inv[0]*dx*dx + (r.inv[1]+r.inv[2])*dx*dy + r.inv[3]*dy*dy
			wt := GaussianWeight(q)
			if wt == 0 {
				continue
			}
			a := wt * pixel.QuantumScale * p.Alpha
			out.Red += a * p.Red
			out.Green += a * p.Green
			out.Blue += a * p.Blue
			out.Black += a * p.Black
			out.Alpha += wt * p.Alpha
			weight += wt
			gamma += a
		}
	}
	if weight == 0 {
		return pixel.Transparent(r.cs), nil
	}
	out.Alpha /= weight
	if gamma > pixel.Epsilon {
		g := 1 / gamma
		out.Red *= g
		out.Green *= g
		out.Blue *= g
		out.Black *= g
	}
	out.Colorspace = r.cs
	return out, nil
}
