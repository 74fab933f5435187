package composite

import (
	"context"
	"fmt"
	"math"

	"github.com/gogpu/composite/internal/blend"
	"github.com/gogpu/composite/internal/filter"
	"github.com/gogpu/composite/internal/geometry"
	intImage "github.com/gogpu/composite/internal/image"
	"github.com/gogpu/composite/internal/parallel"
	"github.com/gogpu/composite/internal/pixel"
)

// Artifact keys read by Composite.
const (
	// ArgsArtifact holds the numeric operator arguments as a geometry
	// string, e.g. "60,40" for Dissolve or "0.5,0.5,0,0" for
	// Mathematics.
	ArgsArtifact = "compose:args"

	// OutsideOverlayArtifact overrides whether destination pixels the
	// source does not cover are modified.
	OutsideOverlayArtifact = "compose:outside-overlay"

	outsideOverlayAlias = "modify-outside-overlay"
)

// dissolveEpsilon absorbs rounding in dissolve percentages.
const dissolveEpsilon = 1.0e-12

// plan is the per-call state derived from the operator and its
// arguments.
type plan struct {
	op     Operator
	info   operatorInfo
	params blend.Params

	modifyOutside bool

	// field, when set, replaces the source. It is destination-sized and
	// addressed in destination coordinates.
	field *intImage.Buffer
}

// needsMatte reports whether the pass can lower destination alpha, so a
// destination without an alpha channel must gain one first.
func (p *plan) needsMatte() bool {
	if p.info.needsMatte {
		return true
	}
	return p.modifyOutside && p.info.outside != outsideReplace
}

// artifact looks a key up on the source, then on the destination.
func artifact(src, dst *Image, keys ...string) (string, bool) {
	for _, im := range [...]*Image{src, dst} {
		for _, k := range keys {
			if v, ok := im.Artifact(k); ok {
				return v, true
			}
		}
	}
	return "", false
}

// isTrue reports whether an artifact value means true.
func isTrue(v string) bool {
	switch foldName(v) {
	case "true", "on", "yes", "1":
		return true
	}
	return false
}

// operatorArgs parses the ArgsArtifact. ok is false when the key is
// absent or unparsable; a parse failure is logged and recorded as a
// warning on dst.
func operatorArgs(op Operator, src, dst *Image) (geometry.Info, geometry.Flags, bool) {
	v, present := artifact(src, dst, ArgsArtifact)
	if !present {
		return geometry.Info{}, geometry.NoValue, false
	}
	info, flags, err := geometry.Parse(v)
	if err != nil {
		warnArgs(op, v, err, dst)
		return geometry.Info{}, geometry.NoValue, false
	}
	return info, flags, true
}

func warnArgs(op Operator, value string, err error, dst *Image) {
	Logger().Warn("composite: invalid operator arguments, using defaults",
		"op", op, "args", value, "err", err)
	dst.exceptions.push(Warning, fmt.Errorf("%s %s %q: %w", op, ArgsArtifact, value, err))
}

// newPlan resolves the parameters and the outside-overlay policy.
func newPlan(op Operator, dst, src *Image, mask ChannelMask) plan {
	p := plan{
		op:            op,
		info:          operators[op],
		modifyOutside: operators[op].modifyOutside,
	}
	p.params = blend.Params{
		Mode:             blend.Synced,
		Channels:         mask.Channels,
		SourceDissolve:   1,
		DestDissolve:     1,
		Brightness:       100,
		Saturation:       100,
		Threshold:        0.05,
		Amount:           0.5,
		Fuzz:             math.Max(src.fuzz, dst.fuzz),
		SourceMatte:      src.matte,
		SourceColorspace: src.colorspace,
	}
	if p.info.independent {
		p.params.Mode = mask.Mode
	}

	switch op {
	case Dissolve:
		info, flags, ok := operatorArgs(op, src, dst)
		if !ok {
			break
		}
		s := info.Rho / 100
		d := 1.0
		if s-dissolveEpsilon < 0 {
			s = 0
		}
		if s+dissolveEpsilon > 1 {
			d = 2 - s
			s = 1
		}
		if flags.Has(geometry.SigmaValue) {
			d = info.Sigma / 100
		}
		if d-dissolveEpsilon < 0 {
			d = 0
		}
		p.modifyOutside = true
		if d+dissolveEpsilon > 1 {
			d = 1
			p.modifyOutside = false
		}
		p.params.SourceDissolve, p.params.DestDissolve = s, d

	case Blend:
		info, flags, ok := operatorArgs(op, src, dst)
		if !ok {
			break
		}
		s := info.Rho / 100
		d := 1 - s
		if flags.Has(geometry.SigmaValue) {
			d = info.Sigma / 100
		}
		p.modifyOutside = d+dissolveEpsilon <= 1
		p.params.SourceDissolve, p.params.DestDissolve = s, d

	case Mathematics:
		info, _, _ := operatorArgs(op, src, dst)
		p.info.sep.Fn = blend.Mathematics(info.Rho, info.Sigma, info.Xi, info.Psi)

	case Modulate:
		info, flags, ok := operatorArgs(op, src, dst)
		if !ok {
			break
		}
		p.params.Brightness = info.Rho
		if flags.Has(geometry.SigmaValue) {
			p.params.Saturation = info.Sigma
		}

	case Threshold:
		if info, flags, ok := operatorArgs(op, src, dst); ok {
			p.params.Amount = info.Rho
			if flags.Has(geometry.SigmaValue) {
				p.params.Threshold = info.Sigma
			}
		}
	}
	p.params.Threshold *= pixel.QuantumRange

	if v, ok := artifact(src, dst, OutsideOverlayArtifact, outsideOverlayAlias); ok {
		p.modifyOutside = isTrue(v)
	}
	return p
}

// fieldJob carries what the field operators read while synthesizing.
type fieldJob struct {
	ctx  context.Context
	pool *parallel.WorkerPool
	opts options

	dst, src *Image
	x, y     int
	out      *intImage.Buffer
}

// synthesize builds the destination-sized intermediate for Blur,
// Displace and Distort. The destination is not modified.
func synthesize(ctx context.Context, pool *parallel.WorkerPool, o options, op Operator, dst, src *Image, x, y int) (*intImage.Buffer, error) {
	out, err := pooledClone(dst)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	job := &fieldJob{ctx: ctx, pool: pool, opts: o, dst: dst, src: src, x: x, y: y, out: out}

	switch op {
	case Blur:
		err = job.blur()
	default:
		err = job.displace(op)
	}
	if err != nil {
		intImage.PutToDefault(out)
		return nil, err
	}
	return out, nil
}

// pooledClone copies the pixels of im into a buffer from the default pool.
func pooledClone(im *Image) (*intImage.Buffer, error) {
	if b, ok := im.cache.(*intImage.Buffer); ok {
		buf, err := intImage.CloneFromDefault(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
		}
		return buf, nil
	}
	buf, err := intImage.GetFromDefault(im.Width(), im.Height(), im.cache.Format())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if err := copyRows(buf, im.cache); err != nil {
		intImage.PutToDefault(buf)
		return nil, fmt.Errorf("%w: %w", ErrPixelIO, err)
	}
	return buf, nil
}

// rows runs fn for every overlay row that lands on the destination. fn
// receives the overlay row, the first and last+1 overlay columns inside
// the destination, and the map pixels of that row.
func (j *fieldJob) rows(fn func(v, u0, u1 int, mapRow []pixel.Pixel) error) error {
	ow, oh := j.src.Width(), j.src.Height()
	u0 := max(0, -j.x)
	u1 := min(ow, j.dst.Width()-j.x)
	if u0 >= u1 {
		return nil
	}
	rows := parallel.Rows{Height: oh, ChunkSize: j.opts.chunkSize}
	err := parallel.ForEachRow(j.ctx, j.pool, rows, func(v int) error {
		if v+j.y < 0 || v+j.y >= j.dst.Height() {
			return nil
		}
		view := intImage.NewView(j.src.cache, j.src.colorspace, !j.src.matte, j.src.virtual)
		mapRow, err := view.Virtual(0, v, ow, 1)
		if err == nil {
			err = fn(v, u0, u1, mapRow)
		}
		if err != nil {
			return rowError(v+j.y, err)
		}
		return nil
	})
	return translate(err)
}

// blur resamples the destination with a per-pixel ellipse. The map's red
// and green scale the ellipse axes and blue selects the angle when an
// angle range is given.
func (j *fieldJob) blur() error {
	width, height := 1.0, 1.0
	info, flags, ok := operatorArgs(Blur, j.src, j.dst)
	if ok && !flags.Has(geometry.RhoValue) {
		v, _ := artifact(j.src, j.dst, ArgsArtifact)
		warnArgs(Blur, v, geometry.ErrInvalidGeometry, j.dst)
		flags, ok = geometry.NoValue, false
	}
	if ok {
		width, height = info.Rho, info.Rho
		if flags.Has(geometry.SigmaValue) {
			height = info.Sigma
		}
	}

	axes := func(angle float64) (x1, x2, y1, y2 float64) {
		sin, cos := math.Sincos(angle)
		return width * cos, width * sin, -height * sin, height * cos
	}
	x1, x2, y1, y2 := width, 0.0, 0.0, height
	if flags.Has(geometry.XiValue) {
		x1, x2, y1, y2 = axes(radians(info.Xi))
	}
	var angleStart, angleRange float64
	if flags.Has(geometry.PsiValue) {
		angleStart = radians(info.Xi)
		angleRange = radians(info.Psi) - angleStart
	}

	return j.rows(func(v, u0, u1 int, mapRow []pixel.Pixel) error {
		view := intImage.NewView(j.dst.cache, j.dst.colorspace, !j.dst.matte, j.dst.virtual)
		r := filter.NewResampler(view, j.dst.colorspace)
		out := make([]pixel.Pixel, u1-u0)
		x1, x2, y1, y2 := x1, x2, y1, y2
		for u := u0; u < u1; u++ {
			m := mapRow[u]
			if math.Abs(angleRange) > pixel.Epsilon {
				x1, x2, y1, y2 = axes(angleStart + angleRange*pixel.QuantumScale*m.Blue)
			}
			sx := pixel.QuantumScale * m.Red
			sy := pixel.QuantumScale * m.Green
			r.Scale(x1*sx, y1*sy, x2*sx, y2*sy)
			p, err := r.Sample(float64(j.x+u), float64(j.y+v))
			if err != nil {
				return err
			}
			out[u-u0] = p
		}
		return j.out.WriteRow(out, j.x+u0, j.y+v)
	})
}

// displace samples the destination at positions shifted by the map.
// Displace shifts relative to each pixel; Distort relative to a fixed
// center.
func (j *fieldJob) displace(op Operator) error {
	ow, oh := float64(j.src.Width()), float64(j.src.Height())
	dw, dh := float64(j.dst.Width()), float64(j.dst.Height())

	info, flags, _ := operatorArgs(op, j.src, j.dst)
	aspect := flags.Has(geometry.AspectValue)
	var hs, vs float64
	if !flags.Has(geometry.RhoValue) && !flags.Has(geometry.SigmaValue) {
		hs, vs = (ow-1)/2, (oh-1)/2
		if aspect {
			hs, vs = (dw-1)/2, (dh-1)/2
		}
	} else {
		hs, vs = info.Rho, info.Sigma
		if flags.Has(geometry.PercentValue) {
			if aspect {
				hs *= (dw - 1) / 200
				vs *= (dh - 1) / 200
			} else {
				hs *= (ow - 1) / 200
				vs *= (oh - 1) / 200
			}
		}
		if !flags.Has(geometry.SigmaValue) {
			vs = hs
		}
	}

	cx, cy := float64(j.x), float64(j.y)
	if op == Distort {
		switch {
		case flags.Has(geometry.XiValue) && aspect:
			cx = info.Xi
		case flags.Has(geometry.XiValue):
			cx += info.Xi
		case aspect:
			cx = (dw - 1) / 2
		default:
			cx += (ow - 1) / 2
		}
		switch {
		case flags.Has(geometry.PsiValue) && aspect:
			cy = info.Psi
		case flags.Has(geometry.PsiValue):
			cy += info.Psi
		case aspect:
			cy = (dh - 1) / 2
		default:
			cy += (oh - 1) / 2
		}
	}

	return j.rows(func(v, u0, u1 int, mapRow []pixel.Pixel) error {
		view := intImage.NewView(j.dst.cache, j.dst.colorspace, !j.dst.matte, j.dst.virtual)
		out := make([]pixel.Pixel, u1-u0)
		for u := u0; u < u1; u++ {
			m := mapRow[u]
			px := hs*(m.Red-pixel.Midpoint)/pixel.Midpoint + cx
			py := vs*(m.Green-pixel.Midpoint)/pixel.Midpoint + cy
			if op == Displace {
				px += float64(u)
				py += float64(v)
			}
			p, err := view.Interpolate(px, py)
			if err != nil {
				return err
			}
			p.Alpha *= pixel.QuantumScale * m.Alpha
			out[u-u0] = p
		}
		return j.out.WriteRow(out, j.x+u0, j.y+v)
	})
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
