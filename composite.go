package composite

import (
	"context"
	"errors"
	"fmt"

	intImage "github.com/gogpu/composite/internal/image"
	"github.com/gogpu/composite/internal/parallel"
	"github.com/gogpu/composite/internal/pixel"
)

// Composite combines src onto dst with op. The source's top-left corner
// is placed at (x, y) in dst; offsets may be negative or place the source
// partly or wholly outside dst.
//
// Operator arguments are read from the ArgsArtifact of src, or of dst
// when src has none. OutsideOverlayArtifact overrides the operator's
// default handling of destination pixels the source does not cover.
//
// A Gray destination is promoted to RGB. CopyOpacity and ChangeMask turn
// the destination matte on.
//
// A nil error means every row was composited. Otherwise the error wraps
// ErrNilImage, ErrInvalidOperator, ErrAllocation, ErrPixelIO or
// ErrCanceled, and is also recorded in dst's exception log. On
// ErrPixelIO the rows that could be processed are still written.
func Composite(ctx context.Context, dst *Image, op Operator, src *Image, x, y int, opts ...Option) error {
	c := newCompositor(ctx, newOptions(opts))
	defer c.close()
	return c.composite(dst, op, src, x, y)
}

// compositor runs composites on one worker pool.
type compositor struct {
	ctx  context.Context
	opts options
	pool *parallel.WorkerPool
}

func newCompositor(ctx context.Context, o options) *compositor {
	if ctx == nil {
		ctx = context.Background()
	}
	return &compositor{
		ctx:  ctx,
		opts: o,
		pool: parallel.NewWorkerPool(o.workers),
	}
}

func (c *compositor) close() {
	c.pool.Close()
}

// progress adapts the monitor for a row pass.
func (c *compositor) progress(tag string) parallel.ProgressFunc {
	m := c.opts.monitor
	if m == nil {
		return nil
	}
	return func(done, total int64) bool {
		return m(tag, done, total)
	}
}

// overlay is where the main loop reads source pixels. Overlay pixel
// (u, v) is cache pixel (u+ox, v+oy).
type overlay struct {
	cache   intImage.Cache
	cs      Colorspace
	matte   bool
	virtual VirtualPixelMethod
	ox, oy  int

	width, height int
}

func (o *overlay) view() *intImage.View {
	return intImage.NewView(o.cache, o.cs, !o.matte, o.virtual)
}

func (c *compositor) composite(dst *Image, op Operator, src *Image, x, y int) error {
	if dst == nil || src == nil {
		return ErrNilImage
	}
	if !op.Valid() {
		err := fmt.Errorf("%w: %d", ErrInvalidOperator, uint8(op))
		dst.exceptions.push(Error, err)
		return err
	}
	err := c.run(dst, op, src, x, y)
	if err != nil {
		dst.exceptions.push(Error, err)
	}
	return err
}

func (c *compositor) run(dst *Image, op Operator, src *Image, x, y int) error {
	if dst.colorspace == Gray {
		dst.colorspace = RGB
	}
	log := Logger()

	if c.fastCopy(dst, op, src, x, y) {
		log.Debug("composite: row copy", "op", op, "x", x, "y", y)
		return c.copyRows(dst, src, x, y)
	}

	p := newPlan(op, dst, src, c.opts.channels)
	if !dst.matte && p.needsMatte() {
		dst.SetMatte(true)
	}

	ov := &overlay{
		cache:   src.cache,
		cs:      src.colorspace,
		matte:   src.matte,
		virtual: src.virtual,
		width:   src.Width(),
		height:  src.Height(),
	}
	if p.info.field {
		field, err := synthesize(c.ctx, c.pool, c.opts, op, dst, src, x, y)
		if err != nil {
			return err
		}
		defer intImage.PutToDefault(field)
		ov.cache = field
		ov.cs = dst.colorspace
		ov.matte = dst.matte
		ov.virtual = dst.virtual
		ov.ox, ov.oy = x, y
	} else if src.cache == dst.cache {
		// Rows written by the loop must not feed later rows.
		clone, err := pooledClone(src)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer intImage.PutToDefault(clone)
		ov.cache = clone
	}

	log.Debug("composite",
		"op", op,
		"x", x,
		"y", y,
		"channels", c.opts.channels,
		"modifyOutside", p.modifyOutside)

	return c.loop(dst, &p, ov, x, y)
}

// loop composites every destination row.
func (c *compositor) loop(dst *Image, p *plan, ov *overlay, x, y int) error {
	dw := dst.Width()
	dcs := dst.colorspace
	rows := parallel.Rows{
		Height:    dst.Height(),
		ChunkSize: c.opts.chunkSize,
		Progress:  c.progress(CompositeTag),
	}
	err := parallel.ForEachRow(c.ctx, c.pool, rows, func(row int) error {
		v := row - y
		covered := v >= 0 && v < ov.height
		x0, x1 := 0, dw
		if !p.modifyOutside {
			if !covered {
				return nil
			}
			x0, x1 = max(0, x), min(dw, x+ov.width)
			if x0 >= x1 {
				return nil
			}
		}
		n := x1 - x0

		dv := intImage.NewView(dst.cache, dcs, !dst.matte, dst.virtual)
		q, err := dv.Authentic(x0, row, n, 1)
		if err != nil {
			return rowError(row, err)
		}
		s, err := ov.view().Virtual(x0-x+ov.ox, v+ov.oy, n, 1)
		if err != nil {
			return rowError(row, err)
		}
		for i := range q {
			d := toAdditive(q[i], dcs, dcs)
			sp := toAdditive(s[i], ov.cs, dcs)
			u := x0 + i - x
			var r pixel.Pixel
			if covered && u >= 0 && u < ov.width {
				r = p.blend(sp, d)
			} else {
				r = p.outside(sp, d)
			}
			q[i] = fromAdditive(r, dcs)
		}
		if err := dv.Sync(); err != nil {
			return rowError(row, err)
		}
		return nil
	})
	return translate(err)
}

// fastCopy reports whether the source can be copied row by row: Copy,
// or Over with no alpha on either side, with the source inside dst and
// sharing its storage format.
func (c *compositor) fastCopy(dst *Image, op Operator, src *Image, x, y int) bool {
	switch {
	case op == Copy:
	case op == Over && !dst.matte && !src.matte:
	default:
		return false
	}
	if x < 0 || y < 0 || x+src.Width() > dst.Width() || y+src.Height() > dst.Height() {
		return false
	}
	return dst.cache.Format() == src.cache.Format()
}

func (c *compositor) copyRows(dst, src *Image, x, y int) error {
	rows := parallel.Rows{
		Height:    src.Height(),
		ChunkSize: c.opts.chunkSize,
		Progress:  c.progress(CompositeTag),
	}
	w := src.Width()
	err := parallel.ForEachRow(c.ctx, c.pool, rows, func(v int) error {
		dv := intImage.NewView(dst.cache, dst.colorspace, !dst.matte, dst.virtual)
		sv := intImage.NewView(src.cache, src.colorspace, !src.matte, src.virtual)
		if err := dv.CopyRaw(sv, 0, v, x, y+v, w); err != nil {
			return rowError(y+v, err)
		}
		return nil
	})
	return translate(err)
}

func rowError(y int, err error) error {
	return fmt.Errorf("row %d: %w: %w", y, ErrPixelIO, err)
}

// translate maps the row driver's cancellation onto ErrCanceled. Row
// failures already wrap ErrPixelIO.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, parallel.ErrCanceled) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return err
}
