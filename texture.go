package composite

import (
	"context"
	"errors"

	intImage "github.com/gogpu/composite/internal/image"
	"github.com/gogpu/composite/internal/parallel"
)

// Texture tiles tile across dst using dst.Compose(). The tile pixel at
// tile.TileOffset() lands on the destination origin.
//
// Copy, and Over when neither image has a matte, copy rows directly;
// every other operator composites the tile at each grid position. The
// monitor receives "Texture/Image" progress per tile row, and the inner
// composites report "Composite/Image" as usual.
func Texture(ctx context.Context, dst, tile *Image, opts ...Option) error {
	if dst == nil || tile == nil {
		return ErrNilImage
	}
	c := newCompositor(ctx, newOptions(opts))
	defer c.close()

	t := tiled(tile)
	if t.cache == dst.cache {
		clone, err := pooledClone(tile)
		if err != nil {
			dst.exceptions.push(Error, err)
			return err
		}
		defer intImage.PutToDefault(clone)
		t.cache = clone
	}
	op := dst.Compose()
	if c.fastCopyTexture(dst, op, t) {
		Logger().Debug("composite: texture row copy", "op", op)
		err := c.copyTexture(dst, t)
		if err != nil {
			dst.exceptions.push(Error, err)
		}
		return err
	}
	return c.texture(dst, op, t)
}

// tiled returns a view of tile that wraps around its edges.
func tiled(tile *Image) *Image {
	t := newImage(tile.cache, tile.colorspace)
	t.matte = tile.matte
	t.compose = tile.compose
	t.tileOffset = tile.tileOffset
	t.fuzz = tile.fuzz
	t.artifacts = tile.artifacts
	t.virtual = VirtualTile
	return t
}

func (c *compositor) fastCopyTexture(dst *Image, op Operator, t *Image) bool {
	switch {
	case op == Copy:
	case op == Over && !dst.matte && !t.matte:
	default:
		return false
	}
	return dst.cache.Format() == t.cache.Format()
}

// copyTexture copies each destination row from the wrapped tile row.
func (c *compositor) copyTexture(dst, t *Image) error {
	off := t.tileOffset
	w := dst.Width()
	rows := parallel.Rows{
		Height:    dst.Height(),
		ChunkSize: c.opts.chunkSize,
		Progress:  c.progress(TextureTag),
	}
	err := parallel.ForEachRow(c.ctx, c.pool, rows, func(y int) error {
		dv := intImage.NewView(dst.cache, dst.colorspace, !dst.matte, dst.virtual)
		tv := intImage.NewView(t.cache, t.colorspace, !t.matte, t.virtual)
		if err := dv.CopyRaw(tv, off.X, y+off.Y, 0, y, w); err != nil {
			return rowError(y, err)
		}
		return nil
	})
	return translate(err)
}

// texture composites the tile at every grid position covering dst. It
// stops at the first canceled composite or when the monitor or the
// context ends the pass between tile rows.
func (c *compositor) texture(dst *Image, op Operator, t *Image) error {
	tw, th := t.Width(), t.Height()
	dw, dh := dst.Width(), dst.Height()
	x0 := -floorMod(t.tileOffset.X, tw)
	y0 := -floorMod(t.tileOffset.Y, th)

	var errs []error
	for y := y0; y < dh; y += th {
		for x := x0; x < dw; x += tw {
			if err := c.composite(dst, op, t, x, y); err != nil {
				errs = append(errs, err)
				if errors.Is(err, ErrCanceled) {
					return errors.Join(errs...)
				}
			}
		}
		var stop error
		if m := c.opts.monitor; m != nil && !m(TextureTag, int64(min(y+th, dh)), int64(dh)) {
			stop = ErrCanceled
		} else if c.ctx.Err() != nil {
			stop = errors.Join(ErrCanceled, context.Cause(c.ctx))
		}
		if stop != nil {
			dst.exceptions.push(Error, stop)
			errs = append(errs, stop)
			break
		}
	}
	return errors.Join(errs...)
}

func floorMod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
