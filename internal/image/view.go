package image

import (
	"fmt"

	"github.com/gogpu/composite/internal/pixel"
)

// View reads and writes a Cache on behalf of one goroutine.
//
// Virtual reads accept any coordinates and resolve out-of-bounds pixels
// with the view's VirtualPixelMethod. Authentic reads are bounds-checked
// and return a staging slice that Sync writes back to the cache.
//
// A view opened with opaque set reads alpha as fully opaque and stores
// every written pixel opaque, which models an image whose alpha channel
// is inactive.
//
// Thread safety: a View must not be shared between goroutines.
type View struct {
	cache      Cache
	method     VirtualPixelMethod
	colorspace pixel.Colorspace
	opaque     bool

	virtual []pixel.Pixel
	single  [1]pixel.Pixel

	staging  []pixel.Pixel
	stageX   int
	stageY   int
	stageW   int
	stageH   int
	stageSet bool
}

// NewView creates a view over c. Pixels are tagged with colorspace cs.
func NewView(c Cache, cs pixel.Colorspace, opaque bool, method VirtualPixelMethod) *View {
	return &View{
		cache:      c,
		method:     method,
		colorspace: cs,
		opaque:     opaque,
	}
}

// Width returns the width of the underlying cache.
func (v *View) Width() int { return v.cache.Width() }

// Height returns the height of the underlying cache.
func (v *View) Height() int { return v.cache.Height() }

// Virtual returns width*height pixels starting at (x, y) in row-major
// order. The slice is owned by the view and valid until its next call.
func (v *View) Virtual(x, y, width, height int) ([]pixel.Pixel, error) {
	n := width * height
	if cap(v.virtual) < n {
		v.virtual = make([]pixel.Pixel, n)
	}
	out := v.virtual[:n]
	for row := range height {
		if err := v.virtualRow(out[row*width:(row+1)*width], x, y+row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// VirtualPixel returns the pixel at (x, y) under the virtual method.
func (v *View) VirtualPixel(x, y int) (pixel.Pixel, error) {
	if err := v.virtualRow(v.single[:], x, y); err != nil {
		return pixel.Pixel{}, err
	}
	return v.single[0], nil
}

func (v *View) virtualRow(dst []pixel.Pixel, x, y int) error {
	w, h := v.cache.Width(), v.cache.Height()
	if y >= 0 && y < h && x >= 0 && x+len(dst) <= w {
		if err := v.cache.ReadRow(dst, x, y); err != nil {
			return err
		}
		v.tag(dst)
		return nil
	}

	constant, isConstant := v.method.constant(v.colorspace)
	yInside := y >= 0 && y < h
	my := v.method.mapCoord(y, h)
	for i := range dst {
		px := x + i
		if isConstant && (!yInside || px < 0 || px >= w) {
			dst[i] = constant
			continue
		}
		if err := v.cache.ReadRow(dst[i:i+1], v.method.mapCoord(px, w), my); err != nil {
			return err
		}
	}
	v.tag(dst)
	return nil
}

// tag applies the colorspace and the inactive-alpha rule to fresh pixels.
func (v *View) tag(dst []pixel.Pixel) {
	for i := range dst {
		dst[i].Colorspace = v.colorspace
		if v.opaque {
			dst[i].Alpha = pixel.QuantumRange
		}
	}
}

// Authentic returns the width*height pixels at (x, y) for modification.
// The region must lie inside the image. Changes reach the cache on Sync.
func (v *View) Authentic(x, y, width, height int) ([]pixel.Pixel, error) {
	if x < 0 || y < 0 || width < 0 || height < 0 ||
		x+width > v.cache.Width() || y+height > v.cache.Height() {
		return nil, fmt.Errorf("authentic %dx%d+%d+%d: %w", width, height, x, y, ErrOutOfBounds)
	}
	n := width * height
	if cap(v.staging) < n {
		v.staging = make([]pixel.Pixel, n)
	}
	out := v.staging[:n]
	for row := range height {
		if err := v.cache.ReadRow(out[row*width:(row+1)*width], x, y+row); err != nil {
			v.stageSet = false
			return nil, err
		}
	}
	v.tag(out)
	v.stageX, v.stageY, v.stageW, v.stageH = x, y, width, height
	v.stageSet = true
	return out, nil
}

// Sync writes the pixels returned by the last Authentic call back to the
// cache.
func (v *View) Sync() error {
	if !v.stageSet {
		return nil
	}
	v.stageSet = false
	out := v.staging[:v.stageW*v.stageH]
	if v.opaque {
		for i := range out {
			out[i].Alpha = pixel.QuantumRange
		}
	}
	for row := range v.stageH {
		if err := v.cache.WriteRow(out[row*v.stageW:(row+1)*v.stageW], v.stageX, v.stageY+row); err != nil {
			return err
		}
	}
	return nil
}

// CopyRaw copies n pixels of samples from src at (sx, sy) to this view's
// cache at (dx, dy). Both caches must share a format. The source span is
// read virtually, wrapping with src's method, which lets a tile be read
// past its edge.
func (v *View) CopyRaw(src *View, sx, sy, dx, dy, n int) error {
	f := v.cache.Format()
	if src.cache.Format() != f {
		return ErrFormatMismatch
	}
	ch := f.Channels()
	buf := make([]uint16, n*ch)

	sw, sh := src.cache.Width(), src.cache.Height()
	my := src.method.mapCoord(sy, sh)
	for off := 0; off < n; {
		mx := src.method.mapCoord(sx+off, sw)
		run := min(n-off, sw-mx)
		if err := src.cache.ReadRaw(buf[off*ch:(off+run)*ch], mx, my, run); err != nil {
			return err
		}
		off += run
	}
	if src.opaque || v.opaque {
		for i := f.alphaIndex(); i < len(buf); i += ch {
			buf[i] = uint16(pixel.QuantumRange)
		}
	}
	return v.cache.WriteRaw(buf, dx, dy, n)
}
