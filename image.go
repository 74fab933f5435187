package composite

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/exp/slices"
	"golang.org/x/image/draw"

	intImage "github.com/gogpu/composite/internal/image"
	"github.com/gogpu/composite/internal/pixel"
)

// QuantumRange is the largest sample value.
const QuantumRange = 65535

// Colorspace is the color model of an Image.
type Colorspace = pixel.Colorspace

// Colorspaces.
const (
	RGB  = pixel.RGB
	Gray = pixel.Gray
	CMYK = pixel.CMYK
)

// VirtualPixelMethod decides what reads outside an image return.
type VirtualPixelMethod = intImage.VirtualPixelMethod

// Virtual pixel methods.
const (
	VirtualEdge        = intImage.VirtualEdge
	VirtualTile        = intImage.VirtualTile
	VirtualMirror      = intImage.VirtualMirror
	VirtualTransparent = intImage.VirtualTransparent
	VirtualBlack       = intImage.VirtualBlack
	VirtualWhite       = intImage.VirtualWhite
)

// Sample is one stored pixel. For CMYK images Red, Green and Blue hold
// cyan, magenta and yellow. Alpha is QuantumRange for opaque pixels.
type Sample struct {
	Red, Green, Blue, Black, Alpha uint16
}

// Image is a raster with the metadata the compositor reads: colorspace,
// whether the alpha channel is active (matte), the default operator used
// by Texture, a tile offset, the virtual pixel method, a fuzz distance
// and a set of string artifacts.
//
// An image without matte always stores fully opaque alpha.
//
// Thread safety: an Image must not be modified while a Composite or
// Texture call that uses it is running.
type Image struct {
	cache      intImage.Cache
	colorspace Colorspace
	matte      bool
	compose    Operator
	tileOffset image.Point
	virtual    VirtualPixelMethod
	fuzz       float64
	artifacts  map[string]string
	exceptions exceptionLog
}

// NewImage returns an opaque black image without matte.
func NewImage(width, height int, cs Colorspace) (*Image, error) {
	buf, err := intImage.NewBuffer(width, height, formatFor(cs))
	if err != nil {
		return nil, fmt.Errorf("composite: new %dx%d image: %w", width, height, err)
	}
	buf.SetAlpha(QuantumRange)
	return newImage(buf, cs), nil
}

func newImage(c intImage.Cache, cs Colorspace) *Image {
	return &Image{
		cache:      c,
		colorspace: cs,
		compose:    Over,
		virtual:    VirtualEdge,
	}
}

func formatFor(cs Colorspace) intImage.Format {
	if cs.Subtractive() {
		return intImage.FormatCMYKA16
	}
	return intImage.FormatRGBA16
}

// FromImage copies img into a new RGB image. The matte is enabled unless
// img reports itself opaque.
func FromImage(img image.Image) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	b := img.Bounds()
	nrgba := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	buf, err := intImage.NewBuffer(b.Dx(), b.Dy(), intImage.FormatRGBA16)
	if err != nil {
		return nil, fmt.Errorf("composite: from image: %w", err)
	}
	row := make([]pixel.Pixel, b.Dx())
	for y := range b.Dy() {
		for x := range row {
			c := nrgba.NRGBA64At(x, y)
			row[x] = pixel.Pixel{
				Red:   float64(c.R),
				Green: float64(c.G),
				Blue:  float64(c.B),
				Alpha: float64(c.A),
			}
		}
		if err := buf.WriteRow(row, 0, y); err != nil {
			return nil, err
		}
	}

	im := newImage(buf, RGB)
	im.matte = !nrgba.Opaque()
	return im, nil
}

// ToImage converts the image to non-premultiplied RGBA. CMYK samples are
// converted with R = (1-C)(1-K).
func (im *Image) ToImage() *image.NRGBA64 {
	w, h := im.Width(), im.Height()
	out := image.NewNRGBA64(image.Rect(0, 0, w, h))
	row := make([]pixel.Pixel, w)
	for y := range h {
		if err := im.cache.ReadRow(row, 0, y); err != nil {
			continue
		}
		for x, p := range row {
			if im.colorspace.Subtractive() {
				k := pixel.QuantumScale * (pixel.QuantumRange - p.Black)
				p.Red = (pixel.QuantumRange - p.Red) * k
				p.Green = (pixel.QuantumRange - p.Green) * k
				p.Blue = (pixel.QuantumRange - p.Blue) * k
			}
			out.SetNRGBA64(x, y, color.NRGBA64{
				R: pixel.Quantize(p.Red),
				G: pixel.Quantize(p.Green),
				B: pixel.Quantize(p.Blue),
				A: pixel.Quantize(p.Alpha),
			})
		}
	}
	return out
}

// Width returns the width in pixels.
func (im *Image) Width() int { return im.cache.Width() }

// Height returns the height in pixels.
func (im *Image) Height() int { return im.cache.Height() }

// Bounds returns the image rectangle with its origin at (0, 0).
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.Width(), im.Height())
}

// Colorspace returns the color model.
func (im *Image) Colorspace() Colorspace { return im.colorspace }

// Matte reports whether the alpha channel is active.
func (im *Image) Matte() bool { return im.matte }

// SetMatte activates or deactivates the alpha channel. Either way the
// stored alpha becomes opaque unless the matte was already on.
func (im *Image) SetMatte(on bool) {
	if on == im.matte {
		return
	}
	im.matte = on
	im.resetAlpha()
}

func (im *Image) resetAlpha() {
	if b, ok := im.cache.(*intImage.Buffer); ok {
		b.SetAlpha(QuantumRange)
		return
	}
	row := make([]pixel.Pixel, im.Width())
	for y := range im.Height() {
		if im.cache.ReadRow(row, 0, y) != nil {
			continue
		}
		for i := range row {
			row[i].Alpha = pixel.QuantumRange
		}
		_ = im.cache.WriteRow(row, 0, y)
	}
}

// Compose returns the default operator used by Texture.
func (im *Image) Compose() Operator { return im.compose }

// SetCompose sets the default operator.
func (im *Image) SetCompose(op Operator) { im.compose = op }

// TileOffset returns the tile offset used when the image is a texture.
func (im *Image) TileOffset() image.Point { return im.tileOffset }

// SetTileOffset sets the tile offset. The texture pixel at the offset is
// placed at the canvas origin.
func (im *Image) SetTileOffset(p image.Point) { im.tileOffset = p }

// VirtualPixelMethod returns the method used for out-of-bounds reads.
func (im *Image) VirtualPixelMethod() VirtualPixelMethod { return im.virtual }

// SetVirtualPixelMethod sets the method used for out-of-bounds reads.
func (im *Image) SetVirtualPixelMethod(m VirtualPixelMethod) { im.virtual = m }

// ParseVirtualPixelMethod returns the method with the given name, ignoring
// case. "Edge", "Tile", "Mirror", "Transparent", "Black" and "White" are
// accepted.
func ParseVirtualPixelMethod(s string) (VirtualPixelMethod, error) {
	name := foldName(s)
	for m := VirtualEdge; m <= VirtualWhite; m++ {
		if foldName(m.String()) == name {
			return m, nil
		}
	}
	return VirtualEdge, fmt.Errorf("%w: %q", ErrInvalidVirtualPixelMethod, s)
}

// Fuzz returns the color distance, in quantum units, under which two
// colors are considered equal.
func (im *Image) Fuzz() float64 { return im.fuzz }

// SetFuzz sets the fuzz distance.
func (im *Image) SetFuzz(f float64) { im.fuzz = f }

// Sample returns the stored pixel at (x, y), or the zero Sample outside
// the image.
func (im *Image) Sample(x, y int) Sample {
	var row [1]pixel.Pixel
	if x < 0 || y < 0 || x >= im.Width() || y >= im.Height() {
		return Sample{}
	}
	if im.cache.ReadRow(row[:], x, y) != nil {
		return Sample{}
	}
	p := row[0]
	return Sample{
		Red:   pixel.Quantize(p.Red),
		Green: pixel.Quantize(p.Green),
		Blue:  pixel.Quantize(p.Blue),
		Black: pixel.Quantize(p.Black),
		Alpha: pixel.Quantize(p.Alpha),
	}
}

// SetSample stores s at (x, y). Without matte the alpha is stored opaque.
func (im *Image) SetSample(x, y int, s Sample) error {
	p := pixel.Pixel{
		Red:   float64(s.Red),
		Green: float64(s.Green),
		Blue:  float64(s.Blue),
		Black: float64(s.Black),
		Alpha: float64(s.Alpha),
	}
	if !im.matte {
		p.Alpha = pixel.QuantumRange
	}
	if x < 0 || y < 0 || x >= im.Width() || y >= im.Height() {
		return fmt.Errorf("composite: set sample (%d,%d): %w", x, y, intImage.ErrOutOfBounds)
	}
	return im.cache.WriteRow([]pixel.Pixel{p}, x, y)
}

// Fill sets every pixel to s.
func (im *Image) Fill(s Sample) error {
	for y := range im.Height() {
		for x := range im.Width() {
			if err := im.SetSample(x, y, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clone returns a deep copy with the same metadata and artifacts. The
// exception log is not copied.
func (im *Image) Clone() (*Image, error) {
	buf, err := copyCache(im.cache)
	if err != nil {
		return nil, fmt.Errorf("composite: clone: %w", err)
	}
	c := newImage(buf, im.colorspace)
	c.matte = im.matte
	c.compose = im.compose
	c.tileOffset = im.tileOffset
	c.virtual = im.virtual
	c.fuzz = im.fuzz
	for _, k := range im.Artifacts() {
		c.SetArtifact(k, im.artifacts[k])
	}
	return c, nil
}

// copyCache copies any cache into a new Buffer.
func copyCache(c intImage.Cache) (*intImage.Buffer, error) {
	if b, ok := c.(*intImage.Buffer); ok {
		return b.Clone(), nil
	}
	buf, err := intImage.NewBuffer(c.Width(), c.Height(), c.Format())
	if err != nil {
		return nil, err
	}
	if err := copyRows(buf, c); err != nil {
		return nil, err
	}
	return buf, nil
}

func copyRows(dst, src intImage.Cache) error {
	w := src.Width()
	raw := make([]uint16, w*src.Format().Channels())
	for y := range src.Height() {
		if err := src.ReadRaw(raw, 0, y, w); err != nil {
			return err
		}
		if err := dst.WriteRaw(raw, 0, y, w); err != nil {
			return err
		}
	}
	return nil
}

// Exceptions returns a copy of the diagnostics recorded on the image.
func (im *Image) Exceptions() []Exception {
	return im.exceptions.list()
}

// ClearExceptions empties the exception log.
func (im *Image) ClearExceptions() {
	im.exceptions.clear()
}

// SetArtifact stores a string annotation.
func (im *Image) SetArtifact(key, value string) {
	if im.artifacts == nil {
		im.artifacts = make(map[string]string)
	}
	im.artifacts[key] = value
}

// Artifact returns the annotation stored under key.
func (im *Image) Artifact(key string) (string, bool) {
	v, ok := im.artifacts[key]
	return v, ok
}

// DeleteArtifact removes an annotation.
func (im *Image) DeleteArtifact(key string) {
	delete(im.artifacts, key)
}

// Artifacts returns the annotation keys in sorted order.
func (im *Image) Artifacts() []string {
	keys := make([]string, 0, len(im.artifacts))
	for k := range im.artifacts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
