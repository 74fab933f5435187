package image

import (
	"errors"

	"github.com/gogpu/composite/internal/pixel"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrTooLarge is returned when a buffer would exceed MaxPixels.
	ErrTooLarge = errors.New("image: buffer exceeds pixel limit")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrFormatMismatch is returned by raw copies between different formats.
	ErrFormatMismatch = errors.New("image: format mismatch")
)

// MaxPixels caps the pixel count of a single buffer.
var MaxPixels = 1 << 28

// Cache is the pixel-access abstraction under a View. Rows are addressed
// by their leftmost pixel; callers keep every span inside the bounds.
type Cache interface {
	Width() int
	Height() int
	Format() Format

	// ReadRow fills dst with len(dst) pixels starting at (x, y).
	ReadRow(dst []pixel.Pixel, x, y int) error

	// WriteRow stores src starting at (x, y).
	WriteRow(src []pixel.Pixel, x, y int) error

	// ReadRaw copies n pixels of samples starting at (x, y) into dst.
	ReadRaw(dst []uint16, x, y, n int) error

	// WriteRaw stores n pixels of samples starting at (x, y).
	WriteRaw(src []uint16, x, y, n int) error
}

// Buffer is an in-memory Cache holding 16-bit samples.
//
// Thread safety: concurrent access to disjoint rows is safe; anything
// else requires external synchronization.
type Buffer struct {
	data   []uint16
	width  int
	height int
	stride int // samples per row
	format Format
}

// NewBuffer creates a zeroed buffer with the given dimensions and format.
func NewBuffer(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if width > MaxPixels/height {
		return nil, ErrTooLarge
	}

	stride := width * format.Channels()
	return &Buffer{
		data:   make([]uint16, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Format returns the storage format.
func (b *Buffer) Format() Format { return b.format }

// Bounds returns the width and height.
func (b *Buffer) Bounds() (width, height int) {
	return b.width, b.height
}

// InBounds reports whether a span of n pixels at (x, y) lies inside.
func (b *Buffer) InBounds(x, y, n int) bool {
	return y >= 0 && y < b.height && x >= 0 && n >= 0 && x+n <= b.width
}

func (b *Buffer) offset(x, y int) int {
	return y*b.stride + x*b.format.Channels()
}

// ReadRow implements Cache.
func (b *Buffer) ReadRow(dst []pixel.Pixel, x, y int) error {
	if !b.InBounds(x, y, len(dst)) {
		return ErrOutOfBounds
	}
	n := b.format.Channels()
	black := b.format.Info().HasBlack
	off := b.offset(x, y)
	for i := range dst {
		s := b.data[off : off+n : off+n]
		p := pixel.Pixel{
			Red:   float64(s[0]),
			Green: float64(s[1]),
			Blue:  float64(s[2]),
			Alpha: float64(s[n-1]),
		}
		if black {
			p.Black = float64(s[3])
		}
		dst[i] = p
		off += n
	}
	return nil
}

// WriteRow implements Cache.
func (b *Buffer) WriteRow(src []pixel.Pixel, x, y int) error {
	if !b.InBounds(x, y, len(src)) {
		return ErrOutOfBounds
	}
	n := b.format.Channels()
	black := b.format.Info().HasBlack
	off := b.offset(x, y)
	for _, p := range src {
		s := b.data[off : off+n : off+n]
		s[0] = pixel.Quantize(p.Red)
		s[1] = pixel.Quantize(p.Green)
		s[2] = pixel.Quantize(p.Blue)
		if black {
			s[3] = pixel.Quantize(p.Black)
		}
		s[n-1] = pixel.Quantize(p.Alpha)
		off += n
	}
	return nil
}

// ReadRaw implements Cache.
func (b *Buffer) ReadRaw(dst []uint16, x, y, n int) error {
	if !b.InBounds(x, y, n) {
		return ErrOutOfBounds
	}
	off := b.offset(x, y)
	copy(dst, b.data[off:off+n*b.format.Channels()])
	return nil
}

// WriteRaw implements Cache.
func (b *Buffer) WriteRaw(src []uint16, x, y, n int) error {
	if !b.InBounds(x, y, n) {
		return ErrOutOfBounds
	}
	off := b.offset(x, y)
	copy(b.data[off:off+n*b.format.Channels()], src)
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.data = make([]uint16, len(b.data))
	copy(c.data, b.data)
	return &c
}

// CopyFrom overwrites b with the samples of src, which must have the same
// dimensions and format.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if b.width != src.width || b.height != src.height {
		return ErrInvalidDimensions
	}
	if b.format != src.format {
		return ErrFormatMismatch
	}
	copy(b.data, src.data)
	return nil
}

// Fill sets every pixel to p.
func (b *Buffer) Fill(p pixel.Pixel) {
	row := make([]pixel.Pixel, b.width)
	for i := range row {
		row[i] = p
	}
	for y := range b.height {
		_ = b.WriteRow(row, 0, y)
	}
}

// SetAlpha sets the alpha sample of every pixel to a.
func (b *Buffer) SetAlpha(a uint16) {
	n := b.format.Channels()
	for i := b.format.alphaIndex(); i < len(b.data); i += n {
		b.data[i] = a
	}
}

// Clear zeroes every sample.
func (b *Buffer) Clear() {
	clear(b.data)
}
