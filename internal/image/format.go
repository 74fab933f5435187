// Package image implements the 16-bit pixel cache behind composite images
// and the views used to read and write it.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGBA16 stores red, green, blue and alpha, 16 bits each.
	FormatRGBA16 Format = iota

	// FormatCMYKA16 stores cyan, magenta, yellow, black and alpha,
	// 16 bits each.
	FormatCMYKA16

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of samples per pixel, alpha included.
	Channels int

	// HasBlack indicates a separate black sample before alpha.
	HasBlack bool

	// BitsPerChannel is the number of bits per sample.
	BitsPerChannel int
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA16: {
		Channels:       4,
		HasBlack:       false,
		BitsPerChannel: 16,
	},
	FormatCMYKA16: {
		Channels:       5,
		HasBlack:       true,
		BitsPerChannel: 16,
	},
}

// Info returns the FormatInfo for this format.
// Returns a zero FormatInfo for invalid formats.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid returns true if f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// Channels returns the number of samples per pixel.
func (f Format) Channels() int {
	return f.Info().Channels
}

// alphaIndex is the sample offset of alpha within a pixel.
func (f Format) alphaIndex() int {
	return f.Info().Channels - 1
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA16:
		return "RGBA16"
	case FormatCMYKA16:
		return "CMYKA16"
	default:
		return "Unknown"
	}
}
