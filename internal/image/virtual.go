package image

import "github.com/gogpu/composite/internal/pixel"

// VirtualPixelMethod determines what a read outside the image returns.
type VirtualPixelMethod uint8

const (
	// VirtualEdge clamps coordinates to the nearest edge pixel (default).
	VirtualEdge VirtualPixelMethod = iota

	// VirtualTile wraps coordinates around the image.
	VirtualTile

	// VirtualMirror reflects the image at its boundaries.
	VirtualMirror

	// VirtualTransparent returns transparent black.
	VirtualTransparent

	// VirtualBlack returns opaque black.
	VirtualBlack

	// VirtualWhite returns opaque white.
	VirtualWhite
)

// String returns a string representation of the method.
func (m VirtualPixelMethod) String() string {
	switch m {
	case VirtualEdge:
		return "Edge"
	case VirtualTile:
		return "Tile"
	case VirtualMirror:
		return "Mirror"
	case VirtualTransparent:
		return "Transparent"
	case VirtualBlack:
		return "Black"
	case VirtualWhite:
		return "White"
	default:
		return "Unknown"
	}
}

// constant reports whether out-of-bounds reads yield a fixed color, and
// returns it.
func (m VirtualPixelMethod) constant(cs pixel.Colorspace) (pixel.Pixel, bool) {
	var p pixel.Pixel
	switch m {
	case VirtualTransparent:
	case VirtualBlack:
		p.Alpha = pixel.QuantumRange
	case VirtualWhite:
		p = pixel.Pixel{
			Red:   pixel.QuantumRange,
			Green: pixel.QuantumRange,
			Blue:  pixel.QuantumRange,
			Alpha: pixel.QuantumRange,
		}
	default:
		return p, false
	}
	p.Colorspace = cs
	if cs.Subtractive() {
		// Stored samples are subtractive: white is no ink, black is full K.
		switch m {
		case VirtualWhite:
			p.Red, p.Green, p.Blue = 0, 0, 0
		case VirtualBlack:
			p.Black = pixel.QuantumRange
		}
	}
	return p, true
}

// mapCoord maps c into [0, size) for the coordinate-remapping methods.
func (m VirtualPixelMethod) mapCoord(c, size int) int {
	switch m {
	case VirtualTile:
		return floorMod(c, size)
	case VirtualMirror:
		c = floorMod(c, 2*size)
		if c >= size {
			c = 2*size - 1 - c
		}
		return c
	default:
		return clamp(c, 0, size-1)
	}
}

// floorMod returns c mod n in [0, n).
func floorMod(c, n int) int {
	c %= n
	if c < 0 {
		c += n
	}
	return c
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
