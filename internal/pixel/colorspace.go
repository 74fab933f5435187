package pixel

// Colorspace identifies how the color channels of a pixel are interpreted.
type Colorspace uint8

const (
	// RGB is the additive sRGB model.
	RGB Colorspace = iota

	// Gray stores a single luminance replicated in red, green and blue.
	Gray

	// CMYK is the subtractive model; Black holds the K channel.
	CMYK
)

// String returns the colorspace name.
func (c Colorspace) String() string {
	switch c {
	case RGB:
		return "sRGB"
	case Gray:
		return "Gray"
	case CMYK:
		return "CMYK"
	default:
		return "Unknown"
	}
}

// Subtractive reports whether channels must be inverted before additive
// blend math is applied.
func (c Colorspace) Subtractive() bool {
	return c == CMYK
}
