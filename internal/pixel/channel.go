package pixel

// Channel is a set of pixel channels.
type Channel uint8

const (
	RedChannel Channel = 1 << iota
	GreenChannel
	BlueChannel
	BlackChannel
	AlphaChannel

	// CyanChannel, MagentaChannel and YellowChannel name the color
	// channels of a CMYK pixel.
	CyanChannel    = RedChannel
	MagentaChannel = GreenChannel
	YellowChannel  = BlueChannel

	// AllChannels selects every channel.
	AllChannels = RedChannel | GreenChannel | BlueChannel | BlackChannel | AlphaChannel
)

// Has reports whether every channel in c is in the set.
func (s Channel) Has(c Channel) bool {
	return s&c == c
}

// String lists the channel letters in RGBKA order.
func (s Channel) String() string {
	if s == 0 {
		return "None"
	}
	names := [...]struct {
		c Channel
		n byte
	}{
		{RedChannel, 'R'},
		{GreenChannel, 'G'},
		{BlueChannel, 'B'},
		{BlackChannel, 'K'},
		{AlphaChannel, 'A'},
	}
	buf := make([]byte, 0, len(names))
	for _, e := range names {
		if s&e.c != 0 {
			buf = append(buf, e.n)
		}
	}
	return string(buf)
}
