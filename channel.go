package composite

import (
	"github.com/gogpu/composite/internal/blend"
	"github.com/gogpu/composite/internal/pixel"
)

// Channel is a set of pixel channels.
type Channel = pixel.Channel

// Channels.
const (
	RedChannel     = pixel.RedChannel
	GreenChannel   = pixel.GreenChannel
	BlueChannel    = pixel.BlueChannel
	BlackChannel   = pixel.BlackChannel
	AlphaChannel   = pixel.AlphaChannel
	CyanChannel    = pixel.CyanChannel
	MagentaChannel = pixel.MagentaChannel
	YellowChannel  = pixel.YellowChannel
	AllChannels    = pixel.AllChannels

	// DefaultChannels is every color channel without alpha.
	DefaultChannels = RedChannel | GreenChannel | BlueChannel | BlackChannel
)

// ChannelMode selects how channel-aware operators treat a pixel.
type ChannelMode = blend.Mode

const (
	// Synced composites the whole pixel with alpha-aware math. The
	// channel set is ignored.
	Synced = blend.Synced

	// Independent applies the operator to each selected channel as a
	// plain value, alpha included when selected.
	Independent = blend.Independent
)

// ChannelMask pairs a channel set with a mode.
type ChannelMask struct {
	Channels Channel
	Mode     ChannelMode
}

// DefaultChannelMask is the mask used when none is given.
var DefaultChannelMask = ChannelMask{Channels: DefaultChannels, Mode: Synced}

// String returns a compact description such as "RGB/Independent".
func (m ChannelMask) String() string {
	return m.Channels.String() + "/" + m.Mode.String()
}
