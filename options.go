package composite

import "github.com/gogpu/composite/internal/parallel"

// ProgressMonitor receives progress for a tagged operation. Returning
// false cancels the operation. Calls for one operation never overlap.
//
// Tags are "Composite/Image" and "Texture/Image".
type ProgressMonitor func(tag string, current, total int64) bool

// Progress tags.
const (
	CompositeTag = "Composite/Image"
	TextureTag   = "Texture/Image"
)

// Option configures a Composite or Texture call.
//
// Example:
//
//	err := composite.Composite(ctx, dst, composite.Plus, src, 0, 0,
//	    composite.WithChannels(composite.ChannelMask{
//	        Channels: composite.RedChannel,
//	        Mode:     composite.Independent,
//	    }))
type Option func(*options)

type options struct {
	channels  ChannelMask
	monitor   ProgressMonitor
	workers   int
	chunkSize int
}

func defaultOptions() options {
	return options{
		channels:  DefaultChannelMask,
		workers:   0, // GOMAXPROCS
		chunkSize: parallel.DefaultChunkSize,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithChannels sets the channel mask. Only channel-aware operators use
// it.
func WithChannels(m ChannelMask) Option {
	return func(o *options) {
		o.channels = m
	}
}

// WithMonitor installs a progress monitor.
func WithMonitor(m ProgressMonitor) Option {
	return func(o *options) {
		o.monitor = m
	}
}

// WithWorkers sets the number of worker goroutines. Zero or less means
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkSize sets how many rows a worker takes at a time.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}
