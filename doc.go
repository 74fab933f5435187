// Package composite combines raster images with a closed set of
// compositing operators and tiles textures across a canvas.
//
// # Overview
//
// An Image is a 16-bit raster in RGB, Gray or CMYK with an optional
// alpha channel (the matte). Composite places a source image at an
// offset on a destination and combines overlapping pixels with an
// Operator. Texture repeats a tile across the destination.
//
// # Quick Start
//
//	dst, _ := composite.NewImage(640, 480, composite.RGB)
//	src, _ := composite.FromImage(photo)
//
//	err := composite.Composite(ctx, dst, composite.Multiply, src, 10, 20)
//
// # Operators
//
// The Porter-Duff family (Over, In, Out, Atop, Xor and their Dst forms),
// the arithmetic and lighting blends (Plus, Multiply, Screen, Overlay,
// SoftLight, ...), the HSB operators (Hue, Saturate, Luminize, Colorize,
// Modulate), channel copies, and the map-driven operators Blur, Displace
// and Distort are all listed as Operator constants.
//
// Numeric arguments come from the "compose:args" artifact, a geometry
// string such as "60" (Dissolve), "3x1+45" (Blur) or "0,1,1,-0.5"
// (Mathematics):
//
//	src.SetArtifact(composite.ArgsArtifact, "60")
//	err := composite.Composite(ctx, dst, composite.Dissolve, src, 0, 0)
//
// Malformed arguments are replaced by the operator's defaults, logged at
// warning level and recorded in the destination's exception log.
//
// # Channels
//
// Channel-aware operators such as Plus, Multiply and Darken accept a
// ChannelMask. In Synced mode the pixel is composited as a whole with
// alpha-weighted math; in Independent mode each selected channel,
// alpha included, is computed on its own:
//
//	composite.Composite(ctx, dst, composite.Plus, src, 0, 0,
//	    composite.WithChannels(composite.ChannelMask{
//	        Channels: composite.AlphaChannel,
//	        Mode:     composite.Independent,
//	    }))
//
// # Concurrency
//
// Rows are composited in parallel on a worker pool sized by WithWorkers.
// Progress is reported through WithMonitor; a monitor returning false, or
// a canceled context, stops the operation with ErrCanceled.
package composite
