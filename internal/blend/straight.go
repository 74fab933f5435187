package blend

import "github.com/gogpu/composite/internal/pixel"

// Straight functions receive non-premultiplied channels (Sc, Sa, Dc, Da)
// and still return a premultiplied result.

// overStraight is the over primitive on straight channels:
// Sa*Sc - Sa*Da*Dc + Da*Dc.
func overStraight(sc, sa, dc, da float64) float64 {
	return sa*sc - sa*da*dc + da*dc
}

// Darken overlays the darker of the two channels on the other.
func Darken(sc, sa, dc, da float64) float64 {
	if sc < dc {
		return overStraight(sc, sa, dc, da)
	}
	return overStraight(dc, da, sc, sa)
}

// Lighten overlays the lighter of the two channels on the other.
func Lighten(sc, sa, dc, da float64) float64 {
	if sc > dc {
		return overStraight(sc, sa, dc, da)
	}
	return overStraight(dc, da, sc, sa)
}

// wrap is one past the largest normalized sample.
const wrap = 1 + pixel.QuantumScale

// ModulusAdd adds with wraparound at one past the largest sample.
func ModulusAdd(sc, sa, dc, da float64) float64 {
	v := sc + dc
	if v > 1 {
		v -= wrap
	}
	return v*sa*da + sc*sa*(1-da) + dc*da*(1-sa)
}

// ModulusSubtract subtracts the destination from the source with
// wraparound at one past the largest sample.
func ModulusSubtract(sc, sa, dc, da float64) float64 {
	v := sc - dc
	if v < 0 {
		v += wrap
	}
	return v*sa*da + sc*sa*(1-da) + dc*da*(1-sa)
}
