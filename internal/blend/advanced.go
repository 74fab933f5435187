package blend

import (
	"math"

	"github.com/gogpu/composite/internal/pixel"
)

// Multiply: Sca*Dca + Sca*(1-Da) + Dca*(1-Sa)
func Multiply(sca, sa, dca, da float64) float64 {
	return sca*dca + sca*(1-da) + dca*(1-sa)
}

// Screen: Sca + Dca - Sca*Dca
func Screen(sca, _, dca, _ float64) float64 {
	return sca + dca - sca*dca
}

// Exclusion: Sca*Da + Dca*Sa - 2*Sca*Dca + Sca*(1-Da) + Dca*(1-Sa)
func Exclusion(sca, sa, dca, da float64) float64 {
	return sca*da + dca*sa - 2*sca*dca + sca*(1-da) + dca*(1-sa)
}

// Difference: Sca + Dca - 2*min(Sca*Da, Dca*Sa)
func Difference(sca, sa, dca, da float64) float64 {
	return sca + dca - 2*math.Min(sca*da, dca*sa)
}

// Divide: f(Sc,Dc) = Sc/Dc
func Divide(sca, sa, dca, da float64) float64 {
	if nearZero(sca) && nearZero(dca) {
		return sca*(1-da) + dca*(1-sa)
	}
	if nearZero(dca) {
		return sa*da + sca*(1-da) + dca*(1-sa)
	}
	return sca*da*da/dca + sca*(1-da) + dca*(1-sa)
}

// Minus: f(Sc,Dc) = Sc - Dc
func Minus(sca, sa, dca, _ float64) float64 {
	return sca + dca - 2*dca*sa
}

// ColorDodge: f(Sc,Dc) = Dc/(1-Sc)
func ColorDodge(sca, sa, dca, da float64) float64 {
	if nearZero(sca-sa) && nearZero(dca) {
		return sca*(1-da) + dca*(1-sa)
	}
	if nearZero(sca - sa) {
		return sa*da + sca*(1-da) + dca*(1-sa)
	}
	return dca*sa*sa/(sa-sca) + sca*(1-da) + dca*(1-sa)
}

// ColorBurn: f(Sc,Dc) = 1 - (1-Dc)/Sc
func ColorBurn(sca, sa, dca, da float64) float64 {
	if nearZero(sca) && nearZero(dca-da) {
		return sa*da + dca*(1-sa)
	}
	if sca < pixel.Epsilon {
		return dca * (1 - sa)
	}
	return sa*da - sa*math.Min(da, (da-dca)*sa/sca) + sca*(1-da) + dca*(1-sa)
}

// HardLight multiplies or screens depending on the source.
// Overlay is HardLight with source and destination exchanged.
func HardLight(sca, sa, dca, da float64) float64 {
	if 2*sca < sa {
		return 2*sca*dca + sca*(1-da) + dca*(1-sa)
	}
	return sa*da - 2*(da-dca)*(sa-sca) + sca*(1-da) + dca*(1-sa)
}

// SoftLight follows the March 2009 SVG text.
func SoftLight(sca, sa, dca, da float64) float64 {
	var alpha float64
	if da > 0 {
		alpha = dca / da
	}
	switch {
	case 2*sca < sa:
		return dca*(sa+(2*sca-sa)*(1-alpha)) + sca*(1-da) + dca*(1-sa)
	case 2*sca > sa && 4*dca <= da:
		return dca*sa + da*(2*sca-sa)*(4*alpha*(4*alpha+1)*(alpha-1)+7*alpha) +
			sca*(1-da) + dca*(1-sa)
	default:
		return dca*sa + da*(2*sca-sa)*(math.Sqrt(alpha)-alpha) + sca*(1-da) + dca*(1-sa)
	}
}

// LinearBurn: f(Sc,Dc) = Sc + Dc - 1
func LinearBurn(sca, sa, dca, da float64) float64 {
	return sca + dca - sa*da
}

// LinearLight: f(Sc,Dc) = Dc + 2*Sc - 1
func LinearLight(sca, sa, dca, da float64) float64 {
	return (sca-sa)*da + sca + dca
}

// PegtopLight: f(Sc,Dc) = Dc*Dc*(1-2*Sc) + 2*Sc*Dc
func PegtopLight(sca, sa, dca, da float64) float64 {
	if nearZero(da) {
		return sca
	}
	return dca*dca*(sa-2*sca)/da + sca*(2*dca+1-da) + dca*(1-sa)
}

// VividLight: f(Sc,Dc) = 2*Sc < 1 ? 1-(1-Dc)/(2*Sc) : Dc/(2*(1-Sc))
func VividLight(sca, sa, dca, da float64) float64 {
	if nearZero(sa) || nearZero(sca-sa) {
		return sa*da + sca*(1-da) + dca*(1-sa)
	}
	if sca < pixel.Epsilon {
		return dca * (1 - sa)
	}
	if 2*sca <= sa {
		return sa*(da+sa*(dca-da)/(2*sca)) + sca*(1-da) + dca*(1-sa)
	}
	return dca*sa*sa/(2*(sa-sca)) + sca*(1-da) + dca*(1-sa)
}

// PinLight: f(Sc,Dc) = Dc < 2*Sc-1 ? 2*Sc-1 : Dc > 2*Sc ? 2*Sc : Dc
func PinLight(sca, sa, dca, da float64) float64 {
	if dca*sa < da*(2*sca-sa) {
		return sca*(da+1) - sa*da + dca*(1-sa)
	}
	if dca*sa > 2*sca*da {
		return sca*da + sca + dca*(1-sa)
	}
	return sca*(1-da) + dca
}

// Mathematics returns f(Sc,Dc) = A*Sc*Dc + B*Sc + C*Dc + D expanded over
// the disjoint regions of the two alphas.
func Mathematics(a, b, c, d float64) Func {
	return func(sca, sa, dca, da float64) float64 {
		return a*sca*dca + b*sca*da + c*dca*sa + d*sa*da + sca*(1-da) + dca*(1-sa)
	}
}
