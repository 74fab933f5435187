// Package blend implements the per-pixel compositing algebra.
//
// Channel functions follow the SVG 1.2 compositing convention: every
// argument is normalized to [0,1], color arguments are premultiplied
// (Sca = Sc*Sa), and the result is a premultiplied channel. The caller
// computes the result alpha once per pixel from an AlphaRule and divides
// the channel results by it.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - SVG Compositing Specification, W3C Working Draft, March 2009
package blend

// Func maps (Sca, Sa, Dca, Da) to a premultiplied result channel.
type Func func(sca, sa, dca, da float64) float64

// Over: Sca + Dca*(1-Sa)
func Over(sca, sa, dca, _ float64) float64 {
	return sca + dca*(1-sa)
}

// In: Sca*Da
func In(sca, _, _, da float64) float64 {
	return sca * da
}

// Out: Sca*(1-Da)
func Out(sca, _, _, da float64) float64 {
	return sca * (1 - da)
}

// Atop: Sca*Da + Dca*(1-Sa)
func Atop(sca, sa, dca, da float64) float64 {
	return sca*da + dca*(1-sa)
}

// Xor: Sca*(1-Da) + Dca*(1-Sa)
func Xor(sca, sa, dca, da float64) float64 {
	return sca*(1-da) + dca*(1-sa)
}

// LinearDodge: Sca + Dca
//
// Used by Plus under AlphaPlus and by LinearDodge under AlphaOver.
func LinearDodge(sca, _, dca, _ float64) float64 {
	return sca + dca
}

// AlphaRule selects how the result alpha of a channel composite is formed.
type AlphaRule uint8

const (
	// AlphaOver is the union Sa + Da - Sa*Da.
	AlphaOver AlphaRule = iota

	// AlphaPlus sums the alphas: Sa + Da, clamped.
	AlphaPlus

	// AlphaXor keeps the disjoint regions: Sa + Da - 2*Sa*Da.
	AlphaXor

	// AlphaIn keeps the overlap: Sa*Da.
	AlphaIn

	// AlphaOut keeps the source outside the destination: Sa*(1-Da).
	AlphaOut

	// AlphaAtop keeps the destination alpha.
	AlphaAtop
)

// Gamma returns the result alpha for normalized alphas sa and da.
func (r AlphaRule) Gamma(sa, da float64) float64 {
	switch r {
	case AlphaPlus:
		return RoundToUnity(sa + da)
	case AlphaXor:
		return sa + da - 2*sa*da
	case AlphaIn:
		return sa * da
	case AlphaOut:
		return sa * (1 - da)
	case AlphaAtop:
		return da
	default:
		return RoundToUnity(sa + da - sa*da)
	}
}

// String returns the rule name.
func (r AlphaRule) String() string {
	switch r {
	case AlphaOver:
		return "Over"
	case AlphaPlus:
		return "Plus"
	case AlphaXor:
		return "Xor"
	case AlphaIn:
		return "In"
	case AlphaOut:
		return "Out"
	case AlphaAtop:
		return "Atop"
	default:
		return "Unknown"
	}
}
