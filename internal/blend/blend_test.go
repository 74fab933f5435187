package blend

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/composite/internal/pixel"
)

const qr = pixel.QuantumRange

// approx compares pixels to within a hundredth of a quantum step.
var approx = cmpopts.EquateApprox(0, 0.01)

func rgba(r, g, b, a float64) pixel.Pixel {
	return pixel.Pixel{Red: r, Green: g, Blue: b, Alpha: a}
}

// =============================================================================
// Separable Composite Tests
// =============================================================================

func TestSeparableCompositeOver(t *testing.T) {
	tests := []struct {
		name string
		s, d pixel.Pixel
		want pixel.Pixel
	}{
		{
			name: "opaque black over white",
			s:    rgba(0, 0, 0, qr),
			d:    rgba(qr, qr, qr, qr),
			want: rgba(0, 0, 0, qr),
		},
		{
			name: "half red over blue",
			s:    rgba(qr, 0, 0, 32896),
			d:    rgba(0, 0, qr, qr),
			want: rgba(32896, 0, qr-32896, qr),
		},
		{
			name: "over transparent destination",
			s:    rgba(1000, 2000, 3000, 40000),
			d:    rgba(9, 9, 9, 0),
			want: rgba(1000, 2000, 3000, 40000),
		},
		{
			name: "both transparent",
			s:    rgba(500, 500, 500, 0),
			d:    rgba(700, 700, 700, 0),
			want: rgba(0, 0, 0, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := over.Composite(tt.s, tt.d)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Composite() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeparableCompositeBlackOnlyWhenSubtractive(t *testing.T) {
	c := Separable{Fn: Multiply, Rule: AlphaOver}
	s := pixel.Pixel{Black: qr / 2, Alpha: qr}
	d := pixel.Pixel{Black: qr, Alpha: qr}

	if got := c.Composite(s, d); got.Black != qr {
		t.Errorf("RGB black = %v, want untouched %v", got.Black, qr)
	}
	s.Colorspace, d.Colorspace = pixel.CMYK, pixel.CMYK
	if got := c.Composite(s, d); !cmp.Equal(got.Black, qr/2, approx) {
		t.Errorf("CMYK black = %v, want %v", got.Black, qr/2)
	}
}

func TestSeparableIndependent(t *testing.T) {
	s := rgba(qr/2, qr/2, qr/2, qr/4)
	d := rgba(qr/4, qr/4, qr/4, qr/2)

	got := plus.Independent(s, d, pixel.RedChannel|pixel.AlphaChannel)
	want := rgba(qr*0.75, qr/4, qr/4, qr*0.75)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Independent() mismatch (-want +got):\n%s", diff)
	}

	minus := Separable{Fn: Minus, Rule: AlphaOver}
	got = minus.Independent(s, d, pixel.AllChannels)
	want = rgba(qr/4, qr/4, qr/4, -qr/4)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Minus Independent() mismatch (-want +got):\n%s", diff)
	}
}

func TestSeparableSwap(t *testing.T) {
	s := rgba(qr, 0, 0, qr/2)
	d := rgba(0, 0, qr, qr)

	// DstOut: the destination outside the source.
	dstOut := Separable{Fn: Out, Rule: AlphaOut, Swap: true}
	got := dstOut.Composite(s, d)
	want := rgba(0, 0, qr, qr/2)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("swapped Composite() mismatch (-want +got):\n%s", diff)
	}

	// Swapped independent blends keep unselected destination channels.
	minusSrc := Separable{Fn: Minus, Rule: AlphaOver, Swap: true}
	got = minusSrc.Independent(rgba(qr/4, 7, 7, qr), rgba(qr/2, 9, 9, qr), pixel.RedChannel)
	want = rgba(qr/4, 9, 9, qr)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("swapped Independent() mismatch (-want +got):\n%s", diff)
	}
}

func TestDarkenLightenCommutative(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	random := func() pixel.Pixel {
		return rgba(r.Float64()*qr, r.Float64()*qr, r.Float64()*qr, r.Float64()*qr)
	}
	ops := map[string]Separable{
		"Darken":  {Fn: Darken, Straight: true, Rule: AlphaOver},
		"Lighten": {Fn: Lighten, Straight: true, Rule: AlphaOver},
	}
	for name, op := range ops {
		for range 500 {
			a, b := random(), random()
			ab := op.Composite(a, b)
			ba := op.Composite(b, a)
			if diff := cmp.Diff(ab, ba, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Fatalf("%s not commutative for %+v, %+v:\n%s", name, a, b, diff)
			}
		}
	}
}

// =============================================================================
// Primitive Tests
// =============================================================================

func TestCompositePlus(t *testing.T) {
	s := rgba(qr, 0, 0, qr/2)
	d := rgba(0, qr, 0, qr/2)
	got := CompositePlus(s, s.Alpha, d, d.Alpha)
	want := rgba(qr/2, qr/2, 0, qr)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("CompositePlus() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositeBlend(t *testing.T) {
	s := rgba(qr, 0, 0, qr)
	d := rgba(0, 0, qr, qr)
	got := CompositeBlend(s, 0.25, d, 0.75)
	want := rgba(qr/4, 0, qr*0.75, qr)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("CompositeBlend() mismatch (-want +got):\n%s", diff)
	}
}

func TestDissolve(t *testing.T) {
	s := rgba(qr, 0, 0, qr)
	d := rgba(0, 0, qr, qr)
	got := Dissolve(s, d, &Params{SourceDissolve: 0.6, DestDissolve: 1})
	want := rgba(qr*0.6, 0, qr*0.4, qr)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Dissolve() mismatch (-want +got):\n%s", diff)
	}
}
