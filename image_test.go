package composite

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	intImage "github.com/gogpu/composite/internal/image"
	"github.com/gogpu/composite/internal/pixel"
)

const qr = QuantumRange

// newFilled returns a w x h image filled with s. The matte is enabled
// when s is not opaque.
func newFilled(t *testing.T, w, h int, cs Colorspace, s Sample) *Image {
	t.Helper()
	im, err := NewImage(w, h, cs)
	if err != nil {
		t.Fatalf("NewImage(%d, %d): %v", w, h, err)
	}
	if s.Alpha != qr {
		im.SetMatte(true)
	}
	if err := im.Fill(s); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	return im
}

// newRamp returns an opaque RGB image whose red grows with x and green
// with y.
func newRamp(t *testing.T, w, h int) *Image {
	t.Helper()
	im := newFilled(t, w, h, RGB, Sample{Alpha: qr})
	for y := range h {
		for x := range w {
			s := Sample{Red: uint16(1000 * x), Green: uint16(1000 * y), Blue: 7, Alpha: qr}
			if err := im.SetSample(x, y, s); err != nil {
				t.Fatal(err)
			}
		}
	}
	return im
}

// samples returns every pixel in row-major order.
func samples(im *Image) [][]Sample {
	out := make([][]Sample, im.Height())
	for y := range out {
		out[y] = make([]Sample, im.Width())
		for x := range out[y] {
			out[y][x] = im.Sample(x, y)
		}
	}
	return out
}

// =============================================================================
// Image Tests
// =============================================================================

func TestNewImage(t *testing.T) {
	im, err := NewImage(3, 2, CMYK)
	if err != nil {
		t.Fatal(err)
	}
	if im.Width() != 3 || im.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", im.Width(), im.Height())
	}
	if im.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds() = %v", im.Bounds())
	}
	if im.Matte() {
		t.Error("new image should not have a matte")
	}
	if im.Compose() != Over {
		t.Errorf("Compose() = %v, want Over", im.Compose())
	}
	if im.VirtualPixelMethod() != VirtualEdge {
		t.Errorf("VirtualPixelMethod() = %v, want Edge", im.VirtualPixelMethod())
	}
	if got := im.Sample(2, 1); got != (Sample{Alpha: qr}) {
		t.Errorf("Sample = %+v, want opaque zero", got)
	}

	for _, tt := range []struct{ w, h int }{{0, 1}, {1, 0}, {-1, 5}} {
		if _, err := NewImage(tt.w, tt.h, RGB); err == nil {
			t.Errorf("NewImage(%d, %d) should fail", tt.w, tt.h)
		}
	}
}

func TestImageSetSample(t *testing.T) {
	im := newFilled(t, 2, 2, CMYK, Sample{Alpha: qr})
	want := Sample{Red: 1, Green: 2, Blue: 3, Black: 4, Alpha: 5}
	if err := im.SetSample(1, 0, want); err != nil {
		t.Fatal(err)
	}
	got := im.Sample(1, 0)
	want.Alpha = qr // no matte
	if got != want {
		t.Errorf("Sample = %+v, want %+v", got, want)
	}

	im.SetMatte(true)
	want.Alpha = 5
	if err := im.SetSample(1, 0, want); err != nil {
		t.Fatal(err)
	}
	if got := im.Sample(1, 0); got != want {
		t.Errorf("with matte Sample = %+v, want %+v", got, want)
	}

	if err := im.SetSample(2, 0, want); err == nil {
		t.Error("SetSample out of bounds should fail")
	}
	if got := im.Sample(-1, 0); got != (Sample{}) {
		t.Errorf("Sample out of bounds = %+v, want zero", got)
	}
}

func TestImageSetMatte(t *testing.T) {
	im := newFilled(t, 2, 1, RGB, Sample{Red: 9, Alpha: 100})
	if !im.Matte() {
		t.Fatal("matte should be on")
	}
	im.SetMatte(false)
	if got := im.Sample(0, 0).Alpha; got != qr {
		t.Errorf("alpha after SetMatte(false) = %d, want %d", got, qr)
	}
	im.SetMatte(true)
	if got := im.Sample(1, 0); got != (Sample{Red: 9, Alpha: qr}) {
		t.Errorf("SetMatte(true) = %+v, want opaque", got)
	}
}

func TestFromImageToImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 128, B: 255, A: 64})

	im, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if !im.Matte() {
		t.Error("translucent input should enable the matte")
	}
	if got := im.Sample(0, 0); got != (Sample{Red: qr, Alpha: qr}) {
		t.Errorf("Sample(0,0) = %+v", got)
	}

	out := im.ToImage()
	for x := range 2 {
		want := color.NRGBA64Model.Convert(src.At(x, 0)).(color.NRGBA64)
		if got := out.NRGBA64At(x, 0); got != want {
			t.Errorf("ToImage pixel %d = %v, want %v", x, got, want)
		}
	}

	if _, err := FromImage(nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("FromImage(nil) = %v, want ErrNilImage", err)
	}
}

func TestToImageCMYK(t *testing.T) {
	im := newFilled(t, 1, 1, CMYK, Sample{Red: qr, Black: qr / 2, Alpha: qr})
	got := im.ToImage().NRGBA64At(0, 0)
	// no red, half of everything else
	want := color.NRGBA64{R: 0, G: 32768, B: 32768, A: qr}
	if got != want {
		t.Errorf("ToImage CMYK = %v, want %v", got, want)
	}
}

func TestImageClone(t *testing.T) {
	im := newRamp(t, 3, 2)
	im.SetArtifact(ArgsArtifact, "50")
	im.SetTileOffset(image.Pt(1, 2))
	im.SetFuzz(3)

	c, err := im.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(samples(im), samples(c)); diff != "" {
		t.Errorf("Clone pixels (-orig +clone):\n%s", diff)
	}
	if v, _ := c.Artifact(ArgsArtifact); v != "50" {
		t.Errorf("clone artifact = %q", v)
	}
	if c.TileOffset() != image.Pt(1, 2) || c.Fuzz() != 3 {
		t.Error("clone lost metadata")
	}

	_ = c.SetSample(0, 0, Sample{Red: 1, Alpha: qr})
	c.SetArtifact(ArgsArtifact, "10")
	if im.Sample(0, 0).Red != 0 {
		t.Error("clone shares pixels with the original")
	}
	if v, _ := im.Artifact(ArgsArtifact); v != "50" {
		t.Error("clone shares artifacts with the original")
	}
}

func TestImageArtifacts(t *testing.T) {
	im := newFilled(t, 1, 1, RGB, Sample{Alpha: qr})
	im.SetArtifact("b", "2")
	im.SetArtifact("a", "1")
	im.SetArtifact("c", "3")
	im.DeleteArtifact("c")
	if diff := cmp.Diff([]string{"a", "b"}, im.Artifacts()); diff != "" {
		t.Errorf("Artifacts() (-want +got):\n%s", diff)
	}
	if _, ok := im.Artifact("c"); ok {
		t.Error("deleted artifact still present")
	}
}

func TestImageExceptions(t *testing.T) {
	im := newFilled(t, 1, 1, RGB, Sample{Alpha: qr})
	im.exceptions.push(Warning, ErrPixelIO)
	got := im.Exceptions()
	if len(got) != 1 || got[0].Severity != Warning {
		t.Fatalf("Exceptions() = %v", got)
	}
	got[0].Severity = Error
	if im.Exceptions()[0].Severity != Warning {
		t.Error("Exceptions() returned the internal slice")
	}
	im.ClearExceptions()
	if len(im.Exceptions()) != 0 {
		t.Error("ClearExceptions left entries")
	}
}

// failingCache fails reads of one row.
type failingCache struct {
	*intImage.Buffer
	row int
}

func (c *failingCache) ReadRow(dst []pixel.Pixel, x, y int) error {
	if y == c.row {
		return intImage.ErrOutOfBounds
	}
	return c.Buffer.ReadRow(dst, x, y)
}

func TestParseVirtualPixelMethod(t *testing.T) {
	tests := []struct {
		in   string
		want VirtualPixelMethod
	}{
		{"edge", VirtualEdge},
		{"Tile", VirtualTile},
		{"MIRROR", VirtualMirror},
		{"transparent", VirtualTransparent},
		{"Black", VirtualBlack},
		{"white", VirtualWhite},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVirtualPixelMethod(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseVirtualPixelMethod(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
	if _, err := ParseVirtualPixelMethod("dither"); !errors.Is(err, ErrInvalidVirtualPixelMethod) {
		t.Errorf("unknown name: err = %v", err)
	}
}
