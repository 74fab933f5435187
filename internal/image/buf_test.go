package image

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/composite/internal/pixel"
)

// =============================================================================
// Buffer Creation Tests
// =============================================================================

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		format        Format
		wantErr       error
	}{
		{"valid rgba", 4, 3, FormatRGBA16, nil},
		{"valid cmyka", 1, 1, FormatCMYKA16, nil},
		{"zero width", 0, 3, FormatRGBA16, ErrInvalidDimensions},
		{"negative height", 3, -1, FormatRGBA16, ErrInvalidDimensions},
		{"bad format", 3, 3, formatCount, ErrInvalidFormat},
		{"too large", MaxPixels, 2, FormatRGBA16, ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBuffer(tt.width, tt.height, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBuffer() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if w, h := b.Bounds(); w != tt.width || h != tt.height {
				t.Errorf("Bounds() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}
			if len(b.data) != tt.width*tt.height*tt.format.Channels() {
				t.Errorf("len(data) = %d", len(b.data))
			}
		})
	}
}

// =============================================================================
// Row I/O Tests
// =============================================================================

func TestBufferRowRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatRGBA16, FormatCMYKA16} {
		t.Run(f.String(), func(t *testing.T) {
			b, _ := NewBuffer(3, 2, f)
			row := []pixel.Pixel{
				{Red: 1, Green: 2, Blue: 3, Black: 4, Alpha: 5},
				{Red: 65535, Green: 0, Blue: 100.4, Black: 7, Alpha: 65535},
			}
			if err := b.WriteRow(row, 1, 1); err != nil {
				t.Fatalf("WriteRow() error = %v", err)
			}
			got := make([]pixel.Pixel, 2)
			if err := b.ReadRow(got, 1, 1); err != nil {
				t.Fatalf("ReadRow() error = %v", err)
			}
			want := []pixel.Pixel{
				{Red: 1, Green: 2, Blue: 3, Alpha: 5},
				{Red: 65535, Green: 0, Blue: 100, Alpha: 65535},
			}
			if f == FormatCMYKA16 {
				want[0].Black, want[1].Black = 4, 7
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("row mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBufferOutOfBounds(t *testing.T) {
	b, _ := NewBuffer(2, 2, FormatRGBA16)
	row := make([]pixel.Pixel, 2)
	tests := []struct {
		name string
		x, y int
	}{
		{"past right edge", 1, 0},
		{"negative x", -1, 0},
		{"below bottom", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.ReadRow(row, tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("ReadRow() error = %v, want ErrOutOfBounds", err)
			}
			if err := b.WriteRow(row, tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("WriteRow() error = %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestBufferCloneAndCopy(t *testing.T) {
	b, _ := NewBuffer(2, 2, FormatRGBA16)
	b.Fill(pixel.Pixel{Red: 9, Alpha: 65535})
	c := b.Clone()
	c.Clear()
	if b.data[0] != 9 {
		t.Error("Clone() shares data with the original")
	}
	if err := c.CopyFrom(b); err != nil {
		t.Fatalf("CopyFrom() error = %v", err)
	}
	if diff := cmp.Diff(b.data, c.data); diff != "" {
		t.Errorf("CopyFrom() mismatch (-want +got):\n%s", diff)
	}
	other, _ := NewBuffer(2, 2, FormatCMYKA16)
	if err := other.CopyFrom(b); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("CopyFrom() across formats error = %v", err)
	}
}

func TestBufferSetAlpha(t *testing.T) {
	b, _ := NewBuffer(3, 1, FormatCMYKA16)
	b.SetAlpha(42)
	want := []uint16{0, 0, 0, 0, 42, 0, 0, 0, 0, 42, 0, 0, 0, 0, 42}
	if diff := cmp.Diff(want, b.data); diff != "" {
		t.Errorf("SetAlpha() mismatch (-want +got):\n%s", diff)
	}
}
