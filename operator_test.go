package composite

import (
	"errors"
	"testing"

	"github.com/gogpu/composite/internal/blend"
)

func TestOperatorTable(t *testing.T) {
	names := make(map[string]Operator)
	for op := range operatorCount {
		info := operators[op]
		if info.name == "" {
			t.Errorf("operator %d has no name", op)
			continue
		}
		if prev, dup := names[info.name]; dup {
			t.Errorf("%s named twice (%d and %d)", info.name, prev, op)
		}
		names[info.name] = op

		hasSep := info.sep.Fn != nil
		hasFn := info.fn != nil
		if hasSep == hasFn {
			t.Errorf("%s: want exactly one of a channel function and a pixel function", op)
		}
		if info.field && !hasFn {
			t.Errorf("%s: field operator needs a pixel function", op)
		}
	}
}

func TestOperatorOutsideDefaults(t *testing.T) {
	modify := map[Operator]bool{
		Clear: true, Src: true, In: true, Out: true, DstIn: true, DstAtop: true,
		CopyOpacity: true, ChangeMask: true,
	}
	for op := range operatorCount {
		if got := operators[op].modifyOutside; got != modify[op] {
			t.Errorf("%s modifyOutside = %v, want %v", op, got, modify[op])
		}
	}
}

func TestOperatorNeedsMatte(t *testing.T) {
	want := map[Operator]bool{
		Clear: true, Src: true, In: true, DstIn: true, Out: true, DstOut: true,
		DstAtop: true, Xor: true, CopyOpacity: true, ChangeMask: true,
	}
	for op := range operatorCount {
		if got := operators[op].needsMatte; got != want[op] {
			t.Errorf("%s needsMatte = %v, want %v", op, got, want[op])
		}
	}
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want Operator
	}{
		{"Over", Over},
		{"over", Over},
		{"SRCOVER", Over},
		{"SrcIn", In},
		{"srcatop", Atop},
		{"DstOver", DstOver},
		{"Minus", MinusDst},
		{"MinusSrc", MinusSrc},
		{"Divide", DivideDst},
		{"Add", ModulusAdd},
		{"Subtract", ModulusSubtract},
		{"Replace", Src},
		{"Saturation", Saturate},
		{"None", None},
		{"CopyCyan", CopyRed},
		{"ChangeMask", ChangeMask},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperator(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseOperator(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseOperator("Sideways"); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("unknown name: err = %v", err)
	}
}

func TestOperatorText(t *testing.T) {
	for op := range operatorCount {
		b, err := op.MarshalText()
		if err != nil {
			t.Fatalf("%d: %v", op, err)
		}
		var back Operator
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		if back != op {
			t.Errorf("%s round trip = %v", op, back)
		}
	}
	if _, err := operatorCount.MarshalText(); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("invalid operator marshal: %v", err)
	}
	if got := operatorCount.String(); got != "Operator(60)" {
		t.Errorf("String() = %q", got)
	}
}

func TestOperatorSwapped(t *testing.T) {
	pairs := map[Operator]Operator{
		DstIn:     In,
		DstOut:    Out,
		DstAtop:   Atop,
		MinusSrc:  MinusDst,
		DivideSrc: DivideDst,
		Overlay:   HardLight,
	}
	for swapped, plain := range pairs {
		if !operators[swapped].sep.Swap || operators[plain].sep.Swap {
			t.Errorf("%s should be %s with source and destination exchanged", swapped, plain)
		}
	}
	if operators[Darken].sep.Rule != blend.AlphaOver || !operators[Darken].sep.Straight {
		t.Error("Darken should use straight channels")
	}
}
