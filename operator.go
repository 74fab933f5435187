package composite

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/gogpu/composite/internal/blend"
)

// Operator selects how a source image is combined with a destination.
type Operator uint8

// Operators.
const (
	Undefined Operator = iota
	None
	Clear
	Src
	Dst
	Over
	DstOver
	In
	DstIn
	Out
	DstOut
	Atop
	DstAtop
	Xor
	Copy
	Plus
	MinusSrc
	MinusDst
	ModulusAdd
	ModulusSubtract
	Difference
	Exclusion
	Multiply
	Screen
	DivideSrc
	DivideDst
	ColorDodge
	ColorBurn
	LinearDodge
	LinearBurn
	HardLight
	Overlay
	SoftLight
	LinearLight
	PegtopLight
	VividLight
	PinLight
	Darken
	Lighten
	DarkenIntensity
	LightenIntensity
	Hue
	Saturate
	Luminize
	Colorize
	Modulate
	CopyRed
	CopyGreen
	CopyBlue
	CopyBlack
	CopyOpacity
	Blur
	Displace
	Distort
	Dissolve
	Blend
	Mathematics
	Threshold
	Bumpmap
	ChangeMask

	operatorCount
)

// Aliases.
const (
	SrcOver     = Over
	SrcIn       = In
	SrcOut      = Out
	SrcAtop     = Atop
	Replace     = Src
	CopyCyan    = CopyRed
	CopyMagenta = CopyGreen
	CopyYellow  = CopyBlue
)

// outsideAction is what happens to a destination pixel the overlay does
// not cover when outside modification is on.
type outsideAction uint8

const (
	// outsideReplace stores the virtual overlay pixel.
	outsideReplace outsideAction = iota
	outsideClear
	outsideTransparent
	outsideDissolve
)

// operatorInfo describes one operator. Exactly one of sep and fn is set
// for pixel operators; field operators have neither and read the
// synthesized overlay through blend.Source.
type operatorInfo struct {
	name string

	sep blend.Separable
	fn  blend.PixelFunc

	// independent reports whether the Independent channel mode applies.
	independent bool

	// modifyOutside is the default outside-overlay policy.
	modifyOutside bool
	outside       outsideAction

	// needsMatte forces the destination alpha channel on: the operator
	// can make an opaque destination transparent.
	needsMatte bool

	// field marks operators whose overlay is a map used to synthesize a
	// destination-sized intermediate.
	field bool
}

func sep(fn blend.Func, rule blend.AlphaRule) blend.Separable {
	return blend.Separable{Fn: fn, Rule: rule}
}

func swapped(fn blend.Func, rule blend.AlphaRule) blend.Separable {
	return blend.Separable{Fn: fn, Rule: rule, Swap: true}
}

func straight(fn blend.Func) blend.Separable {
	return blend.Separable{Fn: fn, Rule: blend.AlphaOver, Straight: true}
}

var operators = [operatorCount]operatorInfo{
	Undefined: {name: "Undefined", fn: blend.Destination},
	None:      {name: "None", fn: blend.Destination},
	Clear:     {name: "Clear", fn: blend.Clear, modifyOutside: true, outside: outsideClear, needsMatte: true},
	Src:       {name: "Src", fn: blend.Source, modifyOutside: true, outside: outsideClear, needsMatte: true},
	Dst:       {name: "Dst", fn: blend.Destination},
	Over:      {name: "Over", fn: blend.SourceOver},
	DstOver:   {name: "DstOver", fn: blend.DestinationOver},
	In: {name: "In", sep: sep(blend.In, blend.AlphaIn),
		modifyOutside: true, outside: outsideTransparent, needsMatte: true},
	DstIn: {name: "DstIn", sep: swapped(blend.In, blend.AlphaIn),
		modifyOutside: true, outside: outsideTransparent, needsMatte: true},
	Out: {name: "Out", sep: sep(blend.Out, blend.AlphaOut),
		modifyOutside: true, outside: outsideTransparent, needsMatte: true},
	DstOut: {name: "DstOut", sep: swapped(blend.Out, blend.AlphaOut), needsMatte: true},
	Atop:   {name: "Atop", sep: sep(blend.Atop, blend.AlphaAtop)},
	DstAtop: {name: "DstAtop", sep: swapped(blend.Atop, blend.AlphaAtop),
		modifyOutside: true, outside: outsideTransparent, needsMatte: true},
	Xor:  {name: "Xor", sep: sep(blend.Xor, blend.AlphaXor), needsMatte: true},
	Copy: {name: "Copy", fn: blend.Source},

	Plus:            {name: "Plus", fn: blend.Plus, independent: true},
	MinusSrc:        {name: "MinusSrc", sep: swapped(blend.Minus, blend.AlphaOver), independent: true},
	MinusDst:        {name: "MinusDst", sep: sep(blend.Minus, blend.AlphaOver), independent: true},
	ModulusAdd:      {name: "ModulusAdd", sep: straight(blend.ModulusAdd), independent: true},
	ModulusSubtract: {name: "ModulusSubtract", sep: straight(blend.ModulusSubtract), independent: true},
	Difference:      {name: "Difference", sep: sep(blend.Difference, blend.AlphaOver), independent: true},
	Exclusion:       {name: "Exclusion", sep: sep(blend.Exclusion, blend.AlphaOver), independent: true},
	Multiply:        {name: "Multiply", sep: sep(blend.Multiply, blend.AlphaOver), independent: true},
	Screen:          {name: "Screen", sep: sep(blend.Screen, blend.AlphaOver), independent: true},
	DivideSrc:       {name: "DivideSrc", sep: swapped(blend.Divide, blend.AlphaOver), independent: true},
	DivideDst:       {name: "DivideDst", sep: sep(blend.Divide, blend.AlphaOver), independent: true},

	ColorDodge:  {name: "ColorDodge", sep: sep(blend.ColorDodge, blend.AlphaOver)},
	ColorBurn:   {name: "ColorBurn", sep: sep(blend.ColorBurn, blend.AlphaOver)},
	LinearDodge: {name: "LinearDodge", sep: sep(blend.LinearDodge, blend.AlphaOver)},
	LinearBurn:  {name: "LinearBurn", sep: sep(blend.LinearBurn, blend.AlphaOver)},
	HardLight:   {name: "HardLight", sep: sep(blend.HardLight, blend.AlphaOver)},
	Overlay:     {name: "Overlay", sep: swapped(blend.HardLight, blend.AlphaOver)},
	SoftLight:   {name: "SoftLight", sep: sep(blend.SoftLight, blend.AlphaOver)},
	LinearLight: {name: "LinearLight", sep: sep(blend.LinearLight, blend.AlphaOver)},
	PegtopLight: {name: "PegtopLight", sep: sep(blend.PegtopLight, blend.AlphaOver)},
	VividLight:  {name: "VividLight", sep: sep(blend.VividLight, blend.AlphaOver)},
	PinLight:    {name: "PinLight", sep: sep(blend.PinLight, blend.AlphaOver)},

	Darken:           {name: "Darken", sep: straight(blend.Darken), independent: true},
	Lighten:          {name: "Lighten", sep: straight(blend.Lighten), independent: true},
	DarkenIntensity:  {name: "DarkenIntensity", fn: blend.DarkenIntensity, independent: true},
	LightenIntensity: {name: "LightenIntensity", fn: blend.LightenIntensity, independent: true},

	Hue:      {name: "Hue", fn: blend.Hue},
	Saturate: {name: "Saturate", fn: blend.Saturate},
	Luminize: {name: "Luminize", fn: blend.Luminize},
	Colorize: {name: "Colorize", fn: blend.Colorize},
	Modulate: {name: "Modulate", fn: blend.Modulate},

	CopyRed:   {name: "CopyRed", fn: blend.CopyRed},
	CopyGreen: {name: "CopyGreen", fn: blend.CopyGreen},
	CopyBlue:  {name: "CopyBlue", fn: blend.CopyBlue},
	CopyBlack: {name: "CopyBlack", fn: blend.CopyBlack},
	CopyOpacity: {name: "CopyOpacity", fn: blend.CopyOpacity,
		modifyOutside: true, outside: outsideTransparent, needsMatte: true},

	Blur:     {name: "Blur", fn: blend.Source, field: true},
	Displace: {name: "Displace", fn: blend.Source, field: true},
	Distort:  {name: "Distort", fn: blend.Source, field: true},
	Dissolve: {name: "Dissolve", fn: blend.Dissolve, outside: outsideDissolve},
	Blend:    {name: "Blend", fn: blend.Blend, outside: outsideDissolve},

	// The coefficients come from the arguments; see setupOperator.
	Mathematics: {name: "Mathematics", sep: sep(blend.Mathematics(0, 0, 0, 0), blend.AlphaOver), independent: true},
	Threshold:   {name: "Threshold", fn: blend.Threshold},
	Bumpmap:     {name: "Bumpmap", fn: blend.Bumpmap},
	ChangeMask: {name: "ChangeMask", fn: blend.ChangeMask,
		modifyOutside: true, outside: outsideTransparent, needsMatte: true},
}

// operatorAliases maps folded alternative names to operators.
var operatorAliases = map[string]Operator{
	"no":          None,
	"srcover":     Over,
	"srcin":       In,
	"srcout":      Out,
	"srcatop":     Atop,
	"replace":     Src,
	"minus":       MinusDst,
	"divide":      DivideDst,
	"add":         ModulusAdd,
	"subtract":    ModulusSubtract,
	"saturation":  Saturate,
	"copycyan":    CopyRed,
	"copymagenta": CopyGreen,
	"copyyellow":  CopyBlue,
}

// foldName returns the caseless form of s. A Caser is stateful, so each
// call gets its own.
func foldName(s string) string {
	return cases.Fold().String(s)
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, int(operatorCount)+len(operatorAliases))
	for op := range operatorCount {
		m[foldName(operators[op].name)] = op
	}
	for k, v := range operatorAliases {
		m[k] = v
	}
	return m
}()

// Valid reports whether op is a member of the enumeration.
func (op Operator) Valid() bool {
	return op < operatorCount
}

// String returns the operator name.
func (op Operator) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
	return operators[op].name
}

// ParseOperator returns the operator named s. Matching ignores case and
// accepts the usual aliases such as "SrcOver", "Minus" and "Add".
func ParseOperator(s string) (Operator, error) {
	if op, ok := operatorsByName[foldName(s)]; ok {
		return op, nil
	}
	return Undefined, fmt.Errorf("%w: %q", ErrInvalidOperator, s)
}

// MarshalText implements encoding.TextMarshaler.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOperator, uint8(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operator) UnmarshalText(text []byte) error {
	v, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = v
	return nil
}
