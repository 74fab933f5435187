// Package geometry parses geometry strings of the form
// "rho x sigma + xi + psi" used to pass numeric operator arguments.
package geometry

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidGeometry is returned for strings containing characters that
// cannot appear in a geometry.
var ErrInvalidGeometry = errors.New("geometry: invalid geometry")

// Flags records which fields and modifiers a geometry string carried.
type Flags uint32

const (
	RhoValue Flags = 1 << iota
	SigmaValue
	XiValue
	PsiValue
	ChiValue
	XiNegative
	PsiNegative
	ChiNegative
	PercentValue
	AspectValue
	LessValue
	GreaterValue
	MinimumValue
	AreaValue
	DecimalValue

	// NoValue means nothing was parsed.
	NoValue Flags = 0
)

// Has reports whether every flag in f is set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Info holds the numeric fields of a geometry string.
type Info struct {
	Rho, Sigma, Xi, Psi, Chi float64
}

// Parse extracts up to five numbers from s.
//
// Fields may be separated by 'x', ',', '/' or ':' (rho and sigma) and
// introduced by '+', '-', ',', '/' or ':' (xi, psi and chi). The
// modifiers '%', '!', '<', '>', '^' and '@' may appear anywhere and only
// set flags. When sigma is absent but xi is given without psi, xi is
// taken as sigma, so "30x-20" reads as rho 30, sigma -20.
//
// An empty string returns NoValue and no error.
func Parse(s string) (Info, Flags, error) {
	var info Info
	flags := NoValue
	if s == "" {
		return info, flags, nil
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r), r == '(', r == ')':
		case r == '%':
			flags |= PercentValue
		case r == '!':
			flags |= AspectValue
		case r == '<':
			flags |= LessValue
		case r == '>':
			flags |= GreaterValue
		case r == '^':
			flags |= MinimumValue
		case r == '@':
			flags |= AreaValue
		case r == '×':
			b.WriteByte('x')
		case r == '.':
			flags |= DecimalValue
			b.WriteRune(r)
		case r >= '0' && r <= '9', strings.ContainsRune("+-,xX/:eE", r):
			b.WriteRune(r)
		default:
			return Info{}, flags, ErrInvalidGeometry
		}
	}
	g := b.String()
	if g == "" {
		return info, flags, nil
	}

	// rho
	p := 0
	if v, q, ok := scanFloat(g, 0); q == len(g) || isSize(g[q]) {
		if ok {
			flags |= RhoValue
			info.Rho = v
		}
		p = q
	}

	// sigma
	if p < len(g) && isSize(g[p]) {
		q := p
		p++
		if (g[q] != 'x' && g[q] != 'X') || p >= len(g) || (g[p] != '+' && g[p] != '-') {
			if v, n, ok := scanFloat(g, p); ok {
				flags |= SigmaValue
				info.Sigma = v
				p = n
			}
		}
	}

	// xi, psi, chi
	offsets := []struct {
		value    *float64
		flag     Flags
		negative Flags
	}{
		{&info.Xi, XiValue, XiNegative},
		{&info.Psi, PsiValue, PsiNegative},
		{&info.Chi, ChiValue, ChiNegative},
	}
	for _, o := range offsets {
		if p >= len(g) || !isOffset(g[p]) {
			break
		}
		if g[p] != '+' && g[p] != '-' {
			p++
		}
		start := p
		v, n, ok := scanFloat(g, p)
		if !ok {
			break
		}
		flags |= o.flag
		if g[start] == '-' {
			flags |= o.negative
		}
		*o.value = v
		p = n
	}

	if strings.ContainsRune(g, ':') && info.Sigma != 0 {
		// Sampling factor, e.g. 4:2:2 becomes 2x1.
		info.Rho /= info.Sigma
		info.Sigma = 1
		if info.Xi == 0 {
			info.Sigma = 2
		}
	}
	if !flags.Has(SigmaValue) && flags.Has(XiValue) && !flags.Has(PsiValue) {
		info.Sigma = info.Xi
		info.Xi = 0
		flags |= SigmaValue
		flags &^= XiValue | XiNegative
	}
	return info, flags, nil
}

func isSize(c byte) bool {
	return c == 'x' || c == 'X' || c == ',' || c == '/' || c == ':'
}

func isOffset(c byte) bool {
	return c == '+' || c == '-' || c == ',' || c == '/' || c == ':'
}

// scanFloat reads the longest decimal number starting at i and returns
// its value and the index just past it. ok is false when no digits were
// found, in which case the returned index is i.
func scanFloat(s string, i int) (v float64, next int, ok bool) {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := 0
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
		digits++
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			digits++
		}
	}
	if digits == 0 {
		return 0, i, false
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && s[k] >= '0' && s[k] <= '9' {
			for k < len(s) && s[k] >= '0' && s[k] <= '9' {
				k++
			}
			j = k
		}
	}
	v, err := strconv.ParseFloat(s[i:j], 64)
	if err != nil {
		return 0, i, false
	}
	return v, j, true
}
