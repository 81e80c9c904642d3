// SPDX-License-Identifier: MIT

package prox

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Penalty selects the functional applied to the difference between
// consecutive time slices.
type Penalty int

const (
	// Laplacian is the squared Frobenius norm ‖A‖²_F (smooth drift).
	Laplacian Penalty = iota
	// L1 is the element-wise ℓ1 norm (few entries change at a time).
	L1
	// L2 is the Frobenius norm ‖A‖_F (whole slice changes or not at all).
	L2
	// Linf is the element-wise max norm (bounded per-entry drift).
	Linf
)

var penaltyNames = [...]string{
	Laplacian: "laplacian",
	L1:        "l1",
	L2:        "l2",
	Linf:      "linf",
}

// Valid reports whether p is a known penalty.
func (p Penalty) Valid() bool { return p >= Laplacian && p <= Linf }

// String returns the lower-case name used in configuration files.
func (p Penalty) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Penalty(%d)", int(p))
	}

	return penaltyNames[p]
}

// ParsePenalty maps a case-insensitive name to a Penalty.
func ParsePenalty(s string) (Penalty, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range penaltyNames {
		if n == name {
			return Penalty(p), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownPenalty)
}

// MarshalText implements encoding.TextMarshaler.
func (p Penalty) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%d: %w", int(p), ErrUnknownPenalty)
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Penalty) UnmarshalText(b []byte) error {
	v, err := ParsePenalty(string(b))
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// Value evaluates the penalty on a (any length; one or more slices).
func (p Penalty) Value(a []float64) float64 {
	var v float64
	switch p {
	case L1:
		for _, x := range a {
			v += math.Abs(x)
		}
	case L2:
		for _, x := range a {
			v += x * x
		}
		v = math.Sqrt(v)
	case Linf:
		for _, x := range a {
			v = math.Max(v, math.Abs(x))
		}
	default:
		for _, x := range a {
			v += x * x
		}
	}

	return v
}

// Prox writes argmin_X beta·p(X) + ½‖X − a‖² into dst. dst may alias a.
//
// Errors: ErrShape (len mismatch), ErrBadParameter (beta < 0 or non-finite),
// ErrUnknownPenalty.
func (p Penalty) Prox(dst, a []float64, beta float64) error {
	if len(dst) != len(a) {
		return proxErrorf(opPenalty, ErrShape)
	}
	if err := checkParam(beta); err != nil {
		return proxErrorf(opPenalty, err)
	}

	switch p {
	case Laplacian:
		f := 1 / (1 + 2*beta)
		for i, x := range a {
			dst[i] = x * f
		}
	case L1:
		for i, x := range a {
			dst[i] = shrink(x, beta)
		}
	case L2:
		norm := L2.Value(a)
		f := 0.0
		if norm > beta {
			f = 1 - beta/norm
		}
		for i, x := range a {
			dst[i] = x * f
		}
	case Linf:
		if beta == 0 {
			copy(dst, a)
			return nil
		}
		// Moreau decomposition: prox of β‖·‖_∞ is the residual of the
		// projection onto the ℓ1 ball of radius β.
		w := projectL1Ball(a, beta)
		for i, x := range a {
			dst[i] = x - w[i]
		}
	default:
		return proxErrorf(opPenalty, fmt.Errorf("%d: %w", int(p), ErrUnknownPenalty))
	}

	return nil
}

// projectL1Ball returns the Euclidean projection of v onto {x : ‖x‖₁ ≤ z}
// (Duchi et al., 2008).
func projectL1Ball(v []float64, z float64) []float64 {
	out := make([]float64, len(v))
	if L1.Value(v) <= z {
		copy(out, v)
		return out
	}

	u := make([]float64, len(v))
	for i, x := range v {
		u[i] = math.Abs(x)
	}
	slices.Sort(u)

	var cum, theta float64
	for j := len(u) - 1; j >= 0; j-- {
		cum += u[j]
		rank := float64(len(u) - j)
		th := (cum - z) / rank
		if u[j]-th <= 0 {
			break
		}
		theta = th
	}
	for i, x := range v {
		out[i] = shrink(x, theta)
	}

	return out
}
