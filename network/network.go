// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/veronicatozzo/regain/tensor"
)

var (
	// ErrNonPositiveDiagonal is returned by PartialCorrelation when a
	// diagonal entry is zero, negative or not finite.
	ErrNonPositiveDiagonal = errors.New("network: non-positive diagonal")

	// ErrBadThreshold is returned for a negative or NaN threshold.
	ErrBadThreshold = errors.New("network: invalid threshold")
)

const (
	opObserved = "ObservedPrecision"
	opPartial  = "PartialCorrelation"
	opEdges    = "Edges"
	opChanges  = "Changes"
)

func netErrorf(tag string, err error) error {
	return fmt.Errorf("network: %s: %w", tag, err)
}

// Edge is an undirected edge between features From < To.
type Edge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

// Change lists the edges that appear (Added) and disappear (Removed) going
// from slice Slice−1 to slice Slice.
type Change struct {
	Slice   int    `json:"slice"`
	Added   []Edge `json:"added"`
	Removed []Edge `json:"removed"`
}

// ObservedPrecision returns K − L per slice as a new stack.
func ObservedPrecision(k, l *tensor.Stack) (*tensor.Stack, error) {
	if err := tensor.ValidateSameShape(k, l); err != nil {
		return nil, netErrorf(opObserved, err)
	}

	return k.Clone().Sub(l), nil
}

// PartialCorrelation rescales every slice of a precision stack p to
// −p_ij/√(p_ii·p_jj) off the diagonal and 1 on it.
func PartialCorrelation(p *tensor.Stack) (*tensor.Stack, error) {
	if err := tensor.ValidateNotNil(p); err != nil {
		return nil, netErrorf(opPartial, err)
	}
	out := p.ZerosLike()
	d := p.Dim()
	scale := make([]float64, d)
	for t := 0; t < p.Len(); t++ {
		src, dst := p.Slice(t), out.Slice(t)
		for i := range scale {
			v := src[i*d+i]
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, netErrorf(opPartial, fmt.Errorf("slice %d (%d,%d)=%g: %w", t, i, i, v, ErrNonPositiveDiagonal))
			}
			scale[i] = 1 / math.Sqrt(v)
		}
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				if i == j {
					dst[i*d+j] = 1
					continue
				}
				dst[i*d+j] = -src[i*d+j] * scale[i] * scale[j]
			}
		}
	}

	return out, nil
}

// Edges lists, per slice, the pairs i < j whose weight p_ij (taken from the
// upper triangle) exceeds threshold in absolute value. Edges are ordered
// by (From, To).
func Edges(p *tensor.Stack, threshold float64) ([][]Edge, error) {
	if err := tensor.ValidateNotNil(p); err != nil {
		return nil, netErrorf(opEdges, err)
	}
	if !(threshold >= 0) {
		return nil, netErrorf(opEdges, ErrBadThreshold)
	}
	d := p.Dim()
	out := make([][]Edge, p.Len())
	for t := range out {
		src := p.Slice(t)
		edges := []Edge{}
		for i := 0; i < d; i++ {
			for j := i + 1; j < d; j++ {
				if w := src[i*d+j]; math.Abs(w) > threshold {
					edges = append(edges, Edge{From: i, To: j, Weight: w})
				}
			}
		}
		out[t] = edges
	}

	return out, nil
}

// Changes compares the thresholded edge sets of consecutive slices and
// returns one Change per pair (t−1, t), t = 1..T−1. Added edges carry the
// weight of slice t, removed ones the weight of slice t−1.
func Changes(p *tensor.Stack, threshold float64) ([]Change, error) {
	graphs, err := Edges(p, threshold)
	if err != nil {
		return nil, netErrorf(opChanges, err)
	}
	if len(graphs) < 2 {
		return []Change{}, nil
	}
	out := make([]Change, 0, len(graphs)-1)
	for t := 1; t < len(graphs); t++ {
		out = append(out, Change{
			Slice:   t,
			Added:   difference(graphs[t], graphs[t-1]),
			Removed: difference(graphs[t-1], graphs[t]),
		})
	}

	return out, nil
}

// difference returns the edges of a whose endpoints are absent from b.
// Both inputs are sorted by (From, To).
func difference(a, b []Edge) []Edge {
	out := []Edge{}
	for _, e := range a {
		_, found := slices.BinarySearchFunc(b, e, compareEndpoints)
		if !found {
			out = append(out, e)
		}
	}

	return out
}

func compareEndpoints(x, y Edge) int {
	if x.From != y.From {
		return x.From - y.From
	}

	return x.To - y.To
}
