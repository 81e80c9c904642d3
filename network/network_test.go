// SPDX-License-Identifier: MIT

package network_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veronicatozzo/regain/network"
	"github.com/veronicatozzo/regain/tensor"
)

func mustStack(t *testing.T, v [][][]float64) *tensor.Stack {
	t.Helper()
	s, err := tensor.FromSlices(v)
	require.NoError(t, err)

	return s
}

func TestObservedPrecision(t *testing.T) {
	t.Parallel()

	k := mustStack(t, [][][]float64{{{2, 1}, {1, 2}}})
	l := mustStack(t, [][][]float64{{{0.5, 0}, {0, 0.5}}})
	got, err := network.ObservedPrecision(k, l)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 1, 1, 1.5}, got.Raw())
	assert.Equal(t, []float64{2, 1, 1, 2}, k.Raw())

	other := mustStack(t, [][][]float64{{{1}}})
	_, err = network.ObservedPrecision(k, other)
	assert.ErrorIs(t, err, tensor.ErrDimensionMismatch)
	_, err = network.ObservedPrecision(nil, l)
	assert.ErrorIs(t, err, tensor.ErrNilStack)
}

func TestPartialCorrelation(t *testing.T) {
	t.Parallel()

	p := mustStack(t, [][][]float64{{{4, -2}, {-2, 9}}})
	got, err := network.PartialCorrelation(p)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Raw()[0])
	assert.Equal(t, 1.0, got.Raw()[3])
	assert.InDelta(t, 2.0/6.0, got.Raw()[1], 1e-15)
	assert.InDelta(t, 2.0/6.0, got.Raw()[2], 1e-15)

	bad := mustStack(t, [][][]float64{{{1, 0}, {0, 0}}})
	_, err = network.PartialCorrelation(bad)
	assert.ErrorIs(t, err, network.ErrNonPositiveDiagonal)

	nan := mustStack(t, [][][]float64{{{math.NaN(), 0}, {0, 1}}})
	_, err = network.PartialCorrelation(nan)
	assert.ErrorIs(t, err, network.ErrNonPositiveDiagonal)
}

func TestEdgesAndChanges(t *testing.T) {
	t.Parallel()

	p := mustStack(t, [][][]float64{
		{{1, 0.5, 0}, {0.5, 1, 0.05}, {0, 0.05, 1}},
		{{1, 0.5, 0}, {0.5, 1, -0.3}, {0, -0.3, 1}},
		{{1, 0, 0.2}, {0, 1, -0.3}, {0.2, -0.3, 1}},
	})

	edges, err := network.Edges(p, 0.1)
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, []network.Edge{{From: 0, To: 1, Weight: 0.5}}, edges[0])
	assert.Equal(t, []network.Edge{{From: 0, To: 1, Weight: 0.5}, {From: 1, To: 2, Weight: -0.3}}, edges[1])
	assert.Equal(t, []network.Edge{{From: 0, To: 2, Weight: 0.2}, {From: 1, To: 2, Weight: -0.3}}, edges[2])

	changes, err := network.Changes(p, 0.1)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, network.Change{
		Slice:   1,
		Added:   []network.Edge{{From: 1, To: 2, Weight: -0.3}},
		Removed: []network.Edge{},
	}, changes[0])
	assert.Equal(t, network.Change{
		Slice:   2,
		Added:   []network.Edge{{From: 0, To: 2, Weight: 0.2}},
		Removed: []network.Edge{{From: 0, To: 1, Weight: 0.5}},
	}, changes[1])

	_, err = network.Edges(p, -1)
	assert.ErrorIs(t, err, network.ErrBadThreshold)

	single := mustStack(t, [][][]float64{{{1}}})
	changes, err = network.Changes(single, 0)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
