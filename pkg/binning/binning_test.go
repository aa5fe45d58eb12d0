package binning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileBinner(t *testing.T) {
	// 0..100 in steps of 1: percentiles coincide with the values themselves.
	values := make([]float64, 101)
	for i := range values {
		values[i] = float64(i)
	}

	b, err := NewPercentileBinner(values, 25)
	require.NoError(t, err)
	assert.Equal(t, 3, b.NumBins())

	tt := []struct {
		v   float64
		bin int
	}{
		{v: 0, bin: 0},
		{v: 24.9, bin: 0},
		{v: 25, bin: 1}, // lower threshold belongs to the middle bin
		{v: 50, bin: 1},
		{v: 74.9, bin: 1},
		{v: 75, bin: 2}, // upper threshold belongs to the top bin
		{v: 100, bin: 2},
		{v: 1e9, bin: 2},
		{v: -5, bin: 0},
	}
	for _, tc := range tt {
		assert.Equal(t, tc.bin, b.Bin(tc.v), "value %v", tc.v)
	}
}

func TestPercentileBinnerBoundaryStable(t *testing.T) {
	b, err := NewPercentileBinner([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 25)
	require.NoError(t, err)
	// Threshold values must bin the same on every call.
	for i := 0; i < 10; i++ {
		assert.Equal(t, b.Bin(2.75), b.Bin(2.75))
		assert.Equal(t, b.Bin(6.25), b.Bin(6.25))
	}
}

func TestPercentileBinnerConfigErrors(t *testing.T) {
	tt := []struct {
		name   string
		values []float64
		pct    float64
	}{
		{name: "empty training data", values: nil, pct: 25},
		{name: "negative percentile", values: []float64{1, 2}, pct: -1},
		{name: "percentile above 100", values: []float64{1, 2}, pct: 100.5},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPercentileBinner(tc.values, tc.pct)
			assert.Error(t, err)
		})
	}
}

func TestKMeansBinnerSeparatedClusters(t *testing.T) {
	values := []float64{
		0.9, 1.0, 1.1,
		9.9, 10.0, 10.1,
		99.9, 100.0, 100.1,
	}
	seed := uint64(42)
	b, err := NewKMeansBinner(values, KMeansConfig{K: 3, MaxIterations: 100, Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, 3, b.NumBins())

	assert.Equal(t, 0, b.Bin(1.0))
	assert.Equal(t, 1, b.Bin(10.0))
	assert.Equal(t, 2, b.Bin(100.0))
	// Bin indices correlate with magnitude.
	assert.Equal(t, 0, b.Bin(-50))
	assert.Equal(t, 2, b.Bin(1e6))
}

func TestKMeansBinnerMonotone(t *testing.T) {
	values := []float64{1, 2, 3, 10, 11, 12, 30, 31, 32, 33}
	seed := uint64(7)
	b, err := NewKMeansBinner(values, KMeansConfig{K: 3, MaxIterations: 100, Seed: &seed})
	require.NoError(t, err)

	prev := b.Bin(-10)
	for v := -10.0; v <= 50; v += 0.5 {
		bin := b.Bin(v)
		assert.GreaterOrEqual(t, bin, prev, "bin index decreased at %v", v)
		prev = bin
	}
}

func TestKMeansBinnerSeededDeterminism(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7}
	seed := uint64(1234)

	first, err := NewKMeansBinner(values, KMeansConfig{K: 3, MaxIterations: 100, Seed: &seed})
	require.NoError(t, err)
	second, err := NewKMeansBinner(values, KMeansConfig{K: 3, MaxIterations: 100, Seed: &seed})
	require.NoError(t, err)

	assert.Equal(t, first.centroids, second.centroids)
}

func TestKMeansBinnerConfigErrors(t *testing.T) {
	tt := []struct {
		name   string
		values []float64
		cfg    KMeansConfig
	}{
		{name: "k zero", values: []float64{1, 2}, cfg: KMeansConfig{K: 0, MaxIterations: 10}},
		{name: "no iterations", values: []float64{1, 2}, cfg: KMeansConfig{K: 2, MaxIterations: 0}},
		{name: "empty training data", values: nil, cfg: KMeansConfig{K: 2, MaxIterations: 10}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewKMeansBinner(tc.values, tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestManager(t *testing.T) {
	pairs := []KeyValue{
		{Key: "a", Value: 1}, {Key: "a", Value: 2}, {Key: "a", Value: 100},
		{Key: "b", Value: 0.1}, {Key: "b", Value: 0.2}, {Key: "b", Value: 0.3},
	}
	m, err := NewManager(pairs, PercentileTrainer(25))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Keys())

	// Boundaries are per key: 100 is huge for "a" but would also be huge for
	// "b", trained on much smaller values.
	assert.Equal(t, 2, m.Bin("a", 100))
	assert.Equal(t, 0, m.Bin("b", 0.05))

	assert.Panics(t, func() { m.Bin("unknown", 1) })
}

func TestManagerTrainingError(t *testing.T) {
	pairs := []KeyValue{{Key: "a", Value: 1}}
	_, err := NewManager(pairs, PercentileTrainer(-10))
	assert.Error(t, err)
}
