package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	t.Run("SelfSimilarity", func(t *testing.T) {
		v := []float32{0.3, -0.5, 0.8}
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
	})

	t.Run("Orthogonal", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine([]float32{1, 0, 0}, []float32{0, 1, 0}), 1e-6)
	})

	t.Run("Opposite", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine([]float32{1, 2, 3}, []float32{-1, -2, -3}), 1e-6)
	})

	t.Run("ZeroNormFallback", func(t *testing.T) {
		assert.Equal(t, float32(0), Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}))
		assert.Equal(t, float32(0), Cosine([]float32{1, 2, 3}, []float32{0, 0, 0}))
	})
}

func TestEuclidean(t *testing.T) {
	t.Run("IdenticalVectorsScoreOne", func(t *testing.T) {
		v := []float32{1, 2, 3}
		assert.InDelta(t, 1.0, Euclidean(v, v), 1e-6)
	})

	t.Run("UnitDistance", func(t *testing.T) {
		// distance 1 -> 1/(1+1) = 0.5
		assert.InDelta(t, 0.5, Euclidean([]float32{0, 0}, []float32{1, 0}), 1e-6)
	})

	t.Run("LargerDistanceScoresLower", func(t *testing.T) {
		near := Euclidean([]float32{0, 0}, []float32{1, 0})
		far := Euclidean([]float32{0, 0}, []float32{10, 0})
		assert.Less(t, far, near)
	})
}

func TestDot(t *testing.T) {
	t.Run("Raw", func(t *testing.T) {
		assert.InDelta(t, 32.0, Dot([]float32{1, 2, 3}, []float32{4, 5, 6}), 1e-6)
	})

	t.Run("NormalizedRange", func(t *testing.T) {
		// Unit-magnitude components stay within 0..1.
		assert.InDelta(t, 1.0, DotNormalized([]float32{1, 1, 1}, []float32{1, 1, 1}), 1e-6)
		assert.InDelta(t, 0.0, DotNormalized([]float32{1, 1, 1}, []float32{-1, -1, -1}), 1e-6)
		assert.InDelta(t, 0.5, DotNormalized([]float32{1, 0, 0}, []float32{0, 1, 0}), 1e-6)
	})

	t.Run("EmptyVectors", func(t *testing.T) {
		assert.Equal(t, float32(0), DotNormalized(nil, nil))
	})
}

func TestProvider(t *testing.T) {
	for _, m := range []Metric{MetricCosine, MetricEuclidean, MetricDot} {
		fn, err := Provider(m)
		require.NoError(t, err)
		require.NotNil(t, fn)
	}

	_, err := Provider(Metric(99))
	require.Error(t, err)
}

func TestMetricText(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		for _, m := range []Metric{MetricCosine, MetricEuclidean, MetricDot} {
			text, err := m.MarshalText()
			require.NoError(t, err)

			var parsed Metric
			require.NoError(t, parsed.UnmarshalText(text))
			assert.Equal(t, m, parsed)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		var m Metric
		require.Error(t, m.UnmarshalText([]byte("manhattan")))

		_, err := Metric(42).MarshalText()
		require.Error(t, err)
	})
}
