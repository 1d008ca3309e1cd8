// Package similarity provides pure scoring functions for comparing
// equal-length embedding vectors.
//
// All functions assume both vectors have the same length; the caller
// is responsible for dimension validation. Scores are oriented so that
// higher means more similar, which lets callers rank results under any
// metric with a single descending sort.
package similarity

import (
	"fmt"
	"math"
)

// Metric selects the scoring function used to compare vectors.
type Metric int

const (
	// MetricCosine scores by the cosine of the angle between the vectors.
	// Range -1..1 for arbitrary vectors, 0..1 for non-negative ones.
	MetricCosine Metric = iota

	// MetricEuclidean converts euclidean distance d into a similarity
	// via 1/(1+d): distance 0 maps to 1, larger distances approach 0.
	MetricEuclidean

	// MetricDot scores by the dot product rescaled to 0..1 via
	// (dot+n)/(2n) where n is the vector length. The rescaling assumes
	// component magnitudes roughly within [-1, 1]; use Dot directly for
	// the uncalibrated value.
	MetricDot
)

func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricEuclidean:
		return "euclidean"
	case MetricDot:
		return "dot"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMetric parses a metric name as it appears in configuration
// ("cosine", "euclidean" or "dot").
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "cosine":
		return MetricCosine, nil
	case "euclidean":
		return MetricEuclidean, nil
	case "dot":
		return MetricDot, nil
	default:
		return 0, fmt.Errorf("unknown similarity metric: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so metrics persist as
// their config names inside JSON snapshots.
func (m Metric) MarshalText() ([]byte, error) {
	switch m {
	case MetricCosine, MetricEuclidean, MetricDot:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal unknown similarity metric %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Func scores two equal-length vectors. Higher is more similar.
type Func func(a, b []float32) float32

// Provider returns the scoring function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricCosine:
		return Cosine, nil
	case MetricEuclidean:
		return Euclidean, nil
	case MetricDot:
		return DotNormalized, nil
	default:
		return nil, fmt.Errorf("unsupported similarity metric: %v", m)
	}
}

// Dot calculates the raw dot product of two vectors.
// The result is unbounded; it is not a calibrated 0..1 score.
func Dot(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}

// Cosine calculates the cosine similarity of two vectors.
// Returns 0 if either vector has zero norm.
func Cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// Euclidean converts the euclidean distance between two vectors into a
// similarity score via 1/(1+distance).
func Euclidean(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(1 / (1 + math.Sqrt(sum)))
}

// DotNormalized rescales the dot product to 0..1 via (dot+n)/(2n),
// where n is the vector length. Meaningful only when component
// magnitudes are roughly within [-1, 1], which holds for typical
// unit-ish embedding vectors.
func DotNormalized(a, b []float32) float32 {
	n := len(a)
	if n == 0 {
		return 0
	}
	dot := float64(Dot(a, b))
	return float32((dot + float64(n)) / (2 * float64(n)))
}
