// Package dataset holds the paired observations a line is fit against
package dataset

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-regressor/models"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoData             = fmt.Errorf("no data, %w", models.ErrInvalidInput)
	ErrDatasetLenMismatch = fmt.Errorf("feature has a different length than observations, %w", models.ErrInvalidInput)
	ErrUnknownPolicy      = fmt.Errorf("unknown compare policy, %w", models.ErrInvalidConfiguration)
)

// Dataset stores a feature x and observations y paired by index. Both must be of the same
// non-zero length.
type Dataset struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// NewDataset returns an instance of a Dataset given a feature and value slice. The inputs are copied.
func NewDataset(x, y []float64) (*Dataset, error) {
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf(
			"feature has length of %d, but values has a length of %d, %w",
			len(x), len(y), ErrDatasetLenMismatch,
		)
	}

	xSeries := make([]float64, len(x))
	ySeries := make([]float64, len(y))
	copy(xSeries, x)
	copy(ySeries, y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}, nil
}

func (d *Dataset) Copy() *Dataset {
	xSeries := make([]float64, len(d.X))
	ySeries := make([]float64, len(d.Y))
	copy(xSeries, d.X)
	copy(ySeries, d.Y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}
}

func (d *Dataset) Len() int {
	return len(d.X)
}

// ComparePolicy selects how the extremes of a feature are determined
type ComparePolicy int

const (
	// CompareFloat uses a true float64 comparison
	CompareFloat ComparePolicy = iota

	// CompareTruncated compares values truncated to a saturating int32 with NaN as 0. Ties resolve
	// to the first minimum and the last maximum. Kept for parity with outputs of the legacy tool.
	CompareTruncated
)

func (c ComparePolicy) String() string {
	switch c {
	case CompareFloat:
		return "float"
	case CompareTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("ComparePolicy(%d)", int(c))
	}
}

func (c ComparePolicy) MarshalText() ([]byte, error) {
	switch c {
	case CompareFloat, CompareTruncated:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("%d, %w", int(c), ErrUnknownPolicy)
	}
}

func (c *ComparePolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "float":
		*c = CompareFloat
	case "truncated":
		*c = CompareTruncated
	default:
		return fmt.Errorf("%q, %w", string(text), ErrUnknownPolicy)
	}
	return nil
}

// Extremes returns the minimum and maximum feature values using the given comparison policy. The
// returned values are always the original untruncated values.
func (d *Dataset) Extremes(policy ComparePolicy) (float64, float64, error) {
	if len(d.X) == 0 {
		return 0, 0, ErrNoData
	}

	switch policy {
	case CompareFloat:
		return floats.Min(d.X), floats.Max(d.X), nil
	case CompareTruncated:
		minIdx, maxIdx := 0, 0
		minVal, maxVal := truncateInt32(d.X[0]), truncateInt32(d.X[0])
		for i := 1; i < len(d.X); i++ {
			v := truncateInt32(d.X[i])
			if v < minVal {
				minIdx, minVal = i, v
			}
			if v >= maxVal {
				maxIdx, maxVal = i, v
			}
		}
		return d.X[minIdx], d.X[maxIdx], nil
	default:
		return 0, 0, fmt.Errorf("%d, %w", int(policy), ErrUnknownPolicy)
	}
}

func truncateInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}
