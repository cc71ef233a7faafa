package feature

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-regressor/models"
)

// DefaultScaleDivisor keeps mileage in the tens to hundreds of thousands within a few units
const DefaultScaleDivisor = 10000.0

var ErrInvalidDivisor = fmt.Errorf("scale divisor must be a positive finite number, %w", models.ErrInvalidConfiguration)

// Scaler divides a feature by a constant before training. A line fit as
// y = theta1 * (x / d) + theta0 has a true slope of theta1 / d and the same intercept.
type Scaler struct {
	Divisor float64 `json:"divisor"`
}

// NewScaler returns a Scaler for the given divisor
func NewScaler(divisor float64) (*Scaler, error) {
	s := &Scaler{Divisor: divisor}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scaler) Validate() error {
	if !(s.Divisor > 0) || math.IsInf(s.Divisor, 1) {
		return fmt.Errorf("got %g, %w", s.Divisor, ErrInvalidDivisor)
	}
	return nil
}

// Transform returns a new slice with every value divided by the divisor
func (s *Scaler) Transform(x []float64) []float64 {
	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = v / s.Divisor
	}
	return scaled
}

// InverseSlope converts a slope fit on the scaled feature back to the original scale
func (s *Scaler) InverseSlope(slope float64) float64 {
	return slope / s.Divisor
}

// InverseIntercept is the identity since the intercept does not depend on the feature scale
func (s *Scaler) InverseIntercept(intercept float64) float64 {
	return intercept
}
