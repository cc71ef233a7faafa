package regressor

import (
	"fmt"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/feature"
	"github.com/aouyang1/go-regressor/models"
)

// DefaultPredictionPoints are the mileages predicted alongside every fit
var DefaultPredictionPoints = []float64{42000, 100000, 38600}

// Options configures the feature scaling, the gradient descent fit and the rendered outputs
type Options struct {
	// ScaleDivisor divides the feature before training. Must be positive.
	ScaleDivisor float64 `json:"scale_divisor"`

	FitOptions *models.GradientDescentOptions `json:"fit_options"`

	// ComparePolicy determines how the fitted line endpoints are chosen from the training feature
	ComparePolicy dataset.ComparePolicy `json:"compare_policy"`

	// PredictionPoints are evaluated with the fitted line and reported with the fit results
	PredictionPoints []float64 `json:"prediction_points"`
}

// NewDefaultOptions returns the options used for mileage and price data
func NewDefaultOptions() *Options {
	points := make([]float64, len(DefaultPredictionPoints))
	copy(points, DefaultPredictionPoints)
	return &Options{
		ScaleDivisor:     feature.DefaultScaleDivisor,
		FitOptions:       models.NewDefaultGradientDescentOptions(),
		ComparePolicy:    dataset.CompareFloat,
		PredictionPoints: points,
	}
}

// Validate checks every option once before training, returning a validated copy
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	if _, err := feature.NewScaler(o.ScaleDivisor); err != nil {
		return nil, err
	}

	fitOpt, err := o.FitOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid fit options, %w", err)
	}

	switch o.ComparePolicy {
	case dataset.CompareFloat, dataset.CompareTruncated:
	default:
		return nil, fmt.Errorf("%s, %w", o.ComparePolicy, dataset.ErrUnknownPolicy)
	}

	opt := *o
	opt.FitOptions = fitOpt
	if o.PredictionPoints != nil {
		opt.PredictionPoints = make([]float64, len(o.PredictionPoints))
		copy(opt.PredictionPoints, o.PredictionPoints)
	}
	return &opt, nil
}
