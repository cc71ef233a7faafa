// Package regressor fits a line to a single feature, such as the price of a car as a function of
// its mileage, using batch gradient descent over a scaled copy of the feature.
package regressor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/feature"
	"github.com/aouyang1/go-regressor/models"
	"github.com/go-echarts/go-echarts/v2/components"
)

var (
	ErrNotFitted  = errors.New("regressor has not been fit")
	ErrNilOptions = errors.New("no options set in model")
)

// Regressor scales the training feature, fits the line with gradient descent and reports the
// coefficients on the original feature scale
type Regressor struct {
	opt *Options

	scaler    *feature.Scaler
	model     *models.GradientDescentRegression
	reference *models.OLSRegression

	intercept float64
	slope     float64

	fitTrainingData *dataset.Dataset
	fitResults      *Results
}

// New creates a new instance of a Regressor using the provided options. If no options are provided
// a default is used.
func New(opt *Options) (*Regressor, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	scaler, err := feature.NewScaler(opt.ScaleDivisor)
	if err != nil {
		return nil, err
	}

	model, err := models.NewGradientDescentRegression(opt.FitOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize gradient descent, %w", err)
	}

	return &Regressor{
		opt:    opt,
		scaler: scaler,
		model:  model,
	}, nil
}

// Fit trains the line on the feature x and observations y. The two must have the same non-zero
// length. Any previous fit is discarded.
func (r *Regressor) Fit(x, y []float64) error {
	td, err := dataset.NewDataset(x, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}

	scaled := r.scaler.Transform(td.X)
	if err := r.model.Fit(scaled, td.Y); err != nil {
		return fmt.Errorf("unable to fit gradient descent, %w", err)
	}
	r.intercept = r.scaler.InverseIntercept(r.model.Intercept())
	r.slope = r.scaler.InverseSlope(r.model.Coef())
	r.fitTrainingData = td

	reference := models.NewOLSRegression()
	if err := reference.Fit(td.X, td.Y); err != nil {
		slog.Warn("unable to fit reference least squares", "error", err.Error())
		reference = nil
	}
	r.reference = reference

	r.fitResults, err = r.results()
	if err != nil {
		r.fitTrainingData = nil
		return fmt.Errorf("unable to compute fit results, %w", err)
	}
	return nil
}

func (r *Regressor) results() (*Results, error) {
	line, err := r.Line()
	if err != nil {
		return nil, err
	}

	scores, err := NewScores(r.PredictAll(r.fitTrainingData.X), r.fitTrainingData.Y)
	if err != nil {
		return nil, err
	}

	return &Results{
		Line:        line,
		Predictions: r.Predictions(r.opt.PredictionPoints),
		Scores:      scores,
	}, nil
}

// Predict evaluates the fitted line at x on the original feature scale
func (r *Regressor) Predict(x float64) float64 {
	return r.slope*x + r.intercept
}

// PredictAll evaluates the fitted line at every x on the original feature scale
func (r *Regressor) PredictAll(x []float64) []float64 {
	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = r.Predict(v)
	}
	return res
}

// Predictions pairs every input x with its predicted value
func (r *Regressor) Predictions(x []float64) []Point {
	points := make([]Point, 0, len(x))
	for _, v := range x {
		points = append(points, Point{X: v, Y: r.Predict(v)})
	}
	return points
}

// Line returns the fitted line evaluated at the minimum and maximum of the training feature
func (r *Regressor) Line() ([2]Point, error) {
	if r.fitTrainingData == nil {
		return [2]Point{}, ErrNotFitted
	}
	minX, maxX, err := r.fitTrainingData.Extremes(r.opt.ComparePolicy)
	if err != nil {
		return [2]Point{}, err
	}
	return [2]Point{
		{X: minX, Y: r.Predict(minX)},
		{X: maxX, Y: r.Predict(maxX)},
	}, nil
}

// Intercept returns the fitted intercept on the original feature scale
func (r *Regressor) Intercept() float64 {
	return r.intercept
}

// Slope returns the fitted slope on the original feature scale
func (r *Regressor) Slope() float64 {
	return r.slope
}

// Iteration returns the number of gradient descent updates applied by the last fit
func (r *Regressor) Iteration() int {
	return r.model.Iteration()
}

// CostHistory returns the scaled feature cost after each iteration if recording was enabled
func (r *Regressor) CostHistory() []float64 {
	return r.model.CostHistory()
}

// TrainingData returns a copy of the data used in the last fit
func (r *Regressor) TrainingData() *dataset.Dataset {
	if r.fitTrainingData == nil {
		return nil
	}
	return r.fitTrainingData.Copy()
}

// FitResults returns the line, predictions and scores of the last fit
func (r *Regressor) FitResults() *Results {
	return r.fitResults
}

// Model returns a serializeable summary of the last fit
func (r *Regressor) Model() (Model, error) {
	if r.opt == nil {
		return Model{}, ErrNilOptions
	}
	if r.fitResults == nil {
		return Model{}, ErrNotFitted
	}

	m := Model{
		Options:    r.opt,
		Iterations: r.model.Iteration(),
		Weights: Coefficients{
			Intercept: r.intercept,
			Slope:     r.slope,
		},
		Scaled: Coefficients{
			Intercept: r.model.Intercept(),
			Slope:     r.model.Coef(),
		},
		Scores:  r.fitResults.Scores,
		Results: r.fitResults,
	}
	if r.reference != nil {
		m.Reference = &Coefficients{
			Intercept: r.reference.Intercept(),
			Slope:     r.reference.Coef(),
		}
	}
	return m, nil
}

// PlotFit uses the Apache Echarts library to generate an html page showing the training data, the
// predictions and the fitted line. The cost per iteration is added when it was recorded.
func (r *Regressor) PlotFit(w io.Writer) error {
	if r.fitResults == nil {
		return ErrNotFitted
	}

	page := components.NewPage()
	page.AddCharts(
		ScatterFit("Price Y and Mileage in X", r.fitTrainingData, r.fitResults),
	)

	if costs := r.CostHistory(); len(costs) > 0 {
		page.AddCharts(
			LineSeries("Training Cost", []string{"Cost"}, [][]float64{costs}),
		)
	}
	return page.Render(w)
}
