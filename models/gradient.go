package models

import (
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultLearningRate    = 0.01
	DefaultIterations      = 2000
	DefaultTolerance       = 0.0
	DefaultParallelization = 1
)

// GradientDescentOptions represents input options to run the batch gradient descent regression
type GradientDescentOptions struct {
	// LearningRate is the step size applied to the mean gradient on every iteration. Must be positive.
	LearningRate float64 `json:"learning_rate"`

	// Iterations is the exact number of full-batch updates performed by Fit. Must be positive.
	Iterations int `json:"iterations"`

	// Tolerance stops training early once the change in cost between two iterations falls below it.
	// 0.0 disables early stopping so that exactly Iterations updates are applied.
	Tolerance float64 `json:"tolerance"`

	// Parallelization splits the per iteration gradient sums across this many goroutines. 0 or 1
	// computes the sums sequentially.
	Parallelization int `json:"parallelization"`

	// RecordCost tracks the mean squared error after every iteration
	RecordCost bool `json:"record_cost"`
}

// NewDefaultGradientDescentOptions returns a default set of gradient descent options
func NewDefaultGradientDescentOptions() *GradientDescentOptions {
	return &GradientDescentOptions{
		LearningRate:    DefaultLearningRate,
		Iterations:      DefaultIterations,
		Tolerance:       DefaultTolerance,
		Parallelization: DefaultParallelization,
	}
}

// Validate runs basic validation on gradient descent options
func (g *GradientDescentOptions) Validate() (*GradientDescentOptions, error) {
	if g == nil {
		g = NewDefaultGradientDescentOptions()
	}

	if !(g.LearningRate > 0) || math.IsInf(g.LearningRate, 1) {
		return nil, ErrNonPositiveRate
	}
	if g.Iterations <= 0 {
		return nil, ErrNonPositiveIters
	}
	if g.Tolerance < 0 || math.IsNaN(g.Tolerance) {
		return nil, ErrNegativeTolerance
	}
	if g.Parallelization < 0 {
		return nil, ErrNegativeParallel
	}

	opt := *g
	if opt.Parallelization == 0 {
		opt.Parallelization = DefaultParallelization
	}
	return &opt, nil
}

// GradientDescentRegression fits y = intercept + coef * x by full-batch gradient descent on the
// mean squared error. Both parameters start at zero and are updated simultaneously from gradients
// computed with the pre-update values.
type GradientDescentRegression struct {
	opt *GradientDescentOptions

	intercept float64
	coef      float64

	iteration int
	stopped   bool

	costHistory []float64

	// reused across iterations to avoid reallocating on every step
	residual []float64
	partial0 []float64
	partial1 []float64
}

// NewGradientDescentRegression initializes a gradient descent model ready for fitting
func NewGradientDescentRegression(opt *GradientDescentOptions) (*GradientDescentRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &GradientDescentRegression{
		opt: opt,
	}, nil
}

// Fit resets the parameters to zero and trains on the given data for the configured number of
// iterations. The input slices are never modified.
func (g *GradientDescentRegression) Fit(x, y []float64) error {
	if g.opt == nil {
		return ErrNoOptions
	}
	if err := validateTrainingData(x, y); err != nil {
		return err
	}
	g.Reset()

	trackCost := g.opt.RecordCost || g.opt.Tolerance > 0
	var prevCost float64
	if trackCost {
		prevCost = g.cost(x, y)
	}
	for !g.Converged() {
		g.step(x, y)
		if !trackCost {
			continue
		}

		currCost := g.cost(x, y)
		if g.opt.RecordCost {
			g.costHistory = append(g.costHistory, currCost)
		}
		if g.opt.Tolerance > 0 && math.Abs(prevCost-currCost) < g.opt.Tolerance {
			slog.Debug("stopping gradient descent early", "iteration", g.iteration, "cost", currCost)
			g.stopped = true
			break
		}
		prevCost = currCost
	}
	return nil
}

// Step applies a single gradient descent update from the current parameters. Returns ErrConverged
// once the iteration budget has been used.
func (g *GradientDescentRegression) Step(x, y []float64) error {
	if g.opt == nil {
		return ErrNoOptions
	}
	if err := validateTrainingData(x, y); err != nil {
		return err
	}
	if g.Converged() {
		return ErrConverged
	}
	g.step(x, y)
	if g.opt.RecordCost {
		g.costHistory = append(g.costHistory, g.cost(x, y))
	}
	return nil
}

func (g *GradientDescentRegression) step(x, y []float64) {
	n := float64(len(x))
	grad0, grad1 := g.gradients(x, y)

	g.intercept -= g.opt.LearningRate / n * grad0
	g.coef -= g.opt.LearningRate / n * grad1
	g.iteration++
}

// gradients returns sum(residual) and sum(residual * x) where residual = intercept + coef * x - y
func (g *GradientDescentRegression) gradients(x, y []float64) (float64, float64) {
	n := len(x)
	if len(g.residual) != n {
		g.residual = make([]float64, n)
	}

	chunks := g.opt.Parallelization
	if chunks > n {
		chunks = n
	}
	if chunks <= 1 {
		return g.partialGradients(x, y, 0, n)
	}

	if len(g.partial0) != chunks {
		g.partial0 = make([]float64, chunks)
		g.partial1 = make([]float64, chunks)
	}

	size := (n + chunks - 1) / chunks
	var eg errgroup.Group
	for c := 0; c < chunks; c++ {
		start := c * size
		end := min(start+size, n)
		eg.Go(func() error {
			g.partial0[c], g.partial1[c] = g.partialGradients(x, y, start, end)
			return nil
		})
	}
	_ = eg.Wait()

	// combine in chunk order so a given parallelization is always reproducible
	var grad0, grad1 float64
	for c := 0; c < chunks; c++ {
		grad0 += g.partial0[c]
		grad1 += g.partial1[c]
	}
	return grad0, grad1
}

func (g *GradientDescentRegression) partialGradients(x, y []float64, start, end int) (float64, float64) {
	if start >= end {
		return 0, 0
	}
	res := g.residual[start:end]
	xs := x[start:end]

	floats.ScaleTo(res, g.coef, xs)
	floats.AddConst(g.intercept, res)
	floats.Sub(res, y[start:end])
	return floats.Sum(res), floats.Dot(res, xs)
}

// Cost returns the mean squared error of the current parameters over the given data
func (g *GradientDescentRegression) Cost(x, y []float64) (float64, error) {
	if err := validateTrainingData(x, y); err != nil {
		return 0.0, err
	}
	return g.cost(x, y), nil
}

func (g *GradientDescentRegression) cost(x, y []float64) float64 {
	var total float64
	for i := 0; i < len(x); i++ {
		diff := y[i] - (g.coef*x[i] + g.intercept)
		total += diff * diff
	}
	return total / float64(len(x))
}

// Predict evaluates the current parameters at x
func (g *GradientDescentRegression) Predict(x float64) float64 {
	return g.coef*x + g.intercept
}

// PredictAll evaluates the current parameters at every point of x
func (g *GradientDescentRegression) PredictAll(x []float64) []float64 {
	res := make([]float64, len(x))
	floats.ScaleTo(res, g.coef, x)
	floats.AddConst(g.intercept, res)
	return res
}

// Score computes the coefficient of determination of the prediction
func (g *GradientDescentRegression) Score(x, y []float64) (float64, error) {
	if err := validateTrainingData(x, y); err != nil {
		return 0.0, err
	}

	score := stat.RSquaredFrom(g.PredictAll(x), y, nil)
	if math.IsNaN(score) {
		score = 1.0
	}
	return score, nil
}

// Reset returns the model to its initial untrained state
func (g *GradientDescentRegression) Reset() {
	g.intercept = 0.0
	g.coef = 0.0
	g.iteration = 0
	g.stopped = false
	g.costHistory = nil
}

// Converged is true once the iteration budget is exhausted or training stopped on tolerance
func (g *GradientDescentRegression) Converged() bool {
	return g.stopped || g.iteration >= g.opt.Iterations
}

// Iteration returns the number of updates applied since the last reset
func (g *GradientDescentRegression) Iteration() int {
	return g.iteration
}

// CostHistory returns the cost after each iteration if RecordCost is enabled
func (g *GradientDescentRegression) CostHistory() []float64 {
	c := make([]float64, len(g.costHistory))
	copy(c, g.costHistory)
	return c
}

// Options returns the validated options of the model
func (g *GradientDescentRegression) Options() GradientDescentOptions {
	return *g.opt
}

// Intercept returns the fitted intercept, theta0
func (g *GradientDescentRegression) Intercept() float64 {
	return g.intercept
}

// Coef returns the fitted slope, theta1
func (g *GradientDescentRegression) Coef() float64 {
	return g.coef
}
