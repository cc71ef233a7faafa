package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientDescentOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *GradientDescentOptions
		err      error
		expected *GradientDescentOptions
	}{
		"nil": {nil, nil, NewDefaultGradientDescentOptions()},
		"valid": {
			&GradientDescentOptions{
				LearningRate:    0.1,
				Iterations:      10,
				Tolerance:       1e-6,
				Parallelization: 2,
				RecordCost:      true,
			}, nil,
			&GradientDescentOptions{
				LearningRate:    0.1,
				Iterations:      10,
				Tolerance:       1e-6,
				Parallelization: 2,
				RecordCost:      true,
			},
		},
		"unset parallelization": {
			&GradientDescentOptions{LearningRate: 0.1, Iterations: 10}, nil,
			&GradientDescentOptions{LearningRate: 0.1, Iterations: 10, Parallelization: 1},
		},
		"zero learning rate": {
			&GradientDescentOptions{Iterations: 10},
			ErrNonPositiveRate, nil,
		},
		"negative learning rate": {
			&GradientDescentOptions{LearningRate: -0.1, Iterations: 10},
			ErrNonPositiveRate, nil,
		},
		"nan learning rate": {
			&GradientDescentOptions{LearningRate: math.NaN(), Iterations: 10},
			ErrNonPositiveRate, nil,
		},
		"zero iterations": {
			&GradientDescentOptions{LearningRate: 0.1},
			ErrNonPositiveIters, nil,
		},
		"negative iterations": {
			&GradientDescentOptions{LearningRate: 0.1, Iterations: -1},
			ErrNonPositiveIters, nil,
		},
		"negative tolerance": {
			&GradientDescentOptions{LearningRate: 0.1, Iterations: 10, Tolerance: -1.0},
			ErrNegativeTolerance, nil,
		},
		"negative parallelization": {
			&GradientDescentOptions{LearningRate: 0.1, Iterations: 10, Parallelization: -1},
			ErrNegativeParallel, nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestGradientDescentRegression(t *testing.T) {
	tol := 1e-3
	testData := map[string]struct {
		x         []float64
		y         []float64
		opt       *GradientDescentOptions
		intercept float64
		coef      float64
	}{
		"positive slope": {
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{3, 5, 7, 9, 11},
			opt:       &GradientDescentOptions{LearningRate: 0.05, Iterations: 10000},
			intercept: 1.0,
			coef:      2.0,
		},
		"negative slope": {
			x:         []float64{1, 2, 3},
			y:         []float64{3, 2, 1},
			opt:       &GradientDescentOptions{LearningRate: 0.01, Iterations: 20000},
			intercept: 4.0,
			coef:      -1.0,
		},
		"parallel sums": {
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{3, 5, 7, 9, 11},
			opt:       &GradientDescentOptions{LearningRate: 0.05, Iterations: 10000, Parallelization: 3},
			intercept: 1.0,
			coef:      2.0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewGradientDescentRegression(td.opt)
			require.Nil(t, err)

			testModel(t, model, td.x, td.y, td.intercept, td.coef, tol)
			assert.Equal(t, td.opt.Iterations, model.Iteration())
			assert.True(t, model.Converged())
		})
	}
}

func TestGradientDescentFixedBudget(t *testing.T) {
	// 2000 iterations at 0.01 stops short of the exact optimum (4, -1)
	model, err := NewGradientDescentRegression(nil)
	require.Nil(t, err)

	x := []float64{1, 2, 3}
	y := []float64{3, 2, 1}
	require.Nil(t, model.Fit(x, y))

	assert.Equal(t, DefaultIterations, model.Iteration())
	assert.InDelta(t, 3.66434, model.Intercept(), 1e-4)
	assert.InDelta(t, -0.85234, model.Coef(), 1e-4)
	assert.InDelta(t, 1.10731, model.Predict(3), 1e-4)
}

func TestGradientDescentFitErrors(t *testing.T) {
	testData := map[string]struct {
		x   []float64
		y   []float64
		err error
	}{
		"empty":           {nil, nil, ErrNoTrainingData},
		"empty slices":    {[]float64{}, []float64{}, ErrNoTrainingData},
		"length mismatch": {[]float64{1, 2, 3}, []float64{1, 2}, ErrTargetLenMismatch},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewGradientDescentRegression(nil)
			require.Nil(t, err)

			err = model.Fit(td.x, td.y)
			assert.ErrorIs(t, err, td.err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, model.Iteration())
			assert.Equal(t, 0.0, model.Intercept())
			assert.Equal(t, 0.0, model.Coef())

			_, err = model.Cost(td.x, td.y)
			assert.ErrorIs(t, err, ErrInvalidInput)

			err = model.Step(td.x, td.y)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGradientDescentCostNonIncreasing(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}

	model, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 0.01,
		Iterations:   2000,
	})
	require.Nil(t, err)

	prev, err := model.Cost(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 56.0/3.0, prev, 1e-9)

	for !model.Converged() {
		require.Nil(t, model.Step(x, y))

		curr, err := model.Cost(x, y)
		require.Nil(t, err)
		require.LessOrEqual(t, curr, prev, "iteration %d", model.Iteration())
		prev = curr
	}
	assert.Less(t, prev, 1e-3)
	assert.ErrorIs(t, model.Step(x, y), ErrConverged)
}

func TestGradientDescentCostHistory(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}

	model, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 0.01,
		Iterations:   500,
		RecordCost:   true,
	})
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, y))

	history := model.CostHistory()
	require.Len(t, history, 500)
	for i := 1; i < len(history); i++ {
		assert.LessOrEqual(t, history[i], history[i-1])
	}

	final, err := model.Cost(x, y)
	require.Nil(t, err)
	assert.Equal(t, final, history[len(history)-1])
}

func TestGradientDescentSimultaneousUpdate(t *testing.T) {
	// one step from (0, 0): residuals are -y so gradient0 = -12 and gradient1 = -28
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}

	model, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 0.3,
		Iterations:   1,
	})
	require.Nil(t, err)
	require.Nil(t, model.Step(x, y))

	assert.InDelta(t, 0.3/3*12, model.Intercept(), 1e-12)
	assert.InDelta(t, 0.3/3*28, model.Coef(), 1e-12)
	assert.True(t, model.Converged())
}

func TestGradientDescentTolerance(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}

	model, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 0.05,
		Iterations:   10000,
		Tolerance:    1e-10,
	})
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, y))

	assert.True(t, model.Converged())
	assert.Less(t, model.Iteration(), 10000)
	assert.InDelta(t, 1.0, model.Intercept(), 1e-3)
	assert.InDelta(t, 2.0, model.Coef(), 1e-3)
}

func TestGradientDescentParallelMatchesSequential(t *testing.T) {
	x, y := generateBenchData(1001)

	seq, err := NewGradientDescentRegression(&GradientDescentOptions{LearningRate: 0.1, Iterations: 300})
	require.Nil(t, err)
	require.Nil(t, seq.Fit(x, y))

	for _, p := range []int{2, 4, 7, 2000} {
		par, err := NewGradientDescentRegression(&GradientDescentOptions{LearningRate: 0.1, Iterations: 300, Parallelization: p})
		require.Nil(t, err)
		require.Nil(t, par.Fit(x, y))

		assert.InDelta(t, seq.Intercept(), par.Intercept(), 1e-9, "parallelization %d", p)
		assert.InDelta(t, seq.Coef(), par.Coef(), 1e-9, "parallelization %d", p)
	}
}

func TestGradientDescentPredictLinear(t *testing.T) {
	model, err := NewGradientDescentRegression(&GradientDescentOptions{LearningRate: 0.05, Iterations: 1000})
	require.Nil(t, err)
	require.Nil(t, model.Fit([]float64{1, 2, 3, 4}, []float64{1.5, 3.9, 6.1, 8.4}))

	dx := 1.75
	expected := model.Predict(0+dx) - model.Predict(0)
	for _, x2 := range []float64{-10, -1, 0.5, 3, 42, 1000} {
		assert.InDelta(t, expected, model.Predict(x2+dx)-model.Predict(x2), 1e-9)
	}
	assert.InDelta(t, model.Coef()*dx, expected, 1e-9)

	pred := model.PredictAll([]float64{0, 1, 2})
	assert.InDeltaSlice(t, []float64{model.Predict(0), model.Predict(1), model.Predict(2)}, pred, 1e-12)
}

func TestGradientDescentInputsUnchanged(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4.1, 5.9, 8.2}
	xCopy := append([]float64(nil), x...)
	yCopy := append([]float64(nil), y...)

	model, err := NewGradientDescentRegression(&GradientDescentOptions{LearningRate: 0.05, Iterations: 100, Parallelization: 2})
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, y))
	intercept, coef := model.Intercept(), model.Coef()

	assert.Equal(t, xCopy, x)
	assert.Equal(t, yCopy, y)

	// refitting starts over from zero and lands on the same parameters
	require.Nil(t, model.Fit(x, y))
	assert.Equal(t, intercept, model.Intercept())
	assert.Equal(t, coef, model.Coef())
}

func TestGradientDescentNaNPropagates(t *testing.T) {
	model, err := NewGradientDescentRegression(&GradientDescentOptions{LearningRate: 0.01, Iterations: 10})
	require.Nil(t, err)
	require.Nil(t, model.Fit([]float64{1, math.NaN(), 3}, []float64{1, 2, 3}))

	assert.True(t, math.IsNaN(model.Intercept()))
	assert.True(t, math.IsNaN(model.Coef()))
}

func BenchmarkGradientDescentRegression(b *testing.B) {
	x, y := generateBenchData(1000)

	for b.Loop() {
		model, err := NewGradientDescentRegression(nil)
		if err != nil {
			b.Error(err)
			continue
		}
		if err := model.Fit(x, y); err != nil {
			b.Error(err)
			continue
		}
	}
}
