// Package models is a collection of univariate linear regression fitting implementations used by
// the regressor
package models

import "fmt"

// Model is a univariate linear model y = intercept + coef * x
type Model interface {
	Fit(x, y []float64) error
	Predict(x float64) float64
	PredictAll(x []float64) []float64
	Score(x, y []float64) (float64, error)
	Intercept() float64
	Coef() float64
}

func validateTrainingData(x, y []float64) error {
	if len(x) == 0 {
		return ErrNoTrainingData
	}
	if len(x) != len(y) {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", len(x), len(y), ErrTargetLenMismatch)
	}
	return nil
}
