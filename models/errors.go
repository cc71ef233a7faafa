package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the category of every error caused by the training data itself
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration is the category of every error caused by model or scaling options
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

var (
	ErrNoOptions          = fmt.Errorf("no initialized model options, %w", ErrInvalidConfiguration)
	ErrNoTrainingData     = fmt.Errorf("no training data, %w", ErrInvalidInput)
	ErrTargetLenMismatch  = fmt.Errorf("target length does not match training length, %w", ErrInvalidInput)
	ErrNonPositiveRate    = fmt.Errorf("learning rate must be positive, %w", ErrInvalidConfiguration)
	ErrNonPositiveIters   = fmt.Errorf("iterations must be positive, %w", ErrInvalidConfiguration)
	ErrNegativeTolerance  = fmt.Errorf("negative tolerance, %w", ErrInvalidConfiguration)
	ErrNegativeParallel   = fmt.Errorf("negative parallelization, %w", ErrInvalidConfiguration)
	ErrConverged          = errors.New("iteration budget exhausted")
	ErrSingularDesign     = fmt.Errorf("design matrix is singular, %w", ErrInvalidInput)
	ErrInsufficientPoints = fmt.Errorf("need at least 2 points for least squares, %w", ErrInvalidInput)
)
