package model

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrModelFailure   = errors.New("model failure")
	ErrModelNotLoaded = errors.New("model not loaded")
)

// Classifier is a pre-trained binary classifier over scaled feature vectors.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, x FeatureVector) (int, error)
	PredictProba(ctx context.Context, x FeatureVector) ([]float64, error)
}

// Scorer is implemented by classifiers that produce the label and the class
// probabilities from one evaluation. Predictor prefers it over separate calls.
type Scorer interface {
	Score(ctx context.Context, x FeatureVector) (int, []float64, error)
}

// argmax returns the index of the largest value, first one wins on ties.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
