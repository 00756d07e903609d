package model

import (
	"context"
	"errors"
	"math"
)

// LogisticRegression is a binary classifier p(y=classes[1]) = sigmoid(w·x + b).
type LogisticRegression struct {
	Classes   []int
	Weights   FeatureVector
	Intercept float64
}

func NewLogisticRegression(classes []int, weights FeatureVector, intercept float64) (*LogisticRegression, error) {
	if len(classes) != 2 {
		return nil, errors.New("logistic regression needs exactly two classes")
	}
	return &LogisticRegression{Classes: classes, Weights: weights, Intercept: intercept}, nil
}

func (m *LogisticRegression) decision(x FeatureVector) float64 {
	z := m.Intercept
	for i, w := range m.Weights {
		z += w * x[i]
	}
	return z
}

func (m *LogisticRegression) PredictProba(_ context.Context, x FeatureVector) ([]float64, error) {
	p := sigmoid(m.decision(x))
	return []float64{1 - p, p}, nil
}

// Predict picks the positive class only when the decision value is strictly
// positive. Testing the sigmoid against 0.5 would misclassify tiny positive z.
func (m *LogisticRegression) Predict(_ context.Context, x FeatureVector) (int, error) {
	if m.decision(x) > 0 {
		return m.Classes[1], nil
	}
	return m.Classes[0], nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
