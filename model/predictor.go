package model

import (
	"context"
	"fmt"
	"math"
)

const (
	MessageHighRisk = "High risk of diabetes"
	MessageLowRisk  = "Low risk of diabetes"
)

// Result is the outcome of a single prediction.
type Result struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

// Predictor scales raw measurements and runs them through the classifier.
// It holds no mutable state and is safe for concurrent use.
type Predictor struct {
	scaler     Scaler
	classifier Classifier
}

func NewPredictor(classifier Classifier, scaler Scaler) *Predictor {
	return &Predictor{scaler: scaler, classifier: classifier}
}

// Loaded reports whether a classifier is attached.
func (p *Predictor) Loaded() bool {
	return p != nil && p.classifier != nil
}

// Predict returns the predicted class and the largest class probability.
func (p *Predictor) Predict(ctx context.Context, raw FeatureVector) (Result, error) {
	if !p.Loaded() {
		return Result{}, ErrModelNotLoaded
	}
	x := p.scaler.Transform(raw)

	label, proba, err := p.classify(ctx, x)
	if err != nil {
		return Result{}, err
	}
	if len(proba) == 0 {
		return Result{}, fmt.Errorf("%w: empty probability vector", ErrModelFailure)
	}
	best := proba[0]
	for _, v := range proba {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: non-finite probability", ErrModelFailure)
		}
		if v > best {
			best = v
		}
	}

	msg := MessageLowRisk
	if label == 1 {
		msg = MessageHighRisk
	}
	return Result{Prediction: label, Probability: best, Message: msg}, nil
}

func (p *Predictor) classify(ctx context.Context, x FeatureVector) (int, []float64, error) {
	if s, ok := p.classifier.(Scorer); ok {
		label, proba, err := s.Score(ctx, x)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: score: %v", ErrModelFailure, err)
		}
		return label, proba, nil
	}
	label, err := p.classifier.Predict(ctx, x)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: predict: %v", ErrModelFailure, err)
	}
	proba, err := p.classifier.PredictProba(ctx, x)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: predict proba: %v", ErrModelFailure, err)
	}
	return label, proba, nil
}
