package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type remoteProbaRequest struct {
	Features [][]float64 `json:"features"`
}

type remoteProbaResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// RemoteClassifier delegates inference to a model server exposing
// POST /predict_proba and GET /health.
type RemoteClassifier struct {
	client *resty.Client
}

func NewRemoteClassifier(baseURL string, timeout time.Duration) *RemoteClassifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &RemoteClassifier{client: client}
}

// Ping checks the model server answers its health endpoint.
func (r *RemoteClassifier) Ping(ctx context.Context) error {
	resp, err := r.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("connect to model server: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("model server unhealthy: status %d", resp.StatusCode())
	}
	return nil
}

func (r *RemoteClassifier) PredictProba(ctx context.Context, x FeatureVector) ([]float64, error) {
	var result remoteProbaResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(remoteProbaRequest{Features: [][]float64{x[:]}}).
		SetResult(&result).
		Post("/predict_proba")
	if err != nil {
		return nil, fmt.Errorf("connect to model server: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("model server error: status %d", resp.StatusCode())
	}
	if len(result.Probabilities) != 1 || len(result.Probabilities[0]) == 0 {
		return nil, errors.New("model server returned no probabilities")
	}
	return result.Probabilities[0], nil
}

// Score takes the label and the probabilities from a single round trip.
// The label is the index of the most probable class.
func (r *RemoteClassifier) Score(ctx context.Context, x FeatureVector) (int, []float64, error) {
	proba, err := r.PredictProba(ctx, x)
	if err != nil {
		return 0, nil, err
	}
	return argmax(proba), proba, nil
}

func (r *RemoteClassifier) Predict(ctx context.Context, x FeatureVector) (int, error) {
	label, _, err := r.Score(ctx, x)
	return label, err
}
