package model

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	TypeLogisticRegression = "logistic_regression"
	TypeDecisionTree       = "decision_tree"
)

// Artifact is the serialised form of a trained classifier.
type Artifact struct {
	Type      string     `json:"type"`
	Classes   []int      `json:"classes"`
	Weights   []float64  `json:"weights,omitempty"`
	Intercept float64    `json:"intercept,omitempty"`
	Nodes     []TreeNode `json:"nodes,omitempty"`
}

// LoadArtifact reads a classifier artifact from path.
func LoadArtifact(path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	c, err := a.Classifier()
	if err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}
	return c, nil
}

// Classifier builds the in-memory classifier described by the artifact.
func (a Artifact) Classifier() (Classifier, error) {
	switch a.Type {
	case TypeLogisticRegression:
		if len(a.Weights) != NumFeatures {
			return nil, fmt.Errorf("logistic regression has %d weights, want %d", len(a.Weights), NumFeatures)
		}
		var w FeatureVector
		copy(w[:], a.Weights)
		return NewLogisticRegression(a.Classes, w, a.Intercept)
	case TypeDecisionTree:
		return NewDecisionTree(a.Classes, a.Nodes)
	default:
		return nil, fmt.Errorf("unsupported model type %q", a.Type)
	}
}
