package model

import (
	"context"
	"errors"
	"fmt"
)

// TreeNode is one node of a fitted decision tree. Leaves have Feature < 0.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// DecisionTree walks x[feature] <= threshold to the left child, otherwise right.
// Leaf probabilities are the normalised class counts stored in Value.
type DecisionTree struct {
	Classes []int
	Nodes   []TreeNode
}

func NewDecisionTree(classes []int, nodes []TreeNode) (*DecisionTree, error) {
	if len(classes) == 0 {
		return nil, errors.New("decision tree has no classes")
	}
	if len(nodes) == 0 {
		return nil, errors.New("decision tree has no nodes")
	}
	for i, n := range nodes {
		if n.Feature < 0 {
			if len(n.Value) != len(classes) {
				return nil, fmt.Errorf("leaf %d has %d class counts, want %d", i, len(n.Value), len(classes))
			}
			continue
		}
		if n.Feature >= NumFeatures {
			return nil, fmt.Errorf("node %d splits on feature %d, only %d features", i, n.Feature, NumFeatures)
		}
		if n.Left < 0 || n.Left >= len(nodes) || n.Right < 0 || n.Right >= len(nodes) {
			return nil, fmt.Errorf("node %d has child out of range", i)
		}
	}
	return &DecisionTree{Classes: classes, Nodes: nodes}, nil
}

func (dt *DecisionTree) PredictProba(_ context.Context, x FeatureVector) ([]float64, error) {
	idx := 0
	// a well-formed tree reaches a leaf in fewer steps than it has nodes
	for steps := 0; steps < len(dt.Nodes); steps++ {
		node := dt.Nodes[idx]
		if node.Feature < 0 {
			return normalise(node.Value)
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return nil, errors.New("decision tree contains a cycle")
}

func (dt *DecisionTree) Predict(ctx context.Context, x FeatureVector) (int, error) {
	proba, err := dt.PredictProba(ctx, x)
	if err != nil {
		return 0, err
	}
	return dt.Classes[argmax(proba)], nil
}

func normalise(counts []float64) ([]float64, error) {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return nil, errors.New("leaf has no samples")
	}
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = c / total
	}
	return out, nil
}
