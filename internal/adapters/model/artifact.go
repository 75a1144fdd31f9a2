package model

import (
	"context"
	"encoding/json"
	"errors"
	"eta-service/internal/domain"
	"fmt"
	"os"
)

// The artifact mirrors the training job's export of the fitted pipeline:
// one-hot columns for day_of_week and peak_traffic followed by the
// passthrough numeric columns, plus a base score and additive regression
// trees over that encoded vector.
type artifact struct {
	Version      string     `json:"model_version"`
	BaseScore    float64    `json:"base_score"`
	FeatureNames []string   `json:"feature_names"`
	Trees        []treeNode `json:"trees"`
}

// A node is either a leaf (Leaf set) or a split (Feature, Threshold and both
// children set). Split test: vector[Feature] < Threshold goes left.
type treeNode struct {
	Feature   *int      `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Leaf      *float64  `json:"leaf,omitempty"`
}

// BoostedTreeModel is the file-backed ETA model. It is loaded once at
// startup, never mutated afterwards, and therefore safe for concurrent
// Predict calls.
type BoostedTreeModel struct {
	version   string
	baseScore float64
	names     []string
	features  map[string]int
	trees     []treeNode
}

// Load reads and validates a model artifact from path.
func Load(path string) (*BoostedTreeModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model: read %q: %w", path, err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("load model: parse %q: %w", path, err)
	}

	if len(a.FeatureNames) == 0 {
		return nil, fmt.Errorf("load model: %q has no feature names", path)
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("load model: %q has no trees", path)
	}

	features := make(map[string]int, len(a.FeatureNames))
	for i, name := range a.FeatureNames {
		if name == "" {
			return nil, fmt.Errorf("load model: empty feature name at index %d", i)
		}
		if _, ok := features[name]; ok {
			return nil, fmt.Errorf("load model: duplicate feature name %q", name)
		}
		features[name] = i
	}

	for i := range a.Trees {
		if err := validateTree(&a.Trees[i], len(a.FeatureNames)); err != nil {
			return nil, fmt.Errorf("load model: tree %d: %w", i, err)
		}
	}

	return &BoostedTreeModel{
		version:   a.Version,
		baseScore: a.BaseScore,
		names:     a.FeatureNames,
		features:  features,
		trees:     a.Trees,
	}, nil
}

func validateTree(n *treeNode, featureCount int) error {
	if n.Leaf != nil {
		return nil
	}
	if n.Feature == nil || n.Left == nil || n.Right == nil {
		return errors.New("split node missing feature or children")
	}
	if *n.Feature < 0 || *n.Feature >= featureCount {
		return fmt.Errorf("feature index %d out of range", *n.Feature)
	}
	if err := validateTree(n.Left, featureCount); err != nil {
		return err
	}
	return validateTree(n.Right, featureCount)
}

func (m *BoostedTreeModel) Version() string { return m.version }

// Predict encodes the feature row the way the training pipeline did and sums
// the base score with every tree's output.
func (m *BoostedTreeModel) Predict(_ context.Context, row domain.FeatureRow) (float64, error) {
	if err := row.Validate(); err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}

	vec := m.encode(row)

	sum := m.baseScore
	for i := range m.trees {
		sum += evalTree(&m.trees[i], vec)
	}
	return sum, nil
}

// encode builds the one-hot-plus-passthrough vector. Categories the training
// data never saw have no column and silently encode to all zeros, matching
// the encoder's ignore-unknown behavior.
func (m *BoostedTreeModel) encode(row domain.FeatureRow) []float64 {
	vec := make([]float64, len(m.names))

	set := func(name string, v float64) {
		if idx, ok := m.features[name]; ok {
			vec[idx] = v
		}
	}

	set("day_of_week="+string(row.DayOfWeek), 1)
	set("peak_traffic="+string(row.Traffic), 1)
	set("distance_travelled", row.DistanceKm)
	set("time_of_day", float64(row.Hour))

	return vec
}

func evalTree(n *treeNode, vec []float64) float64 {
	for n.Leaf == nil {
		if vec[*n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return *n.Leaf
}
