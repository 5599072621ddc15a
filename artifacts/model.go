package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Model evaluates a regression on one scaled feature vector.
type Model interface {
	Predict(x []float64) (float64, error)
	NumFeatures() int
}

// Tree is a fitted regression tree in flat array form: node i is a leaf when
// ChildrenLeft[i] == -1, otherwise samples with x[Feature[i]] <= Threshold[i]
// go to ChildrenLeft[i] and the rest to ChildrenRight[i].
type Tree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

func (t *Tree) predict(x []float64) (float64, error) {
	node := 0
	// A well-formed tree reaches a leaf in fewer steps than it has nodes.
	for steps := 0; steps <= len(t.Value); steps++ {
		left := t.ChildrenLeft[node]
		if left == -1 {
			return t.Value[node], nil
		}
		f := t.Feature[node]
		if f < 0 || f >= len(x) {
			return 0, fmt.Errorf("node %d splits on feature %d, vector has %d", node, f, len(x))
		}
		if x[f] <= t.Threshold[node] {
			node = left
		} else {
			node = t.ChildrenRight[node]
		}
		if node < 0 || node >= len(t.Value) {
			return 0, fmt.Errorf("child index %d out of range", node)
		}
	}
	return 0, errors.New("tree contains a cycle")
}

func (t *Tree) validate() error {
	n := len(t.Value)
	if n == 0 {
		return errors.New("empty tree")
	}
	if len(t.ChildrenLeft) != n || len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n {
		return fmt.Errorf("tree arrays disagree on node count (%d values)", n)
	}
	return nil
}

// Forest averages the predictions of its trees.
type Forest struct {
	Features   int    `json:"n_features"`
	Estimators []Tree `json:"estimators"`
}

func (f *Forest) NumFeatures() int { return f.Features }

func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != f.Features {
		return 0, fmt.Errorf("forest: got %d features, want %d", len(x), f.Features)
	}
	var sum float64
	for i := range f.Estimators {
		v, err := f.Estimators[i].predict(x)
		if err != nil {
			return 0, fmt.Errorf("forest: tree %d: %w", i, err)
		}
		sum += v
	}
	return sum / float64(len(f.Estimators)), nil
}

// Linear is an ordinary least squares style model: coef·x + intercept.
type Linear struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func (l *Linear) NumFeatures() int { return len(l.Coef) }

func (l *Linear) Predict(x []float64) (float64, error) {
	if len(x) != len(l.Coef) {
		return 0, fmt.Errorf("linear: got %d features, want %d", len(x), len(l.Coef))
	}
	y := l.Intercept
	for i, c := range l.Coef {
		y += c * x[i]
	}
	return y, nil
}

const (
	KindRandomForest = "random_forest"
	KindLinear       = "linear"
)

// DecodeModel parses a model document, dispatching on its "kind" field.
func DecodeModel(data []byte) (Model, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}

	switch head.Kind {
	case KindRandomForest:
		var f Forest
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("model: decode forest: %w", err)
		}
		if f.Features <= 0 {
			return nil, errors.New("model: forest n_features must be positive")
		}
		if len(f.Estimators) == 0 {
			return nil, errors.New("model: forest has no estimators")
		}
		for i := range f.Estimators {
			if err := f.Estimators[i].validate(); err != nil {
				return nil, fmt.Errorf("model: tree %d: %w", i, err)
			}
		}
		return &f, nil
	case KindLinear:
		var l Linear
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("model: decode linear: %w", err)
		}
		if len(l.Coef) == 0 {
			return nil, errors.New("model: linear model has no coefficients")
		}
		for _, c := range l.Coef {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, errors.New("model: linear coefficient is not finite")
			}
		}
		return &l, nil
	case "":
		return nil, errors.New("model: missing kind")
	default:
		return nil, fmt.Errorf("model: unsupported kind %q", head.Kind)
	}
}
