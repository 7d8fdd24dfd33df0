package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"

	ModelDecisionTree = "decision_tree"
	ModelRandomForest = "random_forest"
)

type scalerFile struct {
	Schema FeatureSchema `json:"schema"`
	Kind   string        `json:"kind"`
	Mean   []float64     `json:"mean,omitempty"`
	Scale  []float64     `json:"scale,omitempty"`
	Min    []float64     `json:"min,omitempty"`
	Max    []float64     `json:"max,omitempty"`
}

type classifierFile struct {
	Schema     FeatureSchema  `json:"schema"`
	Kind       string         `json:"kind"`
	ClassNames map[int]string `json:"class_names,omitempty"`
	Trees      [][]TreeNode   `json:"trees"`
}

// Artifacts is the immutable pair of fitted collaborators. It is built once at
// startup and shared read-only by every evaluation.
type Artifacts struct {
	Schema     FeatureSchema
	Scaler     Scaler
	Classifier Classifier
	ClassNames map[int]string
}

func (a *Artifacts) ClassName(label int) string {
	return a.ClassNames[label]
}

// LoadArtifacts loads both artifacts and checks them against schema.
func LoadArtifacts(schema FeatureSchema, scalerPath, classifierPath string) (*Artifacts, error) {
	scaler, err := LoadScaler(schema, scalerPath)
	if err != nil {
		return nil, err
	}
	classifier, names, err := LoadClassifier(schema, classifierPath)
	if err != nil {
		return nil, err
	}
	return &Artifacts{
		Schema:     schema,
		Scaler:     scaler,
		Classifier: classifier,
		ClassNames: names,
	}, nil
}

func LoadScaler(schema FeatureSchema, path string) (Scaler, error) {
	var file scalerFile
	if err := readArtifact(path, &file); err != nil {
		return nil, artifactError("scaler", path, err)
	}
	if err := schema.Check(file.Schema); err != nil {
		return nil, artifactError("scaler", path, err)
	}

	var (
		scaler Scaler
		size   int
		err    error
	)
	switch file.Kind {
	case ScalerStandard:
		var s *StandardScaler
		if s, err = NewStandardScaler(file.Mean, file.Scale); err == nil {
			scaler, size = s, s.Len()
		}
	case ScalerMinMax:
		var s *MinMaxScaler
		if s, err = NewMinMaxScaler(file.Min, file.Max); err == nil {
			scaler, size = s, s.Len()
		}
	default:
		err = fmt.Errorf("unsupported scaler kind %q", file.Kind)
	}
	if err != nil {
		return nil, artifactError("scaler", path, err)
	}
	if size != schema.Len() {
		return nil, artifactError("scaler", path, fmt.Errorf("fitted on %d features, schema has %d", size, schema.Len()))
	}
	return scaler, nil
}

func LoadClassifier(schema FeatureSchema, path string) (Classifier, map[int]string, error) {
	var file classifierFile
	if err := readArtifact(path, &file); err != nil {
		return nil, nil, artifactError("classifier", path, err)
	}
	if err := schema.Check(file.Schema); err != nil {
		return nil, nil, artifactError("classifier", path, err)
	}

	trees := make([]*DecisionTree, 0, len(file.Trees))
	for i, nodes := range file.Trees {
		tree, err := NewDecisionTree(nodes, schema.Len())
		if err != nil {
			return nil, nil, artifactError("classifier", path, fmt.Errorf("tree %d: %w", i, err))
		}
		trees = append(trees, tree)
	}

	var classifier Classifier
	switch file.Kind {
	case ModelDecisionTree:
		if len(trees) != 1 {
			return nil, nil, artifactError("classifier", path, fmt.Errorf("decision tree needs exactly one tree, got %d", len(trees)))
		}
		classifier = trees[0]
	case ModelRandomForest:
		forest, err := NewRandomForest(trees)
		if err != nil {
			return nil, nil, artifactError("classifier", path, err)
		}
		classifier = forest
	default:
		return nil, nil, artifactError("classifier", path, fmt.Errorf("unsupported model type %q", file.Kind))
	}
	return classifier, file.ClassNames, nil
}

func readArtifact(path string, v interface{}) error {
	if path == "" {
		return errors.New("path is empty")
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
