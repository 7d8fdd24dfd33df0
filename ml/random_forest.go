package ml

import (
	"errors"
	"sort"
)

// RandomForest predicts by majority vote. Ties go to the lowest label.
type RandomForest struct {
	trees []*DecisionTree
}

func NewRandomForest(trees []*DecisionTree) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	return &RandomForest{trees: trees}, nil
}

func (rf *RandomForest) Predict(features []float64) (int, float64, error) {
	if len(rf.trees) == 0 {
		return 0, 0, errors.New("model not loaded")
	}
	votes := make(map[int]int)
	for _, tree := range rf.trees {
		label, _, err := tree.Predict(features)
		if err != nil {
			return 0, 0, err
		}
		votes[label]++
	}

	labels := make([]int, 0, len(votes))
	for label := range votes {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	best, bestCount := labels[0], -1
	for _, label := range labels {
		if votes[label] > bestCount {
			best, bestCount = label, votes[label]
		}
	}
	return best, float64(bestCount) / float64(len(rf.trees)), nil
}

func (rf *RandomForest) Size() int {
	return len(rf.trees)
}
