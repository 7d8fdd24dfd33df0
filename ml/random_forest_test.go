package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, label int) *DecisionTree {
	t.Helper()
	tree, err := NewDecisionTree([]TreeNode{{IsLeaf: true, ClassLabel: label}}, 1)
	require.NoError(t, err)
	return tree
}

func TestRandomForestMajorityVote(t *testing.T) {
	forest, err := NewRandomForest([]*DecisionTree{leaf(t, 3), leaf(t, 1), leaf(t, 3)})
	require.NoError(t, err)

	label, confidence, err := forest.Predict([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 3, label)
	assert.InDelta(t, 2.0/3.0, confidence, 1e-9)
}

func TestRandomForestTieGoesToLowestLabel(t *testing.T) {
	forest, err := NewRandomForest([]*DecisionTree{leaf(t, 2), leaf(t, 1), leaf(t, 1), leaf(t, 2)})
	require.NoError(t, err)

	label, confidence, err := forest.Predict([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
	assert.Equal(t, 0.5, confidence)
}

func TestRandomForestEmpty(t *testing.T) {
	_, err := NewRandomForest(nil)
	assert.Error(t, err)
}
