package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardScalerTransform(t *testing.T) {
	scaler, err := NewStandardScaler([]float64{50, 0.001, 0.5}, []float64{25, 0.002, 0})
	require.NoError(t, err)

	out, err := scaler.Transform([]float64{100, 0.003, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 1, 0.5}, out, 1e-9)
}

func TestStandardScalerLengthMismatch(t *testing.T) {
	_, err := NewStandardScaler([]float64{1, 2}, []float64{1})
	assert.Error(t, err)

	scaler, err := NewStandardScaler([]float64{1, 2}, []float64{1, 1})
	require.NoError(t, err)
	_, err = scaler.Transform([]float64{1})
	assert.Error(t, err)
}

func TestStandardScalerDoesNotAliasInput(t *testing.T) {
	mean := []float64{1}
	scaler, err := NewStandardScaler(mean, []float64{1})
	require.NoError(t, err)
	mean[0] = 100

	out, err := scaler.Transform([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, out)
}

func TestMinMaxScalerTransform(t *testing.T) {
	scaler, err := NewMinMaxScaler([]float64{0, 0, 1}, []float64{300, 0.01, 1})
	require.NoError(t, err)

	out, err := scaler.Transform([]float64{150, 0.0025, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0}, out, 1e-9)
	for _, v := range out {
		assert.True(t, v >= 0 && v <= 1)
	}
}
