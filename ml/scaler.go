package ml

import (
	"errors"
	"fmt"
)

// StandardScaler computes (x - mean) / scale. A zero scale is treated as 1,
// matching how constant columns are fitted.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, errors.New("scaler has no parameters")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("mean has %d values, scale has %d", len(mean), len(scale))
	}
	s := &StandardScaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}
	for i, v := range s.scale {
		if v == 0 {
			s.scale[i] = 1
		}
	}
	return s, nil
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.mean) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.mean), len(features))
	}
	result := make([]float64, len(features))
	for i, v := range features {
		result[i] = (v - s.mean[i]) / s.scale[i]
	}
	return result, nil
}

func (s *StandardScaler) Len() int {
	return len(s.mean)
}

type MinMaxScaler struct {
	mins []float64
	maxs []float64
}

func NewMinMaxScaler(mins, maxs []float64) (*MinMaxScaler, error) {
	if len(mins) == 0 {
		return nil, errors.New("scaler has no parameters")
	}
	if len(mins) != len(maxs) {
		return nil, fmt.Errorf("min has %d values, max has %d", len(mins), len(maxs))
	}
	return &MinMaxScaler{
		mins: append([]float64(nil), mins...),
		maxs: append([]float64(nil), maxs...),
	}, nil
}

func (s *MinMaxScaler) Transform(features []float64) ([]float64, error) {
	return NormalizeVector(features, s.mins, s.maxs)
}

func (s *MinMaxScaler) Len() int {
	return len(s.mins)
}

func NormalizeFeature(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

func NormalizeVector(values []float64, mins []float64, maxs []float64) ([]float64, error) {
	if len(values) != len(mins) || len(values) != len(maxs) {
		return nil, errors.New("values/mins/maxs length mismatch")
	}
	result := make([]float64, len(values))
	for i := range values {
		result[i] = NormalizeFeature(values[i], mins[i], maxs[i])
	}
	return result, nil
}
