package ml

// Scaler applies a fitted per-feature transform. Output has the input length.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Classifier maps a scaled feature vector to a discrete slice label and the
// share of the model that agreed on it.
type Classifier interface {
	Predict(features []float64) (int, float64, error)
}
