package slice

import "slicedss/ml"

// BuildFeatureVector encodes r in ml.QoSSchema order with flags as 0/1.
func BuildFeatureVector(r Request) []float64 {
	return []float64{
		float64(r.PacketDelayMs),
		r.PacketLossRate,
		boolFeature(r.IoT),
		boolFeature(r.Smartphone),
		boolFeature(r.Healthcare),
		boolFeature(r.PublicSafety),
		boolFeature(r.ARVR),
		boolFeature(r.GBR),
		boolFeature(r.Is5G),
	}
}

// FeatureMap keys the vector by schema name, for display and debugging.
func FeatureMap(r Request) map[string]float64 {
	vector := BuildFeatureVector(r)
	names := ml.FeatureNames()
	result := make(map[string]float64, len(names))
	for i, name := range names {
		result[name] = vector[i]
	}
	return result
}

func boolFeature(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
