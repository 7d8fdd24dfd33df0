package ml

import (
	"fmt"
	"strings"
)

// FeatureSchema names the positional layout shared by the feature builder and
// the fitted artifacts. Artifacts carry the schema they were fitted against.
type FeatureSchema struct {
	Name     string   `json:"name"`
	Version  int      `json:"version"`
	Features []string `json:"features"`
}

const (
	FeaturePacketDelay  = "packet_delay_ms"
	FeaturePacketLoss   = "packet_loss_rate"
	FeatureIoT          = "iot"
	FeatureSmartphone   = "smartphone"
	FeatureHealthcare   = "healthcare"
	FeaturePublicSafety = "public_safety"
	FeatureARVR         = "arvr"
	FeatureGBR          = "gbr"
	FeatureIs5G         = "is_5g"
)

var QoSSchema = FeatureSchema{
	Name:    "qos-slice",
	Version: 1,
	Features: []string{
		FeaturePacketDelay,
		FeaturePacketLoss,
		FeatureIoT,
		FeatureSmartphone,
		FeatureHealthcare,
		FeaturePublicSafety,
		FeatureARVR,
		FeatureGBR,
		FeatureIs5G,
	},
}

func FeatureNames() []string {
	return append([]string(nil), QoSSchema.Features...)
}

func (s FeatureSchema) Len() int {
	return len(s.Features)
}

func (s FeatureSchema) Index(name string) int {
	for i, f := range s.Features {
		if f == name {
			return i
		}
	}
	return -1
}

func (s FeatureSchema) String() string {
	return fmt.Sprintf("%s/v%d[%s]", s.Name, s.Version, strings.Join(s.Features, ","))
}

// Check reports whether other matches s name, version and feature order.
func (s FeatureSchema) Check(other FeatureSchema) error {
	if s.Name != other.Name || s.Version != other.Version {
		return fmt.Errorf("schema %s/v%d does not match %s/v%d", other.Name, other.Version, s.Name, s.Version)
	}
	if len(s.Features) != len(other.Features) {
		return fmt.Errorf("schema expects %d features, artifact has %d", len(s.Features), len(other.Features))
	}
	for i := range s.Features {
		if s.Features[i] != other.Features[i] {
			return fmt.Errorf("feature %d is %q, expected %q", i, other.Features[i], s.Features[i])
		}
	}
	return nil
}
