// Package slice turns a QoS request into a network-slice recommendation.
package slice

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinPacketDelayMs     = 0
	MaxPacketDelayMs     = 300
	DefaultPacketDelayMs = 50

	MinPacketLossRate     = 0.0
	MaxPacketLossRate     = 0.01
	DefaultPacketLossRate = 0.001
)

// Request is one evaluation input. It is a comparable value and is never
// mutated after construction.
type Request struct {
	PacketDelayMs  int     `json:"packet_delay_ms"`
	PacketLossRate float64 `json:"packet_loss_rate"`

	IoT          bool `json:"iot"`
	Smartphone   bool `json:"smartphone"`
	Healthcare   bool `json:"healthcare"`
	PublicSafety bool `json:"public_safety"`
	ARVR         bool `json:"arvr"`

	GBR  bool `json:"gbr"`
	Is5G bool `json:"is_5g"`
}

func DefaultRequest() Request {
	return Request{
		PacketDelayMs:  DefaultPacketDelayMs,
		PacketLossRate: DefaultPacketLossRate,
	}
}

// ErrInputOutOfRange matches every InputOutOfRangeError via errors.Is.
var ErrInputOutOfRange = errors.New("input out of range")

type InputOutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *InputOutOfRangeError) Error() string {
	return fmt.Sprintf("%s = %v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

func (e *InputOutOfRangeError) Is(target error) bool {
	return target == ErrInputOutOfRange
}

// Validate fails closed: NaN and out-of-domain values are rejected.
func (r Request) Validate() error {
	if r.PacketDelayMs < MinPacketDelayMs || r.PacketDelayMs > MaxPacketDelayMs {
		return &InputOutOfRangeError{
			Field: "packet_delay_ms",
			Value: float64(r.PacketDelayMs),
			Min:   MinPacketDelayMs,
			Max:   MaxPacketDelayMs,
		}
	}
	if math.IsNaN(r.PacketLossRate) || r.PacketLossRate < MinPacketLossRate || r.PacketLossRate > MaxPacketLossRate {
		return &InputOutOfRangeError{
			Field: "packet_loss_rate",
			Value: r.PacketLossRate,
			Min:   MinPacketLossRate,
			Max:   MaxPacketLossRate,
		}
	}
	return nil
}

// Clamp pulls numeric fields into their domain the way the input widgets do.
// NaN loss falls back to the default.
func (r Request) Clamp() Request {
	switch {
	case r.PacketDelayMs < MinPacketDelayMs:
		r.PacketDelayMs = MinPacketDelayMs
	case r.PacketDelayMs > MaxPacketDelayMs:
		r.PacketDelayMs = MaxPacketDelayMs
	}
	switch {
	case math.IsNaN(r.PacketLossRate):
		r.PacketLossRate = DefaultPacketLossRate
	case r.PacketLossRate < MinPacketLossRate:
		r.PacketLossRate = MinPacketLossRate
	case r.PacketLossRate > MaxPacketLossRate:
		r.PacketLossRate = MaxPacketLossRate
	}
	return r
}
