package slice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRequest(t *testing.T) {
	r := DefaultRequest()
	assert.Equal(t, 50, r.PacketDelayMs)
	assert.Equal(t, 0.001, r.PacketLossRate)
	assert.False(t, r.IoT || r.Smartphone || r.Healthcare || r.PublicSafety || r.ARVR || r.GBR || r.Is5G)
	assert.NoError(t, r.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"lowest", Request{PacketDelayMs: 0, PacketLossRate: 0}, ""},
		{"highest", Request{PacketDelayMs: 300, PacketLossRate: 0.01}, ""},
		{"negative delay", Request{PacketDelayMs: -1}, "packet_delay_ms"},
		{"delay too high", Request{PacketDelayMs: 301}, "packet_delay_ms"},
		{"negative loss", Request{PacketLossRate: -0.0001}, "packet_loss_rate"},
		{"loss too high", Request{PacketLossRate: 0.0101}, "packet_loss_rate"},
		{"nan loss", Request{PacketLossRate: math.NaN()}, "packet_loss_rate"},
		{"infinite loss", Request{PacketLossRate: math.Inf(1)}, "packet_loss_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInputOutOfRange)
			var rangeErr *InputOutOfRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.field, rangeErr.Field)
		})
	}
}

func TestClamp(t *testing.T) {
	r := Request{PacketDelayMs: 999, PacketLossRate: -1, GBR: true}.Clamp()
	assert.Equal(t, Request{PacketDelayMs: 300, PacketLossRate: 0, GBR: true}, r)

	r = Request{PacketDelayMs: -5, PacketLossRate: 0.5}.Clamp()
	assert.Equal(t, 0, r.PacketDelayMs)
	assert.Equal(t, 0.01, r.PacketLossRate)

	r = Request{PacketDelayMs: 40, PacketLossRate: math.NaN()}.Clamp()
	assert.Equal(t, DefaultPacketLossRate, r.PacketLossRate)
	assert.NoError(t, r.Validate())
}
