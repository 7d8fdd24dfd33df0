package slice

// Rule is one independent rationale condition.
type Rule struct {
	Name    string
	Matches func(Request) bool
	Message string
}

const (
	MsgVeryLowDelay    = "Very low packet delay requirement"
	MsgDelayTolerant   = "Delay-tolerant traffic profile"
	MsgHighReliability = "High reliability requirement (low packet loss)"
	MsgLossTolerant    = "Packet loss tolerance is acceptable"
	MsgIoT             = "IoT-based service detected"
	MsgSmartphone      = "Smartphone broadband traffic"
	MsgHealthcare      = "Healthcare service with strict SLA"
	MsgPublicSafety    = "Public safety–oriented traffic"
	MsgARVR            = "AR/VR or gaming service detected"
	MsgGBR             = "Guaranteed Bit Rate is required"
	MsgIs5G            = "5G access capability enabled"
)

const (
	lowDelayThresholdMs      = 20
	tolerantDelayThresholdMs = 100
	lowLossThreshold         = 0.001
	tolerantLossThreshold    = 0.005
)

// Rules is evaluated in order. Thresholds are strict, so a value sitting on a
// boundary fires neither rule of its pair.
var Rules = []Rule{
	{"very_low_delay", func(r Request) bool { return r.PacketDelayMs < lowDelayThresholdMs }, MsgVeryLowDelay},
	{"delay_tolerant", func(r Request) bool { return r.PacketDelayMs > tolerantDelayThresholdMs }, MsgDelayTolerant},
	{"high_reliability", func(r Request) bool { return r.PacketLossRate < lowLossThreshold }, MsgHighReliability},
	{"loss_tolerant", func(r Request) bool { return r.PacketLossRate > tolerantLossThreshold }, MsgLossTolerant},
	{"iot", func(r Request) bool { return r.IoT }, MsgIoT},
	{"smartphone", func(r Request) bool { return r.Smartphone }, MsgSmartphone},
	{"healthcare", func(r Request) bool { return r.Healthcare }, MsgHealthcare},
	{"public_safety", func(r Request) bool { return r.PublicSafety }, MsgPublicSafety},
	{"arvr", func(r Request) bool { return r.ARVR }, MsgARVR},
	{"gbr", func(r Request) bool { return r.GBR }, MsgGBR},
	{"is_5g", func(r Request) bool { return r.Is5G }, MsgIs5G},
}

// Annotate returns the message of every rule r triggers. It never returns nil.
func Annotate(r Request) []string {
	notes := make([]string, 0, len(Rules))
	for _, rule := range Rules {
		if rule.Matches(r) {
			notes = append(notes, rule.Message)
		}
	}
	return notes
}
