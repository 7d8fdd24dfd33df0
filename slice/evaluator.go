package slice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slicedss/ml"
	"slicedss/monitoring"
)

// Note is shown alongside every recommendation.
const Note = "This tool reflects deterministic network slicing policies. " +
	"High accuracy is expected because slice boundaries are explicitly defined " +
	"by QoS and service intent."

type QoSPoint struct {
	PacketDelayMs  int     `json:"packet_delay_ms"`
	PacketLossRate float64 `json:"packet_loss_rate"`
}

type Recommendation struct {
	Slice      int      `json:"recommended_slice"`
	SliceName  string   `json:"slice_name,omitempty"`
	Confidence float64  `json:"confidence"`
	Rationale  []string `json:"rationale"`
	Point      QoSPoint `json:"qos_point"`
	Note       string   `json:"note"`
}

func (r *Recommendation) Label() string {
	if r.SliceName != "" {
		return fmt.Sprintf("Slice Type %d (%s)", r.Slice, r.SliceName)
	}
	return fmt.Sprintf("Slice Type %d", r.Slice)
}

func (r *Recommendation) clone() *Recommendation {
	c := *r
	c.Rationale = append([]string{}, r.Rationale...)
	return &c
}

// Recommender is what the HTTP and CLI surfaces depend on.
type Recommender interface {
	Evaluate(ctx context.Context, req Request) (*Recommendation, error)
}

// Evaluator runs the fitted artifacts. It holds no mutable state and is safe
// for concurrent use.
type Evaluator struct {
	artifacts *ml.Artifacts
}

func NewEvaluator(artifacts *ml.Artifacts) (*Evaluator, error) {
	if artifacts == nil || artifacts.Scaler == nil || artifacts.Classifier == nil {
		return nil, errors.New("artifacts are not loaded")
	}
	if err := ml.QoSSchema.Check(artifacts.Schema); err != nil {
		return nil, fmt.Errorf("artifacts: %w", err)
	}
	return &Evaluator{artifacts: artifacts}, nil
}

func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		var rangeErr *InputOutOfRangeError
		if errors.As(err, &rangeErr) {
			monitoring.ObserveRejected(rangeErr.Field)
		}
		return nil, err
	}

	start := time.Now()
	scaled, err := e.artifacts.Scaler.Transform(BuildFeatureVector(req))
	if err != nil {
		return nil, fmt.Errorf("scale features: %w", err)
	}
	label, confidence, err := e.artifacts.Classifier.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict slice: %w", err)
	}
	monitoring.ObserveEvaluation(label, time.Since(start))

	return &Recommendation{
		Slice:      label,
		SliceName:  e.artifacts.ClassName(label),
		Confidence: confidence,
		Rationale:  Annotate(req),
		Point: QoSPoint{
			PacketDelayMs:  req.PacketDelayMs,
			PacketLossRate: req.PacketLossRate,
		},
		Note: Note,
	}, nil
}
