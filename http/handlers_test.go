package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slicedss/ml"
	"slicedss/slice"
)

// Scaled delay at or below -0.5 (raw delay <= 25 ms) maps to slice 2.
func testRecommender(t *testing.T) slice.Recommender {
	t.Helper()
	scaler, err := ml.NewStandardScaler(
		[]float64{50, 0.002, 0, 0, 0, 0, 0, 0, 0},
		[]float64{50, 0.002, 1, 1, 1, 1, 1, 1, 1},
	)
	require.NoError(t, err)
	tree, err := ml.NewDecisionTree([]ml.TreeNode{
		{FeatureIdx: 0, Threshold: -0.5, LeftChild: 1, RightChild: 2},
		{IsLeaf: true, ClassLabel: 2},
		{IsLeaf: true, ClassLabel: 1, Confidence: 0.75},
	}, ml.QoSSchema.Len())
	require.NoError(t, err)

	evaluator, err := slice.NewEvaluator(&ml.Artifacts{
		Schema:     ml.QoSSchema,
		Scaler:     scaler,
		Classifier: tree,
		ClassNames: map[int]string{1: "eMBB", 2: "URLLC"},
	})
	require.NoError(t, err)
	return evaluator
}

func testHandler(t *testing.T, recommender slice.Recommender) http.Handler {
	t.Helper()
	handlers := NewHandlers(recommender, ml.QoSSchema, zap.NewNop())
	return NewHandler(DefaultServerConfig(), handlers, zap.NewNop())
}

type failingRecommender struct{}

func (failingRecommender) Evaluate(ctx context.Context, req slice.Request) (*slice.Recommendation, error) {
	return nil, errors.New("classifier exploded")
}

func TestHealthHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(handleHealth)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"status":"ok"}`
	if rr.Body.String() != expected+"\n" && rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestHandleEvaluate(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	body := `{"packet_delay_ms":10,"packet_loss_rate":0.0005,"iot":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var payload struct {
		Slice     int      `json:"recommended_slice"`
		SliceName string   `json:"slice_name"`
		Rationale []string `json:"rationale"`
		Point     struct {
			Delay int     `json:"packet_delay_ms"`
			Loss  float64 `json:"packet_loss_rate"`
		} `json:"qos_point"`
		Note string `json:"note"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 2, payload.Slice)
	assert.Equal(t, "URLLC", payload.SliceName)
	assert.Equal(t, []string{slice.MsgVeryLowDelay, slice.MsgHighReliability, slice.MsgIoT}, payload.Rationale)
	assert.Equal(t, 10, payload.Point.Delay)
	assert.Equal(t, 0.0005, payload.Point.Loss)
	assert.Equal(t, slice.Note, payload.Note)
}

func TestHandleEvaluateDefaultsAndEmptyRationale(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rationale":[]`)
	assert.Contains(t, w.Body.String(), `"recommended_slice":1`)
}

func TestHandleEvaluateErrors(t *testing.T) {
	tests := []struct {
		name        string
		recommender slice.Recommender
		body        string
		status      int
		field       string
	}{
		{"malformed", nil, `{"packet_delay_ms":`, http.StatusBadRequest, ""},
		{"unknown field", nil, `{"jitter_ms":3}`, http.StatusBadRequest, ""},
		{"fractional delay", nil, `{"packet_delay_ms":10.5}`, http.StatusBadRequest, ""},
		{"delay out of range", nil, `{"packet_delay_ms":301}`, http.StatusUnprocessableEntity, "packet_delay_ms"},
		{"loss out of range", nil, `{"packet_loss_rate":0.5}`, http.StatusUnprocessableEntity, "packet_loss_rate"},
		{"model failure", failingRecommender{}, `{}`, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommender := tt.recommender
			if recommender == nil {
				recommender = testRecommender(t)
			}
			handler := testHandler(t, recommender)

			req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			var payload errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			assert.NotEmpty(t, payload.Error)
			assert.Equal(t, tt.field, payload.Field)
			assert.NotContains(t, payload.Error, "exploded", "internal errors are not leaked")
		})
	}
}

func TestHandleSchema(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schema", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var schema ml.FeatureSchema
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schema))
	assert.Equal(t, ml.QoSSchema.Name, schema.Name)
	assert.Equal(t, ml.FeatureNames(), schema.Features)
}

func TestHandlePlot(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plot.svg?packet_delay_ms=150&packet_loss_rate=0.008", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plot.svg?packet_delay_ms=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plot.svg?packet_loss_rate=0.2", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader(`{}`)))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "slicedss_evaluations_total")
	assert.Contains(t, w.Body.String(), "slicedss_http_requests_total")
}
