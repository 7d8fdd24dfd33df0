package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"slicedss/ml"
	"slicedss/qosplot"
	"slicedss/slice"
)

// Handlers serves the form, the JSON API and the evaluation stream. It only
// holds read-only dependencies.
type Handlers struct {
	recommender slice.Recommender
	schema      ml.FeatureSchema
	logger      *zap.Logger
	plot        qosplot.Options
	upgrader    websocket.Upgrader
	maxMessage  int64
}

func NewHandlers(recommender slice.Recommender, schema ml.FeatureSchema, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		recommender: recommender,
		schema:      schema,
		logger:      logger,
		plot:        qosplot.DefaultOptions(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		maxMessage: 4096,
	}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /{$}", h.handleFormSubmit)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/schema", h.handleSchema)
	mux.HandleFunc("POST /api/evaluate", h.handleEvaluate)
	mux.HandleFunc("GET /api/plot.svg", h.handlePlot)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handlers) handleSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.schema)
}

func (h *Handlers) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(json.NewDecoder(r.Body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recommender.Evaluate(r.Context(), req)
	if err != nil {
		h.writeEvaluateError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *Handlers) handlePlot(w http.ResponseWriter, r *http.Request) {
	req := slice.DefaultRequest()
	query := r.URL.Query()
	if v := query.Get("packet_delay_ms"); v != "" {
		delay, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "packet_delay_ms must be an integer")
			return
		}
		req.PacketDelayMs = delay
	}
	if v := query.Get("packet_loss_rate"); v != "" {
		loss, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "packet_loss_rate must be a number")
			return
		}
		req.PacketLossRate = loss
	}
	if err := req.Validate(); err != nil {
		h.writeEvaluateError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := qosplot.Render(&buf, float64(req.PacketDelayMs), req.PacketLossRate, h.plot); err != nil {
		h.logger.Error("render plot failed", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render plot failed")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (h *Handlers) writeEvaluateError(w http.ResponseWriter, r *http.Request, err error) {
	var rangeErr *slice.InputOutOfRangeError
	if errors.As(err, &rangeErr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Field: rangeErr.Field})
		return
	}
	h.logger.Error("evaluation failed", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "evaluation failed")
}

// decodeRequest starts from the defaults so omitted fields keep their
// default values.
func decodeRequest(dec *json.Decoder) (slice.Request, error) {
	req := slice.DefaultRequest()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return slice.Request{}, fmt.Errorf("invalid request body: %w", err)
	}
	return req, nil
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}
