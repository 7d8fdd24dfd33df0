package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"slicedss/slice"
)

// StreamMessageType 消息类型
type StreamMessageType string

const (
	StreamRecommendation StreamMessageType = "recommendation"
	StreamError          StreamMessageType = "error"

	streamWriteWait = 10 * time.Second
	streamIdle      = 5 * time.Minute
)

// StreamMessage is one reply on the evaluation stream. ID echoes the request
// message ID when the client sent one.
type StreamMessage struct {
	Type      StreamMessageType     `json:"type"`
	ID        string                `json:"id"`
	Timestamp time.Time             `json:"timestamp"`
	Data      *slice.Recommendation `json:"data,omitempty"`
	Error     string                `json:"error,omitempty"`
	Field     string                `json:"field,omitempty"`
}

type streamRequest struct {
	ID      string          `json:"id"`
	Request json.RawMessage `json:"request"`
}

// handleEvaluateStream evaluates every request message sent on the socket,
// so a form can re-evaluate as inputs change. Messages are either
// {"id":..., "request":{...}} or a bare request object.
func (h *Handlers) handleEvaluateStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	clientID := GetRequestID(r.Context())
	h.logger.Info("stream client connected", zap.String("client_id", clientID))
	defer h.logger.Info("stream client disconnected", zap.String("client_id", clientID))

	conn.SetReadLimit(h.maxMessage)
	for {
		conn.SetReadDeadline(time.Now().Add(streamIdle))
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("stream read failed", zap.String("client_id", clientID), zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := h.evaluateMessage(r, payload)
		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("stream write failed", zap.String("client_id", clientID), zap.Error(err))
			return
		}
	}
}

func (h *Handlers) evaluateMessage(r *http.Request, payload []byte) StreamMessage {
	reply := StreamMessage{Timestamp: time.Now()}

	var envelope streamRequest
	body := payload
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Request != nil {
		reply.ID = envelope.ID
		body = envelope.Request
	}
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}

	req, err := decodeRequest(json.NewDecoder(bytes.NewReader(body)))
	if err != nil {
		reply.Type, reply.Error = StreamError, err.Error()
		return reply
	}
	rec, err := h.recommender.Evaluate(r.Context(), req)
	if err != nil {
		reply.Type, reply.Error = StreamError, "evaluation failed"
		var rangeErr *slice.InputOutOfRangeError
		if errors.As(err, &rangeErr) {
			reply.Error, reply.Field = err.Error(), rangeErr.Field
		} else {
			h.logger.Error("stream evaluation failed", zap.Error(err))
		}
		return reply
	}
	reply.Type, reply.Data = StreamRecommendation, rec
	return reply
}
