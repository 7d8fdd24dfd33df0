package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"slicedss/qosplot"
	"slicedss/slice"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type formBounds struct {
	MinDelay, MaxDelay int
	MinLoss, MaxLoss   float64
}

type formPage struct {
	Request slice.Request
	Bounds  formBounds
	Result  *slice.Recommendation
	Plot    template.HTML
	Error   string
}

func newFormPage(req slice.Request) *formPage {
	return &formPage{
		Request: req,
		Bounds: formBounds{
			MinDelay: slice.MinPacketDelayMs,
			MaxDelay: slice.MaxPacketDelayMs,
			MinLoss:  slice.MinPacketLossRate,
			MaxLoss:  slice.MaxPacketLossRate,
		},
	}
}

func (h *Handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, newFormPage(slice.DefaultRequest()))
}

// handleFormSubmit clamps numeric inputs into range like the input widgets
// would, then evaluates.
func (h *Handlers) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	req, err := parseFormRequest(r)
	if err != nil {
		page := newFormPage(slice.DefaultRequest())
		page.Error = err.Error()
		h.renderForm(w, r, http.StatusBadRequest, page)
		return
	}
	req = req.Clamp()

	page := newFormPage(req)
	rec, err := h.recommender.Evaluate(r.Context(), req)
	if err != nil {
		h.logger.Error("evaluation failed", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
		page.Error = "Evaluation failed: " + err.Error()
		h.renderForm(w, r, http.StatusInternalServerError, page)
		return
	}
	page.Result = rec

	var svg bytes.Buffer
	if err := qosplot.Render(&svg, float64(req.PacketDelayMs), req.PacketLossRate, h.plot); err != nil {
		h.logger.Warn("render plot failed", zap.Error(err))
	} else {
		page.Plot = template.HTML(inlineSVG(svg.String()))
	}
	h.renderForm(w, r, http.StatusOK, page)
}

func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, page *formPage) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, page); err != nil {
		h.logger.Error("render form failed", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func parseFormRequest(r *http.Request) (slice.Request, error) {
	if err := r.ParseForm(); err != nil {
		return slice.Request{}, err
	}
	req := slice.DefaultRequest()
	if v := r.PostForm.Get("packet_delay_ms"); v != "" {
		delay, err := strconv.Atoi(v)
		if err != nil {
			return slice.Request{}, errInvalidField("Packet Delay (ms)")
		}
		req.PacketDelayMs = delay
	}
	if v := r.PostForm.Get("packet_loss_rate"); v != "" {
		loss, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return slice.Request{}, errInvalidField("Packet Loss Rate")
		}
		req.PacketLossRate = loss
	}
	checked := func(name string) bool { return r.PostForm.Get(name) != "" }
	req.IoT = checked("iot")
	req.Smartphone = checked("smartphone")
	req.Healthcare = checked("healthcare")
	req.PublicSafety = checked("public_safety")
	req.ARVR = checked("arvr")
	req.GBR = checked("gbr")
	req.Is5G = checked("is_5g")
	return req, nil
}

type errInvalidField string

func (e errInvalidField) Error() string {
	return string(e) + " must be a number"
}

// inlineSVG drops the XML prolog so the document can be embedded in HTML.
func inlineSVG(doc string) string {
	if i := strings.Index(doc, "<svg"); i > 0 {
		return doc[i:]
	}
	return doc
}
