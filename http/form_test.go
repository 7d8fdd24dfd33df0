package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicedss/slice"
)

func postForm(t *testing.T, handler http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestFormDefaults(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Network Slice Decision Support Tool")
	assert.Contains(t, body, `value="50"`)
	assert.Contains(t, body, `value="0.00100"`)
	assert.Contains(t, body, `max="300"`)
	assert.NotContains(t, body, "Recommended Slice")
}

func TestFormSubmit(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	w := postForm(t, handler, url.Values{
		"packet_delay_ms":  {"150"},
		"packet_loss_rate": {"0.008"},
		"arvr":             {"on"},
		"gbr":              {"on"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Recommended Slice: <strong>Slice Type 1 (eMBB)</strong>")
	for _, msg := range []string{slice.MsgDelayTolerant, slice.MsgLossTolerant, slice.MsgARVR, slice.MsgGBR} {
		assert.Contains(t, body, "<li>"+msg+"</li>")
	}
	assert.NotContains(t, body, slice.MsgIoT)
	assert.Contains(t, body, "<svg")
	assert.NotContains(t, body, "<?xml")
	assert.Contains(t, body, "QoS Position of Current Request")
}

func TestFormSubmitClamps(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	w := postForm(t, handler, url.Values{
		"packet_delay_ms":  {"900"},
		"packet_loss_rate": {"-1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="300"`)
	assert.Contains(t, body, `value="0.00000"`)
	assert.Contains(t, body, slice.MsgDelayTolerant)
	assert.Contains(t, body, slice.MsgHighReliability)
}

func TestFormSubmitBadNumber(t *testing.T) {
	handler := testHandler(t, testRecommender(t))

	w := postForm(t, handler, url.Values{"packet_delay_ms": {"fast"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Packet Delay (ms) must be a number")
}

func TestFormSubmitModelFailure(t *testing.T) {
	handler := testHandler(t, failingRecommender{})

	w := postForm(t, handler, url.Values{"packet_delay_ms": {"10"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Evaluation failed")
}

func TestInlineSVG(t *testing.T) {
	assert.Equal(t, "<svg/>", inlineSVG("<?xml version=\"1.0\"?>\n<svg/>"))
	assert.Equal(t, "<svg/>", inlineSVG("<svg/>"))
}
