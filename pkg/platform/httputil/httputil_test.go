package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
)

type testReason uint32

func (r testReason) Error() string      { return "capacity_exceeded" }
func (r testReason) ReasonCode() uint32 { return uint32(r) }
func (r testReason) ReasonName() string { return "capacity_exceeded" }

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "internal_error", body["error"])
		assert.NotContains(t, body, "error_description")
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "bad_request", body["error"])
		assert.Equal(t, "invalid input", body["error_description"])
		assert.NotContains(t, body, "reason")
	})

	t.Run("reasoned error carries reason fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(testReason(108), dErrors.CodeConflict, "registry is full"))

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "conflict", body["error"])
		assert.Equal(t, "capacity_exceeded", body["reason"])
		assert.EqualValues(t, 108, body["reason_code"])
	})

	t.Run("plain error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, assert.AnError)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusPaymentRequired, StatusFor(dErrors.CodePaymentRequired))
	assert.Equal(t, http.StatusPreconditionFailed, StatusFor(dErrors.CodePreconditionFailed))
	assert.Equal(t, http.StatusForbidden, StatusFor(dErrors.CodeForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusFor("made_up"))
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Value int64 `json:"value"`
	}
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"value":7}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, int64(7), dst.Value)

	r = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"value":7,"extra":1}`))
	err := DecodeJSON(r, &dst)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
