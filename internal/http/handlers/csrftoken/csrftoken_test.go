package csrftoken

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/csrf"
)

type failingIssuer struct{}

func (failingIssuer) Issue() (string, error) { return "", io.ErrUnexpectedEOF }

func TestHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	guard, err := csrf.NewGuard("csrf-secret", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	New(logger, guard).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, guard.Verify(body["csrfToken"]))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestHandler_IssueFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()
	New(logger, failingIssuer{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, w.Body.String())
}
