package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "validation", err: apperr.Validation("bad input"), wantStatus: http.StatusBadRequest, wantMsg: "bad input"},
		{name: "unauthenticated", err: apperr.Unauthenticated("login"), wantStatus: http.StatusUnauthorized, wantMsg: "login"},
		{name: "forbidden", err: apperr.Forbidden("no"), wantStatus: http.StatusForbidden, wantMsg: "no"},
		{name: "csrf", err: apperr.InvalidCSRF("invalid csrf token"), wantStatus: http.StatusForbidden, wantMsg: "invalid csrf token"},
		{name: "not found", err: apperr.NotFound("course not found"), wantStatus: http.StatusNotFound, wantMsg: "course not found"},
		{name: "conflict", err: apperr.Conflict("email already in use"), wantStatus: http.StatusConflict, wantMsg: "email already in use"},
		{
			name:       "internal hides cause",
			err:        errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			response.WriteError(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var resp response.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.NotContains(t, rr.Body.String(), "users_email_key")
		})
	}
}

func TestValidationError(t *testing.T) {
	type req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"lozinka" validate:"required,min=6"`
	}
	err := validator.New().Struct(req{Email: "nope", Password: "123"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Password must be at least 6 long")
}

func TestOK(t *testing.T) {
	resp := response.OK(map[string]int{"a": 1})
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
}
