package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("writes status and content type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, WriteJSON(rec, http.StatusTeapot, map[string]string{"a": "b"}))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"a":"b"}`, rec.Body.String())
	})

	t.Run("nil data writes no body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, WriteJSON(rec, http.StatusNoContent, nil))
		assert.Empty(t, rec.Body.String())
	})
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter) error
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) error { return WriteBadRequest(w, "nope", nil) }, http.StatusBadRequest, "bad_request"},
		{"unauthorized", func(w http.ResponseWriter) error { return WriteUnauthorized(w, "") }, http.StatusUnauthorized, "unauthorized"},
		{"not found", func(w http.ResponseWriter) error { return WriteNotFound(w, "gone") }, http.StatusNotFound, "not_found"},
		{"conflict", func(w http.ResponseWriter) error { return WriteConflict(w, "dup", nil) }, http.StatusConflict, "conflict"},
		{"unavailable", func(w http.ResponseWriter) error { return WriteServiceUnavailable(w, "later") }, http.StatusServiceUnavailable, "unavailable"},
		{"internal", func(w http.ResponseWriter) error { return WriteInternalError(w, "") }, http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, tt.write(rec))
			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.code, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "x", p.Name)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
		var p payload
		assert.Error(t, DecodeJSON(req, &p))
	})
}
