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

func TestJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONResponse(rec, http.StatusNotFound, Payload{Success: false, Kind: "not_found", Message: "File not found"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"success": false, "kind": "not_found", "message": "File not found"}, body)
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(16)
	require.NoError(t, err)
	b, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, a, 22)
	assert.NotEqual(t, a, b)
}

func TestGenerateSecureToken_InvalidLength(t *testing.T) {
	_, err := GenerateSecureToken(0)
	assert.Error(t, err)
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "abc-123", RequestID("abc-123"))

	for _, in := range []string{"", "has space", "line\nbreak", strings.Repeat("x", 65)} {
		got := RequestID(in)
		assert.NotEqual(t, in, got)
		assert.Len(t, got, 36)
	}
}
