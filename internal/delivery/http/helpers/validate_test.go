package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (n nameRequest) Validate() []string {
	if n.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantSubstr string
	}{
		{name: "valid", body: `{"name":"Meetup"}`, wantOK: true},
		{name: "invalid json", body: `{invalid`, wantSubstr: "invalid"},
		{name: "unknown field", body: `{"name":"Meetup","id":"x"}`, wantSubstr: "unknown field"},
		{name: "validation failure", body: `{}`, wantSubstr: "name is required"},
		{name: "oversized body", body: `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`, wantSubstr: "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			var dest nameRequest
			ok := DecodeAndValidate(rr, req, &dest)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Meetup", dest.Name)
				return
			}
			require.Equal(t, http.StatusBadRequest, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, ErrCodeBadRequest, envelope.Error.Code)
			assert.Contains(t, envelope.Error.Message, tt.wantSubstr)
		})
	}
}

func TestWriteJSONSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONSuccess(rr, http.StatusCreated, map[string]string{"event_id": "ev-1"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"event_id":"ev-1"},"error":null}`, rr.Body.String())
}
