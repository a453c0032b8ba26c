package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Reason string `json:"reason"`
	}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"reason":"ok"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "ok", v.Reason)

	req = httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"reason":"ok","extra":1}`))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "занято", body.Error)
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-1"} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err := PathID(req, "id")
		assert.Error(t, err, raw)
	}
}

func TestQueryDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-06-02&bad=02.06.2025", nil)

	date, err := QueryDate(req, "date")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, "2025-06-02", date.Format("2006-01-02"))

	missing, err := QueryDate(req, "other")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryDate(req, "bad")
	assert.Error(t, err)
}
