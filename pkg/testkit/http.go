package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Response is the decoded JSON envelope of an API response.
type Response struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Do fires one request at h. body is JSON-encoded unless it is already a
// string; token is sent as a bearer token when non-empty.
func Do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode parses the response envelope.
func Decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var out Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// DataAs decodes the envelope's data field into dest.
func DataAs(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	env := Decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, dest), "data: %s", string(env.Data))
}
