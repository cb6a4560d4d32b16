package kernel

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/restopos/pkg/testkit"
)

func TestHealthz(t *testing.T) {
	h := Handler(testkit.NewDB(t))

	rec := testkit.Do(t, h, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", testkit.Decode(t, rec).Message)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := Handler(testkit.NewDB(t))

	testkit.Do(t, h, http.MethodGet, "/api/categories", "", nil)
	rec := testkit.Do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}

func TestMethodNotAllowed(t *testing.T) {
	h := Handler(testkit.NewDB(t))

	rec := testkit.Do(t, h, http.MethodDelete, "/api/categories", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutesAreNamed(t *testing.T) {
	r := NewRouter(nil)

	path, ok := r.Path("orders.mark_paid")
	require.True(t, ok)
	assert.Equal(t, "/api/orders/{id}/mark-paid", path)

	for _, ri := range r.Routes() {
		assert.NotEmpty(t, ri.Name, "%s %s", ri.Method, ri.Path)
	}
}
