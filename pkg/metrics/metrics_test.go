package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/phonexml/pkg/provision"
)

var _ provision.Observer = (*Observer)(nil)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserver_ObserveRequest(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	o := NewObserver(reg)

	o.ObserveRequest("init", false, time.Millisecond)
	o.ObserveRequest("init", false, 2*time.Millisecond)
	o.ObserveRequest("init", true, time.Millisecond)
	o.ObserveRequest("login", false, time.Millisecond)

	body := scrape(t, reg)
	assert.Contains(t, body, `phonexml_requests_total{operation="init",result="ok"} 2`)
	assert.Contains(t, body, `phonexml_requests_total{operation="init",result="error"} 1`)
	assert.Contains(t, body, `phonexml_requests_total{operation="login",result="ok"} 1`)
	assert.Contains(t, body, `phonexml_request_duration_seconds_count{operation="init"} 3`)
	assert.Contains(t, body, `phonexml_request_duration_seconds_count{operation="login"} 1`)
}

func TestObserver_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	NewObserver(reg)
	assert.Panics(t, func() { NewObserver(reg) })
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	NewObserver(reg).ObserveRequest("login", false, time.Millisecond)

	body := scrape(t, reg)
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "phonexml_request_duration_seconds_bucket")
}
