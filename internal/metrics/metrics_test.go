package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"backoffice/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	m := metrics.NewHTTPMetrics("backoffice", prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/purchases/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/purchases/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReqTotal.WithLabelValues("GET", "/purchases/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReqTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "backoffice_http_requests_total")
}

func TestNewHTTPMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := metrics.NewHTTPMetrics("backoffice", reg)
	second := metrics.NewHTTPMetrics("backoffice", reg)

	assert.Same(t, first.ReqTotal, second.ReqTotal)
}
