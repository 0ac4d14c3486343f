package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"studyhall/config"
	"studyhall/infras/metrics"
	"studyhall/infras/otel/mocks"
	cacheMocks "studyhall/shared/cache/mocks"
	transport "studyhall/transport/http"
	"studyhall/transport/http/middleware"
	"studyhall/transport/http/router"
)

func newServer(t *testing.T) *transport.HTTP {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "studyhall"

	ot := mocks.NewOtel()
	m := metrics.New(cfg.App.Name)
	appMiddleware := middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(gomock.NewController(t)), m)
	r := router.New(router.DomainHandlers{}, middleware.NewAccess(ot, cfg))

	return transport.New(cfg, r, appMiddleware, m, nil)
}

func TestHealth(t *testing.T) {
	server := newServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, transport.ServerStateReady, server.State())
}

func TestMetricsEndpoint(t *testing.T) {
	server := newServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestUnknownRouteIsCounted(t *testing.T) {
	server := newServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
