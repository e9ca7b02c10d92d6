package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testConfig struct{}

func (testConfig) GetHTTPAddr() string              { return ":0" }
func (testConfig) GetCORSAllowAll() bool            { return false }
func (testConfig) GetCORSOrigins() []string         { return []string{"http://localhost:3000"} }
func (testConfig) GetCORSAllowCreds() bool          { return true }
func (testConfig) GetRateLimitPerMinute() int       { return 1000 }
func (testConfig) GetJWTAccessSecret() string       { return "test-secret-test-secret-test-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/ping", func(c *gin.Context) { httpkit.OK(c, gin.H{"pong": true}) })
}

type failingHealth struct{}

func (failingHealth) Ping(context.Context) error { return errors.New("db down") }

func newApp(health apphttp.HealthChecker) *apphttp.App {
	return &apphttp.App{
		Config:   testConfig{},
		Logger:   logger.Discard(),
		Health:   health,
		Registry: prometheus.NewRegistry(),
		Modules:  []apphttp.Module{pingModule{}},
	}
}

func get(engine http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestModulesAreProtected(t *testing.T) {
	engine := New(newApp(nil))

	assert.Equal(t, http.StatusUnauthorized, get(engine, "/api/v1/ping", "").Code)

	token, err := httpkit.SignAccessToken(testConfig{}, uuid.New(), []string{"Sales"}, time.Now())
	require.NoError(t, err)
	w := get(engine, "/api/v1/ping", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestHealthAndMetrics(t *testing.T) {
	engine := New(newApp(nil))
	assert.Equal(t, http.StatusOK, get(engine, "/api/health", "").Code)

	metrics := get(engine, "/metrics", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "leadflow_http_requests_total")

	assert.Equal(t, http.StatusServiceUnavailable, get(New(newApp(failingHealth{})), "/api/health", "").Code)
}
