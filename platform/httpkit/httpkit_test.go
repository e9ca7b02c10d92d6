package httpkit

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leadflow_backend/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type testJWTConfig struct {
	secret string
	ttl    time.Duration
}

func (c testJWTConfig) GetJWTAccessSecret() string       { return c.secret }
func (c testJWTConfig) GetAccessTokenTTL() time.Duration { return c.ttl }

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(cfg testJWTConfig) *gin.Engine {
	r := gin.New()
	r.Use(AuthRequired(cfg, nil))
	r.GET("/me", func(c *gin.Context) {
		id := MustGetIdentity(c)
		if id == nil {
			return
		}
		OK(c, gin.H{"id": id.UserID().String(), "roles": id.Roles()})
	})
	return r
}

func TestAuthRequiredAcceptsSignedToken(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret", ttl: time.Hour}
	token, err := SignAccessToken(cfg, uuid.New(), []string{"Sales"}, time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newAuthRouter(cfg).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequiredRejects(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret", ttl: time.Hour}

	expired, _ := SignAccessToken(cfg, uuid.New(), nil, time.Now().Add(-2*time.Hour))
	otherSecret, _ := SignAccessToken(testJWTConfig{secret: "nope", ttl: time.Hour}, uuid.New(), nil, time.Now())
	refresh, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.secret))
	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "not-a-uuid",
		"type": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.secret))

	tests := map[string]string{
		"missing":      "",
		"not bearer":   "Token abc",
		"garbage":      "Bearer abc.def.ghi",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + otherSecret,
		"refresh type": "Bearer " + refresh,
		"bad subject":  "Bearer " + badSubject,
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(cfg).ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestHandleErrorMapsKinds(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("lead not found"), http.StatusNotFound},
		{apperr.Validation("bad"), http.StatusBadRequest},
		{apperr.Conflict("exists"), http.StatusConflict},
		{apperr.Forbidden("no"), http.StatusForbidden},
		{apperr.Unauthorized("no"), http.StatusUnauthorized},
		{apperr.Upstream("db down", errors.New("dial")), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", apperr.NotFound("x")), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		if !HandleError(c, tt.err) {
			t.Fatalf("expected error to be handled")
		}
		if w.Code != tt.want {
			t.Fatalf("HandleError(%v) status = %d, want %d", tt.err, w.Code, tt.want)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if HandleError(c, nil) {
		t.Fatalf("nil error should not be handled")
	}
}

func TestRateLimitRejectsBurst(t *testing.T) {
	limiter := NewPerMinuteLimiter(2, nil)
	r := gin.New()
	r.Use(limiter.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func TestMetricsMiddlewareCountsRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/leads/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leads/"+id, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/leads/:id", "200"))
	if got != 2 {
		t.Fatalf("expected 2 requests counted, got %v", got)
	}
}
