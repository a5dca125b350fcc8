package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/service"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator map[string]*models.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	switch token {
	case "expired":
		return nil, appErrors.ErrExpiredToken
	case "inactive":
		return nil, appErrors.ErrInactiveAccount
	}
	if user, ok := s[token]; ok {
		return user, nil
	}
	return nil, appErrors.ErrInvalidToken
}

var authStub = stubAuthenticator{
	"admin-token":  {ID: "admin", Role: models.RoleAdmin, IsActive: true},
	"parent-token": {ID: "p1", Role: models.RoleParent, IsActive: true},
}

func perform(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestJWT(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWT(authStub), func(c *gin.Context) {
		id := Identity(c)
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id.UserID, "role": id.Role, "user": user.ID})
	})

	w := perform(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, appErrors.ErrUnauthenticated.Message, errorMessage(t, w))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid authorization header", errorMessage(t, w))

	for token, msg := range map[string]string{
		"garbage":  appErrors.ErrInvalidToken.Message,
		"expired":  appErrors.ErrExpiredToken.Message,
		"inactive": appErrors.ErrInactiveAccount.Message,
	} {
		w = perform(r, http.MethodGet, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code, token)
		assert.Equal(t, msg, errorMessage(t, w), token)
	}

	w = perform(r, http.MethodGet, "/me", "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"admin","role":"admin","user":"admin"}`, w.Body.String())
}

func TestOptionalJWTNeverFails(t *testing.T) {
	r := gin.New()
	r.GET("/content", OptionalJWT(authStub), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": Identity(c).Authenticated()})
	})

	for token, authenticated := range map[string]bool{"": false, "garbage": false, "expired": false, "parent-token": true} {
		w := perform(r, http.MethodGet, "/content", token)
		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]bool
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, authenticated, body["authenticated"], token)
	}
}

func TestRBAC(t *testing.T) {
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/admin", JWT(authStub), RequireRoles(models.RoleAdmin), ok)
	r.GET("/staff", JWT(authStub), StaffOnly(), ok)
	r.GET("/users/:id", JWT(authStub), RBAC(string(models.RoleAdmin), Self), ok)
	r.GET("/anon", RequireRoles(models.RoleAdmin), ok)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/admin", "admin-token").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodGet, "/admin", "parent-token").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodGet, "/staff", "parent-token").Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/users/p1", "parent-token").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodGet, "/users/p2", "parent-token").Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/users/p2", "admin-token").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/anon", "").Code)
}

type stubLimiter struct {
	hits int
}

func (s *stubLimiter) Allow(_ context.Context, _, _ string, limit int) service.RateDecision {
	s.hits++
	if s.hits > limit {
		return service.RateDecision{RetryAfter: 90500 * time.Millisecond}
	}
	return service.RateDecision{Allowed: true, Remaining: limit - s.hits}
}

func TestRateLimit(t *testing.T) {
	limiter := &stubLimiter{}
	r := gin.New()
	r.POST("/contacts", RateLimit(limiter, "contact", 1), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := perform(r, http.MethodPost, "/contacts", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = perform(r, http.MethodPost, "/contacts", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "91", w.Header().Get("Retry-After"))

	open := gin.New()
	open.POST("/contacts", RateLimit(nil, "contact", 1), func(c *gin.Context) { c.Status(http.StatusCreated) })
	assert.Equal(t, http.StatusCreated, perform(open, http.MethodPost, "/contacts", "").Code)
}

func TestAuditLogsSuccessfulMutations(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(OptionalJWT(authStub), Audit(zap.New(core)))
	r.POST("/children/:id", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/children/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/children/:id", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	perform(r, http.MethodPost, "/children/c1", "admin-token")
	perform(r, http.MethodGet, "/children/c1", "admin-token")
	perform(r, http.MethodDelete, "/children/c1", "parent-token")

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "admin", fields["user_id"])
	assert.Equal(t, "/children/:id", fields["path"])
	assert.Equal(t, "c1", fields["resource_id"])
}

func TestMetricsMiddlewareNilService(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ping", "").Code)
}

func TestMetricsLabelsByRouteTemplate(t *testing.T) {
	metrics := service.NewMetricsService(nil)
	r := gin.New()
	r.Use(Metrics(metrics, "/metrics"))
	r.GET("/children/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	perform(r, http.MethodGet, "/children/abc", "")
	perform(r, http.MethodGet, "/children/def", "")
	perform(r, http.MethodGet, "/wp-login.php", "")

	body := perform(r, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/children/:id",status="200"} 2`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.NotContains(t, body, "/children/abc")
	assert.NotContains(t, body, `path="/metrics"`)
}
