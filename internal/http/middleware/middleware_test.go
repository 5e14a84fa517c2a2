package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	handler := CORS([]string{"https://app.farmfast.in"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	req.Header.Set("Origin", "https://app.farmfast.in")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.farmfast.in", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIgnoresUnlistedOrigin(t *testing.T) {
	handler := CORS([]string{"https://app.farmfast.in"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/offers", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://anything.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAdminJWT(t *testing.T) {
	const secret = "test-secret"
	handler := AdminJWT(secret)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "missing token")

	req = httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "garbage token")

	req = httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "wrong-secret"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "wrong signature")

	req = httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, secret))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminJWTDisabledWithoutSecret(t *testing.T) {
	handler := AdminJWT("")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "anything"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitBlocksBursts(t *testing.T) {
	limiter := newOfferLimiter(1, 2)

	assert.True(t, limiter.take("1.2.3.4"))
	assert.True(t, limiter.take("1.2.3.4"))
	assert.False(t, limiter.take("1.2.3.4"))

	// A different IP has its own bucket.
	assert.True(t, limiter.take("5.6.7.8"))
}

func TestRateLimitRefills(t *testing.T) {
	limiter := newOfferLimiter(10, 1)
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.take("1.2.3.4"))
	assert.False(t, limiter.take("1.2.3.4"))

	current = current.Add(200 * time.Millisecond)
	assert.True(t, limiter.take("1.2.3.4"))
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	handler := RateLimit(1, 1)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/offers", nil)
	req.RemoteAddr = "1.2.3.4:51000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
