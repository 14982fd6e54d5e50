package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"docvault/internal/auth"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 2)

	assert.True(t, rl.Allow("test-key"))
	assert.True(t, rl.Allow("test-key"))
	assert.False(t, rl.Allow("test-key"))
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("key1"))
	assert.True(t, rl.Allow("key2"))
	assert.False(t, rl.Allow("key1"))
	assert.False(t, rl.Allow("key2"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	mw := rl.Middleware()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

// Authenticated requests are bucketed by user, so one user's burst does
// not exhaust another's budget from the same address.
func TestRateLimiter_KeysByUser(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	mw := rl.Middleware()

	call := func(userID uuid.UUID) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(auth.ContextKeyUserID, userID)
		if err := mw(handler)(c); err != nil {
			t.Fatal(err)
		}
		return rec.Code
	}

	alice := uuid.New()
	bob := uuid.New()

	assert.Equal(t, http.StatusOK, call(alice))
	assert.Equal(t, http.StatusTooManyRequests, call(alice))
	assert.Equal(t, http.StatusOK, call(bob))
}

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	e := echo.New()
	mw := RequestID()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	}

	// Absent header: a fresh ID is minted.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, mw(handler)(c))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	// Present header: the caller's ID is kept.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-chosen-id")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, "caller-chosen-id", rec.Header().Get(RequestIDHeader))
}
