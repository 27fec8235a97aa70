package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testCookie = "__session"

type fakeSessionVerifier struct {
	valid map[string]string // credential -> email
}

func (f *fakeSessionVerifier) Verify(_ context.Context, credential string) (string, error) {
	if email, ok := f.valid[credential]; ok {
		return email, nil
	}
	return "", errors.New("invalid session")
}

func newGate() *SessionGate {
	return &SessionGate{
		CookieName: testCookie,
		Verifier:   &fakeSessionVerifier{valid: map[string]string{"good": "owner@example.com"}},
	}
}

func gateRouter() *gin.Engine {
	g := newGate()
	r := gin.New()
	r.GET("/admin", g.RequirePage("/login"), func(c *gin.Context) {
		c.String(200, "admin for %s", c.GetString(OperatorKey))
	})
	r.GET("/login", g.RedirectAuthenticated("/admin"), func(c *gin.Context) {
		c.String(200, "login page")
	})
	r.GET("/api/secret", g.RequireAPI(), func(c *gin.Context) {
		c.JSON(200, gin.H{"operator": c.GetString(OperatorKey)})
	})
	return r
}

func TestRequirePage_RedirectsWithoutSession(t *testing.T) {
	r := gateRouter()

	rq := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, rq)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequirePage_ClearsBadCookie(t *testing.T) {
	r := gateRouter()

	rq := httptest.NewRequest("GET", "/admin", nil)
	rq.AddCookie(&http.Cookie{Name: testCookie, Value: "expired"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, rq)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
	setCookie := w.Header().Get("Set-Cookie")
	require.Contains(t, setCookie, testCookie+"=")
	require.Contains(t, setCookie, "Max-Age=0")
}

func TestRequirePage_AllowsValidSession(t *testing.T) {
	r := gateRouter()

	rq := httptest.NewRequest("GET", "/admin", nil)
	rq.AddCookie(&http.Cookie{Name: testCookie, Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, rq)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "owner@example.com")
}

func TestRedirectAuthenticated_SendsSignedInAway(t *testing.T) {
	r := gateRouter()

	rq := httptest.NewRequest("GET", "/login", nil)
	rq.AddCookie(&http.Cookie{Name: testCookie, Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, rq)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestRedirectAuthenticated_ShowsLoginWithoutSession(t *testing.T) {
	r := gateRouter()

	rq := httptest.NewRequest("GET", "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, rq)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "login page"))
}

func TestRequireAPI_RejectsWithoutSession(t *testing.T) {
	r := gateRouter()

	rq := httptest.NewRequest("GET", "/api/secret", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, rq)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAPI_ExposesOperator(t *testing.T) {
	r := gateRouter()

	rq := httptest.NewRequest("GET", "/api/secret", nil)
	rq.AddCookie(&http.Cookie{Name: testCookie, Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, rq)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "owner@example.com")
}
