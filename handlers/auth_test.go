package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/foliocms/foliocms/internal/config"
	"github.com/foliocms/foliocms/internal/oidc"
)

// fakeSessions records issued and revoked credentials
type fakeSessions struct {
	issued  []string
	revoked []string
	valid   map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{valid: map[string]string{}}
}

func (f *fakeSessions) Issue(_ context.Context, email string) (string, time.Time, error) {
	credential := "cred-for-" + email
	f.issued = append(f.issued, email)
	f.valid[credential] = email
	return credential, time.Now().Add(time.Hour), nil
}

func (f *fakeSessions) Verify(_ context.Context, credential string) (string, error) {
	if email, ok := f.valid[credential]; ok {
		return email, nil
	}
	return "", errors.New("invalid session")
}

func (f *fakeSessions) Revoke(_ context.Context, credential string) error {
	f.revoked = append(f.revoked, credential)
	delete(f.valid, credential)
	return nil
}

func testConfig(allowed ...string) *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = "auth-test-secret-32-bytes-xxxxxx"
	cfg.Session.AllowedEmails = allowed
	cfg.Session.TTL = time.Hour
	return cfg
}

// idTokenFor crafts an unsigned id token readable by the insecure verifier
func idTokenFor(email string) string {
	claims := map[string]interface{}{"email": email, "email_verified": true}
	b, _ := json.Marshal(claims)
	return "hdr." + base64.RawURLEncoding.EncodeToString(b) + ".sig"
}

func authRouter(cfg *config.Config, sessions *fakeSessions) *gin.Engine {
	h := NewAuthHandler(cfg, sessions, oidc.NewInsecureVerifier())
	r := gin.New()
	rg := r.Group("/")
	h.Register(rg)
	return r
}

func TestLogin_AllowListedEmailGetsSession(t *testing.T) {
	sessions := newFakeSessions()
	r := authRouter(testConfig("owner@example.com"), sessions)

	body := `{"idToken":"` + idTokenFor("owner@example.com") + `"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"owner@example.com"}, sessions.issued)

	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, ck := range cookies {
		if ck.Name == config.SessionCookieName {
			sessionCookie = ck
		}
	}
	if assert.NotNil(t, sessionCookie, "session cookie must be set") {
		assert.True(t, sessionCookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, sessionCookie.SameSite)
		assert.NotEmpty(t, sessionCookie.Value)
	}
}

func TestLogin_AllowListIsCaseInsensitive(t *testing.T) {
	sessions := newFakeSessions()
	r := authRouter(testConfig("Owner@Example.com"), sessions)

	body := `{"idToken":"` + idTokenFor("owner@example.com") + `"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_UnlistedEmailGetsNoSession(t *testing.T) {
	sessions := newFakeSessions()
	r := authRouter(testConfig("owner@example.com"), sessions)

	body := `{"idToken":"` + idTokenFor("intruder@example.com") + `"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, sessions.issued, "no session may be issued for unlisted identities")
	for _, ck := range w.Result().Cookies() {
		assert.NotEqual(t, config.SessionCookieName, ck.Name)
	}
}

func TestLogin_BadTokenRejected(t *testing.T) {
	sessions := newFakeSessions()
	r := authRouter(testConfig("owner@example.com"), sessions)

	body := `{"idToken":"garbage"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingBody(t *testing.T) {
	sessions := newFakeSessions()
	r := authRouter(testConfig("owner@example.com"), sessions)

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerify_ReportsValidity(t *testing.T) {
	sessions := newFakeSessions()
	sessions.valid["live-cred"] = "owner@example.com"
	r := authRouter(testConfig("owner@example.com"), sessions)

	// no cookie
	req := httptest.NewRequest("GET", "/auth/verify", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isValid":false`)

	// valid cookie
	req2 := httptest.NewRequest("GET", "/auth/verify", nil)
	req2.AddCookie(&http.Cookie{Name: config.SessionCookieName, Value: "live-cred"})
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), `"isValid":true`)

	// stale cookie reports invalid and clears
	req3 := httptest.NewRequest("GET", "/auth/verify", nil)
	req3.AddCookie(&http.Cookie{Name: config.SessionCookieName, Value: "stale-cred"})
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req3)
	assert.Equal(t, http.StatusOK, w3.Code)
	assert.Contains(t, w3.Body.String(), `"isValid":false`)
	assert.Contains(t, w3.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestLogout_RevokesAndClears(t *testing.T) {
	sessions := newFakeSessions()
	sessions.valid["live-cred"] = "owner@example.com"
	r := authRouter(testConfig("owner@example.com"), sessions)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: config.SessionCookieName, Value: "live-cred"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"live-cred"}, sessions.revoked)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestLogout_WithoutCookieStillSucceeds(t *testing.T) {
	sessions := newFakeSessions()
	r := authRouter(testConfig("owner@example.com"), sessions)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sessions.revoked)
}
