package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foliocms/foliocms/internal/config"
	"github.com/foliocms/foliocms/internal/oidc"
	"github.com/foliocms/foliocms/pkg/logger"
)

// LoginRequest carries the identity proof obtained by the login page.
type LoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// IdentityVerifier checks the OIDC identity proof presented at login.
// Satisfied by *oidc.Verifier and *oidc.InsecureVerifier.
type IdentityVerifier interface {
	Verify(ctx context.Context, raw string) (oidc.Token, error)
}

// SessionIssuer is the slice of the sessions service the handler depends on.
type SessionIssuer interface {
	Issue(ctx context.Context, email string) (string, time.Time, error)
	Verify(ctx context.Context, credential string) (string, error)
	Revoke(ctx context.Context, credential string) error
}

// AuthHandler exchanges a verified identity for the session cookie and
// manages its lifecycle.
type AuthHandler struct {
	cfg      *config.Config
	sessions SessionIssuer
	verifier IdentityVerifier
}

func NewAuthHandler(cfg *config.Config, sessions SessionIssuer, verifier IdentityVerifier) *AuthHandler {
	return &AuthHandler{cfg: cfg, sessions: sessions, verifier: verifier}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.GET("/verify", h.Verify)
	a.POST("/logout", h.Logout)
}

// Login verifies the identity proof, applies the operator allow-list, and
// sets the session cookie. Identities off the allow-list get no session at
// all, not a restricted one.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	idToken, err := h.verifier.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity token"})
		return
	}
	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
		return
	}
	email := strings.TrimSpace(claims.Email)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity token has no email"})
		return
	}
	if !h.cfg.IsAllowed(email) {
		logger.Warnf("login rejected for %s: not on the operator allow-list", email)
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to manage this site"})
		return
	}

	credential, expiresAt, err := h.sessions.Issue(c.Request.Context(), email)
	if err != nil {
		logger.Errorf("failed to issue session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.SessionCookieName, credential, maxAge, "/", "", h.cfg.Session.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"email": email, "expiresAt": expiresAt.UTC()})
}

// Verify reports whether the presented session cookie is still valid. Used
// by the admin frontend on load; an invalid cookie is cleared.
func (h *AuthHandler) Verify(c *gin.Context) {
	credential, err := c.Cookie(config.SessionCookieName)
	if err != nil || credential == "" {
		c.JSON(http.StatusOK, gin.H{"isValid": false})
		return
	}
	email, err := h.sessions.Verify(c.Request.Context(), credential)
	if err != nil || email == "" {
		h.clearCookie(c)
		c.JSON(http.StatusOK, gin.H{"isValid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isValid": true, "email": email})
}

// Logout revokes the session server-side and clears the cookie. Always
// succeeds from the client's point of view.
func (h *AuthHandler) Logout(c *gin.Context) {
	credential, err := c.Cookie(config.SessionCookieName)
	if err == nil && credential != "" {
		if err := h.sessions.Revoke(c.Request.Context(), credential); err != nil {
			logger.Warnf("session revoke failed: %v", err)
		}
	}
	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.SessionCookieName, "", -1, "/", "", h.cfg.Session.CookieSecure, true)
}
