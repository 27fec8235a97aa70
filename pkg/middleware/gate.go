package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OperatorKey is the gin context key holding the verified operator email.
const OperatorKey = "operator"

// SessionVerifier checks a session credential and returns the operator email.
type SessionVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// SessionGate guards admin surfaces with the session cookie. Page routes get
// redirects, API routes get JSON errors; both clear a cookie that failed
// verification so the browser stops presenting it.
type SessionGate struct {
	CookieName string
	Secure     bool
	Verifier   SessionVerifier
}

// RequirePage redirects unauthenticated requests to the login page.
func (g *SessionGate) RequirePage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := g.verify(c)
		if !ok {
			g.clear(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(OperatorKey, email)
		c.Next()
	}
}

// RedirectAuthenticated sends already signed-in operators away from the login
// page to the target.
func (g *SessionGate) RedirectAuthenticated(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email, ok := g.verify(c); ok {
			c.Set(OperatorKey, email)
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPI rejects unauthenticated API requests with 401 and exposes the
// operator email to downstream handlers.
func (g *SessionGate) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := g.verify(c)
		if !ok {
			g.clear(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(OperatorKey, email)
		c.Next()
	}
}

func (g *SessionGate) verify(c *gin.Context) (string, bool) {
	if g.Verifier == nil {
		return "", false
	}
	credential, err := c.Cookie(g.CookieName)
	if err != nil || credential == "" {
		return "", false
	}
	email, err := g.Verifier.Verify(c.Request.Context(), credential)
	if err != nil || email == "" {
		return "", false
	}
	return email, true
}

func (g *SessionGate) clear(c *gin.Context) {
	if _, err := c.Cookie(g.CookieName); err != nil {
		return
	}
	c.SetCookie(g.CookieName, "", -1, "/", "", g.Secure, true)
}
