package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocms/foliocms/internal/render"
	"github.com/foliocms/foliocms/pkg/logger"
	"github.com/foliocms/foliocms/pkg/middleware"
)

// PagesHandler serves the public portfolio page, the cached view JSON, and
// the minimal admin/login pages behind the session gate.
type PagesHandler struct {
	renderer *render.Renderer
	gate     *middleware.SessionGate
}

func NewPagesHandler(renderer *render.Renderer, gate *middleware.SessionGate) *PagesHandler {
	return &PagesHandler{renderer: renderer, gate: gate}
}

func (h *PagesHandler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/api/view", h.View)
	r.GET("/admin", h.gate.RequirePage("/login"), h.Admin)
	r.GET("/login", h.gate.RedirectAuthenticated("/admin"), h.Login)
}

// Home renders the public portfolio page from the cached view.
func (h *PagesHandler) Home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.WriteHTML(c.Request.Context(), c.Writer); err != nil {
		logger.Errorf("failed to render public page: %v", err)
		c.String(http.StatusInternalServerError, "failed to render page")
	}
}

// View returns the cached public view model as JSON.
func (h *PagesHandler) View(c *gin.Context) {
	v, err := h.renderer.View(c.Request.Context())
	if err != nil {
		logger.Errorf("failed to build view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build view"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// Admin serves the editing shell for a signed-in operator.
func (h *PagesHandler) Admin(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, adminHTML)
}

// Login serves the sign-in page.
func (h *PagesHandler) Login(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, loginHTML)
}

const adminHTML = `<!doctype html>
<html lang="en">
  <head><meta charset="utf-8"><title>Admin</title></head>
  <body>
    <h1>Portfolio Admin</h1>
    <p>Use the editor API under <code>/api/editor</code> to manage content.</p>
    <form method="post" action="/auth/logout"><button type="submit">Sign out</button></form>
  </body>
</html>`

const loginHTML = `<!doctype html>
<html lang="en">
  <head><meta charset="utf-8"><title>Sign in</title></head>
  <body>
    <h1>Sign in</h1>
    <p>POST your identity token to <code>/auth/login</code> as <code>{"idToken": "..."}</code>.</p>
  </body>
</html>`
