package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/foliocms/foliocms/internal/portfolio"
	"github.com/foliocms/foliocms/internal/render"
	"github.com/foliocms/foliocms/pkg/middleware"
)

type staticLoader struct {
	data *portfolio.Data
}

func (l *staticLoader) Load(ctx context.Context) (*portfolio.Data, error) {
	return l.data, nil
}

func pagesRouter(t *testing.T) *gin.Engine {
	t.Helper()

	loader := &staticLoader{data: &portfolio.Data{
		Hero: &portfolio.Hero{Name: "Jane Roe", JobTitle: "Engineer"},
	}}
	renderer, err := render.NewRenderer(loader, time.Minute)
	require.NoError(t, err)
	t.Cleanup(renderer.Close)

	gate := &middleware.SessionGate{CookieName: "__session"}

	g := gin.New()
	NewPagesHandler(renderer, gate).Register(g)
	return g
}

func TestHomeRendersPortfolioPage(t *testing.T) {
	g := pagesRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), "<h1>Jane Roe</h1>")
}

func TestViewReturnsCachedModel(t *testing.T) {
	g := pagesRouter(t)

	req := httptest.NewRequest("GET", "/api/view", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var v render.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.NotNil(t, v.Hero)
	require.Equal(t, "Jane Roe", v.Hero.Name)
	require.Empty(t, v.Projects)
}

func TestAdminRedirectsWithoutSession(t *testing.T) {
	g := pagesRouter(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginPageServedWithoutSession(t *testing.T) {
	g := pagesRouter(t)

	req := httptest.NewRequest("GET", "/login", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Sign in")
}
