package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSwaggerEndpoints(t *testing.T) {
	g := gin.New()
	RegisterSwagger(g)

	req := httptest.NewRequest("GET", "/swagger/index.html", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), "swagger-ui")

	req2 := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	w2 := httptest.NewRecorder()
	g.ServeHTTP(w2, req2)
	require.Equal(t, 200, w2.Code)
	require.Contains(t, w2.Body.String(), "openapi")
	// ensure the documented paths match the registered routes
	require.Contains(t, w2.Body.String(), "/auth/login")
	require.Contains(t, w2.Body.String(), "/auth/verify")
	require.Contains(t, w2.Body.String(), "/api/portfolio/{section}")
	require.Contains(t, w2.Body.String(), "/api/uploads/{section}")

	// document must be well-formed JSON
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &doc))
}
