package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>foliocms API docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public and admin endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "foliocms", "version": "v0.1.0" },
  "paths": {
    "/auth/login": {
      "post": {
        "summary": "Exchange an OIDC identity token for the session cookie",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"idToken":{"type":"string"}},"required":["idToken"]}}}},
        "responses": { "200": { "description": "session cookie set" }, "401": { "description": "invalid identity token" }, "403": { "description": "identity not on the operator allow-list" } }
      }
    },
    "/auth/verify": {
      "get": { "summary": "Check whether the session cookie is still valid", "responses": { "200": { "description": "{isValid, email}" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Revoke the session and clear the cookie", "responses": { "200": { "description": "logged out" } } }
    },
    "/api/portfolio": {
      "get": { "summary": "Read the composed portfolio aggregate", "responses": { "200": { "description": "aggregate of all present sections" } } }
    },
    "/api/portfolio/{section}": {
      "get": { "summary": "Read one section", "parameters": [{"name":"section","in":"path","required":true,"schema":{"type":"string","enum":["hero","about","contact","experience","projects","writing","resume"]}}], "responses": { "200": { "description": "section value" }, "404": { "description": "section never written" } } },
      "put": { "summary": "Replace one section (requires session)", "responses": { "200": { "description": "saved" }, "400": { "description": "payload failed validation" }, "401": { "description": "no valid session" } } }
    },
    "/api/uploads/{section}": {
      "post": { "summary": "Upload an image for a section (requires session, multipart field 'file')", "responses": { "200": { "description": "{url}" }, "401": { "description": "no valid session" } } }
    },
    "/api/view": {
      "get": { "summary": "Cached public view model", "responses": { "200": { "description": "view JSON" } } }
    },
    "/api/editor": {
      "post": { "summary": "Open an editing workspace (requires session)", "responses": { "201": { "description": "{id, activeSection}" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
