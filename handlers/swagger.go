package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the record service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>hackdb-records - Swagger</title>
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

// Minimal OpenAPI document describing the record service endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "hackdb-records", "version": "v0.1.0" },
  "paths": {
    "/": {
      "get": {
        "summary": "Create a record and queue it for persistence",
        "responses": { "200": { "description": "always 'db connection: My First Blog'; X-Record-Id header carries the record id", "content": { "text/plain": { "schema": {"type":"string"} } } } }
      }
    },
    "/records": {
      "get": { "summary": "Count stored records", "parameters": [{"name":"blog","in":"query","schema":{"type":"string"}}], "responses": { "200": { "description": "blog and count" }, "503": { "description": "store unreachable" } } }
    },
    "/records/{id}/status": {
      "get": { "summary": "Write status of a record", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "pending, saved or failed" }, "400": { "description": "invalid id" }, "404": { "description": "unknown or expired" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
