package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browser based MCP clients from allowedOrigins. An empty list
// disables cross-origin access entirely.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version", "Last-Event-ID", requestIDHeader},
		ExposedHeaders:   []string{"Mcp-Session-Id", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler
}
