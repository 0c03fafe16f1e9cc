package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"higgsfield-mcp/internal/http/handlers"
	"higgsfield-mcp/internal/infra"
	"higgsfield-mcp/internal/middleware"
)

// MCPPath is where the streamable MCP transport is mounted.
const MCPPath = "/mcp"

// Options carries the HTTP policy for the MCP endpoint.
type Options struct {
	AuthToken         string
	AllowedOrigins    []string
	RateLimitPerMin   int
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// friends. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
	Logger            *infra.Logger
}

func NewRouter(app *handlers.App, mcp http.Handler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}

	r := chi.NewRouter()
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(*logger),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.RateLimit(opts.RateLimitPerMin, time.Minute),
			middleware.BearerToken(opts.AuthToken),
		)
		r.Handle(MCPPath, mcp)
	})

	return r
}
