package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets the quiz pages call the API from the configured origins.
type CORS struct {
	handler *cors.Cors
}

// NewCORS creates a CORS middleware for the given origins. A "*" entry
// allows any origin.
func NewCORS(allowedOrigins []string) *CORS {
	return &CORS{
		handler: cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Accept"},
			ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
			MaxAge:         600,
		}),
	}
}

// Apply answers preflight requests and adds CORS headers to the rest.
func (c *CORS) Apply(next http.Handler) http.Handler {
	return c.handler.Handler(next)
}
