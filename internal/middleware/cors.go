package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// AllowCors wraps handler with the CORS policy of the given origins.
func AllowCors(allowOrigins []string, handler http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(handler)
}
