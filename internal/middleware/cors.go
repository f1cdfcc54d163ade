// Package middleware provides reusable HTTP middleware for the textbus server.
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers based on
// allowedOrigins. Each entry must be a full origin (scheme + host, no
// trailing slash). Only the admin JSON surface is browser-facing, so the
// allowed methods and headers cover exactly that.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
}
