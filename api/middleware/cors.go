package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/bautizosmaitte/storefront-api/pkg/config"
)

// CORS applies the storefront's allowed origin policy. Credentials stay on
// so the session cookie travels with browser requests.
func CORS(cfg config.SiteConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
