package transport

import (
	"net/http"
	"slices"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/muhammadheryan/property-listing/cmd/config"
)

// CORSMiddleware answers preflight requests and decorates responses for allowed origins.
// It wraps the whole router so OPTIONS requests never reach route matching.
// Credentials are only allowed when the origins are listed explicitly.
func CORSMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	opts := []handlers.CORSOption{
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods(cfg.AllowedMethods),
		handlers.AllowedHeaders(cfg.AllowedHeaders),
		handlers.OptionStatusCode(http.StatusNoContent),
	}
	if !slices.Contains(cfg.AllowedOrigins, "*") {
		opts = append(opts, handlers.AllowCredentials())
	}
	return handlers.CORS(opts...)
}
