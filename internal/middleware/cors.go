package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the given origins, or every origin when the list is empty.
func Cors(origins []string) Middleware {
	options := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(origins) == 0 {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return cors.New(options).Handler
}
