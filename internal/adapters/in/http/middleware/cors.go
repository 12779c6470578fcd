// internal/adapters/in/http/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins は storefront / admin / ローカル開発のオリジン
var DefaultAllowedOrigins = []string{
	"https://varzan.co",
	"https://www.varzan.co",
	"https://admin.varzan.co",
	"https://*.vercel.app",
	"http://localhost:3000",
	"http://localhost:3001",
}

// CORS は許可リスト方式。origins が空なら DefaultAllowedOrigins。
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = DefaultAllowedOrigins
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Stripe-Signature"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
