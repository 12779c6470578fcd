// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
)

// Authenticator は bearer トークンを主体に解決する（usecase.AuthUsecase が満たす）
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (admindom.Principal, error)
}

// AuthMiddleware は管理系ルートの 2 段ゲート。
//
//   - RequireToken: Authorization: Bearer <token> を検証し主体を context に載せる（失敗は 401）
//   - RequireAdmin: 主体の role が admin でなければ 403
type AuthMiddleware struct {
	Auth Authenticator
}

func (m *AuthMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Auth == nil {
			writeMessage(w, http.StatusServiceUnavailable, "auth middleware not initialized")
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized: missing bearer token")
			return
		}

		p, err := m.Auth.Authenticate(r.Context(), token)
		if err != nil {
			log.Printf("[auth] reject path=%s: %v", r.URL.Path, err)
			writeMessage(w, http.StatusUnauthorized, "Unauthorized: invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(usecase.WithPrincipal(r.Context(), p)))
	})
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := usecase.PrincipalFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !p.IsAdmin() {
			log.Printf("[auth] forbidden path=%s sub=%s role=%q", r.URL.Path, p.Subject, p.Role)
			writeMessage(w, http.StatusForbidden, "Forbidden: admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Admin は RequireToken → RequireAdmin の順に掛ける。
func (m *AuthMiddleware) Admin(next http.Handler) http.Handler {
	return m.RequireToken(m.RequireAdmin(next))
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
		return "", false
	}
	t := strings.TrimSpace(h[len("Bearer "):])
	return t, t != ""
}
