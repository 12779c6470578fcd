// internal/adapters/in/http/handlers/auth_handler.go
package handlers

import (
	"log"
	"net/http"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// POST /admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c admindom.Credentials
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.uc.Login(r.Context(), c)
	if err != nil {
		log.Printf("[auth] login failed username=%q: %v", admindom.NormalizeUsername(c.Username), err)
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Login successful",
		"admin":     res.Admin,
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
	})
}

// GET /admin/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	a, err := h.uc.Me(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": a})
}
