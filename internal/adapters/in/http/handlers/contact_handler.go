// internal/adapters/in/http/handlers/contact_handler.go
package handlers

import (
	"net/http"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
)

// ContactHandler: POST は公開、一覧・詳細は管理者のみ
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.List(r.Context(), pageOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(res))
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.GetByID(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contact": c})
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in contactdom.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.uc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Contact created successfully",
		"contact": c,
	})
}
