// internal/adapters/in/http/handlers/category_handler.go
package handlers

import (
	"net/http"
	"strings"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
)

// CategoryHandler は /category 関連のエンドポイントを担当します。
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// GET /category?type=template|print
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	f := catdom.Filter{Type: catdom.Type(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))))}
	res, err := h.uc.List(r.Context(), f, pageOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(res))
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.GetByID(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": c})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in catdom.Input
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
		"message":  "Category created successfully",
		"category": c,
	})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in catdom.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.uc.Update(r.Context(), idParam(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Category updated successfully",
		"category": c,
	})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Category deleted successfully")
}
