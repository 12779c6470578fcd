// internal/adapters/in/http/handlers/project_handler.go
package handlers

import (
	"net/http"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	projectdom "github.com/MTalha250/Varzan/internal/domain/project"
)

type ProjectHandler struct {
	uc *usecase.ProjectUsecase
}

func NewProjectHandler(uc *usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.List(r.Context(), pageOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(res))
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetByID(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": p})
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in projectdom.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.uc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Project created successfully",
		"project": p,
	})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in projectdom.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.uc.Update(r.Context(), idParam(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Project updated successfully",
		"project": p,
	})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted successfully")
}
