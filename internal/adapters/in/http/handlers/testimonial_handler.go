// internal/adapters/in/http/handlers/testimonial_handler.go
package handlers

import (
	"net/http"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	testimonialdom "github.com/MTalha250/Varzan/internal/domain/testimonial"
)

type TestimonialHandler struct {
	uc *usecase.TestimonialUsecase
}

func NewTestimonialHandler(uc *usecase.TestimonialUsecase) *TestimonialHandler {
	return &TestimonialHandler{uc: uc}
}

func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.List(r.Context(), pageOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(res))
}

// GET /testimonial/all（ページングなし）
func (h *TestimonialHandler) All(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []testimonialdom.Testimonial{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"testimonials": items})
}

func (h *TestimonialHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.uc.GetByID(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"testimonial": t})
}

func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in testimonialdom.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.uc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Testimonial created successfully",
		"testimonial": t,
	})
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in testimonialdom.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.uc.Update(r.Context(), idParam(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Testimonial updated successfully",
		"testimonial": t,
	})
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Testimonial deleted successfully")
}
