// internal/adapters/in/http/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
)

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GET /dashboard: monthlyRevenue は疎な系列のまま返す
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.uc.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
