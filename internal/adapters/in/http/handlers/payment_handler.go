// internal/adapters/in/http/handlers/payment_handler.go
package handlers

import (
	"net/http"
	"strings"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
)

// PaymentHandler は管理画面の決済一覧・詳細（作成・更新は webhook 経由のみ）
type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// GET /payment?status=&search=&dateFrom=&dateTo=&page=&limit=
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f := paymentdom.Filter{
		Status: paymentdom.Status(strings.ToLower(strings.TrimSpace(q.Get("status")))),
		Search: strings.TrimSpace(q.Get("search")),
		Range:  rng,
	}
	if f.Status != "" && !f.Status.Valid() {
		writeError(w, r, paymentdom.ErrInvalidStatus)
		return
	}

	res, err := h.uc.List(r.Context(), f, pageOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(res))
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetByID(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payment": p})
}
