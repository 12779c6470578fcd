// internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"net/http"
	"strings"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
)

// OrderHandler: POST /order（チェックアウト）は公開、それ以外は管理者のみ
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// GET /order?status=&search=&dateFrom=&dateTo=&page=&limit=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f := orderdom.Filter{
		Status: orderdom.Status(strings.ToLower(strings.TrimSpace(q.Get("status")))),
		Search: strings.TrimSpace(q.Get("search")),
		Range:  rng,
	}
	if f.Status != "" && !f.Status.Valid() {
		writeError(w, r, orderdom.ErrInvalidStatus)
		return
	}

	res, err := h.uc.List(r.Context(), f, pageOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(res))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.GetByID(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}

// POST /order: 価格はサーバ側でカタログから確定する
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in orderdom.CheckoutInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.uc.Checkout(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   o,
	})
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in orderdom.UpdateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.uc.Update(r.Context(), idParam(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order updated successfully",
		"order":   o,
	})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Order deleted successfully")
}
