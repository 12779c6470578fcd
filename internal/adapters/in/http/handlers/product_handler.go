// internal/adapters/in/http/handlers/product_handler.go
package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MTalha250/Varzan/internal/adapters/out/excel"
	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// ProductHandler は /product 関連のエンドポイントを担当します。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// ------------------------------------------------------------
// GET /product
// GET /product/filter?query=&category=&categoryId=&type=&sizes=&min=&max=
// ------------------------------------------------------------

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, productdom.Filter{})
}

func (h *ProductHandler) Filter(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.search(w, r, f)
}

// ------------------------------------------------------------
// GET /product/category/{category}
// GET /product/type/{type}
// GET /product/category/{category}/type/{type}
// ------------------------------------------------------------

func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, productdom.Filter{Category: strings.TrimSpace(chi.URLParam(r, "category"))})
}

func (h *ProductHandler) ByType(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, productdom.Filter{Type: typeParam(chi.URLParam(r, "type"))})
}

func (h *ProductHandler) ByCategoryAndType(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, productdom.Filter{
		Category: strings.TrimSpace(chi.URLParam(r, "category")),
		Type:     typeParam(chi.URLParam(r, "type")),
	})
}

func (h *ProductHandler) search(w http.ResponseWriter, r *http.Request, f productdom.Filter) {
	res, err := h.uc.Search(r.Context(), f, pageOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(res))
}

// ------------------------------------------------------------
// GET /product/filterValues
// ------------------------------------------------------------

func (h *ProductHandler) FilterValues(w http.ResponseWriter, r *http.Request) {
	cats, err := h.uc.FilterValues(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// ------------------------------------------------------------
// GET /product/{id}        公開（productLink なし + related）
// GET /product/admin/{id}  管理（productLink あり）
// ------------------------------------------------------------

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.uc.GetPublic(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ProductHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetAdmin(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

// ------------------------------------------------------------
// GET /product/export
// ------------------------------------------------------------

func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// 書き込み途中の失敗で壊れたファイルを返さないよう一度バッファする
	var buf bytes.Buffer
	if err := excel.WriteProducts(&buf, items); err != nil {
		writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("products-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", excel.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[product] export write failed: %v", err)
	}
}

// ------------------------------------------------------------
// POST /product, PUT /product/{id}, DELETE /product/{id}
// ------------------------------------------------------------

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in productdom.Input
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
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in productdom.Input
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
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Product deleted successfully")
}

// ------------------------------------------------------------
// query → Filter
// ------------------------------------------------------------

func filterFromQuery(r *http.Request) (productdom.Filter, error) {
	q := r.URL.Query()
	f := productdom.Filter{
		Query:       strings.TrimSpace(q.Get("query")),
		Category:    strings.TrimSpace(q.Get("category")),
		CategoryID:  strings.TrimSpace(q.Get("categoryId")),
		Type:        typeParam(q.Get("type")),
		InStock:     parseBoolPtr(q.Get("inStock")),
		InHighlight: parseBoolPtr(q.Get("inHighlight")),
	}

	// 未知のサイズは落とさずそのまま渡す（一致しないだけ）
	for _, s := range splitCSV(q.Get("sizes")) {
		f.Sizes = append(f.Sizes, pricing.SizeCode(strings.ToUpper(s)))
	}

	var err error
	if f.Min, err = parseDecimalPtr("min", q.Get("min")); err != nil {
		return f, err
	}
	if f.Max, err = parseDecimalPtr("max", q.Get("max")); err != nil {
		return f, err
	}
	return f, nil
}

func typeParam(s string) productdom.Type {
	return productdom.Type(strings.ToLower(strings.TrimSpace(s)))
}
