// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// maxJSONBody は JSON ボディの上限
const maxJSONBody = 1 << 20

// ========================================
// Response
// ========================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] encode response failed: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// WriteMessage はルーターの 404 / 405 用に { "message": ... } 封筒を公開する
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	writeMessage(w, status, msg)
}

// writeError はドメインのセンチネルエラーを HTTP ステータスに変換する。
// 500 は元のメッセージをそのまま返す。
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[http] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	writeMessage(w, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// listResponse はページング一覧の共通封筒
type listResponse[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

func newListResponse[T any](res common.PageResult[T]) listResponse[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Items:       items,
		CurrentPage: res.Page,
		TotalPages:  res.TotalPages,
		TotalItems:  res.TotalCount,
	}
}

// ========================================
// Request
// ========================================

// decodeJSON はボディを v に読む。空ボディ・不正 JSON は ErrValidation。
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", common.ErrValidation)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", common.ErrValidation, err)
	}
	return nil
}

// pageOf は ?page=&limit= を読む。不正値は既定値に丸める。
func pageOf(r *http.Request) common.Page {
	q := r.URL.Query()
	return common.Page{
		Number:  parseIntDefault(q.Get("page"), 1),
		PerPage: parseIntDefault(q.Get("limit"), common.DefaultPerPage),
	}.Normalize()
}

func idParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// splitCSV parses "a,b,c" / "a, b, c" into []string (empty trimmed items are removed).
func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseBoolPtr は "true"/"false" 以外（空を含む）を nil とする。
func parseBoolPtr(s string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &b
}

// parseDecimalPtr は空なら nil、数値でなければ ErrInvalidArgument。
func parseDecimalPtr(name, s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", common.ErrInvalidArgument, name)
	}
	return &d, nil
}

// parseDateRange は dateFrom / dateTo を読む。
// RFC3339 か YYYY-MM-DD。日付だけの dateTo はその日の終わりまでを含む。
func parseDateRange(r *http.Request) (common.TimeRange, error) {
	q := r.URL.Query()
	from, err := parseDatePtr("dateFrom", q.Get("dateFrom"), false)
	if err != nil {
		return common.TimeRange{}, err
	}
	to, err := parseDatePtr("dateTo", q.Get("dateTo"), true)
	if err != nil {
		return common.TimeRange{}, err
	}
	return common.TimeRange{From: from, To: to}, nil
}

func parseDatePtr(name, s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		tt := t.UTC()
		return &tt, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339 or YYYY-MM-DD", common.ErrInvalidArgument, name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	tt := t.UTC()
	return &tt, nil
}
