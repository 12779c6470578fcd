// internal/domain/common/repository_common.go
package common

import (
	"errors"
	"math"
	"time"
)

// ========================================
// エラー分類（HTTP 層でステータスに変換される）
// ========================================

var (
	// ErrValidation は必須項目の欠落・形式不正（400）
	ErrValidation = errors.New("validation error")
	// ErrInvalidArgument は値域外の引数（割引率 > 100 など）（400）
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound は ID 検索のミス（404）
	ErrNotFound = errors.New("not found")
	// ErrConflict は一意制約違反（409）
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized はトークン欠落・不正（401）
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden は admin 権限なし（403）
	ErrForbidden = errors.New("forbidden")
)

// Timestamps は作成・更新時刻を共通で保持するための埋め込み用構造体
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeRange は期間フィルタのための共通構造体
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Contains は t が [From, To] に入っているかを返す（nil 側は無制限）
func (r TimeRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// ========================================
// Paging
// ========================================

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// Page はオフセットページング指定
type Page struct {
	Number  int // 1-based
	PerPage int // 0 以下は DefaultPerPage
}

// Normalize はクライアント入力を信用せず、page>=1, 1<=perPage<=MaxPerPage に丸める。
// page の上限は (page-1)*perPage が int に収まる値。
func (p Page) Normalize() Page {
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Number < 1 {
		p.Number = 1
	}
	if maxNumber := math.MaxInt / p.PerPage; p.Number > maxNumber {
		p.Number = maxNumber
	}
	return p
}

// Offset は skip 件数（(page-1)*perPage）
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.PerPage
}

// PageResult はページング結果（ジェネリクスでアイテム型を受け取る）
type PageResult[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PerPage    int
}

// TotalPages は ceil(total/perPage)。total=0 なら 0。
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// NewPageResult は items（既にページ切り出し済み）と総件数から結果を組み立てる。
func NewPageResult[T any](items []T, total int, page Page) PageResult[T] {
	page = page.Normalize()
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:      items,
		TotalCount: total,
		TotalPages: TotalPages(total, page.PerPage),
		Page:       page.Number,
		PerPage:    page.PerPage,
	}
}

// Paginate はメモリ上の全件スライスから 1 ページ分を切り出す。
// Firestore のように部分一致検索をサーバ側で表現できないストア向け。
func Paginate[T any](all []T, page Page) PageResult[T] {
	page = page.Normalize()
	total := len(all)
	start := page.Offset()
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return NewPageResult(items, total, page)
}
