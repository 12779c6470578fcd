// internal/domain/product/filter.go
package product

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

// ErrInvalidRange は min > max の価格範囲
var ErrInvalidRange = fmt.Errorf("product: %w: min must not exceed max", common.ErrInvalidArgument)

// Filter は商品一覧・検索条件。
// ストア非依存の値で、Firestore アダプタは Matches でメモリ評価し、
// Mongo アダプタは bson に変換する。
type Filter struct {
	// Query は name / description / category / type への大文字小文字無視の部分一致（OR）
	Query string

	// Category / CategoryID / Type は完全一致（AND）
	Category   string
	CategoryID string
	Type       Type

	// Sizes はいずれかを含む商品に一致
	Sizes []pricing.SizeCode

	// Min / Max は割引後価格の閉区間。nil は無制限
	Min *decimal.Decimal
	Max *decimal.Decimal

	InHighlight *bool
	InStock     *bool

	// ExcludeID は関連商品取得用
	ExcludeID string
}

// Validate は価格範囲の整合性を確認する。
func (f Filter) Validate() error {
	if f.Min != nil && f.Max != nil && f.Min.GreaterThan(*f.Max) {
		return ErrInvalidRange
	}
	return nil
}

// Exact は条件が完全一致だけで、ストアのクエリでそのまま絞り込めるか。
// 部分一致・価格範囲・サイズ・除外 ID があればメモリ上の判定が要る。
func (f Filter) Exact() bool {
	return f.Query == "" && f.Min == nil && f.Max == nil && len(f.Sizes) == 0 && f.ExcludeID == ""
}

// Matches は p が条件をすべて満たすか。
func (f Filter) Matches(p Product) bool {
	if f.ExcludeID != "" && p.ID == f.ExcludeID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.InHighlight != nil && p.InHighlight != *f.InHighlight {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if len(f.Sizes) > 0 && !intersects(p.Sizes, f.Sizes) {
		return false
	}
	if f.Min != nil && p.FinalPrice.LessThan(*f.Min) {
		return false
	}
	if f.Max != nil && p.FinalPrice.GreaterThan(*f.Max) {
		return false
	}
	return common.ContainsFold(f.Query, p.Name, p.Description, p.Category, string(p.Type))
}

func intersects(have, want []pricing.SizeCode) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// SortForListing は (inStock desc, createdAt desc) で並べ替える。ID は安定化用。
func SortForListing(items []Product) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.InStock != b.InStock {
			return a.InStock
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Select は全件から条件一致分を抽出・整列・ページ切り出しする。
func Select(all []Product, f Filter, page common.Page) (common.PageResult[Product], error) {
	if err := f.Validate(); err != nil {
		return common.PageResult[Product]{}, err
	}
	matched := make([]Product, 0, len(all))
	for _, p := range all {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	SortForListing(matched)
	return common.Paginate(matched, page), nil
}
