// internal/domain/product/repository_port.go
package product

import (
	"context"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// Repository は商品ストアのポート。
// Update は全置換、Delete は存在しない ID でもエラーにしない。
type Repository interface {
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, f Filter, page common.Page) (common.PageResult[Product], error)
	ListAll(ctx context.Context, f Filter) ([]Product, error)
	Count(ctx context.Context, f Filter) (int, error)
	DistinctCategories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error

	// RenameCategory は非正規化済みのカテゴリ名を書き換え、更新件数を返す。
	RenameCategory(ctx context.Context, categoryID, name string) (int, error)
}
