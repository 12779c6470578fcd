// internal/domain/category/repository_port.go
package category

import (
	"context"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Category, error)
	List(ctx context.Context, f Filter, page common.Page) (common.PageResult[Category], error)
	ListAll(ctx context.Context, f Filter) ([]Category, error)
	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, c Category) (Category, error)
	Delete(ctx context.Context, id string) error
}
