// internal/domain/order/repository_port.go
package order

import (
	"context"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// Repository は createdAt desc で返す。
type Repository interface {
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, f Filter, page common.Page) (common.PageResult[Order], error)
	Count(ctx context.Context, f Filter) (int, error)

	Create(ctx context.Context, o Order) (Order, error)
	Update(ctx context.Context, o Order) (Order, error)
	Delete(ctx context.Context, id string) error
}
