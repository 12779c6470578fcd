// internal/domain/contact/repository_port.go
package contact

import (
	"context"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// Repository は新しい順（createdAt desc）で返す。
type Repository interface {
	GetByID(ctx context.Context, id string) (Contact, error)
	List(ctx context.Context, page common.Page) (common.PageResult[Contact], error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, c Contact) (Contact, error)
}
