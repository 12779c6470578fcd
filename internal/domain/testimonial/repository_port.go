// internal/domain/testimonial/repository_port.go
package testimonial

import (
	"context"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Testimonial, error)
	List(ctx context.Context, page common.Page) (common.PageResult[Testimonial], error)
	ListAll(ctx context.Context) ([]Testimonial, error)
	Create(ctx context.Context, t Testimonial) (Testimonial, error)
	Update(ctx context.Context, t Testimonial) (Testimonial, error)
	Delete(ctx context.Context, id string) error
}
