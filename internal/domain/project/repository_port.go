// internal/domain/project/repository_port.go
package project

import (
	"context"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context, page common.Page) (common.PageResult[Project], error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	Delete(ctx context.Context, id string) error
}
