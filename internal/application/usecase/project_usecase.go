// internal/application/usecase/project_usecase.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
	projectdom "github.com/MTalha250/Varzan/internal/domain/project"
)

type ProjectUsecase struct {
	repo projectdom.Repository
	now  func() time.Time
}

func NewProjectUsecase(repo projectdom.Repository) *ProjectUsecase {
	return &ProjectUsecase{repo: repo, now: time.Now}
}

func (u *ProjectUsecase) List(ctx context.Context, page common.Page) (common.PageResult[projectdom.Project], error) {
	return u.repo.List(ctx, page.Normalize())
}

func (u *ProjectUsecase) GetByID(ctx context.Context, id string) (projectdom.Project, error) {
	return u.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (u *ProjectUsecase) Create(ctx context.Context, in projectdom.Input) (projectdom.Project, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return projectdom.Project{}, err
	}
	now := u.now().UTC()
	p := projectdom.Project{CreatedAt: now, UpdatedAt: now}
	p.Apply(in)
	return u.repo.Create(ctx, p)
}

func (u *ProjectUsecase) Update(ctx context.Context, id string, in projectdom.Input) (projectdom.Project, error) {
	current, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return projectdom.Project{}, err
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return projectdom.Project{}, err
	}
	current.Apply(in)
	current.UpdatedAt = u.now().UTC()
	return u.repo.Update(ctx, current)
}

func (u *ProjectUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, strings.TrimSpace(id))
}
