// internal/application/usecase/testimonial_usecase.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
	testimonialdom "github.com/MTalha250/Varzan/internal/domain/testimonial"
)

type TestimonialUsecase struct {
	repo testimonialdom.Repository
	now  func() time.Time
}

func NewTestimonialUsecase(repo testimonialdom.Repository) *TestimonialUsecase {
	return &TestimonialUsecase{repo: repo, now: time.Now}
}

func (u *TestimonialUsecase) List(ctx context.Context, page common.Page) (common.PageResult[testimonialdom.Testimonial], error) {
	return u.repo.List(ctx, page.Normalize())
}

// ListAll はページングなしの全件（トップページのスライダー用）
func (u *TestimonialUsecase) ListAll(ctx context.Context) ([]testimonialdom.Testimonial, error) {
	return u.repo.ListAll(ctx)
}

func (u *TestimonialUsecase) GetByID(ctx context.Context, id string) (testimonialdom.Testimonial, error) {
	return u.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (u *TestimonialUsecase) Create(ctx context.Context, in testimonialdom.Input) (testimonialdom.Testimonial, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return testimonialdom.Testimonial{}, err
	}
	now := u.now().UTC()
	t := testimonialdom.Testimonial{CreatedAt: now, UpdatedAt: now}
	t.Apply(in)
	return u.repo.Create(ctx, t)
}

func (u *TestimonialUsecase) Update(ctx context.Context, id string, in testimonialdom.Input) (testimonialdom.Testimonial, error) {
	current, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return testimonialdom.Testimonial{}, err
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return testimonialdom.Testimonial{}, err
	}
	current.Apply(in)
	current.UpdatedAt = u.now().UTC()
	return u.repo.Update(ctx, current)
}

func (u *TestimonialUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, strings.TrimSpace(id))
}
