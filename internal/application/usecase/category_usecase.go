// internal/application/usecase/category_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
)

// CategoryRenamer は商品側の非正規化カテゴリ名を書き換えるアウトバウンドポート。
// productdom.Repository がこれを満たす。
type CategoryRenamer interface {
	RenameCategory(ctx context.Context, categoryID, name string) (int, error)
}

type CategoryUsecase struct {
	categoryRepo catdom.Repository
	renamer      CategoryRenamer
	now          func() time.Time
}

func NewCategoryUsecase(categoryRepo catdom.Repository, renamer CategoryRenamer) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		renamer:      renamer,
		now:          time.Now,
	}
}

// ==============================
// Queries
// ==============================

func (u *CategoryUsecase) List(ctx context.Context, f catdom.Filter, page common.Page) (common.PageResult[catdom.Category], error) {
	return u.categoryRepo.List(ctx, f, page.Normalize())
}

func (u *CategoryUsecase) GetByID(ctx context.Context, id string) (catdom.Category, error) {
	return u.categoryRepo.GetByID(ctx, strings.TrimSpace(id))
}

// ==============================
// Commands
// ==============================

func (u *CategoryUsecase) Create(ctx context.Context, in catdom.Input) (catdom.Category, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return catdom.Category{}, err
	}
	if err := u.ensureUnique(ctx, "", in); err != nil {
		return catdom.Category{}, err
	}

	now := u.now().UTC()
	return u.categoryRepo.Create(ctx, catdom.Category{
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update は名前変更時に商品側の表示名も書き換える（失敗してもカテゴリ更新は成功扱い）。
func (u *CategoryUsecase) Update(ctx context.Context, id string, in catdom.Input) (catdom.Category, error) {
	current, err := u.categoryRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return catdom.Category{}, err
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return catdom.Category{}, err
	}
	if err := u.ensureUnique(ctx, current.ID, in); err != nil {
		return catdom.Category{}, err
	}

	renamed := current.Name != in.Name
	current.Name = in.Name
	current.Type = in.Type
	current.UpdatedAt = u.now().UTC()

	updated, err := u.categoryRepo.Update(ctx, current)
	if err != nil {
		return catdom.Category{}, err
	}

	if renamed && u.renamer != nil {
		n, err := u.renamer.RenameCategory(ctx, updated.ID, updated.Name)
		if err != nil {
			log.Printf("[category] rename propagation failed id=%s: %v", updated.ID, err)
		} else {
			log.Printf("[category] renamed id=%s -> %q (%d products)", updated.ID, updated.Name, n)
		}
	}
	return updated, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id string) error {
	return u.categoryRepo.Delete(ctx, strings.TrimSpace(id))
}

// ensureUnique は (name, type) の重複を検出する。selfID は更新対象自身。
func (u *CategoryUsecase) ensureUnique(ctx context.Context, selfID string, in catdom.Input) error {
	existing, err := u.categoryRepo.ListAll(ctx, catdom.Filter{Name: in.Name, Type: in.Type})
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.ID != selfID && c.SameKey(in.Name, in.Type) {
			return catdom.ErrConflict
		}
	}
	return nil
}
