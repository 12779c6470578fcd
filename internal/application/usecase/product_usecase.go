// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// RelatedLimit は商品詳細に添える同カテゴリ商品の上限
const RelatedLimit = 8

// ProductDetail は GET /product/:id のレスポンス
type ProductDetail struct {
	Product productdom.Product   `json:"product"`
	Related []productdom.Product `json:"related"`
}

type ProductUsecase struct {
	productRepo  productdom.Repository
	categoryRepo catdom.Repository
	now          func() time.Time
}

func NewProductUsecase(productRepo productdom.Repository, categoryRepo catdom.Repository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// ==============================
// Queries (public)
// ==============================

// Search は公開一覧・フィルタ共通。productLink は除去して返す。
func (u *ProductUsecase) Search(
	ctx context.Context,
	f productdom.Filter,
	page common.Page,
) (common.PageResult[productdom.Product], error) {
	if err := f.Validate(); err != nil {
		return common.PageResult[productdom.Product]{}, err
	}
	res, err := u.productRepo.List(ctx, f, page.Normalize())
	if err != nil {
		return common.PageResult[productdom.Product]{}, err
	}
	for i := range res.Items {
		res.Items[i] = res.Items[i].Public()
	}
	return res, nil
}

// FilterValues はカテゴリ名の重複なし一覧
func (u *ProductUsecase) FilterValues(ctx context.Context) ([]string, error) {
	return u.productRepo.DistinctCategories(ctx)
}

// GetPublic は公開詳細（同カテゴリの関連商品付き）
func (u *ProductUsecase) GetPublic(ctx context.Context, id string) (ProductDetail, error) {
	p, err := u.productRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return ProductDetail{}, err
	}

	f := productdom.Filter{ExcludeID: p.ID}
	if p.CategoryID != "" {
		f.CategoryID = p.CategoryID
	} else {
		f.Category = p.Category
	}
	res, err := u.productRepo.List(ctx, f, common.Page{Number: 1, PerPage: RelatedLimit})
	if err != nil {
		return ProductDetail{}, err
	}

	related := make([]productdom.Product, 0, len(res.Items))
	for _, r := range res.Items {
		related = append(related, r.Public())
	}
	return ProductDetail{Product: p.Public(), Related: related}, nil
}

// ==============================
// Queries (admin)
// ==============================

// GetAdmin は productLink を含む完全なドキュメント
func (u *ProductUsecase) GetAdmin(ctx context.Context, id string) (productdom.Product, error) {
	return u.productRepo.GetByID(ctx, strings.TrimSpace(id))
}

// ListAll はエクスポート用の全件（一覧と同じ並び順）
func (u *ProductUsecase) ListAll(ctx context.Context) ([]productdom.Product, error) {
	items, err := u.productRepo.ListAll(ctx, productdom.Filter{})
	if err != nil {
		return nil, err
	}
	productdom.SortForListing(items)
	return items, nil
}

// ==============================
// Commands
// ==============================

func (u *ProductUsecase) Create(ctx context.Context, in productdom.Input) (productdom.Product, error) {
	in, err := u.prepare(ctx, in)
	if err != nil {
		return productdom.Product{}, err
	}

	now := u.now().UTC()
	p := productdom.Product{CreatedAt: now, UpdatedAt: now}
	if err := p.Apply(in); err != nil {
		return productdom.Product{}, err
	}
	return u.productRepo.Create(ctx, p)
}

// Update は編集可能フィールド一式で置き換える（部分更新なし）。
func (u *ProductUsecase) Update(ctx context.Context, id string, in productdom.Input) (productdom.Product, error) {
	current, err := u.productRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return productdom.Product{}, err
	}
	in, err = u.prepare(ctx, in)
	if err != nil {
		return productdom.Product{}, err
	}
	if err := current.Apply(in); err != nil {
		return productdom.Product{}, err
	}
	current.UpdatedAt = u.now().UTC()
	return u.productRepo.Update(ctx, current)
}

// Delete は冪等（存在しない ID でも成功）
func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	return u.productRepo.Delete(ctx, strings.TrimSpace(id))
}

// prepare は正規化・検証し、カテゴリ参照を ID と表示名の両方に解決する。
func (u *ProductUsecase) prepare(ctx context.Context, in productdom.Input) (productdom.Input, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return in, err
	}
	cat, err := u.resolveCategory(ctx, in)
	if err != nil {
		return in, err
	}
	in.CategoryID = cat.ID
	in.Category = cat.Name
	return in, nil
}

func (u *ProductUsecase) resolveCategory(ctx context.Context, in productdom.Input) (catdom.Category, error) {
	if in.CategoryID != "" {
		c, err := u.categoryRepo.GetByID(ctx, in.CategoryID)
		if errors.Is(err, common.ErrNotFound) {
			return catdom.Category{}, productdom.ErrUnknownCategory
		}
		return c, err
	}

	// 名前指定: 同じ type のカテゴリを優先
	cands, err := u.categoryRepo.ListAll(ctx, catdom.Filter{Name: in.Category})
	if err != nil {
		return catdom.Category{}, err
	}
	if len(cands) == 0 {
		return catdom.Category{}, productdom.ErrUnknownCategory
	}
	for _, c := range cands {
		if string(c.Type) == string(in.Type) {
			return c, nil
		}
	}
	return cands[0], nil
}
