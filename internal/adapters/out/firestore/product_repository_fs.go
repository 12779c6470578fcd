// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	"github.com/MTalha250/Varzan/internal/domain/common"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// ========================================
// Firestore Repository Implementation
// ========================================

type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

// Ensure interface implementation
var _ productdom.Repository = (*ProductRepositoryFS)(nil)

// ========================================
// Read
// ========================================

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrInvalidID
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return docToProduct(snap)
}

// List は完全一致条件を Firestore に渡す。部分一致や価格範囲があれば、その判定と並び替えはメモリで行う。
// 完全一致だけの一覧（トップ・カテゴリ別・種別別）は並び替えと offset/limit も Firestore に渡す。
func (r *ProductRepositoryFS) List(ctx context.Context, f productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	if err := f.Validate(); err != nil {
		return common.PageResult[productdom.Product]{}, err
	}
	if f.Exact() {
		res, err := r.listExact(ctx, f, page)
		if status.Code(err) != codes.FailedPrecondition {
			return res, err
		}
		// 複合インデックス未作成。作成されるまでは全件読みで返す
		log.Printf("[firestore] products: composite index missing, scanning: %v", err)
	}
	all, err := readAll(ctx, r.query(f), docToProduct)
	if err != nil {
		return common.PageResult[productdom.Product]{}, err
	}
	return productdom.Select(all, f, page)
}

// listExact は SortForListing と同じ順（inStock 降順, createdAt 降順, ID 昇順）をクエリで表す。
func (r *ProductRepositoryFS) listExact(ctx context.Context, f productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	page = page.Normalize()
	q := r.query(f)
	total, err := countDocs(ctx, q)
	if err != nil {
		return common.PageResult[productdom.Product]{}, err
	}
	if page.Offset() >= total {
		return common.NewPageResult([]productdom.Product{}, total, page), nil
	}

	if f.InStock == nil {
		q = q.OrderBy("inStock", firestore.Desc)
	}
	q = q.OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Offset(page.Offset()).
		Limit(page.PerPage)
	items, err := readAll(ctx, q, docToProduct)
	if err != nil {
		return common.PageResult[productdom.Product]{}, err
	}
	return common.NewPageResult(items, total, page), nil
}

func (r *ProductRepositoryFS) ListAll(ctx context.Context, f productdom.Filter) ([]productdom.Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	all, err := readAll(ctx, r.query(f), docToProduct)
	if err != nil {
		return nil, err
	}
	out := make([]productdom.Product, 0, len(all))
	for _, p := range all {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	productdom.SortForListing(out)
	return out, nil
}

func (r *ProductRepositoryFS) Count(ctx context.Context, f productdom.Filter) (int, error) {
	if f.Exact() {
		return countDocs(ctx, r.query(f))
	}
	items, err := r.ListAll(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *ProductRepositoryFS) DistinctCategories(ctx context.Context) ([]string, error) {
	it := r.col().Select("category").Documents(ctx)
	defer it.Stop()

	snaps, err := it.GetAll()
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, s := range snaps {
		v, _ := s.DataAt("category")
		name, _ := v.(string)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// query は等価条件だけを Where に積む（複合インデックス不要の範囲）。
func (r *ProductRepositoryFS) query(f productdom.Filter) firestore.Query {
	q := r.col().Query
	if f.CategoryID != "" {
		q = q.Where("categoryId", "==", f.CategoryID)
	}
	if f.Category != "" {
		q = q.Where("category", "==", f.Category)
	}
	if f.Type != "" {
		q = q.Where("type", "==", string(f.Type))
	}
	if f.InStock != nil {
		q = q.Where("inStock", "==", *f.InStock)
	}
	if f.InHighlight != nil {
		q = q.Where("inHighlight", "==", *f.InHighlight)
	}
	return q
}

// ========================================
// Write
// ========================================

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	ref := newRef(r.col(), p.ID)
	p.ID = ref.ID

	if _, err := ref.Create(ctx, docmodel.FromProduct(p)); err != nil {
		if isAlreadyExists(err) {
			return productdom.Product{}, fmt.Errorf("product %s: %w", p.ID, common.ErrConflict)
		}
		return productdom.Product{}, err
	}
	return p, nil
}

// Update はドキュメント全体を置き換える。
func (r *ProductRepositoryFS) Update(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	ref := r.col().Doc(p.ID)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	stamp(&p.CreatedAt, &p.UpdatedAt)
	if _, err := ref.Set(ctx, docmodel.FromProduct(p)); err != nil {
		return productdom.Product{}, err
	}
	return p, nil
}

// Delete は存在しない ID でもエラーにしない。
func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ErrInvalidID
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// RenameCategory は categoryId 一致の商品の非正規化カテゴリ名を一括更新する。
func (r *ProductRepositoryFS) RenameCategory(ctx context.Context, categoryID, name string) (int, error) {
	it := r.col().Where("categoryId", "==", categoryID).Select().Documents(ctx)
	defer it.Stop()

	snaps, err := it.GetAll()
	if err != nil {
		return 0, err
	}

	updated := 0
	batch := r.Client.Batch()
	pending := 0
	for _, s := range snaps {
		batch.Update(s.Ref, []firestore.Update{{Path: "category", Value: name}})
		pending++
		if pending >= batchLimit {
			if _, err := batch.Commit(ctx); err != nil {
				return updated, err
			}
			updated += pending
			batch = r.Client.Batch()
			pending = 0
		}
	}
	if pending > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return updated, err
		}
		updated += pending
	}
	log.Printf("[firestore] products renamed category=%s count=%d", categoryID, updated)
	return updated, nil
}

// ========================================
// Mapping
// ========================================

func docToProduct(snap *firestore.DocumentSnapshot) (productdom.Product, error) {
	var d docmodel.Product
	if err := snap.DataTo(&d); err != nil {
		return productdom.Product{}, fmt.Errorf("decode product %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}
