// internal/adapters/out/mongo/product_repository_mongo.go
package mongo

import (
	"context"
	"log"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	"github.com/MTalha250/Varzan/internal/domain/common"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

type ProductRepositoryMongo struct {
	DB *mongo.Database
}

func NewProductRepositoryMongo(db *mongo.Database) *ProductRepositoryMongo {
	return &ProductRepositoryMongo{DB: db}
}

func (r *ProductRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("products")
}

var _ productdom.Repository = (*ProductRepositoryMongo)(nil)

func (r *ProductRepositoryMongo) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	if strings.TrimSpace(id) == "" {
		return productdom.Product{}, productdom.ErrInvalidID
	}
	return findByID(ctx, r.col(), id, productdom.ErrNotFound, docmodel.Product.ToDomain)
}

func (r *ProductRepositoryMongo) List(ctx context.Context, f productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	if err := f.Validate(); err != nil {
		return common.PageResult[productdom.Product]{}, err
	}
	return findPage(ctx, r.col(), CompileProductFilter(f), productSort, page, docmodel.Product.ToDomain)
}

func (r *ProductRepositoryMongo) ListAll(ctx context.Context, f productdom.Filter) ([]productdom.Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return findAll(ctx, r.col(), CompileProductFilter(f), productSort, docmodel.Product.ToDomain)
}

func (r *ProductRepositoryMongo) Count(ctx context.Context, f productdom.Filter) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	n, err := r.col().CountDocuments(ctx, CompileProductFilter(f))
	return int(n), err
}

func (r *ProductRepositoryMongo) DistinctCategories(ctx context.Context) ([]string, error) {
	vals, err := r.col().Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepositoryMongo) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	p.ID = newID(p.ID)
	if err := insert(ctx, r.col(), "product", p.ID, docmodel.FromProduct(p)); err != nil {
		return productdom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryMongo) Update(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	if err := replace(ctx, r.col(), "product", p.ID, docmodel.FromProduct(p), productdom.ErrNotFound); err != nil {
		return productdom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryMongo) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return productdom.ErrInvalidID
	}
	return deleteByID(ctx, r.col(), id)
}

func (r *ProductRepositoryMongo) RenameCategory(ctx context.Context, categoryID, name string) (int, error) {
	res, err := r.col().UpdateMany(ctx,
		bson.M{"categoryId": categoryID},
		bson.M{"$set": bson.M{"category": name}},
	)
	if err != nil {
		return 0, err
	}
	log.Printf("[mongo] products renamed category=%s count=%d", categoryID, res.MatchedCount)
	return int(res.MatchedCount), nil
}
