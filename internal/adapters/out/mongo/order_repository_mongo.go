// internal/adapters/out/mongo/order_repository_mongo.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	"github.com/MTalha250/Varzan/internal/domain/common"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
)

type OrderRepositoryMongo struct {
	DB *mongo.Database
}

func NewOrderRepositoryMongo(db *mongo.Database) *OrderRepositoryMongo {
	return &OrderRepositoryMongo{DB: db}
}

func (r *OrderRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("orders")
}

var _ orderdom.Repository = (*OrderRepositoryMongo)(nil)

func (r *OrderRepositoryMongo) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	return findByID(ctx, r.col(), id, orderdom.ErrNotFound, docmodel.Order.ToDomain)
}

func (r *OrderRepositoryMongo) List(ctx context.Context, f orderdom.Filter, page common.Page) (common.PageResult[orderdom.Order], error) {
	return findPage(ctx, r.col(), CompileOrderFilter(f), createdDesc, page, docmodel.Order.ToDomain)
}

func (r *OrderRepositoryMongo) Count(ctx context.Context, f orderdom.Filter) (int, error) {
	n, err := r.col().CountDocuments(ctx, CompileOrderFilter(f))
	return int(n), err
}

func (r *OrderRepositoryMongo) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	stamp(&o.CreatedAt, &o.UpdatedAt)
	o.ID = newID(o.ID)
	if err := insert(ctx, r.col(), "order", o.ID, docmodel.FromOrder(o)); err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryMongo) Update(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	stamp(&o.CreatedAt, &o.UpdatedAt)
	if err := replace(ctx, r.col(), "order", o.ID, docmodel.FromOrder(o), orderdom.ErrNotFound); err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col(), id)
}
