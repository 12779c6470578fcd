// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	"github.com/MTalha250/Varzan/internal/domain/common"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
)

type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

var _ orderdom.Repository = (*OrderRepositoryFS)(nil)

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if strings.TrimSpace(id) == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return docToOrder(snap)
}

func (r *OrderRepositoryFS) List(ctx context.Context, f orderdom.Filter, page common.Page) (common.PageResult[orderdom.Order], error) {
	items, err := r.matching(ctx, f)
	if err != nil {
		return common.PageResult[orderdom.Order]{}, err
	}
	return common.Paginate(items, page), nil
}

func (r *OrderRepositoryFS) Count(ctx context.Context, f orderdom.Filter) (int, error) {
	if f.Search == "" && f.Range.From == nil && f.Range.To == nil {
		return countDocs(ctx, r.query(f))
	}
	items, err := r.matching(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// matching は status のみ Where に渡し、検索語と期間はメモリで絞る（createdAt 降順）。
func (r *OrderRepositoryFS) matching(ctx context.Context, f orderdom.Filter) ([]orderdom.Order, error) {
	all, err := readAll(ctx, r.query(f), docToOrder)
	if err != nil {
		return nil, err
	}
	out := make([]orderdom.Order, 0, len(all))
	for _, o := range all {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *OrderRepositoryFS) query(f orderdom.Filter) firestore.Query {
	q := r.col().Query
	if f.Status != "" {
		q = q.Where("status", "==", string(f.Status))
	}
	return q
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	stamp(&o.CreatedAt, &o.UpdatedAt)
	ref := newRef(r.col(), o.ID)
	o.ID = ref.ID
	if _, err := ref.Create(ctx, docmodel.FromOrder(o)); err != nil {
		if isAlreadyExists(err) {
			return orderdom.Order{}, fmt.Errorf("order %s: %w", o.ID, common.ErrConflict)
		}
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryFS) Update(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	ref := r.col().Doc(o.ID)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	stamp(&o.CreatedAt, &o.UpdatedAt)
	if _, err := ref.Set(ctx, docmodel.FromOrder(o)); err != nil {
		return orderdom.Order{}, err
	}
	return o, nil
}

func (r *OrderRepositoryFS) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func docToOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	var d docmodel.Order
	if err := snap.DataTo(&d); err != nil {
		return orderdom.Order{}, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}
