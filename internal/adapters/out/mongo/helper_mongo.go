// internal/adapters/out/mongo/helper_mongo.go
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// newID は ID 未指定時の採番（ObjectID の hex。_id は文字列で保存する）
func newID(id string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return primitive.NewObjectID().Hex()
}

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

func findByID[D any, T any](ctx context.Context, col *mongo.Collection, id string, notFound error, conv func(D) T) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, notFound
	}
	var d D
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, notFound
		}
		return zero, err
	}
	return conv(d), nil
}

func findAll[D any, T any](ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D, conv func(D) T) ([]T, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return find(ctx, col, filter, opts, conv)
}

// findPage は CountDocuments と skip/limit でページを取得する。
func findPage[D any, T any](ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D, page common.Page, conv func(D) T) (common.PageResult[T], error) {
	page = page.Normalize()
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return common.PageResult[T]{}, err
	}
	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.PerPage))
	items, err := find(ctx, col, filter, opts, conv)
	if err != nil {
		return common.PageResult[T]{}, err
	}
	return common.NewPageResult(items, int(total), page), nil
}

func find[D any, T any](ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptions, conv func(D) T) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, conv(d))
	}
	return out, nil
}

func insert(ctx context.Context, col *mongo.Collection, entity, id string, doc any) error {
	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s %s: %w", entity, id, common.ErrConflict)
		}
		return err
	}
	return nil
}

// replace はドキュメント全体を置き換える。対象が無ければ notFound。
func replace(ctx context.Context, col *mongo.Collection, entity, id string, doc any, notFound error) error {
	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s %s: %w", entity, id, common.ErrConflict)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// deleteByID は存在しない ID でもエラーにしない。
func deleteByID(ctx context.Context, col *mongo.Collection, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	_, err := col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
