// internal/adapters/out/mongo/indexes_mongo.go
package mongo

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes は起動時に一意制約と一覧用インデックスを作成する（冪等）。
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		"categories": {
			{
				Keys:    bson.D{{Key: "nameKey", Value: 1}, {Key: "type", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_name_type"),
			},
		},
		"admins": {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_username"),
			},
		},
		"products": {
			{Keys: bson.D{{Key: "categoryId", Value: 1}}},
			{Keys: bson.D{{Key: "inStock", Value: -1}, {Key: "createdAt", Value: -1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"payments": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for col, models := range specs {
		names, err := db.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("mongo: create indexes on %s: %w", col, err)
		}
		log.Printf("[mongo] indexes ensured collection=%s names=%v", col, names)
	}
	return nil
}
