// internal/adapters/out/mongo/admin_repository_mongo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
)

type AdminRepositoryMongo struct {
	DB *mongo.Database
}

func NewAdminRepositoryMongo(db *mongo.Database) *AdminRepositoryMongo {
	return &AdminRepositoryMongo{DB: db}
}

func (r *AdminRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("admins")
}

var _ admindom.Repository = (*AdminRepositoryMongo)(nil)

func (r *AdminRepositoryMongo) GetByID(ctx context.Context, id string) (admindom.Admin, error) {
	return findByID(ctx, r.col(), id, admindom.ErrNotFound, docmodel.Admin.ToDomain)
}

func (r *AdminRepositoryMongo) GetByUsername(ctx context.Context, username string) (admindom.Admin, error) {
	username = admindom.NormalizeUsername(username)
	if username == "" {
		return admindom.Admin{}, admindom.ErrNotFound
	}
	var d docmodel.Admin
	if err := r.col().FindOne(ctx, bson.M{"username": username}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return admindom.Admin{}, admindom.ErrNotFound
		}
		return admindom.Admin{}, err
	}
	return d.ToDomain(), nil
}

func (r *AdminRepositoryMongo) Count(ctx context.Context) (int, error) {
	n, err := r.col().CountDocuments(ctx, bson.M{})
	return int(n), err
}

// Upsert は username をキーに作成または更新する。_id と createdAt は初回のみ設定。
func (r *AdminRepositoryMongo) Upsert(ctx context.Context, a admindom.Admin) (admindom.Admin, error) {
	d := docmodel.FromAdmin(a)
	now := time.Now().UTC()

	var out docmodel.Admin
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"username": d.Username},
		bson.M{
			"$set": bson.M{
				"profileImage": d.ProfileImage,
				"name":         d.Name,
				"passwordHash": d.PasswordHash,
				"updatedAt":    now,
			},
			"$setOnInsert": bson.M{
				"_id":       newID(d.ID),
				"createdAt": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admindom.Admin{}, admindom.ErrConflict
		}
		return admindom.Admin{}, err
	}
	return out.ToDomain(), nil
}
