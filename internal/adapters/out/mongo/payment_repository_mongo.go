// internal/adapters/out/mongo/payment_repository_mongo.go
package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

// PaymentRepositoryMongo の _id は Stripe の PaymentIntent ID。
type PaymentRepositoryMongo struct {
	DB *mongo.Database
}

func NewPaymentRepositoryMongo(db *mongo.Database) *PaymentRepositoryMongo {
	return &PaymentRepositoryMongo{DB: db}
}

func (r *PaymentRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("payments")
}

var _ paymentdom.Repository = (*PaymentRepositoryMongo)(nil)

func (r *PaymentRepositoryMongo) GetByID(ctx context.Context, id string) (paymentdom.Payment, error) {
	return findByID(ctx, r.col(), id, paymentdom.ErrNotFound, docmodel.Payment.ToDomain)
}

func (r *PaymentRepositoryMongo) List(ctx context.Context, f paymentdom.Filter, page common.Page) (common.PageResult[paymentdom.Payment], error) {
	return findPage(ctx, r.col(), CompilePaymentFilter(f), createdDesc, page, docmodel.Payment.ToDomain)
}

func (r *PaymentRepositoryMongo) Create(ctx context.Context, p paymentdom.Payment) (paymentdom.Payment, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	p.ID = newID(p.ID)
	if _, err := r.col().InsertOne(ctx, docmodel.FromPayment(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return paymentdom.Payment{}, paymentdom.ErrConflict
		}
		return paymentdom.Payment{}, err
	}
	return p, nil
}

// UpdateStatus は終端状態でない（または同じ状態への再配送の）ときだけ更新する。
func (r *PaymentRepositoryMongo) UpdateStatus(ctx context.Context, id string, s paymentdom.Status, customerID string, metadata map[string]string) (paymentdom.Payment, error) {
	set := bson.M{
		"status":    string(s),
		"updatedAt": time.Now().UTC(),
	}
	if c := strings.TrimSpace(customerID); c != "" {
		set["stripeCustomerId"] = c
	}
	if metadata != nil {
		set["metadata"] = metadata
	}

	finals := bson.A{}
	for _, f := range paymentdom.FinalStatuses() {
		finals = append(finals, string(f))
	}
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"status": bson.M{"$nin": finals}},
			bson.M{"status": string(s)},
		},
	}

	var d docmodel.Payment
	err := r.col().FindOneAndUpdate(ctx,
		filter,
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// 存在しないのか終端状態で弾かれたのかを引き直して区別する
			cur, gerr := r.GetByID(ctx, id)
			if gerr != nil {
				return paymentdom.Payment{}, gerr
			}
			return cur, paymentdom.ErrStatusFinal
		}
		return paymentdom.Payment{}, err
	}
	return d.ToDomain(), nil
}

// MarkEmailSent は emailSent != true を条件に更新するので同時配送でも 1 回だけ成功する。
func (r *PaymentRepositoryMongo) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id, "emailSent": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"emailSent": true, "emailSentAt": at.UTC(), "updatedAt": at.UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := r.col().CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return paymentdom.ErrNotFound
	}
	return paymentdom.ErrEmailAlreadySent
}

// ========================================
// Aggregations
// ========================================

func (r *PaymentRepositoryMongo) CountByStatus(ctx context.Context) (paymentdom.StatusCounts, error) {
	cur, err := r.col().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return paymentdom.StatusCounts{}, err
	}
	var rows []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return paymentdom.StatusCounts{}, err
	}
	var c paymentdom.StatusCounts
	for _, row := range rows {
		c.AddN(paymentdom.Status(row.Status), row.Count)
	}
	return c, nil
}

func (r *PaymentRepositoryMongo) SucceededRevenue(ctx context.Context) (decimal.Decimal, error) {
	cur, err := r.col().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(paymentdom.StatusSucceeded)}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amountCents"}}}},
	})
	if err != nil {
		return decimal.Zero, err
	}
	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return pricing.FromCents(rows[0].Total), nil
}

// MonthlyRevenue は from 以降の succeeded を (year, month) で集計する。活動のない月は返さない。
func (r *PaymentRepositoryMongo) MonthlyRevenue(ctx context.Context, from time.Time) ([]dashboard.MonthlyBucket, error) {
	cur, err := r.col().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    string(paymentdom.StatusSucceeded),
			"createdAt": bson.M{"$gte": from.UTC()},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"revenue": bson.M{"$sum": "$amountCents"},
			"count":   bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Revenue int64 `bson:"revenue"`
		Count   int   `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]dashboard.MonthlyBucket, 0, len(rows))
	for _, row := range rows {
		out = append(out, dashboard.MonthlyBucket{
			ID:      dashboard.MonthKey{Year: row.ID.Year, Month: row.ID.Month},
			Revenue: pricing.FromCents(row.Revenue),
			Count:   row.Count,
		})
	}
	dashboard.SortBuckets(out)
	return out, nil
}
