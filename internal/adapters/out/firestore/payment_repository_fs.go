// internal/adapters/out/firestore/payment_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

// PaymentRepositoryFS は payments コレクション。ドキュメント ID は Stripe の PaymentIntent ID。
type PaymentRepositoryFS struct {
	Client *firestore.Client
}

func NewPaymentRepositoryFS(client *firestore.Client) *PaymentRepositoryFS {
	return &PaymentRepositoryFS{Client: client}
}

func (r *PaymentRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("payments")
}

var _ paymentdom.Repository = (*PaymentRepositoryFS)(nil)

// ========================================
// Read
// ========================================

func (r *PaymentRepositoryFS) GetByID(ctx context.Context, id string) (paymentdom.Payment, error) {
	if strings.TrimSpace(id) == "" {
		return paymentdom.Payment{}, paymentdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return paymentdom.Payment{}, paymentdom.ErrNotFound
		}
		return paymentdom.Payment{}, err
	}
	return docToPayment(snap)
}

func (r *PaymentRepositoryFS) List(ctx context.Context, f paymentdom.Filter, page common.Page) (common.PageResult[paymentdom.Payment], error) {
	q := r.col().Query
	if f.Status != "" {
		q = q.Where("status", "==", string(f.Status))
	}
	all, err := readAll(ctx, q, docToPayment)
	if err != nil {
		return common.PageResult[paymentdom.Payment]{}, err
	}
	matched := make([]paymentdom.Payment, 0, len(all))
	for _, p := range all {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return common.Paginate(matched, page), nil
}

// ========================================
// Write
// ========================================

func (r *PaymentRepositoryFS) Create(ctx context.Context, p paymentdom.Payment) (paymentdom.Payment, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	ref := newRef(r.col(), p.ID)
	p.ID = ref.ID
	if _, err := ref.Create(ctx, docmodel.FromPayment(p)); err != nil {
		if isAlreadyExists(err) {
			return paymentdom.Payment{}, paymentdom.ErrConflict
		}
		return paymentdom.Payment{}, err
	}
	return p, nil
}

// UpdateStatus は status と（空でなければ）customer / metadata だけを書き換える。
// 終端状態からの遷移はトランザクション内で拒否し、現在値と ErrStatusFinal を返す。
func (r *PaymentRepositoryFS) UpdateStatus(ctx context.Context, id string, s paymentdom.Status, customerID string, metadata map[string]string) (paymentdom.Payment, error) {
	ref := r.col().Doc(id)
	var out paymentdom.Payment

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return paymentdom.ErrNotFound
			}
			return err
		}
		p, err := docToPayment(snap)
		if err != nil {
			return err
		}
		if !p.Status.Accepts(s) {
			out = p
			return paymentdom.ErrStatusFinal
		}

		now := time.Now().UTC()
		updates := []firestore.Update{
			{Path: "status", Value: string(s)},
			{Path: "updatedAt", Value: now},
		}
		p.Status = s
		p.UpdatedAt = now
		if c := strings.TrimSpace(customerID); c != "" {
			updates = append(updates, firestore.Update{Path: "stripeCustomerId", Value: c})
			p.StripeCustomerID = c
		}
		if metadata != nil {
			updates = append(updates, firestore.Update{Path: "metadata", Value: metadata})
			p.Metadata = metadata
		}
		out = p
		return tx.Update(ref, updates)
	})
	if errors.Is(err, paymentdom.ErrStatusFinal) {
		return out, err
	}
	if err != nil {
		return paymentdom.Payment{}, err
	}
	return out, nil
}

// MarkEmailSent は emailSent=false の場合だけ true にする。既に送信済みなら ErrEmailAlreadySent。
func (r *PaymentRepositoryFS) MarkEmailSent(ctx context.Context, id string, at time.Time) error {
	ref := r.col().Doc(id)
	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return paymentdom.ErrNotFound
			}
			return err
		}
		if sent, _ := snap.DataAt("emailSent"); sent == true {
			return paymentdom.ErrEmailAlreadySent
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "emailSent", Value: true},
			{Path: "emailSentAt", Value: at.UTC()},
			{Path: "updatedAt", Value: at.UTC()},
		})
	})
}

// ========================================
// Aggregations
// ========================================

func (r *PaymentRepositoryFS) CountByStatus(ctx context.Context) (paymentdom.StatusCounts, error) {
	it := r.col().Select("status").Documents(ctx)
	defer it.Stop()

	snaps, err := it.GetAll()
	if err != nil {
		return paymentdom.StatusCounts{}, err
	}
	var c paymentdom.StatusCounts
	for _, s := range snaps {
		v, _ := s.DataAt("status")
		st, _ := v.(string)
		c.Add(paymentdom.Status(st))
	}
	return c, nil
}

func (r *PaymentRepositoryFS) SucceededRevenue(ctx context.Context) (decimal.Decimal, error) {
	it := r.col().Where("status", "==", string(paymentdom.StatusSucceeded)).Select("amountCents").Documents(ctx)
	defer it.Stop()

	snaps, err := it.GetAll()
	if err != nil {
		return decimal.Zero, err
	}
	var total int64
	for _, s := range snaps {
		v, _ := s.DataAt("amountCents")
		if n, ok := v.(int64); ok {
			total += n
		}
	}
	return pricing.FromCents(total), nil
}

// MonthlyRevenue は from 以降の作成分を読み、succeeded だけを月別に集計する。
// status と createdAt の複合インデックスを要求しないよう status はメモリで判定する。
func (r *PaymentRepositoryFS) MonthlyRevenue(ctx context.Context, from time.Time) ([]dashboard.MonthlyBucket, error) {
	q := r.col().Where("createdAt", ">=", from.UTC()).Select("status", "amountCents", "createdAt")
	it := q.Documents(ctx)
	defer it.Stop()

	snaps, err := it.GetAll()
	if err != nil {
		return nil, err
	}
	acc := dashboard.NewAccumulator(from)
	for _, s := range snaps {
		var row struct {
			Status      string    `firestore:"status"`
			AmountCents int64     `firestore:"amountCents"`
			CreatedAt   time.Time `firestore:"createdAt"`
		}
		if err := s.DataTo(&row); err != nil {
			return nil, fmt.Errorf("decode payment %s: %w", s.Ref.ID, err)
		}
		if paymentdom.Status(row.Status) != paymentdom.StatusSucceeded {
			continue
		}
		acc.Add(row.CreatedAt, pricing.FromCents(row.AmountCents))
	}
	return acc.Buckets(), nil
}

func docToPayment(snap *firestore.DocumentSnapshot) (paymentdom.Payment, error) {
	var d docmodel.Payment
	if err := snap.DataTo(&d); err != nil {
		return paymentdom.Payment{}, fmt.Errorf("decode payment %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}
