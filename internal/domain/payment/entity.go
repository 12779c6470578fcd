// internal/domain/payment/entity.go
package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// ========================================
// Status
// ========================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// Final は PaymentIntent がそれ以上遷移しない状態か（succeeded / canceled）。
// failed は再試行で pending や succeeded に進むので終端ではない。
func (s Status) Final() bool {
	return s == StatusSucceeded || s == StatusCanceled
}

// Accepts は現在の状態 s に to を上書きしてよいか。
// 終端状態は同じ状態の再配送だけを受け付ける（順不同の webhook で巻き戻さない）。
func (s Status) Accepts(to Status) bool {
	return !s.Final() || s == to
}

// FinalStatuses はストアの条件付き更新で使う終端状態の一覧
func FinalStatuses() []Status {
	return []Status{StatusSucceeded, StatusCanceled}
}

// ========================================
// Entity
// ========================================

// Product は決済時点の購入商品スナップショット
type Product struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size,omitempty"`
	Format      string          `json:"format,omitempty"`
	ProductLink string          `json:"productLink,omitempty"`
}

// Payment は Stripe PaymentIntent に対応する決済記録。
// ID は PaymentIntent ID と同一（webhook の冪等キー）。
// Amount は作成後不変、EmailSent は false → true の一度だけ遷移する。
type Payment struct {
	ID                    string            `json:"_id"`
	CustomerEmail         string            `json:"customerEmail"`
	CustomerName          string            `json:"customerName"`
	StripePaymentIntentID string            `json:"stripePaymentIntentId"`
	StripeCustomerID      string            `json:"stripeCustomerId,omitempty"`
	Amount                decimal.Decimal   `json:"amount"`
	Currency              string            `json:"currency"`
	Status                Status            `json:"status"`
	Products              []Product         `json:"products"`
	Metadata              map[string]string `json:"metadata,omitempty"`
	EmailSent             bool              `json:"emailSent"`
	EmailSentAt           *time.Time        `json:"emailSentAt,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

var (
	ErrNotFound         = fmt.Errorf("payment: %w", common.ErrNotFound)
	ErrConflict         = fmt.Errorf("payment: %w: already exists", common.ErrConflict)
	ErrEmailAlreadySent = fmt.Errorf("payment: %w: confirmation email already sent", common.ErrConflict)
	ErrInvalidStatus    = fmt.Errorf("payment: %w: unknown status", common.ErrValidation)
	ErrStatusFinal      = fmt.Errorf("payment: %w: status is already final", common.ErrConflict)
)

// ========================================
// Filter
// ========================================

type Filter struct {
	Status Status
	// Search は id / intent id / email / name の部分一致
	Search string
	Range  common.TimeRange
}

func (f Filter) Matches(p Payment) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if !f.Range.Contains(p.CreatedAt) {
		return false
	}
	return common.ContainsFold(f.Search, p.ID, p.StripePaymentIntentID, p.CustomerEmail, p.CustomerName)
}

// StatusCounts はステータス別件数。Failed には canceled を含める。
type StatusCounts struct {
	Total     int
	Succeeded int
	Pending   int
	Failed    int
}

func (c *StatusCounts) Add(s Status) {
	c.AddN(s, 1)
}

// AddN は集計済みの件数 n をまとめて加算する。
func (c *StatusCounts) AddN(s Status, n int) {
	c.Total += n
	switch s {
	case StatusSucceeded:
		c.Succeeded += n
	case StatusPending:
		c.Pending += n
	case StatusFailed, StatusCanceled:
		c.Failed += n
	}
}
