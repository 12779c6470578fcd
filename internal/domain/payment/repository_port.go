// internal/domain/payment/repository_port.go
package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
)

// Repository は createdAt desc で返す。
type Repository interface {
	GetByID(ctx context.Context, id string) (Payment, error)
	List(ctx context.Context, f Filter, page common.Page) (common.PageResult[Payment], error)

	// Create は ID 重複時に ErrConflict
	Create(ctx context.Context, p Payment) (Payment, error)
	// UpdateStatus は status / customer / metadata のみ更新する（amount は触らない）。
	// 現在の状態が終端で status が異なる場合は何も書かず、現在値と ErrStatusFinal を返す。
	UpdateStatus(ctx context.Context, id string, status Status, customerID string, metadata map[string]string) (Payment, error)
	// MarkEmailSent は emailSent が false のときだけ true にする。既に true なら ErrEmailAlreadySent
	MarkEmailSent(ctx context.Context, id string, at time.Time) error

	// 集計（ダッシュボード）
	CountByStatus(ctx context.Context) (StatusCounts, error)
	SucceededRevenue(ctx context.Context) (decimal.Decimal, error)
	MonthlyRevenue(ctx context.Context, from time.Time) ([]dashboard.MonthlyBucket, error)
}
