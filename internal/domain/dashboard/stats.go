// internal/domain/dashboard/stats.go
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/order"
)

// RecentCompletedLimit は completedOrders に載せる件数
const RecentCompletedLimit = 5

// Stats は GET /dashboard のレスポンス
type Stats struct {
	ProductCount            int           `json:"productCount"`
	HighlightedProductCount int           `json:"highlightedProductCount"`
	OrderCount              int           `json:"orderCount"`
	CompletedOrders         []order.Order `json:"completedOrders"`
	ContactCount            int           `json:"contactCount"`
	CategoryCount           int           `json:"categoryCount"`
	AdminCount              int           `json:"adminCount"`

	TotalPayments      int             `json:"totalPayments"`
	SuccessfulPayments int             `json:"successfulPayments"`
	PendingPayments    int             `json:"pendingPayments"`
	FailedPayments     int             `json:"failedPayments"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`

	// MonthlyRevenue は疎な系列（ZeroFill は呼び出し側の責務）
	MonthlyRevenue []MonthlyBucket `json:"monthlyRevenue"`
}
