// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

// ========================================
// Status
// ========================================

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Format はプリントの提供形態。テンプレート商品は空。
type Format string

const (
	FormatDigital Format = "digital"
	FormatFramed  Format = "framed"
)

// ========================================
// Entity
// ========================================

// Item は注文時点の商品スナップショット
type Item struct {
	ProductID string           `json:"productId"`
	Type      string           `json:"type"`
	Name      string           `json:"name"`
	Image     string           `json:"image"`
	Quantity  int              `json:"quantity"`
	Size      pricing.SizeCode `json:"size,omitempty"`
	Format    Format           `json:"format,omitempty"`
	Price     decimal.Decimal  `json:"price"`
}

// LineTotal は Price * Quantity
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a ShippingAddress) normalize() ShippingAddress {
	a.Address = strings.TrimSpace(a.Address)
	a.City = strings.TrimSpace(a.City)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	return a
}

// Order は total = subTotal + delivery を常に満たす。
type Order struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Whatsapp        string          `json:"whatsapp"`
	Items           []Item          `json:"order"`
	Status          Status          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	Delivery        decimal.Decimal `json:"delivery"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

var (
	ErrNotFound      = fmt.Errorf("order: %w", common.ErrNotFound)
	ErrInvalidStatus = fmt.Errorf("order: %w: unknown status", common.ErrValidation)
	ErrEmptyOrder    = fmt.Errorf("order: %w: order must contain at least one item", common.ErrValidation)
	ErrQuantity      = fmt.Errorf("order: %w: quantity must be at least 1", common.ErrValidation)

	// チェックアウト時の商品解決
	ErrUnknownProduct     = fmt.Errorf("order: %w: product does not exist", common.ErrValidation)
	ErrOutOfStock         = fmt.Errorf("order: %w: product is out of stock", common.ErrValidation)
	ErrInvalidFormat      = fmt.Errorf("order: %w: format must be digital or framed", common.ErrValidation)
	ErrFormatUnavailable  = fmt.Errorf("order: %w: format not offered for this product", common.ErrValidation)
	ErrSizeUnavailable    = fmt.Errorf("order: %w: size not offered for this product", common.ErrValidation)
	ErrFrameNotConfigured = fmt.Errorf("order: %w: frame price not configured for size", common.ErrInvalidArgument)
)

// Totals は items と配送料から subTotal / total を再計算する。
func (o *Order) Totals(delivery decimal.Decimal) {
	sub := decimal.Zero
	for _, it := range o.Items {
		sub = sub.Add(it.LineTotal())
	}
	o.SubTotal = pricing.RoundCents(sub)
	o.Delivery = pricing.RoundCents(delivery)
	o.Total = o.SubTotal.Add(o.Delivery)
}

// HasFramed は額装プリントを含むか（配送料の要否）
func (o Order) HasFramed() bool {
	for _, it := range o.Items {
		if it.Format == FormatFramed {
			return true
		}
	}
	return false
}

// ========================================
// Inputs
// ========================================

// ItemRequest はチェックアウト時のカート行。価格はサーバ側で決定する。
type ItemRequest struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Size      pricing.SizeCode `json:"size"`
	Format    Format           `json:"format"`
}

// CheckoutInput は POST /order のボディ
type CheckoutInput struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Whatsapp        string          `json:"whatsapp"`
	Items           []ItemRequest   `json:"order"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

func (in CheckoutInput) Normalize() CheckoutInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Whatsapp = strings.TrimSpace(in.Whatsapp)
	in.ShippingAddress = in.ShippingAddress.normalize()
	items := make([]ItemRequest, 0, len(in.Items))
	for _, it := range in.Items {
		it.ProductID = strings.TrimSpace(it.ProductID)
		it.Format = Format(strings.ToLower(strings.TrimSpace(string(it.Format))))
		if c, err := pricing.ParseSizeCode(string(it.Size)); err == nil {
			it.Size = c
		}
		items = append(items, it)
	}
	in.Items = items
	return in
}

func (in CheckoutInput) Validate() error {
	switch {
	case in.Name == "":
		return common.Required("order", "name")
	case in.Email == "":
		return common.Required("order", "email")
	case in.Whatsapp == "":
		return common.Required("order", "whatsapp")
	case len(in.Items) == 0:
		return ErrEmptyOrder
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			return common.Required("order", fmt.Sprintf("order[%d].productId", i))
		}
		if it.Quantity < 1 {
			return ErrQuantity
		}
	}
	return nil
}

// UpdateInput は PUT /order/:id の編集可能フィールド一式（明細と金額は不変）
type UpdateInput struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Whatsapp        string          `json:"whatsapp"`
	Status          Status          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

func (in UpdateInput) Normalize() UpdateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Whatsapp = strings.TrimSpace(in.Whatsapp)
	in.Status = Status(strings.ToLower(strings.TrimSpace(string(in.Status))))
	in.ShippingAddress = in.ShippingAddress.normalize()
	return in
}

func (in UpdateInput) Validate() error {
	switch {
	case in.Name == "":
		return common.Required("order", "name")
	case in.Email == "":
		return common.Required("order", "email")
	case in.Status == "":
		return common.Required("order", "status")
	case !in.Status.Valid():
		return ErrInvalidStatus
	}
	return nil
}

// Apply は UpdateInput を反映する。ステータス遷移は任意（any → any）。
func (o *Order) Apply(in UpdateInput) {
	o.Name = in.Name
	o.Email = in.Email
	o.Whatsapp = in.Whatsapp
	o.Status = in.Status
	o.ShippingAddress = in.ShippingAddress
}

// ========================================
// Filter
// ========================================

// Filter は管理画面の注文一覧条件
type Filter struct {
	Status Status
	// Search は id / name / email / whatsapp の部分一致
	Search string
	Range  common.TimeRange
}

func (f Filter) Matches(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if !f.Range.Contains(o.CreatedAt) {
		return false
	}
	return common.ContainsFold(f.Search, o.ID, o.Name, o.Email, o.Whatsapp)
}
