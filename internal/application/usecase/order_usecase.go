// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

type OrderUsecase struct {
	orderRepo   orderdom.Repository
	productRepo productdom.Repository
	deliveryFee decimal.Decimal
	now         func() time.Time
}

// NewOrderUsecase: deliveryFee は額装プリントを含む注文にだけ加算される。
func NewOrderUsecase(
	orderRepo orderdom.Repository,
	productRepo productdom.Repository,
	deliveryFee decimal.Decimal,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		deliveryFee: deliveryFee,
		now:         time.Now,
	}
}

// ==============================
// Queries
// ==============================

func (u *OrderUsecase) List(ctx context.Context, f orderdom.Filter, page common.Page) (common.PageResult[orderdom.Order], error) {
	return u.orderRepo.List(ctx, f, page.Normalize())
}

func (u *OrderUsecase) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	return u.orderRepo.GetByID(ctx, strings.TrimSpace(id))
}

// ==============================
// Commands
// ==============================

// Checkout はカートの各行をカタログから解決し、サーバ側で価格をスナップショットする。
// クライアントが送る価格は信用しない。
func (u *OrderUsecase) Checkout(ctx context.Context, in orderdom.CheckoutInput) (orderdom.Order, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return orderdom.Order{}, err
	}

	items := make([]orderdom.Item, 0, len(in.Items))
	for i, req := range in.Items {
		it, err := u.resolveItem(ctx, req)
		if err != nil {
			return orderdom.Order{}, fmt.Errorf("order[%d]: %w", i, err)
		}
		items = append(items, it)
	}

	now := u.now().UTC()
	o := orderdom.Order{
		Name:            in.Name,
		Email:           in.Email,
		Whatsapp:        in.Whatsapp,
		Items:           items,
		Status:          orderdom.StatusPending,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	delivery := decimal.Zero
	if o.HasFramed() {
		delivery = u.deliveryFee
	}
	o.Totals(delivery)

	return u.orderRepo.Create(ctx, o)
}

func (u *OrderUsecase) resolveItem(ctx context.Context, req orderdom.ItemRequest) (orderdom.Item, error) {
	p, err := u.productRepo.GetByID(ctx, req.ProductID)
	if errors.Is(err, common.ErrNotFound) {
		return orderdom.Item{}, orderdom.ErrUnknownProduct
	}
	if err != nil {
		return orderdom.Item{}, err
	}
	if !p.InStock {
		return orderdom.Item{}, orderdom.ErrOutOfStock
	}

	it := orderdom.Item{
		ProductID: p.ID,
		Type:      string(p.Type),
		Name:      p.Name,
		Quantity:  req.Quantity,
		Price:     p.FinalPrice,
	}
	if len(p.Images) > 0 {
		it.Image = p.Images[0]
	}
	if p.Type == productdom.TypeTemplate {
		return it, nil
	}

	// print
	if !req.Size.Valid() || !p.HasSize(req.Size) {
		return orderdom.Item{}, orderdom.ErrSizeUnavailable
	}
	it.Size = req.Size
	it.Format = req.Format

	switch req.Format {
	case orderdom.FormatDigital:
		if !p.DigitalPrint {
			return orderdom.Item{}, orderdom.ErrFormatUnavailable
		}
	case orderdom.FormatFramed:
		if !p.FramedPrint {
			return orderdom.Item{}, orderdom.ErrFormatUnavailable
		}
		if !p.SizeSpecificPricing.Configured(req.Size) {
			return orderdom.Item{}, orderdom.ErrFrameNotConfigured
		}
		price, err := p.SizeSpecificPricing.FinalFramePrice(req.Size)
		if err != nil {
			return orderdom.Item{}, err
		}
		it.Price = price
	default:
		return orderdom.Item{}, orderdom.ErrInvalidFormat
	}
	return it, nil
}

// Update は顧客情報・配送先・ステータスを置き換える。明細と金額は変更しない。
func (u *OrderUsecase) Update(ctx context.Context, id string, in orderdom.UpdateInput) (orderdom.Order, error) {
	current, err := u.orderRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return orderdom.Order{}, err
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return orderdom.Order{}, err
	}
	current.Apply(in)
	current.UpdatedAt = u.now().UTC()
	return u.orderRepo.Update(ctx, current)
}

func (u *OrderUsecase) Delete(ctx context.Context, id string) error {
	return u.orderRepo.Delete(ctx, strings.TrimSpace(id))
}
