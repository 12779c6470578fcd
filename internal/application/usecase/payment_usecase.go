// internal/application/usecase/payment_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// MetadataOrderID は PaymentIntent metadata に載せる注文 ID のキー
const MetadataOrderID = "orderId"

// ==============================
// Ports
// ==============================

// PaymentMailerPort は決済完了メールを送るアウトバウンドポート。
// adapters/out/mail.PaymentMailer が実装する。
type PaymentMailerPort interface {
	SendPaymentConfirmation(ctx context.Context, p paymentdom.Payment) error
}

// IntentEvent は決済プロバイダの PaymentIntent イベントを詰め替えたもの。
// AmountMinor は最小通貨単位（セント）。
type IntentEvent struct {
	IntentID      string
	Status        paymentdom.Status
	AmountMinor   int64
	Currency      string
	CustomerID    string
	CustomerEmail string
	CustomerName  string
	Metadata      map[string]string
}

// ==============================
// Usecase
// ==============================

type PaymentUsecase struct {
	paymentRepo paymentdom.Repository
	orderRepo   orderdom.Repository
	productRepo productdom.Repository
	mailer      PaymentMailerPort
	now         func() time.Time
}

// NewPaymentUsecase: mailer は nil 可（メール送信なし）
func NewPaymentUsecase(
	paymentRepo paymentdom.Repository,
	orderRepo orderdom.Repository,
	productRepo productdom.Repository,
	mailer PaymentMailerPort,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		mailer:      mailer,
		now:         time.Now,
	}
}

func (u *PaymentUsecase) List(ctx context.Context, f paymentdom.Filter, page common.Page) (common.PageResult[paymentdom.Payment], error) {
	return u.paymentRepo.List(ctx, f, page.Normalize())
}

func (u *PaymentUsecase) GetByID(ctx context.Context, id string) (paymentdom.Payment, error) {
	return u.paymentRepo.GetByID(ctx, strings.TrimSpace(id))
}

// HandleIntentEvent は webhook イベントを Payment に反映する。
//   - 初回: intent ID をドキュメント ID として作成（amount はここでのみ設定）
//   - 以降: status / customer / metadata のみ更新（succeeded / canceled からは戻さない）
//   - succeeded かつ未送信なら確認メールを 1 度だけ送る
func (u *PaymentUsecase) HandleIntentEvent(ctx context.Context, ev IntentEvent) (paymentdom.Payment, error) {
	ev.IntentID = strings.TrimSpace(ev.IntentID)
	if ev.IntentID == "" {
		return paymentdom.Payment{}, common.Required("payment", "intentId")
	}
	if !ev.Status.Valid() {
		return paymentdom.Payment{}, paymentdom.ErrInvalidStatus
	}

	p, err := u.paymentRepo.GetByID(ctx, ev.IntentID)
	switch {
	case errors.Is(err, common.ErrNotFound):
		p, err = u.paymentRepo.Create(ctx, u.newPayment(ctx, ev))
		if errors.Is(err, common.ErrConflict) {
			// 同一 intent の並行配送: 既存側を更新する
			p, err = u.paymentRepo.UpdateStatus(ctx, ev.IntentID, ev.Status, ev.CustomerID, ev.Metadata)
		}
	case err == nil && !p.Status.Accepts(ev.Status):
		err = paymentdom.ErrStatusFinal
	case err == nil:
		p, err = u.paymentRepo.UpdateStatus(ctx, ev.IntentID, ev.Status, ev.CustomerID, ev.Metadata)
	}
	if errors.Is(err, paymentdom.ErrStatusFinal) {
		// 順不同の遅延配送。終端状態を巻き戻さず 200 で受け流す
		log.Printf("[payment] ignore stale status intent=%s current=%s event=%s", ev.IntentID, p.Status, ev.Status)
		err = nil
	}
	if err != nil {
		return paymentdom.Payment{}, err
	}

	if p.Status == paymentdom.StatusSucceeded && !p.EmailSent {
		u.sendConfirmation(ctx, &p)
	}
	return p, nil
}

func (u *PaymentUsecase) newPayment(ctx context.Context, ev IntentEvent) paymentdom.Payment {
	now := u.now().UTC()
	p := paymentdom.Payment{
		ID:                    ev.IntentID,
		CustomerEmail:         strings.ToLower(strings.TrimSpace(ev.CustomerEmail)),
		CustomerName:          strings.TrimSpace(ev.CustomerName),
		StripePaymentIntentID: ev.IntentID,
		StripeCustomerID:      strings.TrimSpace(ev.CustomerID),
		Amount:                pricing.FromCents(ev.AmountMinor),
		Currency:              strings.ToLower(strings.TrimSpace(ev.Currency)),
		Status:                ev.Status,
		Metadata:              ev.Metadata,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	orderID := strings.TrimSpace(ev.Metadata[MetadataOrderID])
	if orderID == "" || u.orderRepo == nil {
		return p
	}
	o, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		log.Printf("[payment] order lookup failed intent=%s order=%s: %v", ev.IntentID, orderID, err)
		return p
	}
	if p.CustomerEmail == "" {
		p.CustomerEmail = o.Email
	}
	if p.CustomerName == "" {
		p.CustomerName = o.Name
	}
	p.Products = u.snapshotProducts(ctx, o)
	return p
}

// snapshotProducts は注文明細を購入商品スナップショットに変換する。
// テンプレートは productLink、デジタルプリントはサイズ別の高解像度アセットを添える。
func (u *PaymentUsecase) snapshotProducts(ctx context.Context, o orderdom.Order) []paymentdom.Product {
	out := make([]paymentdom.Product, 0, len(o.Items))
	for _, it := range o.Items {
		pp := paymentdom.Product{
			ProductID: it.ProductID,
			Name:      it.Name,
			Type:      it.Type,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Size:      string(it.Size),
			Format:    string(it.Format),
		}
		if u.productRepo != nil {
			if prod, err := u.productRepo.GetByID(ctx, it.ProductID); err == nil {
				switch {
				case prod.Type == productdom.TypeTemplate:
					pp.ProductLink = prod.ProductLink
				case it.Format == orderdom.FormatDigital:
					pp.ProductLink = prod.HighQualityPrints[it.Size]
				}
			}
		}
		out = append(out, pp)
	}
	return out
}

// sendConfirmation はベストエフォート。失敗時は emailSent を立てず次のイベントで再試行される。
func (u *PaymentUsecase) sendConfirmation(ctx context.Context, p *paymentdom.Payment) {
	if u.mailer == nil || p.CustomerEmail == "" {
		return
	}
	if err := u.mailer.SendPaymentConfirmation(ctx, *p); err != nil {
		log.Printf("[payment] confirmation mail failed id=%s: %v", p.ID, err)
		return
	}
	at := u.now().UTC()
	if err := u.paymentRepo.MarkEmailSent(ctx, p.ID, at); err != nil {
		if !errors.Is(err, paymentdom.ErrEmailAlreadySent) {
			log.Printf("[payment] mark emailSent failed id=%s: %v", p.ID, err)
		}
		return
	}
	p.EmailSent = true
	p.EmailSentAt = &at
}
