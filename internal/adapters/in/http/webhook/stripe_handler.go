// internal/adapters/in/http/webhook/stripe_handler.go
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v80"
	stripewebhook "github.com/stripe/stripe-go/v80/webhook"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
)

// maxBody は Stripe の推奨上限に合わせる
const maxBody = 65536

// PaymentEventHandler は usecase.PaymentUsecase が満たす
type PaymentEventHandler interface {
	HandleIntentEvent(ctx context.Context, ev usecase.IntentEvent) (paymentdom.Payment, error)
}

// intentStatuses は購読する payment_intent.* イベントと反映先ステータス
var intentStatuses = map[string]paymentdom.Status{
	"payment_intent.created":         paymentdom.StatusPending,
	"payment_intent.processing":      paymentdom.StatusPending,
	"payment_intent.requires_action": paymentdom.StatusPending,
	"payment_intent.succeeded":       paymentdom.StatusSucceeded,
	"payment_intent.payment_failed":  paymentdom.StatusFailed,
	"payment_intent.canceled":        paymentdom.StatusCanceled,
}

// StripeWebhookHandler は署名検証済みの PaymentIntent イベントを Payment に反映する。
// 対象外のイベントは 200 で受領だけする（Stripe の再送を止めるため）。
type StripeWebhookHandler struct {
	payments PaymentEventHandler
	secret   string
}

func NewStripeWebhookHandler(payments PaymentEventHandler, secret string) *StripeWebhookHandler {
	return &StripeWebhookHandler{payments: payments, secret: strings.TrimSpace(secret)}
}

func (h *StripeWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.payments == nil || h.secret == "" {
		writeMessage(w, http.StatusServiceUnavailable, "stripe webhook is not configured")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "failed to read body")
		return
	}

	ev, err := stripewebhook.ConstructEventWithOptions(
		payload,
		r.Header.Get("Stripe-Signature"),
		h.secret,
		stripewebhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Printf("[webhook] signature verification failed: %v", err)
		writeMessage(w, http.StatusBadRequest, "Webhook signature verification failed")
		return
	}

	status, ok := intentStatuses[string(ev.Type)]
	if !ok {
		log.Printf("[webhook] ignored event id=%s type=%s", ev.ID, ev.Type)
		writeJSON(w, http.StatusOK, map[string]any{"received": true})
		return
	}
	if ev.Data == nil {
		writeMessage(w, http.StatusBadRequest, "event has no data")
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
		log.Printf("[webhook] decode payment intent failed event=%s: %v", ev.ID, err)
		writeMessage(w, http.StatusBadRequest, "invalid payment intent payload")
		return
	}

	p, err := h.payments.HandleIntentEvent(r.Context(), intentEvent(pi, status))
	if err != nil {
		log.Printf("[webhook] handle event=%s intent=%s failed: %v", ev.ID, pi.ID, err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[webhook] %s intent=%s status=%s emailSent=%t", ev.Type, p.ID, p.Status, p.EmailSent)
	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}

// intentEvent は PaymentIntent を usecase の入力に詰め替える。
// 顧客情報は Customer（展開時）→ metadata → receipt_email の順に拾う。
func intentEvent(pi stripe.PaymentIntent, status paymentdom.Status) usecase.IntentEvent {
	ev := usecase.IntentEvent{
		IntentID:    pi.ID,
		Status:      status,
		AmountMinor: pi.Amount,
		Currency:    string(pi.Currency),
		Metadata:    pi.Metadata,
	}
	if pi.Customer != nil {
		ev.CustomerID = pi.Customer.ID
		ev.CustomerEmail = pi.Customer.Email
		ev.CustomerName = pi.Customer.Name
	}
	if ev.CustomerEmail == "" {
		ev.CustomerEmail = firstNonEmpty(pi.Metadata["customerEmail"], pi.ReceiptEmail)
	}
	if ev.CustomerName == "" {
		ev.CustomerName = pi.Metadata["customerName"]
	}
	return ev
}

func firstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if s := strings.TrimSpace(x); s != "" {
			return s
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
