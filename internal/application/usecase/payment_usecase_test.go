package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

type recordingMailer struct {
	sent []paymentdom.Payment
	err  error
}

func (m *recordingMailer) SendPaymentConfirmation(_ context.Context, p paymentdom.Payment) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, p)
	return nil
}

func TestPaymentUsecase_IntentLifecycle(t *testing.T) {
	ctx := context.Background()
	products := newFakeProducts()
	seedCatalogue(t, products)
	orders := newFakeOrders()
	order, err := orders.Create(ctx, orderdom.Order{
		Name: "Ayesha", Email: "ayesha@example.com",
		Items: []orderdom.Item{
			{ProductID: "tmpl-1", Type: "template", Name: "Invite", Quantity: 1, Price: decimal.RequireFromString("19.99")},
			{ProductID: "print-1", Type: "print", Name: "Mehndi Print", Quantity: 1, Size: pricing.SizeA3, Format: orderdom.FormatDigital, Price: decimal.NewFromInt(90)},
		},
	})
	require.NoError(t, err)

	payments := newFakePayments()
	mailer := &recordingMailer{}
	uc := NewPaymentUsecase(payments, orders, products, mailer)

	p, err := uc.HandleIntentEvent(ctx, IntentEvent{
		IntentID: "pi_123", Status: paymentdom.StatusPending, AmountMinor: 10999, Currency: "USD",
		Metadata: map[string]string{MetadataOrderID: order.ID},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("109.99").Equal(p.Amount))
	assert.Equal(t, "usd", p.Currency)
	assert.Equal(t, "ayesha@example.com", p.CustomerEmail)
	require.Len(t, p.Products, 2)
	assert.Equal(t, "https://www.canva.com/design/abc", p.Products[0].ProductLink)
	assert.Equal(t, "https://cdn.example.com/hq-a3.png", p.Products[1].ProductLink)
	assert.Empty(t, mailer.sent)

	// amount in a later event is ignored
	p, err = uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_123", Status: paymentdom.StatusSucceeded, AmountMinor: 1})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("109.99").Equal(p.Amount))
	assert.Equal(t, paymentdom.StatusSucceeded, p.Status)
	assert.True(t, p.EmailSent)
	require.NotNil(t, p.EmailSentAt)
	assert.Len(t, mailer.sent, 1)

	// replayed success does not send again
	_, err = uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_123", Status: paymentdom.StatusSucceeded})
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 1)
}

func TestPaymentUsecase_MailFailureLeavesFlagUnset(t *testing.T) {
	ctx := context.Background()
	payments := newFakePayments()
	mailer := &recordingMailer{err: errors.New("sendgrid down")}
	uc := NewPaymentUsecase(payments, nil, nil, mailer)

	p, err := uc.HandleIntentEvent(ctx, IntentEvent{
		IntentID: "pi_9", Status: paymentdom.StatusSucceeded, AmountMinor: 500, CustomerEmail: "b@x.io",
	})
	require.NoError(t, err)
	assert.False(t, p.EmailSent)

	mailer.err = nil
	p, err = uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_9", Status: paymentdom.StatusSucceeded})
	require.NoError(t, err)
	assert.True(t, p.EmailSent)
	assert.Len(t, mailer.sent, 1)
}

func TestPaymentUsecase_RejectsBadEvents(t *testing.T) {
	uc := NewPaymentUsecase(newFakePayments(), nil, nil, nil)
	_, err := uc.HandleIntentEvent(context.Background(), IntentEvent{Status: paymentdom.StatusPending})
	assert.Error(t, err)
	_, err = uc.HandleIntentEvent(context.Background(), IntentEvent{IntentID: "pi_1", Status: "weird"})
	assert.ErrorIs(t, err, paymentdom.ErrInvalidStatus)
}

func TestPaymentUsecase_NowIsUsedForTimestamps(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := NewPaymentUsecase(newFakePayments(), nil, nil, nil)
	uc.now = func() time.Time { return fixed }
	p, err := uc.HandleIntentEvent(context.Background(), IntentEvent{IntentID: "pi_t", Status: paymentdom.StatusFailed})
	require.NoError(t, err)
	assert.Equal(t, fixed, p.CreatedAt)
}

func TestPaymentUsecase_LateEventsDoNotReopenFinalStatus(t *testing.T) {
	ctx := context.Background()
	payments := newFakePayments()
	mailer := &recordingMailer{}
	uc := NewPaymentUsecase(payments, nil, nil, mailer)

	_, err := uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_late", Status: paymentdom.StatusSucceeded, AmountMinor: 2599, CustomerEmail: "guest@example.com"})
	require.NoError(t, err)

	// created / processing が succeeded の後に届く
	for _, st := range []paymentdom.Status{paymentdom.StatusPending, paymentdom.StatusFailed, paymentdom.StatusCanceled} {
		p, err := uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_late", Status: st})
		require.NoError(t, err, st)
		assert.Equal(t, paymentdom.StatusSucceeded, p.Status, st)
	}
	stored, err := payments.GetByID(ctx, "pi_late")
	require.NoError(t, err)
	assert.Equal(t, paymentdom.StatusSucceeded, stored.Status)
	assert.Len(t, mailer.sent, 1)
}

func TestPaymentUsecase_FailedCanStillProgress(t *testing.T) {
	ctx := context.Background()
	uc := NewPaymentUsecase(newFakePayments(), nil, nil, &recordingMailer{})

	_, err := uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_retry", Status: paymentdom.StatusFailed})
	require.NoError(t, err)
	p, err := uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_retry", Status: paymentdom.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, paymentdom.StatusPending, p.Status)
	p, err = uc.HandleIntentEvent(ctx, IntentEvent{IntentID: "pi_retry", Status: paymentdom.StatusSucceeded})
	require.NoError(t, err)
	assert.Equal(t, paymentdom.StatusSucceeded, p.Status)
}
