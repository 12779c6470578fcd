package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// ---- contact ----

type failingNotifier struct{ calls int }

func (n *failingNotifier) NotifyContact(context.Context, contactdom.Contact) error {
	n.calls++
	return errors.New("smtp unreachable")
}

func TestContactUsecase_MissingEmailCreatesNothing(t *testing.T) {
	repo := &fakeContacts{}
	uc := NewContactUsecase(repo, nil)

	_, err := uc.Create(context.Background(), contactdom.Input{Name: "Sara", MediumOfContact: "whatsapp"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email")
	assert.Empty(t, repo.items)
}

func TestContactUsecase_NotifyIsBestEffort(t *testing.T) {
	repo := &fakeContacts{}
	n := &failingNotifier{}
	uc := NewContactUsecase(repo, n)

	c, err := uc.Create(context.Background(), contactdom.Input{
		Name: "Sara", Email: "sara@example.com", MediumOfContact: "email",
		Services: []string{"Branding", " "},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, []string{"Branding"}, c.Services)
	assert.Equal(t, 1, n.calls)
	assert.Len(t, repo.items, 1)
}

// ---- dashboard ----

func TestDashboardUsecase_Stats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)

	products := newFakeProducts()
	for i, hl := range []bool{true, false, true} {
		_, err := products.Create(ctx, productdom.Product{Name: strings.Repeat("p", i+1), InHighlight: hl})
		require.NoError(t, err)
	}
	categories := newFakeCategories()
	_, _ = categories.Create(ctx, catdom.Category{Name: "Bridal", Type: catdom.TypePrint})

	orders := newFakeOrders()
	for i := 0; i < 7; i++ {
		_, err := orders.Create(ctx, orderdom.Order{
			Status:    orderdom.StatusCompleted,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, _ = orders.Create(ctx, orderdom.Order{Status: orderdom.StatusPending, CreatedAt: now})

	payments := newFakePayments()
	seed := []struct {
		id     string
		status paymentdom.Status
		amount int64
		at     time.Time
	}{
		{"pi_jan_1", paymentdom.StatusSucceeded, 100, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"pi_jan_2", paymentdom.StatusSucceeded, 50, time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC)},
		{"pi_mar", paymentdom.StatusSucceeded, 30, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		{"pi_old", paymentdom.StatusSucceeded, 999, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"pi_pending", paymentdom.StatusPending, 10, now},
		{"pi_failed", paymentdom.StatusFailed, 10, now},
		{"pi_canceled", paymentdom.StatusCanceled, 10, now},
	}
	for _, s := range seed {
		_, err := payments.Create(ctx, paymentdom.Payment{ID: s.id, Status: s.status, Amount: decimal.NewFromInt(s.amount), CreatedAt: s.at})
		require.NoError(t, err)
	}

	admins := &fakeAdmins{items: map[string]admindom.Admin{"a1": {ID: "a1", Username: "owner"}}}
	contacts := &fakeContacts{}

	uc := NewDashboardUsecase(products, categories, orders, contacts, admins, payments)
	uc.now = func() time.Time { return now }

	st, err := uc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, st.ProductCount)
	assert.Equal(t, 2, st.HighlightedProductCount)
	assert.Equal(t, 1, st.CategoryCount)
	assert.Equal(t, 8, st.OrderCount)
	assert.Len(t, st.CompletedOrders, dashboard.RecentCompletedLimit)
	assert.Equal(t, 0, st.ContactCount)
	assert.Equal(t, 1, st.AdminCount)

	assert.Equal(t, 7, st.TotalPayments)
	assert.Equal(t, 4, st.SuccessfulPayments)
	assert.Equal(t, 1, st.PendingPayments)
	assert.Equal(t, 2, st.FailedPayments)
	assert.True(t, decimal.NewFromInt(1179).Equal(st.TotalRevenue))

	// sparse: only January and March inside the window
	require.Len(t, st.MonthlyRevenue, 2)
	assert.Equal(t, dashboard.MonthKey{Year: 2025, Month: 1}, st.MonthlyRevenue[0].ID)
	assert.Equal(t, 2, st.MonthlyRevenue[0].Count)
	assert.True(t, decimal.NewFromInt(150).Equal(st.MonthlyRevenue[0].Revenue))
	assert.Equal(t, dashboard.MonthKey{Year: 2025, Month: 3}, st.MonthlyRevenue[1].ID)

	dense := dashboard.ZeroFill(st.MonthlyRevenue, now)
	assert.Len(t, dense, dashboard.WindowMonths)
}

// ---- auth ----

type stubTokens struct{}

func (stubTokens) Issue(subject, role string) (string, time.Time, error) {
	return "tok:" + subject + ":" + role, time.Unix(0, 0), nil
}

func (stubTokens) Verify(token string) (admindom.Principal, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "tok" {
		return admindom.Principal{}, errors.New("bad token")
	}
	return admindom.Principal{Subject: parts[1], Role: parts[2]}, nil
}

type stubFirebase map[string]string

func (s stubFirebase) VerifyIDToken(_ context.Context, tok string) (string, error) {
	email, ok := s[tok]
	if !ok {
		return "", errors.New("invalid id token")
	}
	return email, nil
}

func newAuthFixture(t *testing.T, fb IDTokenVerifierPort) *AuthUsecase {
	t.Helper()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	admins := &fakeAdmins{items: map[string]admindom.Admin{
		"a1": {ID: "a1", Name: "Owner", Username: "owner@varzan.co", PasswordHash: hash},
	}}
	return NewAuthUsecase(admins, stubTokens{}, stubTokens{}, fb)
}

func TestAuthUsecase_Login(t *testing.T) {
	uc := newAuthFixture(t, nil)
	ctx := context.Background()

	res, err := uc.Login(ctx, admindom.Credentials{Username: " Owner@Varzan.co ", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "a1", res.Admin.ID)
	assert.Equal(t, "tok:a1:admin", res.Token)

	_, err = uc.Login(ctx, admindom.Credentials{Username: "owner@varzan.co", Password: "nope"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = uc.Login(ctx, admindom.Credentials{Username: "ghost", Password: "s3cret"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = uc.Login(ctx, admindom.Credentials{Username: "owner@varzan.co"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAuthUsecase_Authenticate(t *testing.T) {
	ctx := context.Background()

	uc := newAuthFixture(t, nil)
	p, err := uc.Authenticate(ctx, "tok:a1:admin")
	require.NoError(t, err)
	assert.True(t, p.IsAdmin())

	_, err = uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	uc = newAuthFixture(t, stubFirebase{"fb-owner": "owner@varzan.co", "fb-guest": "guest@gmail.com"})
	p, err = uc.Authenticate(ctx, "fb-owner")
	require.NoError(t, err)
	assert.Equal(t, admindom.Principal{Subject: "a1", Role: admindom.RoleAdmin}, p)

	p, err = uc.Authenticate(ctx, "fb-guest")
	require.NoError(t, err)
	assert.False(t, p.IsAdmin())

	_, err = uc.Authenticate(ctx, "fb-unknown")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAuthUsecase_Me(t *testing.T) {
	uc := newAuthFixture(t, nil)

	_, err := uc.Me(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	ctx := WithPrincipal(context.Background(), admindom.Principal{Subject: "a1", Role: admindom.RoleAdmin})
	a, err := uc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Owner", a.Name)
}

// ---- media ----

type memStore struct {
	name, contentType string
	body              string
}

func (m *memStore) Put(_ context.Context, name, ct string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.name, m.contentType, m.body = name, ct, string(b)
	return "https://media.example.com/" + name, nil
}

func TestMediaUsecase_Upload(t *testing.T) {
	store := &memStore{}
	uc := NewMediaUsecase(store)
	uc.now = func() time.Time { return time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC) }
	uc.newID = func() string { return "fixed" }

	url, err := uc.Upload(context.Background(), "Poster.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/uploads/2025/04/fixed.png", url)
	assert.Equal(t, "png-bytes", store.body)

	_, err = uc.Upload(context.Background(), "notes.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}
