// internal/adapters/in/http/router_test.go
package httpin_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpin "github.com/MTalha250/Varzan/internal/adapters/in/http"
	"github.com/MTalha250/Varzan/internal/adapters/in/http/middleware"
	"github.com/MTalha250/Varzan/internal/adapters/out/auth"
	"github.com/MTalha250/Varzan/internal/adapters/out/memory"
	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
)

const webhookSecret = "whsec_test"

type testServer struct {
	handler http.Handler
	store   *memory.Store
	jwt     *auth.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	jwtm, err := auth.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)

	productUC := usecase.NewProductUsecase(store.Products, store.Categories)
	deps := httpin.RouterDeps{
		ProductUC:     productUC,
		CategoryUC:    usecase.NewCategoryUsecase(store.Categories, store.Products),
		ContactUC:     usecase.NewContactUsecase(store.Contacts, nil),
		TestimonialUC: usecase.NewTestimonialUsecase(store.Testimonials),
		ProjectUC:     usecase.NewProjectUsecase(store.Projects),
		OrderUC:       usecase.NewOrderUsecase(store.Orders, store.Products, decimal.NewFromInt(5)),
		PaymentUC:     usecase.NewPaymentUsecase(store.Payments, store.Orders, store.Products, nil),
		DashboardUC: usecase.NewDashboardUsecase(
			store.Products, store.Categories, store.Orders, store.Contacts, store.Admins, store.Payments,
		),
		AuthUC:              usecase.NewAuthUsecase(store.Admins, jwtm, jwtm, nil),
		StripeWebhookSecret: webhookSecret,
		Metrics:             middleware.NewMetrics(),
	}
	return &testServer{handler: httpin.NewRouter(deps), store: store, jwt: jwtm}
}

func (s *testServer) token(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := s.jwt.Issue("adm-1", role)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func (s *testServer) seedTemplate(t *testing.T, name string) string {
	t.Helper()
	admin := s.token(t, admindom.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/category", admin, map[string]any{"name": "Logos", "type": "template"})
	if rec.Code == http.StatusConflict {
		rec = s.do(t, http.MethodGet, "/api/category?type=template", "", nil)
		items := decodeBody(t, rec)["items"].([]any)
		return s.createTemplate(t, admin, items[0].(map[string]any)["_id"].(string), name)
	}
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cat := decodeBody(t, rec)["category"].(map[string]any)
	return s.createTemplate(t, admin, cat["_id"].(string), name)
}

func (s *testServer) createTemplate(t *testing.T, admin, categoryID, name string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/product", admin, map[string]any{
		"type":        "template",
		"name":        name,
		"description": "editable logo pack",
		"price":       20,
		"discount":    10,
		"categoryId":  categoryID,
		"images":      []string{"https://cdn.example.com/a.png"},
		"productLink": "https://drive.example.com/secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Product created successfully", body["message"])
	return body["product"].(map[string]any)["_id"].(string)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAdminRoutes_RequireTokenThenAdminRole(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "Unauthorized")

	rec = s.do(t, http.MethodGet, "/api/dashboard", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/dashboard", s.token(t, "viewer"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/dashboard", s.token(t, admindom.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, []any{}, body["monthlyRevenue"])
	assert.Equal(t, []any{}, body["completedOrders"])
}

func TestProduct_PublicDetailStripsProductLink(t *testing.T) {
	s := newTestServer(t)
	id := s.seedTemplate(t, "Logo Pack")
	s.seedTemplate(t, "Brand Kit")

	rec := s.do(t, http.MethodGet, "/api/product/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	product := body["product"].(map[string]any)
	_, hasLink := product["productLink"]
	assert.False(t, hasLink)
	assert.Equal(t, 18.0, product["finalPrice"])
	assert.Equal(t, "Logos", product["category"])
	related := body["related"].([]any)
	require.Len(t, related, 1)
	assert.Equal(t, "Brand Kit", related[0].(map[string]any)["name"])

	rec = s.do(t, http.MethodGet, "/api/product/admin/"+id, s.token(t, admindom.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product = decodeBody(t, rec)["product"].(map[string]any)
	assert.Equal(t, "https://drive.example.com/secret", product["productLink"])
}

func TestProduct_ListEnvelopeAndFilter(t *testing.T) {
	s := newTestServer(t)
	s.seedTemplate(t, "Logo Pack")
	s.seedTemplate(t, "Brand Kit")
	s.seedTemplate(t, "Poster Set")

	rec := s.do(t, http.MethodGet, "/api/product?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["items"], 2)
	assert.Equal(t, 1.0, body["currentPage"])
	assert.Equal(t, 2.0, body["totalPages"])
	assert.Equal(t, 3.0, body["totalItems"])
	for _, it := range body["items"].([]any) {
		_, hasLink := it.(map[string]any)["productLink"]
		assert.False(t, hasLink)
	}

	rec = s.do(t, http.MethodGet, "/api/product/filter?query=brand", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decodeBody(t, rec)["totalItems"])

	rec = s.do(t, http.MethodGet, "/api/product/filter?min=50&max=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/product/filter?min=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/product/type/print", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, 0.0, body["totalItems"])
	assert.Equal(t, []any{}, body["items"])

	rec = s.do(t, http.MethodGet, "/api/product/filterValues", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"Logos"}, decodeBody(t, rec)["categories"])
}

func TestProduct_HugePageIsClamped(t *testing.T) {
	s := newTestServer(t)
	s.seedTemplate(t, "Logo Pack")

	for _, path := range []string{
		"/api/product?page=9223372036854775807",
		"/api/product/filter?page=9223372036854775807&limit=100",
		"/api/category?page=9223372036854775807",
	} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		body := decodeBody(t, rec)
		assert.Equal(t, []any{}, body["items"], path)
		assert.Equal(t, 1.0, body["totalItems"], path)
	}
}

func TestProduct_CreateValidationAndDelete(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, admindom.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/product", "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/product", admin, map[string]any{"type": "template"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "name")

	id := s.seedTemplate(t, "Logo Pack")
	rec = s.do(t, http.MethodDelete, "/api/product/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// 2 回目も成功（冪等）
	rec = s.do(t, http.MethodDelete, "/api/product/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/product/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["message"])
}

func TestCategory_DuplicateIsConflict(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, admindom.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/category", admin, map[string]any{"name": "Posters", "type": "print"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/category", admin, map[string]any{"name": "posters", "type": "print"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/category", admin, map[string]any{"name": "Posters", "type": "template"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestContact_PublicCreateAdminRead(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name": "Ayesha", "email": "a@example.com", "mediumOfContact": "email",
		"services": []string{"branding"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/contact", s.token(t, admindom.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decodeBody(t, rec)["totalItems"])
}

func TestTestimonial_AllIsUnpaginated(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, admindom.RoleAdmin)
	for i := 0; i < 3; i++ {
		rec := s.do(t, http.MethodPost, "/api/testimonial", admin, map[string]any{
			"name": fmt.Sprintf("n%d", i), "email": " N@EXAMPLE.com ", "message": "great",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "n@example.com", decodeBody(t, rec)["testimonial"].(map[string]any)["email"])
	}

	rec := s.do(t, http.MethodGet, "/api/testimonial/all", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["testimonials"], 3)
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	hash, err := usecase.HashPassword("s3cret")
	require.NoError(t, err)
	_, err = s.store.Admins.Upsert(context.Background(), admindom.Admin{Name: "Owner", Username: "owner", PasswordHash: hash})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/admin/login", "", map[string]any{"username": "owner", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/login", "", map[string]any{"username": "Owner", "password": "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	tok := body["token"].(string)
	_, hasHash := body["admin"].(map[string]any)["passwordHash"]
	assert.False(t, hasHash)

	rec = s.do(t, http.MethodGet, "/api/admin/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner", decodeBody(t, rec)["admin"].(map[string]any)["username"])
}

func TestCheckoutAndOrderAdmin(t *testing.T) {
	s := newTestServer(t)
	id := s.seedTemplate(t, "Logo Pack")

	rec := s.do(t, http.MethodPost, "/api/order", "", map[string]any{
		"name": "Bilal", "email": "b@example.com", "whatsapp": "+92300",
		"order": []map[string]any{{"productId": id, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decodeBody(t, rec)["order"].(map[string]any)
	assert.Equal(t, 36.0, order["subTotal"])
	assert.Equal(t, 0.0, order["delivery"])
	assert.Equal(t, 36.0, order["total"])

	admin := s.token(t, admindom.RoleAdmin)
	rec = s.do(t, http.MethodGet, "/api/order?status=bogus", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/order?status=pending&search=bilal&dateFrom=2000-01-01", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decodeBody(t, rec)["totalItems"])
}

func signedWebhook(t *testing.T, payload []byte, secret string) *http.Request {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(mac, "%d.%s", ts, payload)
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil))))
	return req
}

func intentPayload(eventType string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{
  "id": "evt_%s",
  "object": "event",
  "type": %q,
  "data": {"object": {
    "id": "pi_123",
    "object": "payment_intent",
    "amount": %d,
    "currency": "usd",
    "receipt_email": "buyer@example.com",
    "metadata": {"customerName": "Buyer"}
  }}
}`, eventType, eventType, amount))
}

func TestStripeWebhook(t *testing.T) {
	s := newTestServer(t)

	t.Run("bad signature is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, signedWebhook(t, intentPayload("payment_intent.created", 2599), "wrong"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("created then succeeded keeps the original amount", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, signedWebhook(t, intentPayload("payment_intent.created", 2599), webhookSecret))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = httptest.NewRecorder()
		s.handler.ServeHTTP(rec, signedWebhook(t, intentPayload("payment_intent.succeeded", 9999), webhookSecret))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		p, err := s.store.Payments.GetByID(context.Background(), "pi_123")
		require.NoError(t, err)
		assert.Equal(t, "succeeded", string(p.Status))
		assert.Equal(t, "25.99", p.Amount.StringFixed(2))
		assert.Equal(t, "buyer@example.com", p.CustomerEmail)
		assert.Equal(t, "Buyer", p.CustomerName)
	})

	t.Run("late created event does not reopen a succeeded payment", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, signedWebhook(t, intentPayload("payment_intent.created", 2599), webhookSecret))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		p, err := s.store.Payments.GetByID(context.Background(), "pi_123")
		require.NoError(t, err)
		assert.Equal(t, "succeeded", string(p.Status))

		revenue, err := s.store.Payments.SucceededRevenue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "25.99", revenue.StringFixed(2))
	})

	t.Run("unrelated events are acknowledged", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, signedWebhook(t, intentPayload("charge.refunded", 1), webhookSecret))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("payments are listed for admins", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/payment?status=succeeded", s.token(t, admindom.RoleAdmin), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1.0, decodeBody(t, rec)["totalItems"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/product", "", nil)

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "varzan_http_requests_total{")
	assert.Contains(t, rec.Body.String(), "varzan_http_request_duration_seconds")
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["message"])
}

func TestMethodNotAllowedIsJSON405(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPatch, "/api/product", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Method not allowed", decodeBody(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/%22quoted%22", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["message"])
}
