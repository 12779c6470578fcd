// internal/adapters/out/http/api_client.go
package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
)

// APIClient は管理 API の型付きクライアント（cmd/adminctl 用）。
// トークンは呼び出しごとに渡す。
type APIClient struct {
	baseURL string
	client  *http.Client
}

// baseURL example:
// - Cloud Run: https://xxxxx.asia-northeast1.run.app
// - local: http://localhost:8080
func NewAPIClient(baseURL string) *APIClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError は 2xx 以外の応答（{ message } を保持）
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status=%d: %s", e.Status, e.Message)
}

// Page は一覧封筒
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// ListQuery は /order, /payment 共通の絞り込み
type ListQuery struct {
	Status   string
	Search   string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s = strings.TrimSpace(s); s != "" {
			v.Set(k, s)
		}
	}
	set("status", q.Status)
	set("search", q.Search)
	set("dateFrom", q.DateFrom)
	set("dateTo", q.DateTo)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// LoginResponse は POST /api/admin/login の応答
type LoginResponse struct {
	Message   string         `json:"message"`
	Admin     admindom.Admin `json:"admin"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

func (c *APIClient) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/admin/login", "", nil,
		admindom.Credentials{Username: username, Password: password}, &out)
	return out, err
}

func (c *APIClient) Dashboard(ctx context.Context, token string) (dashboard.Stats, error) {
	var out dashboard.Stats
	err := c.do(ctx, http.MethodGet, "/api/dashboard", token, nil, nil, &out)
	return out, err
}

func (c *APIClient) Orders(ctx context.Context, token string, q ListQuery) (Page[orderdom.Order], error) {
	var out Page[orderdom.Order]
	err := c.do(ctx, http.MethodGet, "/api/order", token, q.values(), nil, &out)
	return out, err
}

func (c *APIClient) Payments(ctx context.Context, token string, q ListQuery) (Page[paymentdom.Payment], error) {
	var out Page[paymentdom.Payment]
	err := c.do(ctx, http.MethodGet, "/api/payment", token, q.values(), nil, &out)
	return out, err
}

func (c *APIClient) do(
	ctx context.Context,
	method, path, token string,
	query url.Values,
	body any,
	out any,
) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("api client baseURL is empty")
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var env struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &env) != nil || env.Message == "" {
			env.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: res.StatusCode, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
