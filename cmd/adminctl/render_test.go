// cmd/adminctl/render_test.go
package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpout "github.com/MTalha250/Varzan/internal/adapters/out/http"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
)

func TestRenderStats_ZeroFillsTwelveMonths(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	st := dashboard.Stats{
		ProductCount:   1234,
		TotalPayments:  3,
		TotalRevenue:   decimal.RequireFromString("1250.5"),
		MonthlyRevenue: []dashboard.MonthlyBucket{{ID: dashboard.MonthKey{Year: 2026, Month: 2}, Revenue: decimal.NewFromInt(80), Count: 2}},
	}

	var buf bytes.Buffer
	renderStats(&buf, st, now)
	out := buf.String()

	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "1,250.50")
	assert.Contains(t, out, "2025-04")
	assert.Contains(t, out, "2026-03")
	assert.NotContains(t, out, "2025-03")

	var months int
	for _, line := range strings.Split(out, "\n") {
		if len(line) >= 7 && line[4] == '-' && strings.HasPrefix(line, "20") {
			months++
		}
	}
	assert.Equal(t, 12, months)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"80", "80.00"},
		{"1250.5", "1,250.50"},
		{"0.005", "0.01"},
		{"1234567.891", "1,234,567.89"},
		{"9007199254740993.10", "9,007,199,254,740,993.10"},
		{"-1234.5", "-1,234.50"},
		{"-0.5", "-0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestRenderOrders_Footer(t *testing.T) {
	page := httpout.Page[orderdom.Order]{
		Items: []orderdom.Order{{
			ID:        "o1",
			Name:      "Ayesha",
			Email:     "a@example.com",
			Status:    orderdom.StatusPending,
			Total:     decimal.NewFromInt(36),
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}},
		CurrentPage: 2,
		TotalPages:  5,
		TotalItems:  1200,
	}
	var buf bytes.Buffer
	renderOrders(&buf, page)

	out := buf.String()
	assert.Contains(t, out, "Ayesha <a@example.com>")
	assert.Contains(t, out, "2026-01-02")
	assert.Contains(t, out, "page 2/5 (1,200 items)")
}

func TestParseListQuery(t *testing.T) {
	q, err := parseListQuery("orders", []string{"-status", "pending", "-page", "3", "-from", "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, "2026-01-01", q.DateFrom)
}

func TestRun_RequiresToken(t *testing.T) {
	t.Setenv("VARZAN_TOKEN", "")
	err := run([]string{"stats"})
	assert.ErrorContains(t, err, "requires -token")
}
