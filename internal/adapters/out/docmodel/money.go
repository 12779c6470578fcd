// internal/adapters/out/docmodel/money.go
package docmodel

import (
	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

// 金額は整数セント、割引率は文字列（"12.5"）で保存する。

func cents(d decimal.Decimal) int64 {
	return pricing.ToCents(d)
}

func fromCents(c int64) decimal.Decimal {
	return pricing.FromCents(c)
}

func percent(d decimal.Decimal) string {
	return d.String()
}

// parsePercent は壊れた値を 0 として読む
func parsePercent(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
