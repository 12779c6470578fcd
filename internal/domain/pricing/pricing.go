// internal/domain/pricing/pricing.go
package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// 金額は shopspring/decimal で保持し、永続化は整数セントで行う。
// 丸めは「小数第 2 位で四捨五入（half-up）」に統一する。
// 価格は常に 0 以上なので decimal.Round の half-away-from-zero は half-up と一致する。

func init() {
	// API は数値で返す（"90" ではなく 90）
	decimal.MarshalJSONWithoutQuotes = true
}

const centsPlaces = 2

var (
	hundred = decimal.NewFromInt(100)

	ErrInvalidDiscount = fmt.Errorf("%w: discount must be between 0 and 100", common.ErrInvalidArgument)
	ErrNegativePrice   = fmt.Errorf("%w: price must not be negative", common.ErrInvalidArgument)
	ErrInvalidSize     = fmt.Errorf("%w: unknown size", common.ErrInvalidArgument)
)

// ========================================
// Size codes
// ========================================

// SizeCode はプリント商品のサイズ（閉じた集合）
type SizeCode string

const (
	SizeA3 SizeCode = "A3"
	SizeA4 SizeCode = "A4"
	SizeA5 SizeCode = "A5"
)

// AllSizes は有効なサイズ一覧（表示順）
var AllSizes = []SizeCode{SizeA3, SizeA4, SizeA5}

func (s SizeCode) Valid() bool {
	switch s {
	case SizeA3, SizeA4, SizeA5:
		return true
	}
	return false
}

// ParseSizeCode は "a4" / " A4 " なども受け付ける。
func ParseSizeCode(s string) (SizeCode, error) {
	c := SizeCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return c, nil
}

// ParseSizeCodes は CSV 由来の文字列群をサイズに変換し、重複を除いて表示順に並べる。
func ParseSizeCodes(values []string) ([]SizeCode, error) {
	seen := map[SizeCode]struct{}{}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		c, err := ParseSizeCode(v)
		if err != nil {
			return nil, err
		}
		seen[c] = struct{}{}
	}
	out := make([]SizeCode, 0, len(seen))
	for _, c := range AllSizes {
		if _, ok := seen[c]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// ========================================
// Final price
// ========================================

// ValidateDiscount は割引率が [0,100] かを検証する。
func ValidateDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	return nil
}

// FinalPrice は base - base*discount/100 をセント単位に丸めて返す。
func FinalPrice(base, discount decimal.Decimal) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	if err := ValidateDiscount(discount); err != nil {
		return decimal.Zero, err
	}
	off := base.Mul(discount).Div(hundred)
	return RoundCents(base.Sub(off)), nil
}

// RoundCents は小数第 2 位に丸める。
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(centsPlaces)
}

// ToCents は永続化用の整数セント表現。
func ToCents(d decimal.Decimal) int64 {
	return RoundCents(d).Shift(centsPlaces).IntPart()
}

// FromCents は整数セントから金額を復元する。
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -centsPlaces)
}

// ========================================
// Per-size framed pricing
// ========================================

// SizePricing はサイズごとの額装価格と割引率
type SizePricing struct {
	FramePrice    decimal.Decimal `json:"framePrice"`
	FrameDiscount decimal.Decimal `json:"frameDiscount"`
}

// Validate は額装価格が 0 以上、割引率が [0,100] かを確認する。
func (p SizePricing) Validate() error {
	if p.FramePrice.IsNegative() {
		return ErrNegativePrice
	}
	return ValidateDiscount(p.FrameDiscount)
}

// FinalFramePrice は額装価格に割引を適用した値。
func (p SizePricing) FinalFramePrice() (decimal.Decimal, error) {
	return FinalPrice(p.FramePrice, p.FrameDiscount)
}

// SizePricingMap は size → 額装価格
type SizePricingMap map[SizeCode]SizePricing

// FramePrice は size の額装価格（割引前）。未設定のサイズは 0（エラーではない）。
func (m SizePricingMap) FramePrice(size SizeCode) decimal.Decimal {
	p, ok := m[size]
	if !ok {
		return decimal.Zero
	}
	return p.FramePrice
}

// FinalFramePrice は size の割引後額装価格。未設定のサイズは 0。
func (m SizePricingMap) FinalFramePrice(size SizeCode) (decimal.Decimal, error) {
	p, ok := m[size]
	if !ok {
		return decimal.Zero, nil
	}
	return p.FinalFramePrice()
}

// Configured は size の額装価格が設定済み（> 0）かどうか。
func (m SizePricingMap) Configured(size SizeCode) bool {
	p, ok := m[size]
	return ok && p.FramePrice.IsPositive()
}

// Validate はキーが有効なサイズで、各値が妥当かを確認する。
func (m SizePricingMap) Validate() error {
	for size, p := range m {
		if !size.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidSize, size)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("size %s: %w", size, err)
		}
	}
	return nil
}

// Sizes はマップに含まれるサイズを表示順で返す。
func (m SizePricingMap) Sizes() []SizeCode {
	out := make([]SizeCode, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return sizeRank(out[i]) < sizeRank(out[j]) })
	return out
}

func sizeRank(s SizeCode) int {
	for i, c := range AllSizes {
		if c == s {
			return i
		}
	}
	return len(AllSizes)
}
