// internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

// ===============================
// Types
// ===============================

// Type は商品種別（テンプレート or プリント）
type Type string

const (
	TypeTemplate Type = "template"
	TypePrint    Type = "print"
)

func (t Type) Valid() bool {
	return t == TypeTemplate || t == TypePrint
}

// Product は商品ドキュメント。
// FinalPrice は Price/Discount から導出され、保存時に再計算される。
// ProductLink は admin 専用（公開 API では Public() で除去）。
type Product struct {
	ID          string          `json:"_id"`
	Type        Type            `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	FinalPrice  decimal.Decimal `json:"finalPrice"`

	// CategoryID が正、Category は表示用の非正規化名
	CategoryID string `json:"categoryId"`
	Category   string `json:"category"`

	Images      []string `json:"images"`
	Details     []string `json:"details"`
	InStock     bool     `json:"inStock"`
	InHighlight bool     `json:"inHighlight"`

	Sizes               []pricing.SizeCode          `json:"sizes"`
	DigitalPrint        bool                        `json:"digitalPrint"`
	FramedPrint         bool                        `json:"framedPrint"`
	SizeSpecificPricing pricing.SizePricingMap      `json:"sizeSpecificPricing,omitempty"`
	HighQualityPrints   map[pricing.SizeCode]string `json:"highQualityPrints,omitempty"`

	ProductLink string `json:"productLink,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ===============================
// Errors
// ===============================

var (
	ErrNotFound        = fmt.Errorf("product: %w", common.ErrNotFound)
	ErrInvalidID       = fmt.Errorf("product: %w: invalid id", common.ErrValidation)
	ErrInvalidType     = fmt.Errorf("product: %w: type must be template or print", common.ErrValidation)
	ErrInvalidLink     = fmt.Errorf("product: %w: productLink must be an absolute http(s) URL", common.ErrValidation)
	ErrNoPrintFormat   = fmt.Errorf("product: %w: print product needs digitalPrint or framedPrint", common.ErrValidation)
	ErrUnknownCategory = fmt.Errorf("product: %w: category does not exist", common.ErrValidation)
)

func missing(field string) error {
	return common.Required("product", field)
}

// ===============================
// Input (create / full update)
// ===============================

// Input は管理画面フォームから送られる編集可能フィールド一式。
// PUT も部分更新ではなく Input 全体を要求する。
type Input struct {
	Type                Type                        `json:"type"`
	Name                string                      `json:"name"`
	Description         string                      `json:"description"`
	Price               *decimal.Decimal            `json:"price"`
	Discount            decimal.Decimal             `json:"discount"`
	CategoryID          string                      `json:"categoryId"`
	Category            string                      `json:"category"`
	Images              []string                    `json:"images"`
	Details             []string                    `json:"details"`
	InStock             *bool                       `json:"inStock"`
	InHighlight         bool                        `json:"inHighlight"`
	Sizes               []pricing.SizeCode          `json:"sizes"`
	DigitalPrint        bool                        `json:"digitalPrint"`
	FramedPrint         bool                        `json:"framedPrint"`
	SizeSpecificPricing pricing.SizePricingMap      `json:"sizeSpecificPricing"`
	HighQualityPrints   map[pricing.SizeCode]string `json:"highQualityPrints"`
	ProductLink         string                      `json:"productLink"`
}

// Normalize は前後空白除去と空要素の除去を行う。
func (in Input) Normalize() Input {
	in.Type = Type(strings.ToLower(strings.TrimSpace(string(in.Type))))
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Category = strings.TrimSpace(in.Category)
	in.Images = common.CompactStrings(in.Images)
	in.Details = common.CompactStrings(in.Details)
	in.ProductLink = strings.TrimSpace(in.ProductLink)
	sizes := make([]pricing.SizeCode, 0, len(in.Sizes))
	for _, sz := range in.Sizes {
		if c, err := pricing.ParseSizeCode(string(sz)); err == nil {
			sz = c
		}
		sizes = append(sizes, sz)
	}
	in.Sizes = sizes
	return in
}

// Validate は必須項目・値域・プリント設定の整合性を検証する。
func (in Input) Validate() error {
	if !in.Type.Valid() {
		if in.Type == "" {
			return missing("type")
		}
		return ErrInvalidType
	}
	if in.Name == "" {
		return missing("name")
	}
	if in.Price == nil {
		return missing("price")
	}
	if in.CategoryID == "" && in.Category == "" {
		return missing("category")
	}
	if len(in.Images) == 0 {
		return missing("images")
	}
	if _, err := pricing.FinalPrice(*in.Price, in.Discount); err != nil {
		return fmt.Errorf("product: %w", err)
	}

	switch in.Type {
	case TypeTemplate:
		if in.ProductLink != "" && !IsHTTPURL(in.ProductLink) {
			return ErrInvalidLink
		}
	case TypePrint:
		if err := in.validatePrint(); err != nil {
			return err
		}
	}
	return nil
}

func (in Input) validatePrint() error {
	if !in.DigitalPrint && !in.FramedPrint {
		return ErrNoPrintFormat
	}
	if len(in.Sizes) == 0 {
		return missing("sizes")
	}
	for _, s := range in.Sizes {
		if !s.Valid() {
			return fmt.Errorf("product: %w", pricing.ErrInvalidSize)
		}
	}
	if err := in.SizeSpecificPricing.Validate(); err != nil {
		return fmt.Errorf("product: %w", err)
	}
	for _, s := range in.Sizes {
		if in.DigitalPrint && strings.TrimSpace(in.HighQualityPrints[s]) == "" {
			return missing(fmt.Sprintf("highQualityPrints.%s", s))
		}
		if in.FramedPrint && !in.SizeSpecificPricing.Configured(s) {
			return missing(fmt.Sprintf("sizeSpecificPricing.%s.framePrice", s))
		}
	}
	return nil
}

// Apply は検証済み Input を Product に書き込み、FinalPrice を再計算する。
// ID / CreatedAt は保持する。
func (p *Product) Apply(in Input) error {
	final, err := pricing.FinalPrice(*in.Price, in.Discount)
	if err != nil {
		return fmt.Errorf("product: %w", err)
	}
	p.Type = in.Type
	p.Name = in.Name
	p.Description = in.Description
	p.Price = pricing.RoundCents(*in.Price)
	p.Discount = in.Discount
	p.FinalPrice = final
	p.CategoryID = in.CategoryID
	p.Category = in.Category
	p.Images = in.Images
	p.Details = in.Details
	p.InStock = true
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	p.InHighlight = in.InHighlight
	p.ProductLink = ""
	p.Sizes = nil
	p.DigitalPrint = false
	p.FramedPrint = false
	p.SizeSpecificPricing = nil
	p.HighQualityPrints = nil

	switch in.Type {
	case TypeTemplate:
		p.ProductLink = in.ProductLink
	case TypePrint:
		p.Sizes = append([]pricing.SizeCode(nil), in.Sizes...)
		p.DigitalPrint = in.DigitalPrint
		p.FramedPrint = in.FramedPrint
		if in.FramedPrint {
			p.SizeSpecificPricing = in.SizeSpecificPricing
		}
		if in.DigitalPrint {
			p.HighQualityPrints = in.HighQualityPrints
		}
	}
	return nil
}

// ===============================
// Behavior
// ===============================

// Public は公開 API 用に admin 専用フィールドを落としたコピーを返す。
func (p Product) Public() Product {
	p.ProductLink = ""
	return p
}

// FramePrice は size の割引後額装価格。未設定サイズは 0。
func (p Product) FramePrice(size pricing.SizeCode) (decimal.Decimal, error) {
	return p.SizeSpecificPricing.FinalFramePrice(size)
}

// HasSize は Sizes に size が含まれるか。
func (p Product) HasSize(size pricing.SizeCode) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Recompute は Price/Discount から FinalPrice を再導出する（ストアからの読込時など）。
func (p *Product) Recompute() {
	if final, err := pricing.FinalPrice(p.Price, p.Discount); err == nil {
		p.FinalPrice = final
	}
}

// ===============================
// Helpers
// ===============================

// IsHTTPURL は s が絶対 http(s) URL かを判定する。
func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsNotFound は errors.Is(err, ErrNotFound) のショートカット
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
