// internal/adapters/out/docmodel/product.go
package docmodel

import (
	"time"

	"github.com/MTalha250/Varzan/internal/domain/pricing"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// Product は products コレクションの保存形。Firestore はドキュメント ID、Mongo は _id に ID を持つ。
type Product struct {
	ID              string   `firestore:"-" bson:"_id"`
	Type            string   `firestore:"type" bson:"type"`
	Name            string   `firestore:"name" bson:"name"`
	Description     string   `firestore:"description" bson:"description"`
	PriceCents      int64    `firestore:"priceCents" bson:"priceCents"`
	Discount        string   `firestore:"discount" bson:"discount"`
	FinalPriceCents int64    `firestore:"finalPriceCents" bson:"finalPriceCents"`
	CategoryID      string   `firestore:"categoryId" bson:"categoryId"`
	Category        string   `firestore:"category" bson:"category"`
	Images          []string `firestore:"images" bson:"images"`
	Details         []string `firestore:"details" bson:"details"`
	InStock         bool     `firestore:"inStock" bson:"inStock"`
	InHighlight     bool     `firestore:"inHighlight" bson:"inHighlight"`

	Sizes               []string               `firestore:"sizes" bson:"sizes"`
	DigitalPrint        bool                   `firestore:"digitalPrint" bson:"digitalPrint"`
	FramedPrint         bool                   `firestore:"framedPrint" bson:"framedPrint"`
	SizeSpecificPricing map[string]SizePricing `firestore:"sizeSpecificPricing,omitempty" bson:"sizeSpecificPricing,omitempty"`
	HighQualityPrints   map[string]string      `firestore:"highQualityPrints,omitempty" bson:"highQualityPrints,omitempty"`
	ProductLink         string                 `firestore:"productLink" bson:"productLink"`

	CreatedAt time.Time `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" bson:"updatedAt"`
}

type SizePricing struct {
	FramePriceCents int64  `firestore:"framePriceCents" bson:"framePriceCents"`
	FrameDiscount   string `firestore:"frameDiscount" bson:"frameDiscount"`
}

func FromProduct(p productdom.Product) Product {
	d := Product{
		ID:              p.ID,
		Type:            string(p.Type),
		Name:            p.Name,
		Description:     p.Description,
		PriceCents:      cents(p.Price),
		Discount:        percent(p.Discount),
		FinalPriceCents: cents(p.FinalPrice),
		CategoryID:      p.CategoryID,
		Category:        p.Category,
		Images:          nonNil(p.Images),
		Details:         nonNil(p.Details),
		InStock:         p.InStock,
		InHighlight:     p.InHighlight,
		Sizes:           []string{},
		DigitalPrint:    p.DigitalPrint,
		FramedPrint:     p.FramedPrint,
		ProductLink:     p.ProductLink,
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
	for _, s := range p.Sizes {
		d.Sizes = append(d.Sizes, string(s))
	}
	if len(p.SizeSpecificPricing) > 0 {
		d.SizeSpecificPricing = make(map[string]SizePricing, len(p.SizeSpecificPricing))
		for size, sp := range p.SizeSpecificPricing {
			d.SizeSpecificPricing[string(size)] = SizePricing{
				FramePriceCents: cents(sp.FramePrice),
				FrameDiscount:   percent(sp.FrameDiscount),
			}
		}
	}
	if len(p.HighQualityPrints) > 0 {
		d.HighQualityPrints = make(map[string]string, len(p.HighQualityPrints))
		for size, u := range p.HighQualityPrints {
			d.HighQualityPrints[string(size)] = u
		}
	}
	return d
}

// ToDomain は FinalPrice を保存値ではなく Price/Discount から再導出する。
func (d Product) ToDomain() productdom.Product {
	p := productdom.Product{
		ID:           d.ID,
		Type:         productdom.Type(d.Type),
		Name:         d.Name,
		Description:  d.Description,
		Price:        fromCents(d.PriceCents),
		Discount:     parsePercent(d.Discount),
		FinalPrice:   fromCents(d.FinalPriceCents),
		CategoryID:   d.CategoryID,
		Category:     d.Category,
		Images:       nonNil(d.Images),
		Details:      nonNil(d.Details),
		InStock:      d.InStock,
		InHighlight:  d.InHighlight,
		DigitalPrint: d.DigitalPrint,
		FramedPrint:  d.FramedPrint,
		ProductLink:  d.ProductLink,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	for _, s := range d.Sizes {
		p.Sizes = append(p.Sizes, pricing.SizeCode(s))
	}
	if len(d.SizeSpecificPricing) > 0 {
		p.SizeSpecificPricing = make(pricing.SizePricingMap, len(d.SizeSpecificPricing))
		for size, sp := range d.SizeSpecificPricing {
			p.SizeSpecificPricing[pricing.SizeCode(size)] = pricing.SizePricing{
				FramePrice:    fromCents(sp.FramePriceCents),
				FrameDiscount: parsePercent(sp.FrameDiscount),
			}
		}
	}
	if len(d.HighQualityPrints) > 0 {
		p.HighQualityPrints = make(map[pricing.SizeCode]string, len(d.HighQualityPrints))
		for size, u := range d.HighQualityPrints {
			p.HighQualityPrints[pricing.SizeCode(size)] = u
		}
	}
	p.Recompute()
	return p
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
