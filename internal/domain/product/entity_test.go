package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func printInput() Input {
	return Input{
		Type:        TypePrint,
		Name:        "Sample",
		Price:       dec("100"),
		Discount:    decimal.NewFromInt(10),
		CategoryID:  "cat-1",
		Category:    "Bridal",
		Images:      []string{"https://cdn.example.com/a.jpg"},
		Sizes:       []pricing.SizeCode{pricing.SizeA4},
		FramedPrint: true,
		SizeSpecificPricing: pricing.SizePricingMap{
			pricing.SizeA4: {FramePrice: decimal.NewFromInt(50), FrameDiscount: decimal.Zero},
		},
	}
}

func TestApply_PrintScenario(t *testing.T) {
	in := printInput().Normalize()
	require.NoError(t, in.Validate())

	var p Product
	require.NoError(t, p.Apply(in))

	assert.True(t, decimal.NewFromInt(90).Equal(p.FinalPrice))

	a4, err := p.FramePrice(pricing.SizeA4)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(a4))

	a3, err := p.FramePrice(pricing.SizeA3)
	require.NoError(t, err)
	assert.True(t, a3.IsZero())

	assert.True(t, p.InStock, "inStock defaults to true")
	assert.False(t, p.InHighlight)
	assert.Equal(t, "Bridal", p.Category)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, p.Images)
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"name", func(in *Input) { in.Name = " " }, "name"},
		{"price", func(in *Input) { in.Price = nil }, "price"},
		{"category", func(in *Input) { in.CategoryID, in.Category = "", "" }, "category"},
		{"images", func(in *Input) { in.Images = nil }, "images"},
		{"type", func(in *Input) { in.Type = "" }, "type"},
		{"frame price", func(in *Input) { in.SizeSpecificPricing = nil }, "sizeSpecificPricing.A4.framePrice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := printInput()
			tt.mutate(&in)
			err := in.Normalize().Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_PrintFormats(t *testing.T) {
	in := printInput()
	in.FramedPrint = false
	assert.ErrorIs(t, in.Normalize().Validate(), ErrNoPrintFormat)

	in = printInput()
	in.DigitalPrint = true
	err := in.Normalize().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "highQualityPrints.A4")

	in.HighQualityPrints = map[pricing.SizeCode]string{pricing.SizeA4: "https://cdn.example.com/hq-a4.png"}
	assert.NoError(t, in.Normalize().Validate())
}

func TestValidate_DiscountOutOfRange(t *testing.T) {
	in := printInput()
	in.Discount = decimal.NewFromInt(101)
	assert.ErrorIs(t, in.Normalize().Validate(), common.ErrInvalidArgument)
}

func TestValidate_TemplateLink(t *testing.T) {
	in := Input{
		Type:        TypeTemplate,
		Name:        "Wedding invite",
		Price:       dec("25"),
		Category:    "Invites",
		Images:      []string{"https://cdn.example.com/t.jpg"},
		ProductLink: "not a url",
	}
	assert.ErrorIs(t, in.Normalize().Validate(), ErrInvalidLink)

	in.ProductLink = "ftp://example.com/file"
	assert.ErrorIs(t, in.Normalize().Validate(), ErrInvalidLink)

	in.ProductLink = "https://www.canva.com/design/abc"
	require.NoError(t, in.Normalize().Validate())

	var p Product
	require.NoError(t, p.Apply(in.Normalize()))
	assert.Equal(t, "https://www.canva.com/design/abc", p.ProductLink)
	assert.Empty(t, p.Public().ProductLink)
	assert.Nil(t, p.Sizes)
}

func TestNormalize_SizeCodes(t *testing.T) {
	in := printInput()
	in.Sizes = []pricing.SizeCode{"a4"}
	assert.Equal(t, []pricing.SizeCode{pricing.SizeA4}, in.Normalize().Sizes)
	assert.Equal(t, []pricing.SizeCode{"a4"}, in.Sizes)
}
