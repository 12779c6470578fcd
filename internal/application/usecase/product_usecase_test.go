package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newProductFixture(t *testing.T) (*ProductUsecase, *CategoryUsecase, *fakeProducts) {
	t.Helper()
	products := newFakeProducts()
	categories := newFakeCategories()
	return NewProductUsecase(products, categories), NewCategoryUsecase(categories, products), products
}

func bridalInput() productdom.Input {
	return productdom.Input{
		Type:        productdom.TypePrint,
		Name:        "Sample",
		Price:       decPtr(100),
		Discount:    decimal.NewFromInt(10),
		Category:    "Bridal",
		Images:      []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
		Sizes:       []pricing.SizeCode{pricing.SizeA4},
		FramedPrint: true,
		SizeSpecificPricing: pricing.SizePricingMap{
			pricing.SizeA4: {FramePrice: decimal.NewFromInt(50), FrameDiscount: decimal.Zero},
		},
	}
}

func TestProductUsecase_CreateScenario(t *testing.T) {
	ctx := context.Background()
	products, categories, _ := newProductFixture(t)

	cat, err := categories.Create(ctx, catdom.Input{Name: "Bridal", Type: catdom.TypePrint})
	require.NoError(t, err)

	p, err := products.Create(ctx, bridalInput())
	require.NoError(t, err)

	assert.Equal(t, cat.ID, p.CategoryID)
	assert.True(t, decimal.NewFromInt(90).Equal(p.FinalPrice))
	a4, _ := p.FramePrice(pricing.SizeA4)
	assert.True(t, decimal.NewFromInt(50).Equal(a4))
	a3, _ := p.FramePrice(pricing.SizeA3)
	assert.True(t, a3.IsZero())

	// round-trip: editable fields come back unchanged
	got, err := products.GetAdmin(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sample", got.Name)
	assert.Equal(t, "Bridal", got.Category)
	assert.Equal(t, bridalInput().Images, got.Images)
	assert.Equal(t, []pricing.SizeCode{pricing.SizeA4}, got.Sizes)
}

func TestProductUsecase_UnknownCategory(t *testing.T) {
	products, _, _ := newProductFixture(t)
	_, err := products.Create(context.Background(), bridalInput())
	assert.ErrorIs(t, err, productdom.ErrUnknownCategory)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestProductUsecase_DetailRelatedAndPublic(t *testing.T) {
	ctx := context.Background()
	products, categories, _ := newProductFixture(t)

	_, err := categories.Create(ctx, catdom.Input{Name: "Invites", Type: catdom.TypeTemplate})
	require.NoError(t, err)

	var first productdom.Product
	for i := 0; i < 10; i++ {
		p, err := products.Create(ctx, productdom.Input{
			Type:        productdom.TypeTemplate,
			Name:        fmt.Sprintf("Invite %d", i),
			Price:       decPtr(20),
			Category:    "Invites",
			Images:      []string{"https://cdn.example.com/i.jpg"},
			ProductLink: "https://www.canva.com/design/x",
		})
		require.NoError(t, err)
		if i == 0 {
			first = p
		}
	}

	detail, err := products.GetPublic(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Product.ProductLink)
	assert.Len(t, detail.Related, RelatedLimit)
	for _, r := range detail.Related {
		assert.NotEqual(t, first.ID, r.ID)
		assert.Empty(t, r.ProductLink)
	}

	admin, err := products.GetAdmin(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://www.canva.com/design/x", admin.ProductLink)

	_, err = products.GetPublic(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProductUsecase_DeleteRemovesFromResults(t *testing.T) {
	ctx := context.Background()
	products, categories, _ := newProductFixture(t)
	_, err := categories.Create(ctx, catdom.Input{Name: "Bridal", Type: catdom.TypePrint})
	require.NoError(t, err)

	p, err := products.Create(ctx, bridalInput())
	require.NoError(t, err)

	res, err := products.Search(ctx, productdom.Filter{Query: "sample"}, common.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)

	require.NoError(t, products.Delete(ctx, p.ID))
	require.NoError(t, products.Delete(ctx, p.ID), "delete is idempotent")

	res, err = products.Search(ctx, productdom.Filter{Query: "sample"}, common.Page{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalCount)
	assert.Empty(t, res.Items)
}

func TestProductUsecase_UpdateRequiresFullSet(t *testing.T) {
	ctx := context.Background()
	products, categories, _ := newProductFixture(t)
	_, err := categories.Create(ctx, catdom.Input{Name: "Bridal", Type: catdom.TypePrint})
	require.NoError(t, err)
	p, err := products.Create(ctx, bridalInput())
	require.NoError(t, err)

	_, err = products.Update(ctx, p.ID, productdom.Input{Name: "Only name"})
	assert.ErrorIs(t, err, common.ErrValidation)

	in := bridalInput()
	in.Discount = decimal.NewFromInt(50)
	updated, err := products.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(updated.FinalPrice))
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
}

func TestProductUsecase_SearchRejectsInvertedRange(t *testing.T) {
	products, _, _ := newProductFixture(t)
	_, err := products.Search(context.Background(), productdom.Filter{Min: decPtr(10), Max: decPtr(5)}, common.Page{})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestCategoryUsecase_UniqueAndRename(t *testing.T) {
	ctx := context.Background()
	products, categories, store := newProductFixture(t)

	cat, err := categories.Create(ctx, catdom.Input{Name: "Bridal", Type: catdom.TypePrint})
	require.NoError(t, err)

	_, err = categories.Create(ctx, catdom.Input{Name: "bridal", Type: catdom.TypePrint})
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = categories.Create(ctx, catdom.Input{Name: "Bridal", Type: catdom.TypeTemplate})
	require.NoError(t, err, "same name under another type is allowed")

	p, err := products.Create(ctx, bridalInput())
	require.NoError(t, err)

	_, err = categories.Update(ctx, cat.ID, catdom.Input{Name: "Wedding", Type: catdom.TypePrint})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wedding", got.Category)
	assert.Equal(t, cat.ID, got.CategoryID)

	_, err = categories.Create(ctx, catdom.Input{Name: "X"})
	assert.ErrorIs(t, err, common.ErrValidation)
}
