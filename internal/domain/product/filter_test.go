package product

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MTalha250/Varzan/internal/domain/common"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

func catalogue() []Product {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{ID: "p1", Type: TypePrint, Name: "Bridal Mehndi", Category: "Bridal", CategoryID: "c1",
			FinalPrice: decimal.NewFromInt(90), InStock: true, Sizes: []pricing.SizeCode{pricing.SizeA4}, CreatedAt: base},
		{ID: "p2", Type: TypeTemplate, Name: "Nikah Invite", Description: "minimal bridal card", Category: "Invites", CategoryID: "c2",
			FinalPrice: decimal.NewFromInt(20), InStock: true, CreatedAt: base.Add(time.Hour)},
		{ID: "p3", Type: TypePrint, Name: "Qawwali Night", Category: "Events", CategoryID: "c3",
			FinalPrice: decimal.NewFromInt(45), InStock: false, Sizes: []pricing.SizeCode{pricing.SizeA3, pricing.SizeA5}, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p4", Type: TypePrint, Name: "Barat Poster", Category: "Bridal", CategoryID: "c1",
			FinalPrice: decimal.NewFromInt(150), InStock: true, InHighlight: true, Sizes: []pricing.SizeCode{pricing.SizeA3}, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(items []Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestSelect_Predicates(t *testing.T) {
	min, max := decimal.NewFromInt(45), decimal.NewFromInt(90)
	yes := true

	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{"all sorted in-stock first then newest", Filter{}, []string{"p4", "p2", "p1", "p3"}},
		{"query is case-insensitive over name and description", Filter{Query: "BRIDAL"}, []string{"p4", "p2", "p1"}},
		{"query matches type", Filter{Query: "templ"}, []string{"p2"}},
		{"category exact", Filter{Category: "Bridal"}, []string{"p4", "p1"}},
		{"category is not substring", Filter{Category: "Brid"}, []string{}},
		{"category and query", Filter{Category: "Bridal", Query: "poster"}, []string{"p4"}},
		{"type", Filter{Type: TypeTemplate}, []string{"p2"}},
		{"sizes intersect", Filter{Sizes: []pricing.SizeCode{pricing.SizeA5, pricing.SizeA4}}, []string{"p1", "p3"}},
		{"price inclusive", Filter{Min: &min, Max: &max}, []string{"p1", "p3"}},
		{"min only", Filter{Min: &max}, []string{"p4", "p1"}},
		{"highlight", Filter{InHighlight: &yes}, []string{"p4"}},
		{"exclude", Filter{CategoryID: "c1", ExcludeID: "p1"}, []string{"p4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Select(catalogue(), tt.f, common.Page{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Items))
			assert.Equal(t, len(tt.want), res.TotalCount)
		})
	}
}

func TestSelect_UnknownCategoryIsEmpty(t *testing.T) {
	res, err := Select(catalogue(), Filter{Category: "Nope"}, common.Page{Number: 1, PerPage: 12})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, 0, res.TotalPages)
}

func TestSelect_MinGreaterThanMax(t *testing.T) {
	min, max := decimal.NewFromInt(100), decimal.NewFromInt(10)
	_, err := Select(catalogue(), Filter{Min: &min, Max: &max}, common.Page{})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestSelect_SecondPage(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	all := make([]Product, 0, 20)
	for i := 0; i < 20; i++ {
		all = append(all, Product{
			ID:        fmt.Sprintf("p%02d", i),
			InStock:   true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	res, err := Select(all, Filter{}, common.Page{Number: 2, PerPage: 12})
	require.NoError(t, err)
	require.Len(t, res.Items, 8)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 20, res.TotalCount)
	// newest first: page 2 holds the 8 oldest
	assert.Equal(t, "p07", res.Items[0].ID)
	assert.Equal(t, "p00", res.Items[7].ID)
}

func TestSelect_PageInvariants(t *testing.T) {
	all := catalogue()
	for limit := 1; limit <= 5; limit++ {
		for page := 1; page <= 5; page++ {
			res, err := Select(all, Filter{}, common.Page{Number: page, PerPage: limit})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(res.Items), limit)
			assert.Equal(t, (len(all)+limit-1)/limit, res.TotalPages)
		}
	}
}

func TestFilter_Exact(t *testing.T) {
	yes := true
	lo := decimal.NewFromInt(10)

	assert.True(t, Filter{}.Exact())
	assert.True(t, Filter{Category: "Bridal", Type: TypePrint, InStock: &yes, InHighlight: &yes}.Exact())
	assert.False(t, Filter{Query: "poster"}.Exact())
	assert.False(t, Filter{Min: &lo}.Exact())
	assert.False(t, Filter{Sizes: []pricing.SizeCode{pricing.SizeA3}}.Exact())
	assert.False(t, Filter{ExcludeID: "p1"}.Exact())
}
