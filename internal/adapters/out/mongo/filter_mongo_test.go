// internal/adapters/out/mongo/filter_mongo_test.go
package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MTalha250/Varzan/internal/domain/common"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCompileProductFilter_Empty(t *testing.T) {
	assert.Empty(t, CompileProductFilter(productdom.Filter{}))
}

func TestCompileProductFilter_AllFields(t *testing.T) {
	yes := true
	q := CompileProductFilter(productdom.Filter{
		Query:       "a.b",
		Category:    "Movies",
		Type:        productdom.TypePrint,
		Sizes:       []pricing.SizeCode{pricing.SizeA3, pricing.SizeA4},
		Min:         dec("10.001"),
		Max:         dec("20.999"),
		InHighlight: &yes,
		ExcludeID:   "p1",
	})

	assert.Equal(t, "Movies", q["category"])
	assert.Equal(t, "print", q["type"])
	assert.Equal(t, true, q["inHighlight"])
	assert.Equal(t, bson.M{"$ne": "p1"}, q["_id"])
	assert.Equal(t, bson.M{"$in": []string{"A3", "A4"}}, q["sizes"])
	assert.Equal(t, bson.M{"$gte": int64(1001), "$lte": int64(2099)}, q["finalPriceCents"])

	or, ok := q["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 4)
	// 正規表現のメタ文字はエスケープされる
	assert.Equal(t, bson.M{"name": bson.M{"$regex": `a\.b`, "$options": "i"}}, or[0])
}

func TestCompileOrderFilter_RangeAndSearch(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := CompileOrderFilter(orderdom.Filter{
		Status: orderdom.StatusPending,
		Search: "ali",
		Range:  common.TimeRange{From: &from},
	})
	assert.Equal(t, "pending", q["status"])
	assert.Equal(t, bson.M{"$gte": from}, q["createdAt"])
	assert.Len(t, q["$or"], 4)
}
