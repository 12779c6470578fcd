// internal/adapters/out/mongo/filter_mongo.go
package mongo

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/MTalha250/Varzan/internal/domain/common"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// ========================================
// Filter → bson
// ========================================

// CompileProductFilter は productdom.Filter.Matches と同じ集合を返す bson 条件を組み立てる。
func CompileProductFilter(f productdom.Filter) bson.M {
	q := bson.M{}
	if f.ExcludeID != "" {
		q["_id"] = bson.M{"$ne": f.ExcludeID}
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.CategoryID != "" {
		q["categoryId"] = f.CategoryID
	}
	if f.Type != "" {
		q["type"] = string(f.Type)
	}
	if f.InHighlight != nil {
		q["inHighlight"] = *f.InHighlight
	}
	if f.InStock != nil {
		q["inStock"] = *f.InStock
	}
	if len(f.Sizes) > 0 {
		sizes := make([]string, 0, len(f.Sizes))
		for _, s := range f.Sizes {
			sizes = append(sizes, string(s))
		}
		q["sizes"] = bson.M{"$in": sizes}
	}

	// finalPriceCents は整数セント。min は切り上げ、max は切り捨てで閉区間を保つ。
	price := bson.M{}
	if f.Min != nil {
		price["$gte"] = f.Min.Shift(2).Ceil().IntPart()
	}
	if f.Max != nil {
		price["$lte"] = f.Max.Shift(2).Floor().IntPart()
	}
	if len(price) > 0 {
		q["finalPriceCents"] = price
	}

	if or := containsAny(f.Query, "name", "description", "category", "type"); or != nil {
		q["$or"] = or
	}
	return q
}

func CompileOrderFilter(f orderdom.Filter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	if r := compileRange(f.Range); r != nil {
		q["createdAt"] = r
	}
	if or := containsAny(f.Search, "_id", "name", "email", "whatsapp"); or != nil {
		q["$or"] = or
	}
	return q
}

func CompilePaymentFilter(f paymentdom.Filter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	if r := compileRange(f.Range); r != nil {
		q["createdAt"] = r
	}
	if or := containsAny(f.Search, "_id", "stripePaymentIntentId", "customerEmail", "customerName"); or != nil {
		q["$or"] = or
	}
	return q
}

// containsAny は fields のいずれかに term を大文字小文字無視で部分一致させる $or 句。
// term は正規表現としてエスケープする。
func containsAny(term string, fields ...string) bson.A {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	pattern := regexp.QuoteMeta(term)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return or
}

func compileRange(r common.TimeRange) bson.M {
	if r.From == nil && r.To == nil {
		return nil
	}
	m := bson.M{}
	if r.From != nil {
		m["$gte"] = r.From.UTC()
	}
	if r.To != nil {
		m["$lte"] = r.To.UTC()
	}
	return m
}

// productSort は (inStock desc, createdAt desc, _id asc)
var productSort = bson.D{{Key: "inStock", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

var createdDesc = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
