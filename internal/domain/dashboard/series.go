// internal/domain/dashboard/series.go
package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// WindowMonths は月次売上の集計窓（当月 + 過去 11 ヶ月）
const WindowMonths = 12

// MonthKey は暦月
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func KeyOf(t time.Time) MonthKey {
	t = t.UTC()
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// MonthlyBucket は 1 ヶ月分の成功決済の合計と件数
type MonthlyBucket struct {
	ID      MonthKey        `json:"_id"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// WindowStart は now を含む 12 ヶ月窓の開始（11 ヶ月前の 1 日 00:00 UTC）
func WindowStart(now time.Time) time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(WindowMonths - 1), 0)
}

// Accumulator はメモリ上で月次バケットを積み上げる（Firestore 側の集計用）。
// from より前の時刻は無視する。結果は疎（活動のない月は含まない）。
type Accumulator struct {
	from    time.Time
	buckets map[MonthKey]*MonthlyBucket
}

func NewAccumulator(from time.Time) *Accumulator {
	return &Accumulator{
		from:    from.UTC(),
		buckets: map[MonthKey]*MonthlyBucket{},
	}
}

func (a *Accumulator) Add(at time.Time, amount decimal.Decimal) {
	if at.Before(a.from) {
		return
	}
	k := KeyOf(at)
	b, ok := a.buckets[k]
	if !ok {
		b = &MonthlyBucket{ID: k, Revenue: decimal.Zero}
		a.buckets[k] = b
	}
	b.Revenue = b.Revenue.Add(amount)
	b.Count++
}

// Buckets は暦順に並べた疎な系列
func (a *Accumulator) Buckets() []MonthlyBucket {
	out := make([]MonthlyBucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		out = append(out, *b)
	}
	SortBuckets(out)
	return out
}

func SortBuckets(bs []MonthlyBucket) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].ID.Before(bs[j].ID) })
}

// ZeroFill は疎な系列から now を終端とする 12 点の連続系列を作る。
// API は疎な系列を返すので、表示側（adminctl など）がこれを呼ぶ。
func ZeroFill(buckets []MonthlyBucket, now time.Time) []MonthlyBucket {
	byKey := make(map[MonthKey]MonthlyBucket, len(buckets))
	for _, b := range buckets {
		byKey[b.ID] = b
	}
	start := WindowStart(now)
	out := make([]MonthlyBucket, 0, WindowMonths)
	for i := 0; i < WindowMonths; i++ {
		k := KeyOf(start.AddDate(0, i, 0))
		if b, ok := byKey[k]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, MonthlyBucket{ID: k, Revenue: decimal.Zero})
	}
	return out
}
