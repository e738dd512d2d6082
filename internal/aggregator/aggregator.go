// Package aggregator reduces a product table to per-group statistics.
//
// Groups are reported in first-seen order (fixed low/mid/high order for
// price buckets). BestGroup breaks ties on mean score by taking the earliest
// group in that order, so "best group" outputs are reproducible.
package aggregator

import (
	"fmt"

	"opportunity-insights-go/internal/types"
)

const (
	BucketLow  = "low"
	BucketMid  = "mid"
	BucketHigh = "high"
)

// Price bucket boundaries, closed on the lower end.
const (
	midPriceFloor  = 25.0
	highPriceFloor = 40.0
)

var bucketOrder = []string{BucketLow, BucketMid, BucketHigh}

// Key extracts the grouping key of a product.
type Key func(types.ProductRecord) string

var (
	ByCategory    Key = func(p types.ProductRecord) string { return p.ProductCategory }
	ByPlatform    Key = func(p types.ProductRecord) string { return p.Platform }
	ByPriceBucket Key = func(p types.ProductRecord) string { return PriceBucketOf(p.PriceAvg) }
)

func PriceBucketOf(price float64) string {
	switch {
	case price < midPriceFloor:
		return BucketLow
	case price < highPriceFloor:
		return BucketMid
	default:
		return BucketHigh
	}
}

type acc struct {
	score, growth, revenue float64
	n                      int
}

// GroupAggregate groups products by key and reduces each group to mean
// total_score, mean growth_rate, revenue sum and row count. Rows with an
// empty key are grouped under "unknown".
func GroupAggregate(products []types.ProductRecord, key Key) []types.GroupStat {
	order := []string{}
	groups := map[string]*acc{}
	for _, p := range products {
		k := key(p)
		if k == "" {
			k = "unknown"
		}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
			order = append(order, k)
		}
		a.score += p.TotalScore
		a.growth += p.GrowthRate
		a.revenue += p.RevenueEstimate
		a.n++
	}
	out := make([]types.GroupStat, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k].stat(k))
	}
	return out
}

func (a *acc) stat(key string) types.GroupStat {
	st := types.GroupStat{Key: key, RevenueSum: a.revenue, Count: a.n}
	if a.n > 0 {
		st.MeanTotalScore = a.score / float64(a.n)
		st.MeanGrowthRate = a.growth / float64(a.n)
	}
	return st
}

// PriceBucketStats aggregates by price bucket in low/mid/high order. Empty
// buckets are left out and reported as warnings.
func PriceBucketStats(products []types.ProductRecord) ([]types.GroupStat, []types.Warning) {
	byKey := map[string]types.GroupStat{}
	for _, st := range GroupAggregate(products, ByPriceBucket) {
		byKey[st.Key] = st
	}
	out := []types.GroupStat{}
	warns := []types.Warning{}
	for _, b := range bucketOrder {
		st, ok := byKey[b]
		if !ok || st.Count == 0 {
			warns = append(warns, types.Warning{
				Kind:    types.WarnEmptyGroup,
				Subject: "price_bucket:" + b,
				Message: fmt.Sprintf("no products in the %s price bucket; excluded from ranking", b),
			})
			continue
		}
		out = append(out, st)
	}
	return out, warns
}

// BestGroup returns the group with the highest mean total_score. Ties keep the
// first group in slice order. Groups without rows never win.
func BestGroup(stats []types.GroupStat) (types.GroupStat, bool) {
	var best types.GroupStat
	found := false
	for _, st := range stats {
		if st.Count == 0 {
			continue
		}
		if !found || st.MeanTotalScore > best.MeanTotalScore {
			best = st
			found = true
		}
	}
	return best, found
}

// Distribution counts products per price bucket, always listing all three.
func Distribution(products []types.ProductRecord) []types.BucketCount {
	counts := map[string]int{}
	for _, p := range products {
		counts[PriceBucketOf(p.PriceAvg)]++
	}
	out := make([]types.BucketCount, 0, len(bucketOrder))
	for _, b := range bucketOrder {
		out = append(out, types.BucketCount{Bucket: b, Count: counts[b]})
	}
	return out
}

// Mean returns 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// Column projects one numeric field out of the product table.
func Column(products []types.ProductRecord, f func(types.ProductRecord) float64) []float64 {
	out := make([]float64, len(products))
	for i, p := range products {
		out[i] = f(p)
	}
	return out
}
