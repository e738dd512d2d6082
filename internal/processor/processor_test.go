package processor

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"opportunity-insights-go/internal/dataset"
	"opportunity-insights-go/internal/types"
)

func product(id string, sub float64, price float64) types.ProductRecord {
	return types.ProductRecord{
		ProductID:       id,
		ProductName:     "Product " + id,
		ProductCategory: "home",
		Platform:        "Etsy",
		PriceAvg:        price,
		ViewsScore:      sub,
		EngagementScore: sub,
		TrendScore:      sub,
		DemandScore:     sub,
		EmotionScore:    30,
	}
}

func weekDataset() types.WeeklyDataset {
	return types.WeeklyDataset{
		Week: 7,
		// Input order differs from score order.
		Products: []types.ProductRecord{
			product("B", 60, 30),
			product("A", 80, 32),
			product("C", 40, 35),
		},
		Emotions: []types.EmotionRecord{
			{Emotion: "excited", Percentage: 100, Count: 40},
		},
		Topics: []types.TopicEmotionRecord{
			{Topic: "price", Emotion: types.EmotionWorry, Percentage: 62, Count: 40, Keywords: []string{"expensive"}},
			{Topic: "quality", Emotion: types.EmotionWorry, Percentage: 30, Count: 10},
		},
		Platforms: []types.PlatformRecord{
			{Platform: "Etsy", PlatformType: types.PlatformEcommerce, GrowthRate: 12},
		},
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	report, err := Analyze(weekDataset(), Options{TopN: 3})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Week != 7 || report.ProductCount != 3 {
		t.Fatalf("unexpected header: week=%d count=%d", report.Week, report.ProductCount)
	}

	var scores []float64
	var priorities []int
	for _, r := range report.Recommendations {
		scores = append(scores, r.TotalScore)
		priorities = append(priorities, r.Priority)
	}
	if !reflect.DeepEqual(scores, []float64{80, 60, 40}) || !reflect.DeepEqual(priorities, []int{1, 2, 3}) {
		t.Fatalf("recommendations = %v / %v", scores, priorities)
	}
	if len(report.ActionPlans) != 3 || report.ActionPlans[0].ProductName != "Product A" {
		t.Errorf("action plans not aligned with recommendations: %+v", report.ActionPlans)
	}

	if report.Health.TotalScore != 75 || !report.Health.IsHealthy {
		t.Errorf("health = %+v", report.Health)
	}
	if len(report.TopicInsights) == 0 || report.TopicInsights[0].Evidence.Topic != "price" {
		t.Errorf("topic insights = %+v", report.TopicInsights)
	}
	if !report.PriceSensitivity.IsSensitive {
		t.Error("62% price worry should be flagged")
	}
	if report.PlatformComparison.EcommerceLeader.Platform != "Etsy" {
		t.Errorf("platform comparison = %+v", report.PlatformComparison)
	}

	// All products sit in the mid bucket.
	if len(report.PriceBuckets) != 1 || report.PriceBuckets[0].Key != "mid" {
		t.Errorf("price buckets = %+v", report.PriceBuckets)
	}
	if len(report.Warnings) != 2 {
		t.Errorf("expected two empty-bucket warnings, got %+v", report.Warnings)
	}
	for _, w := range report.Warnings {
		if w.Kind != types.WarnEmptyGroup {
			t.Errorf("unexpected warning %+v", w)
		}
	}
}

func TestAnalyzeTopN(t *testing.T) {
	report, err := Analyze(weekDataset(), Options{TopN: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Recommendations) != 2 || report.Recommendations[0].TotalScore != 80 || report.Recommendations[1].TotalScore != 60 {
		t.Errorf("top 2 = %+v", report.Recommendations)
	}

	report, err = Analyze(weekDataset(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Recommendations) != DefaultTopN {
		t.Errorf("default top n gave %d recommendations", len(report.Recommendations))
	}
}

func TestAnalyzeIsReproducible(t *testing.T) {
	ds := weekDataset()
	first, err := Analyze(ds, Options{TopN: 3})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Analyze(ds, Options{TopN: 3})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("two passes over the same dataset produced different reports")
	}
	if !reflect.DeepEqual(ds, weekDataset()) {
		t.Error("Analyze modified its input")
	}
}

func TestAnalyzeDegenerateEmotionTable(t *testing.T) {
	ds := weekDataset()
	ds.Emotions = []types.EmotionRecord{{Emotion: types.EmotionWorry, Percentage: 40}}
	report, err := Analyze(ds, Options{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, w := range report.Warnings {
		if w.Kind == types.WarnDegenerateScore {
			found = true
		}
	}
	if !found {
		t.Errorf("expected degenerate_score warning, got %+v", report.Warnings)
	}
}

func TestAnalyzeMissingColumn(t *testing.T) {
	ds := weekDataset()
	for i := range ds.Products {
		ds.Products[i].ProductCategory = ""
	}
	_, err := Analyze(ds, Options{})
	var missing *types.MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDataError, got %v", err)
	}
	if missing.Table != "products" || missing.Column != "product_category" {
		t.Errorf("unexpected error %+v", missing)
	}
}

func TestAnalyzeEmptyProductTable(t *testing.T) {
	tbl, err := dataset.ReadCSV(dataset.TableProducts, strings.NewReader("product_id,product_name,product_category\n"))
	if err != nil {
		t.Fatal(err)
	}
	products, err := dataset.ParseProducts(tbl)
	if err != nil {
		t.Fatalf("ParseProducts: %v", err)
	}
	report, err := Analyze(types.WeeklyDataset{Week: 1, Products: products}, Options{})
	if err != nil {
		t.Fatalf("empty product table should degrade, got %v", err)
	}
	if report.ProductCount != 0 || len(report.Recommendations) != 0 || len(report.ActionPlans) != 0 {
		t.Errorf("expected an empty report, got %d products / %d recommendations", report.ProductCount, len(report.Recommendations))
	}
	if report.KPIs != (types.KPIs{}) {
		t.Errorf("expected zero KPIs, got %+v", report.KPIs)
	}
	found := false
	for _, w := range report.Warnings {
		if w.Kind == types.WarnEmptyGroup && w.Subject == "products" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected empty products warning, got %+v", report.Warnings)
	}
}

func TestAnalyzeNonFiniteCells(t *testing.T) {
	body := "product_id,product_name,product_category,price_avg,sales_volume,profit_margin\n" +
		"1,Lamp,home,nan,10,inf\n" +
		"2,Mug,home,25,40,NaN\n"
	tbl, err := dataset.ReadCSV(dataset.TableProducts, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	products, err := dataset.ParseProducts(tbl)
	if err != nil {
		t.Fatalf("ParseProducts: %v", err)
	}
	report, err := Analyze(types.WeeklyDataset{Week: 3, Products: products}, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := json.Marshal(report); err != nil {
		t.Fatalf("report not encodable: %v", err)
	}
	if len(report.ActionPlans) != 2 {
		t.Fatalf("expected 2 action plans, got %d", len(report.ActionPlans))
	}
	if report.Products[0].RevenueEstimate != 0 || report.Products[1].RevenueEstimate != 1000 {
		t.Errorf("revenue = %v / %v", report.Products[0].RevenueEstimate, report.Products[1].RevenueEstimate)
	}
}
