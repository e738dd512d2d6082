// internal/types/report_models.go
package types

import "fmt"

// --------------------------------------------
// Errors and warnings raised during a pass
// --------------------------------------------

// MissingDataError reports a required column absent from an input table.
type MissingDataError struct {
	Table  string
	Column string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing required column %q in %s table", e.Column, e.Table)
}

type WarningKind string

const (
	WarnEmptyGroup      WarningKind = "empty_group"
	WarnDegenerateScore WarningKind = "degenerate_score"
)

// Warning is a non-fatal data-quality signal surfaced with the report.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject"`
	Message string      `json:"message"`
}

// --------------------------------------------
// Aggregates
// --------------------------------------------
type GroupStat struct {
	Key            string  `json:"key"`
	MeanTotalScore float64 `json:"mean_total_score"`
	MeanGrowthRate float64 `json:"mean_growth_rate"`
	RevenueSum     float64 `json:"revenue_sum"`
	Count          int     `json:"count"`
}

type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

type PlatformHighlight struct {
	Platform string  `json:"platform"`
	Value    float64 `json:"value"`
	Insight  string  `json:"insight,omitempty"`
}

type PlatformComparison struct {
	TopGrowth       PlatformHighlight `json:"top_growth"`
	TopEngagement   PlatformHighlight `json:"top_engagement"`
	EcommerceLeader PlatformHighlight `json:"ecommerce_leader"`
}

// --------------------------------------------
// Classification
// --------------------------------------------
type HealthDetails struct {
	TotalScore     float64 `json:"total_score"`
	Status         string  `json:"status"`
	PositivePct    float64 `json:"positive_pct"`
	NegativePct    float64 `json:"negative_pct"`
	IsHealthy      bool    `json:"is_healthy"`
	Recommendation string  `json:"recommendation"`
}

type ProductOpportunity struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quadrant     string `json:"quadrant"`
	EmotionLevel string `json:"emotion_level"`
}

// --------------------------------------------
// Insights
// --------------------------------------------
type InsightEvidence struct {
	Emotion     Emotion  `json:"emotion"`
	Topic       string   `json:"topic"`
	Percentage  float64  `json:"percentage"`
	SampleCount int      `json:"sample_count"`
	Keywords    []string `json:"keywords"`
}

type TopicInsight struct {
	Title    string          `json:"title"`
	Evidence InsightEvidence `json:"evidence"`
	Solution string          `json:"solution"`
}

type PriceSensitivity struct {
	PriceWorryPct   float64       `json:"price_worry_pct"`
	PriceWorryCount int           `json:"price_worry_count"`
	IsSensitive     bool          `json:"is_sensitive"`
	Distribution    []BucketCount `json:"price_distribution"`
	BestPriceRange  string        `json:"best_price_range"`
	AvgPrice        float64       `json:"avg_price"`
	Recommendation  string        `json:"recommendation"`
}

type Recommendation struct {
	Priority           int       `json:"priority"`
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductCategory    string    `json:"product_category"`
	ProductSubcategory string    `json:"product_subcategory,omitempty"`
	TrackType          TrackType `json:"track_type"`
	TotalScore         float64   `json:"total_score"`
	EmotionScore       float64   `json:"emotion_score"`
	GrowthRate         float64   `json:"growth_rate"`
	PriceAvg           float64   `json:"price_avg"`
	SalesVolume        float64   `json:"sales_volume"`
	RevenueEstimate    float64   `json:"revenue_estimate"`
	ROIEstimate        float64   `json:"roi_estimate"`
	ConversionRate     float64   `json:"conversion_rate"`
	TargetAudience     string    `json:"target_audience,omitempty"`
	Reason             string    `json:"recommendation_reason"`
}

// --------------------------------------------
// Narration
// --------------------------------------------
type PhasePlan struct {
	Phase           string   `json:"phase"`
	Tasks           []string `json:"tasks"`
	Budget          string   `json:"budget"`
	ExpectedOutcome string   `json:"expected_outcome"`
}

type ActionPlan struct {
	Priority    int         `json:"priority"`
	ProductName string      `json:"product_name"`
	TrackType   TrackType   `json:"track_type"`
	Phases      []PhasePlan `json:"actions"`
}

type StrategicCard struct {
	Category       string   `json:"category"`
	Priority       string   `json:"priority"`
	Issue          string   `json:"issue"`
	Recommendation string   `json:"recommendation"`
	Actions        []string `json:"actions"`
	ExpectedImpact string   `json:"expected_impact"`
	Timeline       string   `json:"timeline"`
}

type PriorityMatrix struct {
	DoNow         []StrategicCard `json:"do_now"`
	PlanNext      []StrategicCard `json:"plan_next"`
	ConsiderLater []StrategicCard `json:"consider_later"`
}

type KPIs struct {
	TotalMentions     int64   `json:"total_mentions"`
	AvgEmotionScore   float64 `json:"avg_emotion_score"`
	AvgGrowthRate     float64 `json:"avg_growth_rate"`
	TotalRevenue      int64   `json:"total_revenue"`
	AvgConversionRate float64 `json:"avg_conversion_rate"`
}

type InsightBlock struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

type ExecutiveSummary struct {
	CoreGoal        string         `json:"core_goal"`
	Insights        []InsightBlock `json:"insights"`
	Recommendations []string       `json:"recommendations"`
}

// --------------------------------------------
// Full output of one analysis pass
// --------------------------------------------
type Report struct {
	Week               int                  `json:"week"`
	ProductCount       int                  `json:"product_count"`
	Products           []ProductRecord      `json:"products"`
	Categories         []GroupStat          `json:"categories"`
	PlatformGroups     []GroupStat          `json:"platform_groups"`
	PriceBuckets       []GroupStat          `json:"price_buckets"`
	Health             HealthDetails        `json:"emotion_health"`
	TopicInsights      []TopicInsight       `json:"topic_insights"`
	PriceSensitivity   PriceSensitivity     `json:"price_sensitivity"`
	PlatformComparison PlatformComparison   `json:"platform_comparison"`
	Recommendations    []Recommendation     `json:"recommendations"`
	ActionPlans        []ActionPlan         `json:"action_plans"`
	Opportunities      []ProductOpportunity `json:"opportunities"`
	StrategicCards     []StrategicCard      `json:"strategic_cards"`
	PriorityMatrix     PriorityMatrix       `json:"priority_matrix"`
	KPIs               KPIs                 `json:"kpis"`
	Summary            ExecutiveSummary     `json:"executive_summary"`
	Warnings           []Warning            `json:"warnings"`
}
