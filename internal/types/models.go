package types

import "strings"

// TrackType tags a product's strategic role.
type TrackType string

const (
	TrackPrimary   TrackType = "primary"
	TrackSecondary TrackType = "secondary"
	TrackWatch     TrackType = "watch"
)

// PlatformType separates social channels from marketplaces.
type PlatformType string

const (
	PlatformSocial    PlatformType = "social"
	PlatformEcommerce PlatformType = "e-commerce"
)

// Emotion is a canonical emotion label.
type Emotion string

const (
	EmotionExcitement   Emotion = "excitement"
	EmotionCuriosity    Emotion = "curiosity"
	EmotionSatisfaction Emotion = "satisfaction"
	EmotionNeutral      Emotion = "neutral"
	EmotionWorry        Emotion = "worry"
	EmotionConfusion    Emotion = "confusion"
)

// TopicPrice is the topic inspected for price sensitivity.
const TopicPrice = "price"

type ProductRecord struct {
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductCategory    string    `json:"product_category"`
	ProductSubcategory string    `json:"product_subcategory,omitempty"`
	TrackType          TrackType `json:"track_type"`
	Platform           string    `json:"platform,omitempty"`

	Views          float64 `json:"views"`
	Likes          float64 `json:"likes,omitempty"`
	EngagementRate float64 `json:"engagement_rate"`
	PriceAvg       float64 `json:"price_avg"`
	PriceMin       float64 `json:"price_min"`
	PriceMax       float64 `json:"price_max"`
	SalesVolume    float64 `json:"sales_volume"`
	ConversionRate float64 `json:"conversion_rate"`
	ProfitMargin   float64 `json:"profit_margin"`

	SentimentPositivePct float64 `json:"sentiment_positive_pct,omitempty"`
	SentimentNeutralPct  float64 `json:"sentiment_neutral_pct,omitempty"`
	SentimentNegativePct float64 `json:"sentiment_negative_pct,omitempty"`

	TargetAudience   string `json:"target_audience,omitempty"`
	MarketPotential  string `json:"market_potential,omitempty"`
	CompetitionLevel string `json:"competition_level,omitempty"`
	ActionPriority   string `json:"action_priority,omitempty"`

	ViewsScore      float64 `json:"views_score"`
	EngagementScore float64 `json:"engagement_score"`
	TrendScore      float64 `json:"trend_score"`
	DemandScore     float64 `json:"demand_score"`

	EmotionScore    float64 `json:"emotion_score"`
	GrowthRate      float64 `json:"growth_rate"`
	ROIEstimate     float64 `json:"roi_estimate"`
	RevenueEstimate float64 `json:"revenue_estimate"`
	TotalScore      float64 `json:"total_score"`
}

type EmotionRecord struct {
	Emotion        Emotion  `json:"emotion"`
	Percentage     float64  `json:"percentage"`
	Count          int      `json:"count"`
	Keywords       []string `json:"keywords"`
	SampleComments []string `json:"sample_comments"`
}

type TopicEmotionRecord struct {
	Topic      string   `json:"topic"`
	Emotion    Emotion  `json:"emotion"`
	Percentage float64  `json:"percentage"`
	Count      int      `json:"count"`
	Keywords   []string `json:"keywords"`
}

type PlatformRecord struct {
	Platform          string       `json:"platform"`
	PlatformType      PlatformType `json:"platform_type"`
	GrowthRate        float64      `json:"growth_rate"`
	AvgEngagementRate float64      `json:"avg_engagement_rate"`
	ProductCount      int          `json:"product_count"`
	TotalViews        float64      `json:"total_views"`
}

// Overrides carries hand-written recommendations that replace the generated ones.
type Overrides struct {
	Recommendations []string `json:"recommendations"`
}

// WeeklyDataset is everything one analysis pass reads.
type WeeklyDataset struct {
	Week      int                  `json:"week"`
	Products  []ProductRecord      `json:"products"`
	Emotions  []EmotionRecord      `json:"emotions"`
	Topics    []TopicEmotionRecord `json:"topics"`
	Platforms []PlatformRecord     `json:"platforms"`
	Overrides *Overrides           `json:"overrides,omitempty"`
}

var emotionAliases = map[string]Emotion{
	"excitement":   EmotionExcitement,
	"excited":      EmotionExcitement,
	"兴奋":           EmotionExcitement,
	"curiosity":    EmotionCuriosity,
	"curious":      EmotionCuriosity,
	"好奇":           EmotionCuriosity,
	"satisfaction": EmotionSatisfaction,
	"satisfied":    EmotionSatisfaction,
	"满意":           EmotionSatisfaction,
	"neutral":      EmotionNeutral,
	"中性":           EmotionNeutral,
	"worry":        EmotionWorry,
	"worried":      EmotionWorry,
	"担忧":           EmotionWorry,
	"confusion":    EmotionConfusion,
	"confused":     EmotionConfusion,
	"困惑":           EmotionConfusion,
}

// ParseEmotion maps a raw label to its canonical form. Unknown labels are
// kept lower-cased so the set stays extensible.
func ParseEmotion(s string) Emotion {
	l := strings.ToLower(strings.TrimSpace(s))
	if e, ok := emotionAliases[l]; ok {
		return e
	}
	return Emotion(l)
}

// ParseTrackType defaults to watch for anything unrecognised.
func ParseTrackType(s string) TrackType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "main", "主轨道":
		return TrackPrimary
	case "secondary", "副轨道":
		return TrackSecondary
	default:
		return TrackWatch
	}
}

func ParsePlatformType(s string) PlatformType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e-commerce", "ecommerce", "marketplace", "电商":
		return PlatformEcommerce
	default:
		return PlatformSocial
	}
}

// NormalizeTopic lower-cases a topic and folds 价格 into price.
func NormalizeTopic(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "价格" {
		return TopicPrice
	}
	return t
}

// Normalized returns a copy of ds with every label in canonical form, as the
// table parsers would produce it.
func (ds WeeklyDataset) Normalized() WeeklyDataset {
	out := ds
	out.Products = make([]ProductRecord, len(ds.Products))
	for i, p := range ds.Products {
		p.TrackType = ParseTrackType(string(p.TrackType))
		out.Products[i] = p
	}
	out.Emotions = make([]EmotionRecord, len(ds.Emotions))
	for i, e := range ds.Emotions {
		e.Emotion = ParseEmotion(string(e.Emotion))
		out.Emotions[i] = e
	}
	out.Topics = make([]TopicEmotionRecord, len(ds.Topics))
	for i, t := range ds.Topics {
		t.Topic = NormalizeTopic(t.Topic)
		t.Emotion = ParseEmotion(string(t.Emotion))
		out.Topics[i] = t
	}
	out.Platforms = make([]PlatformRecord, len(ds.Platforms))
	for i, p := range ds.Platforms {
		p.PlatformType = ParsePlatformType(string(p.PlatformType))
		out.Platforms[i] = p
	}
	return out
}
