package entity

// TrendUnit is the bucket size of a trend series.
type TrendUnit string

const (
	TrendDay   TrendUnit = "day"
	TrendWeek  TrendUnit = "week"
	TrendMonth TrendUnit = "month"
)

// ParseTrendUnit validates a bucket unit string.
func ParseTrendUnit(s string) (TrendUnit, bool) {
	switch TrendUnit(s) {
	case TrendDay, TrendWeek, TrendMonth:
		return TrendUnit(s), true
	}
	return "", false
}

// DailyMetrics is one bucket of a trend series. Despite the name the bucket
// may cover a week or a month; Key identifies it.
type DailyMetrics struct {
	Key            string  `json:"key"`
	Spend          float64 `json:"spend"`
	Conversions    int64   `json:"conversions"`
	Revenue        float64 `json:"revenue"`
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	CPA            float64 `json:"cpa"`
	ROAS           float64 `json:"roas"`
	CTR            float64 `json:"ctr"`
	ConversionRate float64 `json:"conversion_rate"`
}

// PeriodComparison holds the percentage change between the two halves of a trend.
type PeriodComparison struct {
	Spend       float64 `json:"spend"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	CPA         float64 `json:"cpa"`
	ROAS        float64 `json:"roas"`
}

// DetailedRow is a (bucket, campaign) row of the detailed breakdown table.
type DetailedRow struct {
	Key             string  `json:"key"`
	Label           string  `json:"label"`
	CampaignName    string  `json:"campaign_name"`
	Spend           float64 `json:"spend"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	CTR             float64 `json:"ctr"`
	PlatformResults float64 `json:"platform_results"`
	PlatformCPA     float64 `json:"platform_cpa"`
	Orders          int64   `json:"orders"`
	Revenue         float64 `json:"revenue"`
	Variance        float64 `json:"variance"`
}
