package entity

import "time"

// MetricSummary is the headline card set over a record subset.
type MetricSummary struct {
	TotalSpent       float64 `json:"total_spent"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	TotalLeads       int64   `json:"total_leads"`
	TotalOrders      int64   `json:"total_orders"`
	ROAS             float64 `json:"roas"`
	CTR              float64 `json:"ctr"`
	CPL              float64 `json:"cpl"`
	CPO              float64 `json:"cpo"`
}

// PublisherSpend is one slice of the publisher spend breakdown.
type PublisherSpend struct {
	Publisher string  `json:"publisher"`
	Spend     float64 `json:"spend"`
	Share     float64 `json:"share"`
}

// CampaignComparison lists the campaigns selling one product.
type CampaignComparison struct {
	GoodsName string                `json:"goods_name"`
	Campaigns []CampaignPerformance `json:"campaigns"`
}

// DrilldownSummary holds the totals of the drill-down analysis window.
type DrilldownSummary struct {
	TotalSpend       float64 `json:"total_spend"`
	TotalConversions int64   `json:"total_conversions"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	TotalLeads       int64   `json:"total_leads"`
	CPA              float64 `json:"cpa"`
	ROAS             float64 `json:"roas"`
	CTR              float64 `json:"ctr"`
	ConversionRate   float64 `json:"conversion_rate"`
	AvgDailySpend    float64 `json:"avg_daily_spend"`
}

// Drilldown is the complete analysis of one product over a timeframe.
type Drilldown struct {
	GoodsName     string                `json:"goods_name"`
	Target        TargetReference       `json:"target"`
	Snapshot      EntityMetricsSnapshot `json:"snapshot"`
	Days          int                   `json:"days"`
	Start         time.Time             `json:"start"`
	End           time.Time             `json:"end"`
	Summary       DrilldownSummary      `json:"summary"`
	Trend         []DailyMetrics        `json:"trend"`
	Comparison    PeriodComparison      `json:"comparison"`
	Rolling       RollingSummary        `json:"rolling"`
	Targets       PerformanceTargets    `json:"targets"`
	Alerts        []Alert               `json:"alerts"`
	Campaigns     []CampaignPerformance `json:"campaigns"`
	Indicators    PerformanceIndicators `json:"indicators"`
	Detailed      []DetailedRow         `json:"detailed,omitempty"`
	Optimizations []Optimization        `json:"optimizations,omitempty"`
}
