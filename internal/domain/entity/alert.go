package entity

// AlertSeverity ranks how urgent an alert is.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert is an anomaly detected from rolling metrics.
type Alert struct {
	Severity AlertSeverity `json:"severity"`
	Metric   string        `json:"metric"`
	Change   float64       `json:"change"`
	Message  string        `json:"message"`
}

// RollingMetrics holds per-day averages over a window plus ratios over its totals.
type RollingMetrics struct {
	Spend          float64 `json:"spend"`
	Conversions    float64 `json:"conversions"`
	Revenue        float64 `json:"revenue"`
	CPA            float64 `json:"cpa"`
	ROAS           float64 `json:"roas"`
	ConversionRate float64 `json:"conversion_rate"`
}

// RollingSummary is the set of rolling windows shown on the drill-down.
type RollingSummary struct {
	ThreeDay    RollingMetrics `json:"three_day"`
	SevenDay    RollingMetrics `json:"seven_day"`
	FourteenDay RollingMetrics `json:"fourteen_day"`
	ThirtyDay   RollingMetrics `json:"thirty_day"`
	MTD         RollingMetrics `json:"mtd"`
}
