package entity

// GroupBy selects the dimension records are aggregated on.
type GroupBy string

const (
	GroupByCampaign GroupBy = "campaign"
	GroupByProduct  GroupBy = "goods"
)

// ParseGroupBy accepts the CLI and API spellings of a grouping mode.
func ParseGroupBy(s string) (GroupBy, bool) {
	switch s {
	case "campaign", "campaigns":
		return GroupByCampaign, true
	case "goods", "product", "products":
		return GroupByProduct, true
	}
	return "", false
}

// PeriodMetrics is the result of a single window computation.
type PeriodMetrics struct {
	CPA         float64 `json:"cpa"`
	Conversions int64   `json:"conversions"`
	Spend       float64 `json:"spend"`
}

// EntityMetricsSnapshot is the per-campaign or per-product dashboard row.
type EntityMetricsSnapshot struct {
	BrandName     string  `json:"brand_name"`
	CampaignName  string  `json:"campaign_name"`
	GoodsName     string  `json:"goods_name"`
	Group         string  `json:"group"`
	TCPA          float64 `json:"tcpa"`
	MonthlyBudget float64 `json:"monthly_budget"`

	ThreeDayCPA     float64 `json:"three_day_cpa"`
	ThreeDayConv    int64   `json:"three_day_conv"`
	SevenDayCPA     float64 `json:"seven_day_cpa"`
	SevenDayConv    int64   `json:"seven_day_conv"`
	FourteenDayCPA  float64 `json:"fourteen_day_cpa"`
	FourteenDayConv int64   `json:"fourteen_day_conv"`
	ThirtyDayCPA    float64 `json:"thirty_day_cpa"`
	ThirtyDayConv   int64   `json:"thirty_day_conv"`
	MTDCPA          float64 `json:"mtd_cpa"`
	MTDConv         int64   `json:"mtd_conv"`

	AmountSpent     float64 `json:"amount_spent"`
	BudgetPacing    float64 `json:"budget_pacing"`
	RemainingBudget float64 `json:"remaining_budget"`
}

// SnapshotFilter holds the table-level filters applied after aggregation.
type SnapshotFilter struct {
	Group               string `json:"group,omitempty"`
	HideZeroConversions bool   `json:"hide_zero_conversions"`
}
