package entity

// PerformanceStatus buckets a campaign against its targets.
type PerformanceStatus string

const (
	StatusPerforming      PerformanceStatus = "performing"
	StatusAtRisk          PerformanceStatus = "at-risk"
	StatusUnderperforming PerformanceStatus = "underperforming"
)

// CampaignPerformance is a campaign aggregated over the analysis window.
type CampaignPerformance struct {
	Name         string            `json:"name"`
	Spend        float64           `json:"spend"`
	Conversions  int64             `json:"conversions"`
	Revenue      float64           `json:"revenue"`
	Impressions  int64             `json:"impressions"`
	Clicks       int64             `json:"clicks"`
	CPA          float64           `json:"cpa"`
	ROAS         float64           `json:"roas"`
	CTR          float64           `json:"ctr"`
	BudgetPacing float64           `json:"budget_pacing"`
	Status       PerformanceStatus `json:"status"`
}

// PerformanceIndicators counts campaigns per status.
type PerformanceIndicators struct {
	Performing      int `json:"performing"`
	AtRisk          int `json:"at_risk"`
	Underperforming int `json:"underperforming"`
	Total           int `json:"total"`
}

// DisplayStatus is the colour class of a CPA or pacing cell.
type DisplayStatus string

const (
	DisplayNone    DisplayStatus = "none"
	DisplayUnder   DisplayStatus = "under"
	DisplayOver    DisplayStatus = "over"
	DisplayOnTrack DisplayStatus = "on-track"
)

// TargetProgress compares one realized metric with its target.
type TargetProgress struct {
	Current     float64 `json:"current"`
	Target      float64 `json:"target"`
	Performance float64 `json:"performance"`
	Status      string  `json:"status"`
}

// PerformanceTargets groups the CPA, budget and ROAS progress of a product.
type PerformanceTargets struct {
	CPA    TargetProgress `json:"cpa"`
	Budget TargetProgress `json:"budget"`
	ROAS   TargetProgress `json:"roas"`
}
