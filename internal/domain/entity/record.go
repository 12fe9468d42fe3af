package entity

import "time"

// RawRecord is one normalized row of paid-media performance data.
// A zero Date means the source row had no usable date.
type RawRecord struct {
	Platform        string    `json:"platform"`
	Publisher       string    `json:"publisher"`
	GoodsSold       string    `json:"goods_sold"`
	GoodsName       string    `json:"goods_name"`
	CampaignID      string    `json:"campaign_id"`
	CampaignName    string    `json:"campaign_name"`
	PlatformAccount string    `json:"platform_account"`
	Date            time.Time `json:"date"`

	AmountSpent        float64 `json:"amount_spent"`
	Impressions        int64   `json:"impressions"`
	Clicks             int64   `json:"clicks"`
	LPViews            int64   `json:"lp_views"`
	LPViewCost         float64 `json:"lp_view_cost"`
	Leads              int64   `json:"leads"`
	LeadCost           float64 `json:"lead_cost"`
	LinkClicks         int64   `json:"link_clicks"`
	PlatformResults    float64 `json:"platform_results"`
	PlatformValue      float64 `json:"platform_value"`
	FulfillmentOrders  int64   `json:"fulfillment_orders"`
	FulfillmentRevenue float64 `json:"fulfillment_revenue"`
}

// HasDate reports whether the record carries a calendar day.
func (r RawRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// TargetReference holds the CPA target and monthly budget for a product.
type TargetReference struct {
	BrandName     string  `json:"brand_name"`
	GoodsName     string  `json:"goods_name"`
	TCPA          float64 `json:"tcpa"`
	MonthlyBudget float64 `json:"monthly_budget"`
	Group         string  `json:"group"`
}

// RecordFilter narrows a record set before aggregation. Empty fields match everything.
type RecordFilter struct {
	Platform     string    `json:"platform,omitempty"`
	Publisher    string    `json:"publisher,omitempty"`
	GoodsSold    string    `json:"goods_sold,omitempty"`
	GoodsName    string    `json:"goods_name,omitempty"`
	CampaignName string    `json:"campaign_name,omitempty"`
	StartDate    time.Time `json:"start_date,omitempty"`
	EndDate      time.Time `json:"end_date,omitempty"`
}
