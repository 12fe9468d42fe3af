package metrics

import (
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// DefaultDrilldownDays is the analysis window used when none is given.
const DefaultDrilldownDays = 30

// DrilldownDays lists the selectable analysis windows.
var DrilldownDays = []int{7, 14, 30, 90}

// SummarizeWindow totals records and derives the drill-down ratios.
func SummarizeWindow(records []entity.RawRecord, days int) entity.DrilldownSummary {
	var s entity.DrilldownSummary
	for _, r := range records {
		s.TotalSpend += r.AmountSpent
		s.TotalConversions += r.FulfillmentOrders
		s.TotalRevenue += r.FulfillmentRevenue
		s.TotalImpressions += r.Impressions
		s.TotalClicks += r.Clicks
		s.TotalLeads += r.Leads
	}
	s.CPA = CPA(s.TotalSpend, s.TotalConversions)
	s.ROAS = ROAS(s.TotalRevenue, s.TotalSpend)
	s.CTR = CTR(s.TotalClicks, s.TotalImpressions)
	s.ConversionRate = ConversionRate(s.TotalConversions, s.TotalClicks)
	s.AvgDailySpend = safeDiv(s.TotalSpend, float64(days))
	return s
}

// BuildDrilldown analyses one product over the last days days. Rolling
// windows use every dated row of the product; the summary, trend and
// campaign table use only the analysis window.
func BuildDrilldown(records []entity.RawRecord, targets []entity.TargetReference, goods string, today time.Time, days int, th entity.Thresholds) entity.Drilldown {
	if days <= 0 {
		days = DefaultDrilldownDays
	}
	th = th.WithDefaults()

	var product []entity.RawRecord
	for _, r := range records {
		if r.GoodsName == goods && r.HasDate() {
			product = append(product, r)
		}
	}

	target, found := FindTarget(targets, goods)
	if !found {
		target = entity.TargetReference{GoodsName: goods}
	}

	start := WindowStart(today, days)
	var window []entity.RawRecord
	for _, r := range product {
		if InWindow(r.Date, start, today) {
			window = append(window, r)
		}
	}

	d := entity.Drilldown{
		GoodsName: goods,
		Target:    target,
		Days:      days,
		Start:     start,
		End:       DateOnly(today),
		Summary:   SummarizeWindow(window, days),
		Rolling:   RollingWindows(product, today),
	}
	if snaps := Aggregate(product, targets, entity.GroupByProduct, today); len(snaps) > 0 {
		d.Snapshot = snaps[0]
	}
	d.Trend = BuildTrend(window, entity.TrendDay)
	d.Comparison = ComparePeriods(d.Trend)
	d.Targets = Targets(d.Summary, target, th)
	d.Alerts = DetectAlerts(d.Rolling, d.Summary.TotalSpend, target.MonthlyBudget, today, th)
	d.Campaigns = BuildCampaignPerformance(window, target, th)
	d.Indicators = Indicators(d.Campaigns)
	d.Detailed = BuildDetailedRows(window, entity.TrendDay)
	return d
}
