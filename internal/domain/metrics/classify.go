package metrics

import (
	"sort"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// Classify assigns a status using the default thresholds.
func Classify(row entity.CampaignPerformance, targetCPA float64) entity.PerformanceStatus {
	return ClassifyWith(row, targetCPA, entity.DefaultThresholds())
}

// ClassifyWith assigns a status to a campaign. A zero target is compared as is.
func ClassifyWith(row entity.CampaignPerformance, targetCPA float64, th entity.Thresholds) entity.PerformanceStatus {
	th = th.WithDefaults()
	switch {
	case row.CPA <= targetCPA && row.ROAS >= th.TargetROAS:
		return entity.StatusPerforming
	case row.CPA <= targetCPA*th.AtRiskCPAMultiplier || row.ROAS >= th.AtRiskROAS:
		return entity.StatusAtRisk
	default:
		return entity.StatusUnderperforming
	}
}

// CPAStatus is the colour class of a CPA cell against its target.
func CPAStatus(actual, target float64) entity.DisplayStatus {
	if actual == 0 {
		return entity.DisplayNone
	}
	if actual > target {
		return entity.DisplayOver
	}
	return entity.DisplayUnder
}

// PacingStatus is the colour class of a budget pacing cell.
func PacingStatus(pacing float64, th entity.Thresholds) entity.DisplayStatus {
	th = th.WithDefaults()
	switch {
	case pacing == 0:
		return entity.DisplayNone
	case pacing < th.PacingUnderPct:
		return entity.DisplayUnder
	case pacing > th.PacingOverPct:
		return entity.DisplayOver
	default:
		return entity.DisplayOnTrack
	}
}

// accumulate adds r's facts to p.
func accumulate(p *entity.CampaignPerformance, r entity.RawRecord) {
	p.Spend += r.AmountSpent
	p.Conversions += r.FulfillmentOrders
	p.Revenue += r.FulfillmentRevenue
	p.Impressions += r.Impressions
	p.Clicks += r.Clicks
}

func derive(p *entity.CampaignPerformance) {
	p.CPA = CPA(p.Spend, p.Conversions)
	p.ROAS = ROAS(p.Revenue, p.Spend)
	p.CTR = CTR(p.Clicks, p.Impressions)
}

// BuildCampaignPerformance aggregates records per campaign name, classifies
// each campaign against target and returns them by spend, highest first.
func BuildCampaignPerformance(records []entity.RawRecord, target entity.TargetReference, th entity.Thresholds) []entity.CampaignPerformance {
	index := make(map[string]int)
	var out []entity.CampaignPerformance
	for _, r := range records {
		if r.CampaignName == "" {
			continue
		}
		i, ok := index[r.CampaignName]
		if !ok {
			i = len(out)
			index[r.CampaignName] = i
			out = append(out, entity.CampaignPerformance{Name: r.CampaignName})
		}
		accumulate(&out[i], r)
	}

	for i := range out {
		derive(&out[i])
		out[i].BudgetPacing = safeDiv(out[i].Spend, target.MonthlyBudget) * 100
		out[i].Status = ClassifyWith(out[i], target.TCPA, th)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	return out
}

// Indicators counts campaigns per status.
func Indicators(perf []entity.CampaignPerformance) entity.PerformanceIndicators {
	ind := entity.PerformanceIndicators{Total: len(perf)}
	for _, p := range perf {
		switch p.Status {
		case entity.StatusPerforming:
			ind.Performing++
		case entity.StatusAtRisk:
			ind.AtRisk++
		case entity.StatusUnderperforming:
			ind.Underperforming++
		}
	}
	return ind
}

// Targets reports CPA, budget and ROAS progress against a product's targets.
func Targets(summary entity.DrilldownSummary, target entity.TargetReference, th entity.Thresholds) entity.PerformanceTargets {
	th = th.WithDefaults()

	cpa := entity.TargetProgress{Current: summary.CPA, Target: target.TCPA, Status: "bad"}
	if target.TCPA > 0 {
		cpa.Performance = summary.CPA / target.TCPA * 100
	}
	if summary.CPA <= target.TCPA {
		cpa.Status = "good"
	}

	budget := entity.TargetProgress{Current: summary.TotalSpend, Target: target.MonthlyBudget, Status: "warning"}
	if target.MonthlyBudget > 0 {
		budget.Performance = summary.TotalSpend / target.MonthlyBudget * 100
	}
	if budget.Performance >= th.PacingUnderPct && budget.Performance <= th.PacingOverPct {
		budget.Status = "good"
	}

	roas := entity.TargetProgress{Current: summary.ROAS, Target: th.TargetROAS, Performance: summary.ROAS * 100, Status: "bad"}
	if summary.ROAS >= th.TargetROAS {
		roas.Status = "good"
	}

	return entity.PerformanceTargets{CPA: cpa, Budget: budget, ROAS: roas}
}
