package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		cpa    float64
		roas   float64
		target float64
		want   entity.PerformanceStatus
	}{
		{"under target and profitable", 30, 1.5, 40, entity.StatusPerforming},
		{"at target with break-even roas", 40, 1, 40, entity.StatusPerforming},
		{"within 20 percent of target", 45, 0.5, 40, entity.StatusAtRisk},
		{"under target but unprofitable", 30, 0.5, 40, entity.StatusAtRisk},
		{"far over target with decent roas", 60, 0.9, 40, entity.StatusAtRisk},
		{"far over target and unprofitable", 60, 0.5, 40, entity.StatusUnderperforming},
		{"zero target with positive cpa", 10, 0.5, 0, entity.StatusUnderperforming},
		{"zero target and zero cpa", 0, 1.2, 0, entity.StatusPerforming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := entity.CampaignPerformance{CPA: tt.cpa, ROAS: tt.roas}
			assert.Equal(t, tt.want, Classify(row, tt.target))
		})
	}
}

func TestClassifyWithCustomThresholds(t *testing.T) {
	th := entity.Thresholds{AtRiskCPAMultiplier: 1.5, AtRiskROAS: 2}
	row := entity.CampaignPerformance{CPA: 55, ROAS: 0.5}

	assert.Equal(t, entity.StatusAtRisk, ClassifyWith(row, 40, th))
	assert.Equal(t, entity.StatusUnderperforming, Classify(row, 40))
}

func TestCPAStatus(t *testing.T) {
	assert.Equal(t, entity.DisplayNone, CPAStatus(0, 40))
	assert.Equal(t, entity.DisplayOver, CPAStatus(50, 40))
	assert.Equal(t, entity.DisplayUnder, CPAStatus(40, 40))
}

func TestPacingStatus(t *testing.T) {
	th := entity.DefaultThresholds()

	assert.Equal(t, entity.DisplayNone, PacingStatus(0, th))
	assert.Equal(t, entity.DisplayUnder, PacingStatus(89.9, th))
	assert.Equal(t, entity.DisplayOnTrack, PacingStatus(90, th))
	assert.Equal(t, entity.DisplayOnTrack, PacingStatus(110, th))
	assert.Equal(t, entity.DisplayOver, PacingStatus(120, th))
}

func TestBuildCampaignPerformance(t *testing.T) {
	records := []entity.RawRecord{
		{CampaignName: "Small", AmountSpent: 100, FulfillmentOrders: 4, FulfillmentRevenue: 200, Impressions: 1000, Clicks: 50},
		{CampaignName: "Big", AmountSpent: 300, FulfillmentOrders: 5, FulfillmentRevenue: 150, Impressions: 2000, Clicks: 20},
		{CampaignName: "Small", AmountSpent: 50, FulfillmentOrders: 1, FulfillmentRevenue: 100},
		{CampaignName: "", AmountSpent: 999},
	}
	target := entity.TargetReference{TCPA: 40, MonthlyBudget: 1000}

	perf := BuildCampaignPerformance(records, target, entity.DefaultThresholds())
	require.Len(t, perf, 2)

	assert.Equal(t, "Big", perf[0].Name)
	assert.InDelta(t, 60, perf[0].CPA, 1e-9)
	assert.InDelta(t, 0.5, perf[0].ROAS, 1e-9)
	assert.InDelta(t, 1, perf[0].CTR, 1e-9)
	assert.InDelta(t, 30, perf[0].BudgetPacing, 1e-9)
	assert.Equal(t, entity.StatusUnderperforming, perf[0].Status)

	assert.Equal(t, "Small", perf[1].Name)
	assert.InDelta(t, 150, perf[1].Spend, 1e-9)
	assert.InDelta(t, 30, perf[1].CPA, 1e-9)
	assert.InDelta(t, 2, perf[1].ROAS, 1e-9)
	assert.Equal(t, entity.StatusPerforming, perf[1].Status)

	ind := Indicators(perf)
	assert.Equal(t, entity.PerformanceIndicators{Performing: 1, Underperforming: 1, Total: 2}, ind)
}

func TestBuildCampaignPerformanceWithoutBudget(t *testing.T) {
	perf := BuildCampaignPerformance([]entity.RawRecord{{CampaignName: "A", AmountSpent: 10}}, entity.TargetReference{}, entity.Thresholds{})

	require.Len(t, perf, 1)
	assert.Zero(t, perf[0].BudgetPacing)
}

func TestTargets(t *testing.T) {
	summary := entity.DrilldownSummary{TotalSpend: 950, CPA: 35, ROAS: 0.8}
	target := entity.TargetReference{TCPA: 40, MonthlyBudget: 1000}

	got := Targets(summary, target, entity.Thresholds{})

	assert.Equal(t, "good", got.CPA.Status)
	assert.InDelta(t, 87.5, got.CPA.Performance, 1e-9)
	assert.Equal(t, "good", got.Budget.Status)
	assert.InDelta(t, 95, got.Budget.Performance, 1e-9)
	assert.Equal(t, "bad", got.ROAS.Status)
	assert.InDelta(t, 1, got.ROAS.Target, 1e-9)
}
