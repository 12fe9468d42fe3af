package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

func TestRolling(t *testing.T) {
	records := []entity.RawRecord{
		{Date: daysAgo(0), AmountSpent: 70, FulfillmentOrders: 7, FulfillmentRevenue: 140, Clicks: 70},
		{Date: daysAgo(6), AmountSpent: 70, FulfillmentOrders: 0, FulfillmentRevenue: 0, Clicks: 70},
		{Date: daysAgo(20), AmountSpent: 1000, FulfillmentOrders: 1},
	}

	r := Rolling(records, today, SevenDays)

	assert.InDelta(t, 20, r.Spend, 1e-9)
	assert.InDelta(t, 1, r.Conversions, 1e-9)
	assert.InDelta(t, 20, r.Revenue, 1e-9)
	assert.InDelta(t, 20, r.CPA, 1e-9)
	assert.InDelta(t, 1, r.ROAS, 1e-9)
	assert.InDelta(t, 5, r.ConversionRate, 1e-9)

	assert.Equal(t, entity.RollingMetrics{}, Rolling(records, today, 0))
}

func TestRollingMTDDividesByDayOfMonth(t *testing.T) {
	records := []entity.RawRecord{
		{Date: daysAgo(0), AmountSpent: 100},
		{Date: daysAgo(9), AmountSpent: 100},
		{Date: daysAgo(10), AmountSpent: 5000},
	}

	r := RollingMTD(records, today)

	assert.InDelta(t, 20, r.Spend, 1e-9)
}

func TestDetectAlerts(t *testing.T) {
	th := entity.DefaultThresholds()

	t.Run("cpa spike is high severity", func(t *testing.T) {
		rolling := entity.RollingSummary{
			SevenDay:  entity.RollingMetrics{CPA: 60, ConversionRate: 2},
			ThirtyDay: entity.RollingMetrics{CPA: 40, ConversionRate: 2},
		}

		alerts := DetectAlerts(rolling, 0, 0, today, th)

		require.Len(t, alerts, 1)
		assert.Equal(t, entity.SeverityHigh, alerts[0].Severity)
		assert.Equal(t, "CPA", alerts[0].Metric)
		assert.InDelta(t, 50, alerts[0].Change, 1e-9)
		assert.Equal(t, "CPA has increased by 50.0% in the last 7 days", alerts[0].Message)
	})

	t.Run("conversion rate drop is medium severity", func(t *testing.T) {
		rolling := entity.RollingSummary{
			SevenDay:  entity.RollingMetrics{CPA: 40, ConversionRate: 1.6},
			ThirtyDay: entity.RollingMetrics{CPA: 40, ConversionRate: 2},
		}

		alerts := DetectAlerts(rolling, 0, 0, today, th)

		require.Len(t, alerts, 1)
		assert.Equal(t, entity.SeverityMedium, alerts[0].Severity)
		assert.Equal(t, "Conversion rate has decreased by 20.0% in the last 7 days", alerts[0].Message)
	})

	t.Run("no thirty day baseline raises nothing", func(t *testing.T) {
		rolling := entity.RollingSummary{SevenDay: entity.RollingMetrics{CPA: 60, ConversionRate: 3}}

		assert.Empty(t, DetectAlerts(rolling, 0, 0, today, th))
	})

	t.Run("pacing", func(t *testing.T) {
		// Day 10 of 30: a third of the budget is expected.
		tests := []struct {
			name     string
			spend    float64
			budget   float64
			severity entity.AlertSeverity
			message  string
		}{
			{"on pace", 400, 1000, "", ""},
			{"slightly over", 500, 1000, entity.SeverityMedium, "Campaign is overspending by 16.7% relative to monthly target"},
			{"far over", 700, 1000, entity.SeverityHigh, "Campaign is overspending by 36.7% relative to monthly target"},
			{"far under", 0, 1000, entity.SeverityHigh, "Campaign is underspending by 33.3% relative to monthly target"},
			{"no budget", 700, 0, "", ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				alerts := DetectAlerts(entity.RollingSummary{}, tt.spend, tt.budget, today, th)
				if tt.severity == "" {
					assert.Empty(t, alerts)
					return
				}
				require.Len(t, alerts, 1)
				assert.Equal(t, "Budget Pacing", alerts[0].Metric)
				assert.Equal(t, tt.severity, alerts[0].Severity)
				assert.Equal(t, tt.message, alerts[0].Message)
			})
		}
	})
}
