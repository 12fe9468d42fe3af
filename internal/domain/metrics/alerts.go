package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

type rollingTotals struct {
	spend       float64
	conversions int64
	revenue     float64
	clicks      int64
}

func sumWindow(records []entity.RawRecord, start, today time.Time) rollingTotals {
	var t rollingTotals
	for _, r := range records {
		if !InWindow(r.Date, start, today) {
			continue
		}
		t.spend += r.AmountSpent
		t.conversions += r.FulfillmentOrders
		t.revenue += r.FulfillmentRevenue
		t.clicks += r.Clicks
	}
	return t
}

func rollingFrom(t rollingTotals, days int) entity.RollingMetrics {
	n := float64(days)
	return entity.RollingMetrics{
		Spend:          safeDiv(t.spend, n),
		Conversions:    safeDiv(float64(t.conversions), n),
		Revenue:        safeDiv(t.revenue, n),
		CPA:            CPA(t.spend, t.conversions),
		ROAS:           ROAS(t.revenue, t.spend),
		ConversionRate: ConversionRate(t.conversions, t.clicks),
	}
}

// Rolling averages spend, orders and revenue per day over the trailing window;
// ratios come from the window totals.
func Rolling(records []entity.RawRecord, today time.Time, days int) entity.RollingMetrics {
	if days <= 0 {
		return entity.RollingMetrics{}
	}
	return rollingFrom(sumWindow(records, WindowStart(today, days), today), days)
}

// RollingMTD averages month-to-date totals over the elapsed days of the month.
func RollingMTD(records []entity.RawRecord, today time.Time) entity.RollingMetrics {
	return rollingFrom(sumWindow(records, StartOfMonth(today), today), today.Day())
}

// RollingWindows computes every rolling window shown on the drill-down.
func RollingWindows(records []entity.RawRecord, today time.Time) entity.RollingSummary {
	return entity.RollingSummary{
		ThreeDay:    Rolling(records, today, ThreeDays),
		SevenDay:    Rolling(records, today, SevenDays),
		FourteenDay: Rolling(records, today, FourteenDays),
		ThirtyDay:   Rolling(records, today, ThirtyDays),
		MTD:         RollingMTD(records, today),
	}
}

func direction(change float64, up, down string) string {
	if change > 0 {
		return up
	}
	return down
}

// DetectAlerts compares 7-day against 30-day rolling CPA and conversion rate
// and checks spend against the calendar-expected share of the monthly budget.
// The pacing check is skipped without a budget.
func DetectAlerts(rolling entity.RollingSummary, spend, monthlyBudget float64, today time.Time, th entity.Thresholds) []entity.Alert {
	th = th.WithDefaults()
	var alerts []entity.Alert

	cpaChange := PercentChange(rolling.SevenDay.CPA, rolling.ThirtyDay.CPA)
	if math.Abs(cpaChange) > th.CPAAlertPct {
		alerts = append(alerts, entity.Alert{
			Severity: entity.SeverityHigh,
			Metric:   "CPA",
			Change:   cpaChange,
			Message: fmt.Sprintf("CPA has %s by %.1f%% in the last 7 days",
				direction(cpaChange, "increased", "decreased"), math.Abs(cpaChange)),
		})
	}

	convChange := PercentChange(rolling.SevenDay.ConversionRate, rolling.ThirtyDay.ConversionRate)
	if math.Abs(convChange) > th.ConversionRateAlertPct {
		alerts = append(alerts, entity.Alert{
			Severity: entity.SeverityMedium,
			Metric:   "Conversion Rate",
			Change:   convChange,
			Message: fmt.Sprintf("Conversion rate has %s by %.1f%% in the last 7 days",
				direction(convChange, "increased", "decreased"), math.Abs(convChange)),
		})
	}

	if monthlyBudget > 0 {
		expected := float64(today.Day()) / float64(DaysInMonth(today)) * 100
		actual := spend / monthlyBudget * 100
		diff := actual - expected
		if math.Abs(diff) > th.PacingMediumPts {
			severity := entity.SeverityMedium
			if math.Abs(diff) > th.PacingHighPts {
				severity = entity.SeverityHigh
			}
			alerts = append(alerts, entity.Alert{
				Severity: severity,
				Metric:   "Budget Pacing",
				Change:   diff,
				Message: fmt.Sprintf("Campaign is %s by %.1f%% relative to monthly target",
					direction(diff, "overspending", "underspending"), math.Abs(diff)),
			})
		}
	}

	return alerts
}
