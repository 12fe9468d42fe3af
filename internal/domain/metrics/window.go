package metrics

import (
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// Rolling window lengths shown on the dashboard, in days.
const (
	ThreeDays    = 3
	SevenDays    = 7
	FourteenDays = 14
	ThirtyDays   = 30
)

// Window sums spend and fulfilled orders of records dated within [start, today]
// and derives CPA. Records without a date are ignored.
func Window(records []entity.RawRecord, start, today time.Time) entity.PeriodMetrics {
	var pm entity.PeriodMetrics
	for _, r := range records {
		if !InWindow(r.Date, start, today) {
			continue
		}
		pm.Spend += r.AmountSpent
		pm.Conversions += r.FulfillmentOrders
	}
	pm.CPA = CPA(pm.Spend, pm.Conversions)
	return pm
}

// Trailing computes the window of the last days days ending today.
func Trailing(records []entity.RawRecord, today time.Time, days int) entity.PeriodMetrics {
	return Window(records, WindowStart(today, days), today)
}

// MonthToDate computes the window from the first of today's month.
func MonthToDate(records []entity.RawRecord, today time.Time) entity.PeriodMetrics {
	return Window(records, StartOfMonth(today), today)
}

// Pacing is month-to-date spend against the calendar-expected spend, in percent.
func Pacing(monthlyBudget, mtdSpend float64, today time.Time) float64 {
	expected := monthlyBudget / float64(DaysInMonth(today)) * float64(today.Day())
	return safeDiv(mtdSpend, expected) * 100
}
