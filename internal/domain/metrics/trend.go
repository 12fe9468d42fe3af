package metrics

import (
	"sort"
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// BucketKey returns the sortable bucket key of d. Weeks start on Sunday.
func BucketKey(d time.Time, unit entity.TrendUnit) string {
	day := DateOnly(d)
	switch unit {
	case entity.TrendWeek:
		return day.AddDate(0, 0, -int(day.Weekday())).Format(dayLayout)
	case entity.TrendMonth:
		return day.Format(monthLayout)
	default:
		return day.Format(dayLayout)
	}
}

// BucketLabel renders a bucket key for tables and exports.
func BucketLabel(key string, unit entity.TrendUnit) string {
	switch unit {
	case entity.TrendMonth:
		if t, err := time.Parse(monthLayout, key); err == nil {
			return t.Format("January 2006")
		}
	case entity.TrendWeek:
		if t, err := time.Parse(dayLayout, key); err == nil {
			return "Week of " + t.Format("01/02/2006")
		}
	default:
		if t, err := time.Parse(dayLayout, key); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return key
}

// BuildTrend buckets records by unit and derives per-bucket ratios.
// Buckets are sorted by key; undated records are skipped.
func BuildTrend(records []entity.RawRecord, unit entity.TrendUnit) []entity.DailyMetrics {
	buckets := make(map[string]*entity.DailyMetrics)
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		key := BucketKey(r.Date, unit)
		b, ok := buckets[key]
		if !ok {
			b = &entity.DailyMetrics{Key: key}
			buckets[key] = b
		}
		b.Spend += r.AmountSpent
		b.Conversions += r.FulfillmentOrders
		b.Revenue += r.FulfillmentRevenue
		b.Impressions += r.Impressions
		b.Clicks += r.Clicks
	}

	out := make([]entity.DailyMetrics, 0, len(buckets))
	for _, b := range buckets {
		b.CPA = CPA(b.Spend, b.Conversions)
		b.ROAS = ROAS(b.Revenue, b.Spend)
		b.CTR = CTR(b.Clicks, b.Impressions)
		b.ConversionRate = ConversionRate(b.Conversions, b.Clicks)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

type periodTotals struct {
	spend       float64
	conversions int64
	revenue     float64
}

func sumBuckets(buckets []entity.DailyMetrics) periodTotals {
	var t periodTotals
	for _, b := range buckets {
		t.spend += b.Spend
		t.conversions += b.Conversions
		t.revenue += b.Revenue
	}
	return t
}

// ComparePeriods splits trend at len/2 and reports the change of the second
// half against the first. Ratios are recomputed from the half totals.
func ComparePeriods(trend []entity.DailyMetrics) entity.PeriodComparison {
	if len(trend) == 0 {
		return entity.PeriodComparison{}
	}
	mid := len(trend) / 2
	prev := sumBuckets(trend[:mid])
	cur := sumBuckets(trend[mid:])

	return entity.PeriodComparison{
		Spend:       PercentChange(cur.spend, prev.spend),
		Conversions: PercentChange(float64(cur.conversions), float64(prev.conversions)),
		Revenue:     PercentChange(cur.revenue, prev.revenue),
		CPA:         PercentChange(CPA(cur.spend, cur.conversions), CPA(prev.spend, prev.conversions)),
		ROAS:        PercentChange(ROAS(cur.revenue, cur.spend), ROAS(prev.revenue, prev.spend)),
	}
}

// BuildDetailedRows buckets records by (unit, campaign). Variance is platform
// reported results minus fulfilled orders.
func BuildDetailedRows(records []entity.RawRecord, unit entity.TrendUnit) []entity.DetailedRow {
	type rowKey struct{ bucket, campaign string }
	rows := make(map[rowKey]*entity.DetailedRow)
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		k := rowKey{BucketKey(r.Date, unit), r.CampaignName}
		row, ok := rows[k]
		if !ok {
			row = &entity.DetailedRow{Key: k.bucket, Label: BucketLabel(k.bucket, unit), CampaignName: k.campaign}
			rows[k] = row
		}
		row.Spend += r.AmountSpent
		row.Impressions += r.Impressions
		row.Clicks += r.Clicks
		row.PlatformResults += r.PlatformResults
		row.Orders += r.FulfillmentOrders
		row.Revenue += r.FulfillmentRevenue
	}

	out := make([]entity.DetailedRow, 0, len(rows))
	for _, row := range rows {
		row.CTR = CTR(row.Clicks, row.Impressions)
		row.PlatformCPA = safeDiv(row.Spend, row.PlatformResults)
		row.Variance = row.PlatformResults - float64(row.Orders)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].CampaignName < out[j].CampaignName
	})
	return out
}
