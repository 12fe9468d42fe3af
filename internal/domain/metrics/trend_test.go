package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

func TestBucketKey(t *testing.T) {
	tuesday := time.Date(2024, time.September, 10, 22, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, time.September, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-09-10", BucketKey(tuesday, entity.TrendDay))
	assert.Equal(t, "2024-09-08", BucketKey(tuesday, entity.TrendWeek))
	assert.Equal(t, "2024-09-08", BucketKey(sunday, entity.TrendWeek))
	assert.Equal(t, "2024-09", BucketKey(tuesday, entity.TrendMonth))
}

func TestBucketLabel(t *testing.T) {
	assert.Equal(t, "09/10/2024", BucketLabel("2024-09-10", entity.TrendDay))
	assert.Equal(t, "Week of 09/08/2024", BucketLabel("2024-09-08", entity.TrendWeek))
	assert.Equal(t, "September 2024", BucketLabel("2024-09", entity.TrendMonth))
	assert.Equal(t, "garbage", BucketLabel("garbage", entity.TrendDay))
}

func TestBuildTrend(t *testing.T) {
	records := []entity.RawRecord{
		{Date: daysAgo(0), AmountSpent: 100, FulfillmentOrders: 2, FulfillmentRevenue: 300, Impressions: 1000, Clicks: 40},
		{Date: daysAgo(2), AmountSpent: 50, FulfillmentOrders: 1, FulfillmentRevenue: 25, Impressions: 500, Clicks: 10},
		{Date: daysAgo(0), AmountSpent: 20, FulfillmentOrders: 0, Impressions: 0, Clicks: 0},
		{AmountSpent: 999},
	}

	trend := BuildTrend(records, entity.TrendDay)
	require.Len(t, trend, 2)

	assert.Equal(t, "2024-09-08", trend[0].Key)
	assert.InDelta(t, 50, trend[0].CPA, 1e-9)
	assert.InDelta(t, 0.5, trend[0].ROAS, 1e-9)
	assert.InDelta(t, 2, trend[0].CTR, 1e-9)
	assert.InDelta(t, 10, trend[0].ConversionRate, 1e-9)

	assert.Equal(t, "2024-09-10", trend[1].Key)
	assert.InDelta(t, 120, trend[1].Spend, 1e-9)
	assert.Equal(t, int64(2), trend[1].Conversions)
	assert.InDelta(t, 60, trend[1].CPA, 1e-9)
	assert.InDelta(t, 5, trend[1].ConversionRate, 1e-9)
}

func TestBuildTrendByMonth(t *testing.T) {
	records := []entity.RawRecord{
		{Date: daysAgo(0), AmountSpent: 10},
		{Date: daysAgo(20), AmountSpent: 5},
		{Date: daysAgo(1), AmountSpent: 1},
	}

	trend := BuildTrend(records, entity.TrendMonth)

	require.Len(t, trend, 2)
	assert.Equal(t, "2024-08", trend[0].Key)
	assert.Equal(t, "2024-09", trend[1].Key)
	assert.InDelta(t, 11, trend[1].Spend, 1e-9)
}

func TestComparePeriods(t *testing.T) {
	trend := []entity.DailyMetrics{
		{Key: "2024-09-01", Spend: 100, Conversions: 2, Revenue: 200},
		{Key: "2024-09-02", Spend: 150, Conversions: 3, Revenue: 450},
	}

	got := ComparePeriods(trend)

	assert.InDelta(t, 50, got.Spend, 1e-9)
	assert.InDelta(t, 50, got.Conversions, 1e-9)
	assert.InDelta(t, 125, got.Revenue, 1e-9)
	assert.InDelta(t, 0, got.CPA, 1e-9)
	assert.InDelta(t, 50, got.ROAS, 1e-9)
}

func TestComparePeriodsZeroPrevious(t *testing.T) {
	trend := []entity.DailyMetrics{
		{Key: "2024-09-01"},
		{Key: "2024-09-02", Spend: 200, Conversions: 4, Revenue: 100},
	}

	got := ComparePeriods(trend)

	assert.Equal(t, entity.PeriodComparison{}, got)
}

func TestComparePeriodsOddLength(t *testing.T) {
	trend := []entity.DailyMetrics{
		{Key: "a", Spend: 100},
		{Key: "b", Spend: 100},
		{Key: "c", Spend: 50},
	}

	got := ComparePeriods(trend)

	assert.InDelta(t, 50, got.Spend, 1e-9)
}

func TestComparePeriodsEdgeLengths(t *testing.T) {
	assert.Equal(t, entity.PeriodComparison{}, ComparePeriods(nil))
	assert.Equal(t, entity.PeriodComparison{}, ComparePeriods([]entity.DailyMetrics{{Key: "a", Spend: 10}}))
}

func TestBuildDetailedRows(t *testing.T) {
	records := []entity.RawRecord{
		{Date: daysAgo(0), CampaignName: "B", AmountSpent: 40, PlatformResults: 4, FulfillmentOrders: 3, Impressions: 100, Clicks: 5},
		{Date: daysAgo(0), CampaignName: "A", AmountSpent: 10, PlatformResults: 0, FulfillmentOrders: 1},
		{Date: daysAgo(1), CampaignName: "B", AmountSpent: 5},
	}

	rows := BuildDetailedRows(records, entity.TrendDay)
	require.Len(t, rows, 3)

	assert.Equal(t, "2024-09-09", rows[0].Key)
	assert.Equal(t, "A", rows[1].CampaignName)
	assert.Zero(t, rows[1].PlatformCPA)
	assert.InDelta(t, -1, rows[1].Variance, 1e-9)
	assert.Equal(t, "B", rows[2].CampaignName)
	assert.InDelta(t, 10, rows[2].PlatformCPA, 1e-9)
	assert.InDelta(t, 1, rows[2].Variance, 1e-9)
	assert.InDelta(t, 5, rows[2].CTR, 1e-9)
}
