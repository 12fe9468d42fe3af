package usecase

import (
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/metrics"
)

// TrendRequest selects a trend series. An empty Goods covers every
// product; Days 0 covers every dated record.
type TrendRequest struct {
	Goods string
	Unit  entity.TrendUnit
	Days  int
	Today time.Time
}

// TrendPoint is a trend bucket with its display label.
type TrendPoint struct {
	Label string `json:"label"`
	entity.DailyMetrics
}

// TrendReport is a bucketed series and the change between its halves.
type TrendReport struct {
	Goods      string                  `json:"goods,omitempty"`
	Unit       entity.TrendUnit        `json:"unit"`
	Start      *time.Time              `json:"start,omitempty"`
	End        time.Time               `json:"end"`
	Points     []TrendPoint            `json:"points"`
	Comparison entity.PeriodComparison `json:"comparison"`
}

// Trend builds the series selected by req over ds.
func (uc *DashboardUseCase) Trend(ds *Dataset, req TrendRequest) TrendReport {
	unit := req.Unit
	if unit == "" {
		unit = entity.TrendDay
	}

	filter := entity.RecordFilter{GoodsName: req.Goods}
	report := TrendReport{Goods: req.Goods, Unit: unit, End: metrics.DateOnly(req.Today)}
	if req.Days > 0 {
		start := metrics.WindowStart(req.Today, req.Days)
		filter.StartDate = start
		filter.EndDate = req.Today
		report.Start = &start
	}

	trend := metrics.BuildTrend(metrics.FilterRecords(ds.Records, filter), unit)
	report.Points = make([]TrendPoint, 0, len(trend))
	for _, b := range trend {
		report.Points = append(report.Points, TrendPoint{Label: metrics.BucketLabel(b.Key, unit), DailyMetrics: b})
	}
	report.Comparison = metrics.ComparePeriods(trend)
	return report
}
