package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/metrics"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

// DaysPreferenceKey stores the last drill-down timeframe.
const DaysPreferenceKey = "drilldown_days"

// snapshotHistory is how many drill-down snapshots are kept per product.
const snapshotHistory = 10

// DrilldownRequest selects one product analysis.
type DrilldownRequest struct {
	Goods      string
	Days       int
	Unit       entity.TrendUnit
	Today      time.Time
	Thresholds entity.Thresholds
}

// Drilldown analyses one product and attaches the brand's optimization
// notes for the window when storage is configured.
func (uc *DashboardUseCase) Drilldown(ctx context.Context, ds *Dataset, req DrilldownRequest) (entity.Drilldown, error) {
	if strings.TrimSpace(req.Goods) == "" {
		return entity.Drilldown{}, types.ErrProductRequired
	}

	d := metrics.BuildDrilldown(ds.Records, ds.Targets, req.Goods, req.Today, req.Days, req.Thresholds)
	if req.Unit != "" && req.Unit != entity.TrendDay {
		window := metrics.FilterRecords(ds.Records, entity.RecordFilter{
			GoodsName: req.Goods,
			StartDate: d.Start,
			EndDate:   d.End,
		})
		d.Detailed = metrics.BuildDetailedRows(window, req.Unit)
	}

	if uc.optimizationRepo != nil && d.Target.BrandName != "" {
		notes, err := uc.optimizationRepo.List(ctx, entity.OptimizationQuery{
			Brand:     d.Target.BrandName,
			StartDate: d.Start.Format("2006-01-02"),
			EndDate:   d.End.Format("2006-01-02"),
		})
		if err != nil {
			uc.console.LogWarning("Could not load optimization notes for %s: %s", d.Target.BrandName, err)
		} else {
			d.Optimizations = notes
		}
	}
	return d, nil
}

// resolveDays picks the timeframe: explicit flag, then stored preference,
// then the default.
func (uc *DashboardUseCase) resolveDays(ctx context.Context, days int) int {
	if days > 0 {
		return days
	}
	if uc.stateRepo != nil {
		if v, ok, err := uc.stateRepo.GetPreference(ctx, DaysPreferenceKey); err == nil && ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	return metrics.DefaultDrilldownDays
}

// RunDrilldown renders the drill-down for args.Product.
func (uc *DashboardUseCase) RunDrilldown(ctx context.Context, args *types.CLIArgs) error {
	if strings.TrimSpace(args.Product) == "" {
		return types.ErrProductRequired
	}
	if args.Days < 0 {
		return fmt.Errorf("timeframe must be a positive number of days, got %d", args.Days)
	}

	unit := entity.TrendDay
	if args.Trend != "" {
		u, ok := entity.ParseTrendUnit(strings.ToLower(args.Trend))
		if !ok {
			return fmt.Errorf("%w: %q", types.ErrInvalidTrendUnit, args.Trend)
		}
		unit = u
	}

	status := uc.console.Status("Loading performance data...")
	ds, err := uc.LoadDataset(ctx, args.DataSource, args.TargetsFile)
	if err != nil {
		status.Stop()
		return err
	}
	status.Stop()

	days := uc.resolveDays(ctx, args.Days)
	d, err := uc.Drilldown(ctx, ds, DrilldownRequest{
		Goods:      args.Product,
		Days:       days,
		Unit:       unit,
		Today:      uc.Today(args),
		Thresholds: args.Thresholds,
	})
	if err != nil {
		return err
	}

	uc.displayDrilldown(d, args.Detailed)
	uc.recordDrilldown(ctx, d, args.Days)
	uc.exportDrilldown(d, args)
	return nil
}

func (uc *DashboardUseCase) recordDrilldown(ctx context.Context, d entity.Drilldown, explicitDays int) {
	if uc.stateRepo == nil {
		return
	}
	snap := &entity.MetricsSnapshot{
		GoodsName: d.GoodsName,
		Days:      d.Days,
		Summary:   d.Summary,
		Alerts:    len(d.Alerts),
		TakenAt:   uc.now(),
	}
	if err := uc.stateRepo.AppendSnapshot(ctx, snap, snapshotHistory); err != nil {
		uc.console.LogWarning("Could not save drill-down snapshot: %s", err)
	}
	if explicitDays > 0 {
		if err := uc.stateRepo.SetPreference(ctx, DaysPreferenceKey, strconv.Itoa(explicitDays)); err != nil {
			uc.console.LogWarning("Could not save timeframe preference: %s", err)
		}
	}
}

// SnapshotHistory lists the stored drill-down snapshots of a product.
func (uc *DashboardUseCase) SnapshotHistory(ctx context.Context, goods string) ([]entity.MetricsSnapshot, error) {
	if uc.stateRepo == nil {
		return nil, types.ErrStateNotConfigured
	}
	return uc.stateRepo.ListSnapshots(ctx, goods)
}

// RunSnapshotHistory prints the stored drill-down snapshots of a product,
// newest first.
func (uc *DashboardUseCase) RunSnapshotHistory(ctx context.Context, goods string) error {
	snaps, err := uc.SnapshotHistory(ctx, goods)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		uc.console.LogWarning("No drill-down history for %s", goods)
		return nil
	}

	table := uc.console.CreateTable()
	for _, col := range []string{"Taken", "Product", "Days", "Spend", "Conv", "CPA", "ROAS", "Alerts"} {
		table.AddColumn(col)
	}
	for _, s := range snaps {
		table.AddRow(s.TakenAt.Format("2006-01-02 15:04"), s.GoodsName, s.Days,
			fmt.Sprintf("$%.2f", s.Summary.TotalSpend), s.Summary.TotalConversions,
			fmt.Sprintf("$%.2f", s.Summary.CPA), fmt.Sprintf("%.2f", s.Summary.ROAS), s.Alerts)
	}
	uc.console.Print(table.Render())
	return nil
}

func (uc *DashboardUseCase) displayDrilldown(d entity.Drilldown, detailed bool) {
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("%s | %s to %s (%d days)",
		d.GoodsName, d.Start.Format("2006-01-02"), d.End.Format("2006-01-02"), d.Days))

	s := d.Summary
	uc.console.DisplayPanel("Summary", strings.Join([]string{
		fmt.Sprintf("Spend:        $%.2f (avg $%.2f/day)", s.TotalSpend, s.AvgDailySpend),
		fmt.Sprintf("Conversions:  %d (CPA $%.2f)", s.TotalConversions, s.CPA),
		fmt.Sprintf("Revenue:      $%.2f (ROAS %.2f)", s.TotalRevenue, s.ROAS),
		fmt.Sprintf("Clicks:       %d of %d impressions (CTR %.2f%%)", s.TotalClicks, s.TotalImpressions, s.CTR),
		fmt.Sprintf("Conv. rate:   %.2f%%", s.ConversionRate),
	}, "\n"))

	t := d.Targets
	uc.console.DisplayPanel("Targets", strings.Join([]string{
		fmt.Sprintf("CPA     $%.2f / $%.2f  %s", t.CPA.Current, t.CPA.Target, statusText(t.CPA.Status)),
		fmt.Sprintf("Budget  $%.2f / $%.2f (%.1f%%)  %s", t.Budget.Current, t.Budget.Target, t.Budget.Performance, statusText(t.Budget.Status)),
		fmt.Sprintf("ROAS    %.2f / %.2f  %s", t.ROAS.Current, t.ROAS.Target, statusText(t.ROAS.Status)),
	}, "\n"))

	if len(d.Alerts) == 0 {
		uc.console.LogSuccess("No anomalies detected.")
	}
	for _, a := range d.Alerts {
		switch a.Severity {
		case entity.SeverityHigh:
			uc.console.LogError("[%s] %s", a.Metric, a.Message)
		default:
			uc.console.LogWarning("[%s] %s", a.Metric, a.Message)
		}
	}

	uc.displayRolling(d.Rolling)
	uc.displayTrend("Spend", entity.TrendDay, d.Trend)

	if len(d.Campaigns) > 0 {
		table := uc.console.CreateTable()
		for _, col := range []string{"Campaign", "Spend", "Conv", "CPA", "ROAS", "CTR", "Pacing", "Status"} {
			table.AddColumn(col)
		}
		for _, c := range d.Campaigns {
			table.AddRow(c.Name, fmt.Sprintf("$%.2f", c.Spend), c.Conversions, fmt.Sprintf("$%.2f", c.CPA),
				fmt.Sprintf("%.2f", c.ROAS), fmt.Sprintf("%.2f%%", c.CTR), fmt.Sprintf("%.1f%%", c.BudgetPacing),
				performanceText(c.Status))
		}
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Campaigns: %d performing, %d at risk, %d underperforming",
			d.Indicators.Performing, d.Indicators.AtRisk, d.Indicators.Underperforming))
		uc.console.Print(table.Render())
	}

	if detailed && len(d.Detailed) > 0 {
		table := uc.console.CreateTable()
		for _, col := range []string{"Period", "Campaign", "Spend", "Impr.", "Clicks", "CTR", "Plat. Results", "Plat. CPA", "Orders", "Revenue", "Variance"} {
			table.AddColumn(col)
		}
		for _, r := range d.Detailed {
			table.AddRow(r.Label, r.CampaignName, fmt.Sprintf("$%.2f", r.Spend), r.Impressions, r.Clicks,
				fmt.Sprintf("%.2f%%", r.CTR), fmt.Sprintf("%.1f", r.PlatformResults), fmt.Sprintf("$%.2f", r.PlatformCPA),
				r.Orders, fmt.Sprintf("$%.2f", r.Revenue), fmt.Sprintf("%+.1f", r.Variance))
		}
		uc.console.Print(table.Render())
	}

	if len(d.Optimizations) > 0 {
		uc.displayOptimizations(d.Optimizations)
	}
}

func (uc *DashboardUseCase) displayRolling(r entity.RollingSummary) {
	table := uc.console.CreateTable()
	for _, col := range []string{"Window", "Spend/day", "Conv/day", "Revenue/day", "CPA", "ROAS", "Conv. rate"} {
		table.AddColumn(col)
	}
	windows := []struct {
		name string
		m    entity.RollingMetrics
	}{
		{"3 days", r.ThreeDay}, {"7 days", r.SevenDay}, {"14 days", r.FourteenDay}, {"30 days", r.ThirtyDay}, {"MTD", r.MTD},
	}
	for _, w := range windows {
		table.AddRow(w.name, fmt.Sprintf("$%.2f", w.m.Spend), fmt.Sprintf("%.2f", w.m.Conversions),
			fmt.Sprintf("$%.2f", w.m.Revenue), fmt.Sprintf("$%.2f", w.m.CPA), fmt.Sprintf("%.2f", w.m.ROAS),
			fmt.Sprintf("%.2f%%", w.m.ConversionRate))
	}
	uc.console.Print(table.Render())
}

func statusText(status string) string {
	switch status {
	case "good":
		return pterm.FgGreen.Sprint("good")
	case "warning":
		return pterm.FgYellow.Sprint("warning")
	case "bad":
		return pterm.FgRed.Sprint("bad")
	}
	return status
}

func performanceText(s entity.PerformanceStatus) string {
	switch s {
	case entity.StatusPerforming:
		return pterm.FgGreen.Sprint(string(s))
	case entity.StatusAtRisk:
		return pterm.FgYellow.Sprint(string(s))
	case entity.StatusUnderperforming:
		return pterm.FgRed.Sprint(string(s))
	}
	return string(s)
}

func (uc *DashboardUseCase) exportDrilldown(d entity.Drilldown, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}
	progress := uc.console.ProgressWithTotal(len(args.ReportType))
	defer progress.Stop()

	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportDrilldownToCSV(d, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportDrilldownToJSON(d, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportDrilldownToPDF(d, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type '%s' skipped", reportType)
			continue
		}
		progress.Increment()
		if err != nil {
			uc.console.LogError("Failed to export drill-down to %s: %s", strings.ToUpper(reportType), err)
		} else {
			uc.console.LogSuccess("Successfully exported drill-down to %s: %s", strings.ToUpper(reportType), path)
		}
	}
}
