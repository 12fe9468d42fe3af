package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/metrics"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/repository"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

// DashboardUseCase orchestrates loading, aggregation and presentation.
type DashboardUseCase struct {
	recordRepo       repository.RecordRepository
	exportRepo       repository.ExportRepository
	optimizationRepo repository.OptimizationRepository
	stateRepo        repository.StateRepository
	awsRepo          repository.AWSRepository
	awsProfile       string
	console          types.ConsoleInterface
	now              func() time.Time
}

// Option configures optional collaborators of the use case.
type Option func(*DashboardUseCase)

// WithStorage enables optimization notes and saved state.
func WithStorage(opt repository.OptimizationRepository, state repository.StateRepository) Option {
	return func(uc *DashboardUseCase) {
		uc.optimizationRepo = opt
		uc.stateRepo = state
	}
}

// WithAWS lets the use case report which account S3 sources are read with.
func WithAWS(awsRepo repository.AWSRepository, profile string) Option {
	return func(uc *DashboardUseCase) {
		uc.awsRepo = awsRepo
		uc.awsProfile = profile
	}
}

// WithClock replaces the wall clock used as "today".
func WithClock(now func() time.Time) Option {
	return func(uc *DashboardUseCase) { uc.now = now }
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	recordRepo repository.RecordRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	opts ...Option,
) *DashboardUseCase {
	uc := &DashboardUseCase{
		recordRepo: recordRepo,
		exportRepo: exportRepo,
		console:    console,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Today returns the reference day of a run: the explicit one when set,
// the clock otherwise.
func (uc *DashboardUseCase) Today(args *types.CLIArgs) time.Time {
	if args != nil && !args.Today.IsZero() {
		return args.Today
	}
	return uc.now()
}

// SnapshotQuery selects, filters and orders dashboard rows.
type SnapshotQuery struct {
	GroupBy   entity.GroupBy
	SortKey   string
	Direction metrics.Direction
	Snapshot  entity.SnapshotFilter
	Records   entity.RecordFilter
	Today     time.Time
}

// QueryFromArgs validates the CLI selection and turns it into a query.
func QueryFromArgs(args *types.CLIArgs, today time.Time) (SnapshotQuery, error) {
	q := SnapshotQuery{
		GroupBy:   entity.GroupByCampaign,
		Direction: metrics.Descending,
		Snapshot: entity.SnapshotFilter{
			Group:               args.Group,
			HideZeroConversions: !args.ShowZero,
		},
		Records: entity.RecordFilter{
			Platform:     args.Platform,
			Publisher:    args.Publisher,
			GoodsSold:    args.GoodsSold,
			GoodsName:    args.Goods,
			CampaignName: args.Campaign,
			StartDate:    args.StartDate,
			EndDate:      args.EndDate,
		},
		Today: today,
	}

	if args.GroupBy != "" {
		by, ok := entity.ParseGroupBy(strings.ToLower(args.GroupBy))
		if !ok {
			return q, fmt.Errorf("%w: %q", types.ErrInvalidGroupBy, args.GroupBy)
		}
		q.GroupBy = by
	}
	if args.Direction != "" {
		dir, ok := metrics.ParseDirection(args.Direction)
		if !ok {
			return q, fmt.Errorf("%w: %q", types.ErrInvalidDirection, args.Direction)
		}
		q.Direction = dir
	}
	if args.SortKey != "" {
		if !metrics.IsSortKey(args.SortKey) {
			return q, fmt.Errorf("%w: %q", types.ErrInvalidSortKey, args.SortKey)
		}
		q.SortKey = args.SortKey
	}
	return q, nil
}

// Snapshots runs the aggregation pipeline over ds.
func (uc *DashboardUseCase) Snapshots(ds *Dataset, q SnapshotQuery) []entity.EntityMetricsSnapshot {
	records := metrics.FilterRecords(ds.Records, q.Records)
	rows := metrics.Aggregate(records, ds.Targets, q.GroupBy, q.Today)
	rows = metrics.FilterSnapshots(rows, q.Snapshot)
	if q.SortKey != "" {
		rows = metrics.SortByMetric(rows, q.SortKey, q.Direction)
	}
	return rows
}

// RunDashboard renders the metrics table and the requested side views.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	if args.View != "" {
		if err := uc.ApplyView(ctx, args.View, args); err != nil {
			return err
		}
	}

	today := uc.Today(args)
	query, err := QueryFromArgs(args, today)
	if err != nil {
		return err
	}

	status := uc.console.Status("Loading performance data...")
	ds, err := uc.LoadDataset(ctx, args.DataSource, args.TargetsFile)
	if err != nil {
		status.Stop()
		return err
	}
	status.Update("Aggregating metrics...")
	rows := uc.Snapshots(ds, query)
	status.Stop()

	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Paid media dashboard as of %s (%d records, %d targets)",
		metrics.DateOnly(today).Format("2006-01-02"), len(ds.Records), len(ds.Targets)))

	if len(rows) == 0 {
		uc.console.LogWarning("No rows match the current filters.")
	} else {
		table := uc.createSnapshotTable(query.GroupBy)
		for _, row := range rows {
			uc.addSnapshotRow(table, row, query.GroupBy, args.Thresholds)
		}
		uc.console.Print(table.Render())
	}

	filtered := metrics.FilterRecords(ds.Records, query.Records)
	if args.Summary {
		uc.displaySummary(metrics.Summarize(filtered))
	}
	if args.Publishers {
		uc.displayPublishers(metrics.PublisherBreakdown(filtered))
	}
	if args.Compare {
		uc.displayComparison(metrics.CompareCampaigns(filtered))
	}
	if args.Trend != "" {
		unit, ok := entity.ParseTrendUnit(strings.ToLower(args.Trend))
		if !ok {
			return fmt.Errorf("%w: %q", types.ErrInvalidTrendUnit, args.Trend)
		}
		uc.displayTrend("Spend", unit, metrics.BuildTrend(filtered, unit))
	}

	uc.exportSnapshots(rows, args)
	return nil
}

func (uc *DashboardUseCase) createSnapshotTable(by entity.GroupBy) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Brand")
	if by == entity.GroupByCampaign {
		table.AddColumn("Campaign")
	}
	table.AddColumn("Goods")
	table.AddColumn("Group")
	table.AddColumn("TCPA")
	table.AddColumn("3D CPA (Conv)")
	table.AddColumn("7D CPA (Conv)")
	table.AddColumn("14D CPA (Conv)")
	table.AddColumn("30D CPA (Conv)")
	table.AddColumn("MTD CPA (Conv)")
	table.AddColumn("Spent MTD")
	table.AddColumn("Pacing")
	table.AddColumn("Remaining")
	return table
}

func (uc *DashboardUseCase) addSnapshotRow(table types.TableInterface, s entity.EntityMetricsSnapshot, by entity.GroupBy, th entity.Thresholds) {
	th = th.WithDefaults()
	cells := []interface{}{s.BrandName}
	if by == entity.GroupByCampaign {
		cells = append(cells, s.CampaignName)
	}
	cells = append(cells,
		s.GoodsName,
		s.Group,
		fmt.Sprintf("$%.2f", s.TCPA),
		cpaCell(s.ThreeDayCPA, s.ThreeDayConv, s.TCPA),
		cpaCell(s.SevenDayCPA, s.SevenDayConv, s.TCPA),
		cpaCell(s.FourteenDayCPA, s.FourteenDayConv, s.TCPA),
		cpaCell(s.ThirtyDayCPA, s.ThirtyDayConv, s.TCPA),
		cpaCell(s.MTDCPA, s.MTDConv, s.TCPA),
		fmt.Sprintf("$%.2f", s.AmountSpent),
		pacingCell(s.BudgetPacing, th),
		fmt.Sprintf("$%.2f", s.RemainingBudget),
	)
	table.AddRow(cells...)
}

func cpaCell(cpa float64, conv int64, target float64) string {
	text := fmt.Sprintf("$%.2f (%d)", cpa, conv)
	switch metrics.CPAStatus(cpa, target) {
	case entity.DisplayOver:
		return pterm.FgRed.Sprint(text)
	case entity.DisplayUnder:
		return pterm.FgGreen.Sprint(text)
	}
	return text
}

func pacingCell(pacing float64, th entity.Thresholds) string {
	text := fmt.Sprintf("%.1f%%", pacing)
	switch metrics.PacingStatus(pacing, th) {
	case entity.DisplayOver:
		return pterm.FgRed.Sprint(text)
	case entity.DisplayUnder:
		return pterm.FgYellow.Sprint(text)
	case entity.DisplayOnTrack:
		return pterm.FgGreen.Sprint(text)
	}
	return text
}

func (uc *DashboardUseCase) displaySummary(s entity.MetricSummary) {
	lines := []string{
		fmt.Sprintf("Total spent:  $%.2f", s.TotalSpent),
		fmt.Sprintf("Revenue:      $%.2f (ROAS %.2f)", s.TotalRevenue, s.ROAS),
		fmt.Sprintf("Impressions:  %d", s.TotalImpressions),
		fmt.Sprintf("Clicks:       %d (CTR %.2f%%)", s.TotalClicks, s.CTR),
		fmt.Sprintf("Leads:        %d (CPL $%.2f)", s.TotalLeads, s.CPL),
		fmt.Sprintf("Orders:       %d (CPO $%.2f)", s.TotalOrders, s.CPO),
	}
	uc.console.DisplayPanel("Summary", strings.Join(lines, "\n"))
}

func (uc *DashboardUseCase) displayPublishers(slices []entity.PublisherSpend) {
	if len(slices) == 0 {
		return
	}
	table := uc.console.CreateTable()
	table.AddColumn("Publisher")
	table.AddColumn("Spend")
	table.AddColumn("Share")
	for _, p := range slices {
		table.AddRow(p.Publisher, fmt.Sprintf("$%.2f", p.Spend), fmt.Sprintf("%.1f%%", p.Share))
	}
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprint("Spend by publisher"))
	uc.console.Print(table.Render())
}

func (uc *DashboardUseCase) displayComparison(groups []entity.CampaignComparison) {
	for _, g := range groups {
		table := uc.console.CreateTable()
		table.AddColumn("Campaign")
		table.AddColumn("Spend")
		table.AddColumn("Conversions")
		table.AddColumn("CPA")
		table.AddColumn("ROAS")
		for _, c := range g.Campaigns {
			table.AddRow(c.Name, fmt.Sprintf("$%.2f", c.Spend), c.Conversions,
				fmt.Sprintf("$%.2f", c.CPA), fmt.Sprintf("%.2f", c.ROAS))
		}
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Campaigns for %s", g.GoodsName))
		uc.console.Print(table.Render())
	}
}

func (uc *DashboardUseCase) displayTrend(metric string, unit entity.TrendUnit, trend []entity.DailyMetrics) {
	if len(trend) == 0 {
		uc.console.LogWarning("No dated records for the trend.")
		return
	}
	points := make([]types.TrendPoint, 0, len(trend))
	for _, p := range trend {
		points = append(points, types.TrendPoint{Label: metrics.BucketLabel(p.Key, unit), Value: p.Spend})
	}
	uc.console.DisplayTrendBars(fmt.Sprintf("%s by %s", metric, unit), points)

	c := metrics.ComparePeriods(trend)
	uc.console.Printf("Period over period: spend %+.1f%%, conversions %+.1f%%, revenue %+.1f%%, CPA %+.1f%%, ROAS %+.1f%%\n",
		c.Spend, c.Conversions, c.Revenue, c.CPA, c.ROAS)
}

func (uc *DashboardUseCase) exportSnapshots(rows []entity.EntityMetricsSnapshot, args *types.CLIArgs) {
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
			path, err = uc.exportRepo.ExportSnapshotsToCSV(rows, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportSnapshotsToJSON(rows, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportSnapshotsToPDF(rows, "Paid Media Dashboard", args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type '%s' skipped", reportType)
			continue
		}
		progress.Increment()
		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", strings.ToUpper(reportType), err)
		} else {
			uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(reportType), path)
		}
	}
}
