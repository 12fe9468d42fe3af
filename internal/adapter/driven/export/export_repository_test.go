package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

var fixedNow = time.Date(2024, 9, 10, 8, 30, 0, 0, time.UTC)

func newTestRepo() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time { return fixedNow }}
}

func sampleSnapshots() []entity.EntityMetricsSnapshot {
	return []entity.EntityMetricsSnapshot{
		{
			BrandName: "ACME", CampaignName: "42-Prospecting", GoodsName: "Widget", Group: "Team A",
			TCPA: 12, MonthlyBudget: 3000, SevenDayCPA: 10.5, SevenDayConv: 8,
			MTDCPA: 11.25, MTDConv: 20, AmountSpent: 225, BudgetPacing: 75, RemainingBudget: 2775,
		},
		{BrandName: "ACME", CampaignName: "[red]43-Brand[reset]", GoodsName: "Widget"},
	}
}

func sampleDrilldown() entity.Drilldown {
	return entity.Drilldown{
		GoodsName: "Widget",
		Target:    entity.TargetReference{BrandName: "ACME", GoodsName: "Widget", TCPA: 12, MonthlyBudget: 3000},
		Days:      7,
		Start:     time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC),
		Summary:   entity.DrilldownSummary{TotalSpend: 700, TotalConversions: 50, CPA: 14, ROAS: 2.5},
		Trend: []entity.DailyMetrics{
			{Key: "2024-09-09", Spend: 100, Conversions: 7},
			{Key: "2024-09-10", Spend: 120, Conversions: 9},
		},
		Campaigns: []entity.CampaignPerformance{{Name: "Prospecting", Spend: 700, Status: entity.StatusAtRisk}},
		Alerts:    []entity.Alert{{Severity: entity.SeverityHigh, Metric: "CPA", Change: 30, Message: "CPA has increased by 30.0% in the last 7 days"}},
		Detailed: []entity.DetailedRow{
			{Key: "2024-09-10", Label: "09/10/2024", CampaignName: "Prospecting", Spend: 120},
		},
		Optimizations: []entity.Optimization{{Date: "2024-09-08", Platform: "Meta", Campaign: "Prospecting", Optimization: "Raised bids"}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportSnapshotsToCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := newTestRepo().ExportSnapshotsToCSV(sampleSnapshots(), "dashboard", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dashboard_20240910_083000.csv"), path)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, snapshotHeaders, rows[0])
	assert.Equal(t, "42-Prospecting", rows[1][1])
	assert.Equal(t, "$10.50", rows[1][8])
	assert.Equal(t, "8", rows[1][9])
	assert.Equal(t, "75.00%", rows[1][17])
}

func TestExportSnapshotsToJSON(t *testing.T) {
	dir := t.TempDir()
	repo := newTestRepo()

	path, err := repo.ExportSnapshotsToJSON(sampleSnapshots(), "dashboard", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []entity.EntityMetricsSnapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleSnapshots(), got)

	path, err = repo.ExportSnapshotsToJSON(nil, "empty", dir)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestExportPDFs(t *testing.T) {
	dir := t.TempDir()
	repo := newTestRepo()

	snap, err := repo.ExportSnapshotsToPDF(sampleSnapshots(), "Campaign dashboard", "dashboard", dir)
	require.NoError(t, err)
	drill, err := repo.ExportDrilldownToPDF(sampleDrilldown(), "drilldown", dir)
	require.NoError(t, err)

	for _, path := range []string{snap, drill} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "%PDF-"), path)
	}
}

func TestExportDrilldownToCSVSections(t *testing.T) {
	path, err := newTestRepo().ExportDrilldownToCSV(sampleDrilldown(), "drilldown", t.TempDir())
	require.NoError(t, err)

	rows := readCSV(t, path)
	var titles []string
	for _, row := range rows {
		if len(row) == 1 && row[0] != "" {
			titles = append(titles, row[0])
		}
	}
	assert.Equal(t, []string{"Summary", "Trend", "Campaigns", "Alerts", "Detailed"}, titles)
	assert.Equal(t, []string{"Product", "Widget"}, rows[0])
}

func TestExportDrilldownToJSON(t *testing.T) {
	path, err := newTestRepo().ExportDrilldownToJSON(sampleDrilldown(), "drilldown", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got entity.Drilldown
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Widget", got.GoodsName)
	assert.Len(t, got.Trend, 2)
	assert.Equal(t, entity.StatusAtRisk, got.Campaigns[0].Status)
}

func TestCleanRichTags(t *testing.T) {
	assert.Equal(t, "43-Brand", cleanRichTags("[red]43-Brand[/red]"))
	assert.Equal(t, "ok", cleanRichTags("\x1b[32mok\x1b[0m"))
}
