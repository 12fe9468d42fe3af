package export

import (
	"fmt"
	"path/filepath"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

var snapshotHeaders = []string{
	"Brand", "Campaign", "Goods", "Group", "TCPA", "Monthly Budget",
	"3D CPA", "3D Conv", "7D CPA", "7D Conv", "14D CPA", "14D Conv",
	"30D CPA", "30D Conv", "MTD CPA", "MTD Conv",
	"Amount Spent", "Budget Pacing", "Remaining Budget",
}

func snapshotRecord(s entity.EntityMetricsSnapshot) []string {
	return []string{
		s.BrandName, s.CampaignName, s.GoodsName, s.Group,
		money(s.TCPA), money(s.MonthlyBudget),
		money(s.ThreeDayCPA), count(s.ThreeDayConv),
		money(s.SevenDayCPA), count(s.SevenDayConv),
		money(s.FourteenDayCPA), count(s.FourteenDayConv),
		money(s.ThirtyDayCPA), count(s.ThirtyDayConv),
		money(s.MTDCPA), count(s.MTDConv),
		money(s.AmountSpent), pct(s.BudgetPacing), money(s.RemainingBudget),
	}
}

func (r *ExportRepositoryImpl) ExportSnapshotsToCSV(rows []entity.EntityMetricsSnapshot, filename, outputDir string) (string, error) {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, snapshotHeaders)
	for _, s := range rows {
		records = append(records, snapshotRecord(s))
	}
	return r.writeCSV(filename, outputDir, records)
}

func (r *ExportRepositoryImpl) ExportSnapshotsToJSON(rows []entity.EntityMetricsSnapshot, filename, outputDir string) (string, error) {
	if rows == nil {
		rows = []entity.EntityMetricsSnapshot{}
	}
	return r.writeJSON(filename, outputDir, rows)
}

// ExportSnapshotsToPDF renders one block per row, landscape, in the order given.
func (r *ExportRepositoryImpl) ExportSnapshotsToPDF(rows []entity.EntityMetricsSnapshot, title, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	doc := newReport("L", r.now())
	doc.header(title, fmt.Sprintf("%d rows", len(rows)))

	widths := []float64{60, 25, 25, 25, 25, 25, 25, 30, 37}
	doc.tableHeader(widths, []string{"Name", "TCPA", "3D CPA", "7D CPA", "14D CPA", "30D CPA", "MTD CPA", "Spent", "Pacing / Remaining"})
	for _, s := range rows {
		name := s.CampaignName
		if name == "" {
			name = s.GoodsName
		}
		doc.tableRow(widths, []string{
			cleanRichTags(name),
			money(s.TCPA),
			fmt.Sprintf("%s (%d)", money(s.ThreeDayCPA), s.ThreeDayConv),
			fmt.Sprintf("%s (%d)", money(s.SevenDayCPA), s.SevenDayConv),
			fmt.Sprintf("%s (%d)", money(s.FourteenDayCPA), s.FourteenDayConv),
			fmt.Sprintf("%s (%d)", money(s.ThirtyDayCPA), s.ThirtyDayConv),
			fmt.Sprintf("%s (%d)", money(s.MTDCPA), s.MTDConv),
			money(s.AmountSpent),
			fmt.Sprintf("%s / %s", pct(s.BudgetPacing), money(s.RemainingBudget)),
		})
	}

	if err := doc.save(outputFilename); err != nil {
		return "", err
	}
	return filepath.Abs(outputFilename)
}
