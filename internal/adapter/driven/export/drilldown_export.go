package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// ExportDrilldownToCSV writes the drill-down as titled sections separated by
// blank lines: summary, trend, campaigns, alerts and, when present, the
// detailed breakdown.
func (r *ExportRepositoryImpl) ExportDrilldownToCSV(d entity.Drilldown, filename, outputDir string) (string, error) {
	s := d.Summary
	rows := [][]string{
		{"Product", d.GoodsName},
		{"Window", fmt.Sprintf("%s to %s (%d days)", d.Start.Format("2006-01-02"), d.End.Format("2006-01-02"), d.Days)},
		{},
		{"Summary"},
		{"Spend", "Conversions", "Revenue", "Impressions", "Clicks", "CPA", "ROAS", "CTR", "Conversion Rate", "Avg Daily Spend"},
		{
			money(s.TotalSpend), count(s.TotalConversions), money(s.TotalRevenue),
			count(s.TotalImpressions), count(s.TotalClicks), money(s.CPA),
			num(s.ROAS), pct(s.CTR), pct(s.ConversionRate), money(s.AvgDailySpend),
		},
		{},
		{"Trend"},
		{"Period", "Spend", "Conversions", "Revenue", "CPA", "ROAS", "CTR", "Conversion Rate"},
	}
	for _, t := range d.Trend {
		rows = append(rows, []string{
			t.Key, money(t.Spend), count(t.Conversions), money(t.Revenue),
			money(t.CPA), num(t.ROAS), pct(t.CTR), pct(t.ConversionRate),
		})
	}

	rows = append(rows, []string{}, []string{"Campaigns"},
		[]string{"Campaign", "Spend", "Conversions", "Revenue", "CPA", "ROAS", "CTR", "Budget Pacing", "Status"})
	for _, c := range d.Campaigns {
		rows = append(rows, []string{
			c.Name, money(c.Spend), count(c.Conversions), money(c.Revenue),
			money(c.CPA), num(c.ROAS), pct(c.CTR), pct(c.BudgetPacing), string(c.Status),
		})
	}

	rows = append(rows, []string{}, []string{"Alerts"}, []string{"Severity", "Metric", "Change", "Message"})
	for _, a := range d.Alerts {
		rows = append(rows, []string{string(a.Severity), a.Metric, pct(a.Change), a.Message})
	}

	if len(d.Detailed) > 0 {
		rows = append(rows, []string{}, []string{"Detailed"},
			[]string{"Period", "Campaign", "Spend", "Impressions", "Clicks", "CTR", "Platform Results", "Platform CPA", "Orders", "Revenue", "Variance"})
		for _, row := range d.Detailed {
			rows = append(rows, []string{
				row.Label, row.CampaignName, money(row.Spend), count(row.Impressions), count(row.Clicks),
				pct(row.CTR), num(row.PlatformResults), money(row.PlatformCPA), count(row.Orders),
				money(row.Revenue), num(row.Variance),
			})
		}
	}

	return r.writeCSV(filename, outputDir, rows)
}

func (r *ExportRepositoryImpl) ExportDrilldownToJSON(d entity.Drilldown, filename, outputDir string) (string, error) {
	return r.writeJSON(filename, outputDir, d)
}

func (r *ExportRepositoryImpl) ExportDrilldownToPDF(d entity.Drilldown, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	doc := newReport("P", r.now())
	doc.header(
		fmt.Sprintf("Drill-down: %s", d.GoodsName),
		fmt.Sprintf("%s to %s | TCPA %s | Monthly budget %s",
			d.Start.Format("2006-01-02"), d.End.Format("2006-01-02"),
			money(d.Target.TCPA), money(d.Target.MonthlyBudget)),
	)

	s := d.Summary
	doc.section("Summary", strings.Join([]string{
		fmt.Sprintf("Spend: %s (avg %s/day)", money(s.TotalSpend), money(s.AvgDailySpend)),
		fmt.Sprintf("Conversions: %d | CPA: %s", s.TotalConversions, money(s.CPA)),
		fmt.Sprintf("Revenue: %s | ROAS: %s", money(s.TotalRevenue), num(s.ROAS)),
		fmt.Sprintf("Impressions: %d | Clicks: %d | CTR: %s | Conversion rate: %s",
			s.TotalImpressions, s.TotalClicks, pct(s.CTR), pct(s.ConversionRate)),
	}, "\n"))

	t := d.Targets
	doc.section("Targets", strings.Join([]string{
		fmt.Sprintf("CPA: %s vs %s (%s, %s)", money(t.CPA.Current), money(t.CPA.Target), pct(t.CPA.Performance), t.CPA.Status),
		fmt.Sprintf("Budget: %s vs %s (%s, %s)", money(t.Budget.Current), money(t.Budget.Target), pct(t.Budget.Performance), t.Budget.Status),
		fmt.Sprintf("ROAS: %s vs %s (%s, %s)", num(t.ROAS.Current), num(t.ROAS.Target), pct(t.ROAS.Performance), t.ROAS.Status),
	}, "\n"))

	c := d.Comparison
	doc.section("Period over period", fmt.Sprintf(
		"Spend %+.1f%% | Conversions %+.1f%% | Revenue %+.1f%% | CPA %+.1f%% | ROAS %+.1f%%",
		c.Spend, c.Conversions, c.Revenue, c.CPA, c.ROAS))

	var alerts []string
	for _, a := range d.Alerts {
		alerts = append(alerts, fmt.Sprintf("[%s] %s", strings.ToUpper(string(a.Severity)), a.Message))
	}
	doc.section("Alerts", strings.Join(alerts, "\n"))

	if len(d.Trend) > 0 {
		doc.sectionTitle("Trend")
		widths := []float64{40, 30, 30, 30, 30, 30}
		doc.tableHeader(widths, []string{"Period", "Spend", "Conversions", "Revenue", "CPA", "ROAS"})
		for _, p := range d.Trend {
			doc.tableRow(widths, []string{p.Key, money(p.Spend), count(p.Conversions), money(p.Revenue), money(p.CPA), num(p.ROAS)})
		}
		doc.pdf.Ln(6)
	}

	if len(d.Campaigns) > 0 {
		doc.sectionTitle(fmt.Sprintf("Campaigns (%d performing, %d at risk, %d underperforming)",
			d.Indicators.Performing, d.Indicators.AtRisk, d.Indicators.Underperforming))
		widths := []float64{60, 25, 20, 25, 20, 15, 25}
		doc.tableHeader(widths, []string{"Campaign", "Spend", "Conv", "CPA", "ROAS", "CTR", "Status"})
		for _, cp := range d.Campaigns {
			doc.tableRow(widths, []string{cp.Name, money(cp.Spend), count(cp.Conversions), money(cp.CPA), num(cp.ROAS), pct(cp.CTR), string(cp.Status)})
		}
		doc.pdf.Ln(6)
	}

	var notes []string
	for _, o := range d.Optimizations {
		notes = append(notes, fmt.Sprintf("%s %s / %s: %s", o.Date, o.Platform, o.Campaign, o.Optimization))
	}
	doc.section("Optimization notes", strings.Join(notes, "\n"))

	if err := doc.save(outputFilename); err != nil {
		return "", err
	}
	return filepath.Abs(outputFilename)
}
