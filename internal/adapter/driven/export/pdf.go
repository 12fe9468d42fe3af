package export

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

// report wraps a gofpdf document with the dashboard's layout.
type report struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	width float64
}

func newReport(orientation string, generated time.Time) *report {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Paid Media Dashboard | %s", generated.Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	return &report{pdf: pdf, tr: tr, width: pageW - left - right}
}

func (d *report) header(title, subtitle string) {
	pdf := d.pdf
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	pdf.CellFormat(0, 12, d.tr("  "+cleanRichTags(title)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, d.tr("  "+subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(6)
}

func (d *report) sectionTitle(title string) {
	pdf := d.pdf
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
	pdf.Cell(0, 8, d.tr(title))
	pdf.Ln(7)

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+d.width, pdf.GetY())
	pdf.Ln(4)
}

// section writes a titled free-text block. Empty content is skipped.
func (d *report) section(title, content string) {
	content = cleanRichTags(content)
	if content == "" {
		return
	}
	d.sectionTitle(title)
	d.pdf.SetFont("Arial", "", 10)
	d.pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	d.pdf.MultiCell(d.width, 5, d.tr(content), "", "L", false)
	d.pdf.Ln(6)
}

func (d *report) tableHeader(widths []float64, cols []string) {
	pdf := d.pdf
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for i, c := range cols {
		pdf.CellFormat(widths[i], 7, d.tr(c), "B", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func (d *report) tableRow(widths []float64, cells []string) {
	pdf := d.pdf
	pdf.SetFont("Arial", "", 8)
	for i, c := range cells {
		text := c
		for len(text) > 3 && pdf.GetStringWidth(text) > widths[i]-1 {
			text = text[:len(text)-4] + "..."
		}
		pdf.CellFormat(widths[i], 6, d.tr(text), "", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func (d *report) save(path string) error {
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("error writing PDF file: %w", err)
	}
	return nil
}
