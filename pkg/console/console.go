package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

const barWidth = 40

// Console implements types.ConsoleInterface on the terminal.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console writing to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWithWriter creates a Console writing plain output to w.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Shared colors for the banner and highlights.
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BoldRed       = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status starts a spinner with message.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

func (c *Console) ProgressWithTotal(total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Exporting reports").
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &progressHandle{bar: bar}
}

func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

func (h *progressHandle) Stop() {
	if h.bar != nil {
		_, _ = h.bar.Stop()
	}
}

// Table collects rows and renders them with pterm.
type Table struct {
	columns []string
	rows    [][]string
}

func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow stringifies every cell.
func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Render() string {
	data := pterm.TableData{t.columns}
	data = append(data, t.rows...)

	rendered, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	return rendered
}

// DisplayPanel prints content inside a titled box.
func (c *Console) DisplayPanel(title, content string) {
	panel := pterm.DefaultBox.
		WithTitle(title).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(content)
	fmt.Fprintln(c.out, "\n"+panel)
}

// DisplayTrendBars draws one bar per point, scaled to the largest value,
// with the change against the previous point.
func (c *Console) DisplayTrendBars(title string, points []types.TrendPoint) {
	rendered, ok := trendTable(points)
	if !ok {
		pterm.Warning.Println("All values are 0 for this period")
		return
	}
	c.DisplayPanel(title, rendered)
}

func trendTable(points []types.TrendPoint) (string, bool) {
	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	if maxValue == 0 {
		return "", false
	}

	data := pterm.TableData{{"Period", "Spend", "", "Change"}}
	for i, p := range points {
		bar := strings.Repeat("█", int(p.Value/maxValue*barWidth))
		colored := pterm.FgBlue.Sprint(bar)
		change := ""
		if i > 0 {
			change, colored = changeCells(points[i-1].Value, p.Value, bar)
		}
		data = append(data, []string{p.Label, fmt.Sprintf("$%.2f", p.Value), colored, change})
	}

	rendered, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	return rendered, true
}

// changeCells colors rising spend red and falling spend green.
func changeCells(prev, cur float64, bar string) (string, string) {
	if prev < 0.01 {
		if cur < 0.01 {
			return pterm.FgYellow.Sprint("0%"), pterm.FgYellow.Sprint(bar)
		}
		return pterm.FgRed.Sprint("N/A"), pterm.FgRed.Sprint(bar)
	}

	pct := (cur - prev) / prev * 100
	switch {
	case math.Abs(pct) < 0.01:
		return pterm.FgYellow.Sprint("0%"), pterm.FgYellow.Sprint(bar)
	case pct > 999:
		return pterm.FgRed.Sprint(">+999%"), pterm.FgRed.Sprint(bar)
	case pct < -999:
		return pterm.FgGreen.Sprint(">-999%"), pterm.FgGreen.Sprint(bar)
	case pct > 0:
		return pterm.FgRed.Sprintf("+%.2f%%", pct), pterm.FgRed.Sprint(bar)
	default:
		return pterm.FgGreen.Sprintf("%.2f%%", pct), pterm.FgGreen.Sprint(bar)
	}
}
