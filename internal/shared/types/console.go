package types

// ConsoleInterface defines the terminal output used by the dashboard.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	ProgressWithTotal(total int) ProgressHandle

	CreateTable() TableInterface
	DisplayTrendBars(title string, points []TrendPoint)
	DisplayPanel(title string, content string)
}

// StatusHandle updates a running status message.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// ProgressHandle advances a progress bar.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface builds and renders a table.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// TrendPoint is one bar of a trend chart.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
