package repository

import (
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportSnapshotsToCSV(rows []entity.EntityMetricsSnapshot, filename, outputDir string) (string, error)
	ExportSnapshotsToJSON(rows []entity.EntityMetricsSnapshot, filename, outputDir string) (string, error)
	ExportSnapshotsToPDF(rows []entity.EntityMetricsSnapshot, title, filename, outputDir string) (string, error)

	// Drill-down
	ExportDrilldownToCSV(d entity.Drilldown, filename, outputDir string) (string, error)
	ExportDrilldownToJSON(d entity.Drilldown, filename, outputDir string) (string, error)
	ExportDrilldownToPDF(d entity.Drilldown, filename, outputDir string) (string, error)
}
