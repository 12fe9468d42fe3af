package entity

import "time"

// ViewFilters is the dashboard state captured by a saved view.
type ViewFilters struct {
	GroupBy   GroupBy        `json:"group_by"`
	SortKey   string         `json:"sort_key,omitempty"`
	Direction string         `json:"direction,omitempty"`
	Snapshot  SnapshotFilter `json:"snapshot"`
	Records   RecordFilter   `json:"records"`
}

// SavedView is a named dashboard configuration.
type SavedView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Filters   ViewFilters `json:"filters"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	CreatedAt time.Time   `json:"created_at"`
}

// MetricsSnapshot is a point-in-time record of a drill-down, kept in history.
type MetricsSnapshot struct {
	ID        int64            `json:"id"`
	GoodsName string           `json:"goods_name"`
	Days      int              `json:"days"`
	Summary   DrilldownSummary `json:"summary"`
	Alerts    int              `json:"alerts"`
	TakenAt   time.Time        `json:"taken_at"`
}
