package metrics

import (
	"strings"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// FilterSnapshots applies the group and zero-conversion filters.
func FilterSnapshots(rows []entity.EntityMetricsSnapshot, f entity.SnapshotFilter) []entity.EntityMetricsSnapshot {
	out := make([]entity.EntityMetricsSnapshot, 0, len(rows))
	for _, r := range rows {
		if f.Group != "" && r.Group != f.Group {
			continue
		}
		if f.HideZeroConversions && r.MTDConv <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterRecords keeps the records matching every non-empty field of f.
// Platform matches case-insensitively; a date range drops undated records.
func FilterRecords(records []entity.RawRecord, f entity.RecordFilter) []entity.RawRecord {
	out := make([]entity.RawRecord, 0, len(records))
	for _, r := range records {
		if f.Platform != "" && !strings.EqualFold(r.Platform, f.Platform) {
			continue
		}
		if f.Publisher != "" && r.Publisher != f.Publisher {
			continue
		}
		if f.GoodsSold != "" && r.GoodsSold != f.GoodsSold {
			continue
		}
		if f.GoodsName != "" && r.GoodsName != f.GoodsName {
			continue
		}
		if f.CampaignName != "" && r.CampaignName != f.CampaignName {
			continue
		}
		if !f.StartDate.IsZero() || !f.EndDate.IsZero() {
			if !r.HasDate() {
				continue
			}
			day := DateOnly(r.Date)
			if !f.StartDate.IsZero() && day.Before(DateOnly(f.StartDate)) {
				continue
			}
			if !f.EndDate.IsZero() && day.After(DateOnly(f.EndDate)) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Groups lists the distinct non-empty target groups in source order.
func Groups(targets []entity.TargetReference) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range targets {
		if t.Group == "" || seen[t.Group] {
			continue
		}
		seen[t.Group] = true
		out = append(out, t.Group)
	}
	return out
}
