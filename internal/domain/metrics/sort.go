package metrics

import (
	"sort"
	"strings"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// Direction is a sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts asc/desc in any case; anything else is false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	}
	return "", false
}

// SortKeys lists the sortable snapshot columns.
var SortKeys = []string{
	"BrandName", "CampaignName", "GoodsName", "Group", "TCPA", "MonthlyBudget",
	"ThreeDayCPA", "ThreeDayConv", "SevenDayCPA", "SevenDayConv",
	"FourteenDayCPA", "FourteenDayConv", "ThirtyDayCPA", "ThirtyDayConv",
	"MTD_CPA", "MTD_Conv", "AmountSpent", "BudgetPacing", "RemainingBudget",
}

type fieldValue struct {
	num     float64
	str     string
	numeric bool
}

func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(key)
}

// snapshotField resolves a sort key against a snapshot.
func snapshotField(s entity.EntityMetricsSnapshot, key string) (fieldValue, bool) {
	num := func(v float64) (fieldValue, bool) { return fieldValue{num: v, numeric: true}, true }
	str := func(v string) (fieldValue, bool) { return fieldValue{str: v}, true }

	switch normalizeKey(key) {
	case "brandname", "brand":
		return str(s.BrandName)
	case "campaignname", "campaign":
		return str(s.CampaignName)
	case "goodsname", "goods":
		return str(s.GoodsName)
	case "group":
		return str(s.Group)
	case "tcpa":
		return num(s.TCPA)
	case "monthlybudget":
		return num(s.MonthlyBudget)
	case "threedaycpa":
		return num(s.ThreeDayCPA)
	case "threedayconv":
		return num(float64(s.ThreeDayConv))
	case "sevendaycpa":
		return num(s.SevenDayCPA)
	case "sevendayconv":
		return num(float64(s.SevenDayConv))
	case "fourteendaycpa":
		return num(s.FourteenDayCPA)
	case "fourteendayconv":
		return num(float64(s.FourteenDayConv))
	case "thirtydaycpa":
		return num(s.ThirtyDayCPA)
	case "thirtydayconv":
		return num(float64(s.ThirtyDayConv))
	case "mtdcpa":
		return num(s.MTDCPA)
	case "mtdconv":
		return num(float64(s.MTDConv))
	case "amountspent", "spend":
		return num(s.AmountSpent)
	case "budgetpacing", "pacing":
		return num(s.BudgetPacing)
	case "remainingbudget":
		return num(s.RemainingBudget)
	}
	return fieldValue{}, false
}

// IsSortKey reports whether key names a sortable column.
func IsSortKey(key string) bool {
	_, ok := snapshotField(entity.EntityMetricsSnapshot{}, key)
	return ok
}

// IsCPAKey reports whether key ranks target-relative. Any key containing
// "cpa" qualifies, TCPA included; TCPA is never over its own target so it
// keeps input order.
func IsCPAKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "cpa")
}

// SortByMetric returns a sorted copy of rows. CPA keys rank rows against
// their own TCPA: descending puts every over-target row first, ascending every
// at-or-under-target row first, and rows on the same side order by variance.
// Other keys compare raw values. Ties keep input order; unknown keys return
// the rows unchanged.
func SortByMetric(rows []entity.EntityMetricsSnapshot, key string, dir Direction) []entity.EntityMetricsSnapshot {
	out := make([]entity.EntityMetricsSnapshot, len(rows))
	copy(out, rows)
	if !IsSortKey(key) {
		return out
	}
	desc := dir == Descending

	if IsCPAKey(key) {
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := snapshotField(out[i], key)
			b, _ := snapshotField(out[j], key)
			aOver := a.num > out[i].TCPA
			bOver := b.num > out[j].TCPA
			aVar := Variance(a.num, out[i].TCPA)
			bVar := Variance(b.num, out[j].TCPA)
			if desc {
				if aOver != bOver {
					return aOver
				}
				return aVar > bVar
			}
			if aOver != bOver {
				return bOver
			}
			return aVar < bVar
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := snapshotField(out[i], key)
		b, _ := snapshotField(out[j], key)
		if a.numeric {
			if desc {
				return a.num > b.num
			}
			return a.num < b.num
		}
		if desc {
			return a.str > b.str
		}
		return a.str < b.str
	})
	return out
}
