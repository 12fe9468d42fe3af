package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

func names(rows []entity.EntityMetricsSnapshot) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.GoodsName
	}
	return out
}

func cpaRows() []entity.EntityMetricsSnapshot {
	return []entity.EntityMetricsSnapshot{
		{GoodsName: "big-but-under", ThreeDayCPA: 100, TCPA: 200},
		{GoodsName: "over-by-50", ThreeDayCPA: 30, TCPA: 20},
		{GoodsName: "at-target", ThreeDayCPA: 50, TCPA: 50},
		{GoodsName: "over-by-25", ThreeDayCPA: 25, TCPA: 20},
	}
}

func TestSortByCPADescending(t *testing.T) {
	got := SortByMetric(cpaRows(), "ThreeDayCPA", Descending)

	assert.Equal(t, []string{"over-by-50", "over-by-25", "at-target", "big-but-under"}, names(got))
}

func TestSortByCPAAscending(t *testing.T) {
	got := SortByMetric(cpaRows(), "ThreeDayCPA", Ascending)

	assert.Equal(t, []string{"big-but-under", "at-target", "over-by-25", "over-by-50"}, names(got))
}

func TestSortByCPAPlacesOverTargetFirst(t *testing.T) {
	rows := []entity.EntityMetricsSnapshot{
		{GoodsName: "u1", MTDCPA: 500, TCPA: 900},
		{GoodsName: "o1", MTDCPA: 11, TCPA: 10},
		{GoodsName: "u2", MTDCPA: 0, TCPA: 0},
		{GoodsName: "o2", MTDCPA: 2000, TCPA: 100},
		{GoodsName: "u3", MTDCPA: 80, TCPA: 80},
		{GoodsName: "o3", MTDCPA: 5, TCPA: 0},
	}

	for _, key := range []string{"MTD_CPA", "mtdcpa", "MTDCPA"} {
		got := SortByMetric(rows, key, Descending)
		seenUnder := false
		for _, r := range got {
			over := r.MTDCPA > r.TCPA
			if !over {
				seenUnder = true
				continue
			}
			assert.False(t, seenUnder, "key %s: over-target row %s after an under-target row", key, r.GoodsName)
		}
	}
}

func TestSortByTCPAKeepsOrder(t *testing.T) {
	rows := []entity.EntityMetricsSnapshot{
		{GoodsName: "a", TCPA: 10},
		{GoodsName: "b", TCPA: 30},
		{GoodsName: "c", TCPA: 20},
	}

	assert.Equal(t, []string{"a", "b", "c"}, names(SortByMetric(rows, "TCPA", Descending)))
	assert.Equal(t, []string{"a", "b", "c"}, names(SortByMetric(rows, "TCPA", Ascending)))
}

func TestSortByNumericKeyIsStable(t *testing.T) {
	rows := []entity.EntityMetricsSnapshot{
		{GoodsName: "a", AmountSpent: 10},
		{GoodsName: "b", AmountSpent: 30},
		{GoodsName: "c", AmountSpent: 10},
		{GoodsName: "d", AmountSpent: 20},
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, names(SortByMetric(rows, "AmountSpent", Descending)))
	assert.Equal(t, []string{"a", "c", "d", "b"}, names(SortByMetric(rows, "AmountSpent", Ascending)))
}

func TestSortByStringKey(t *testing.T) {
	rows := []entity.EntityMetricsSnapshot{
		{GoodsName: "x", BrandName: "Beta"},
		{GoodsName: "y", BrandName: "Alpha"},
		{GoodsName: "z", BrandName: "Gamma"},
	}

	assert.Equal(t, []string{"y", "x", "z"}, names(SortByMetric(rows, "BrandName", Ascending)))
	assert.Equal(t, []string{"z", "x", "y"}, names(SortByMetric(rows, "BrandName", Descending)))
}

func TestSortByMetricDoesNotMutateInput(t *testing.T) {
	rows := cpaRows()
	before := names(rows)

	_ = SortByMetric(rows, "ThreeDayCPA", Descending)

	assert.Equal(t, before, names(rows))
}

func TestSortByUnknownKey(t *testing.T) {
	rows := cpaRows()

	assert.Equal(t, names(rows), names(SortByMetric(rows, "NotAColumn", Descending)))
	assert.False(t, IsSortKey("NotAColumn"))
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("DESC")
	assert.True(t, ok)
	assert.Equal(t, Descending, d)

	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}
