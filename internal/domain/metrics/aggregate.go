package metrics

import (
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

const (
	unknownBrand = "Unknown Brand"
	unknownGoods = "Unknown Goods"
)

// FindTarget returns the first target whose GoodsName equals goods.
func FindTarget(targets []entity.TargetReference, goods string) (entity.TargetReference, bool) {
	for _, t := range targets {
		if t.GoodsName == goods {
			return t, true
		}
	}
	return entity.TargetReference{}, false
}

// groupKey returns the aggregation key of r, or false when r lacks one.
func groupKey(r entity.RawRecord, by entity.GroupBy) (string, bool) {
	if !r.HasDate() {
		return "", false
	}
	switch by {
	case entity.GroupByProduct:
		if r.GoodsName == "" {
			return "", false
		}
		return r.GoodsName, true
	default:
		if r.CampaignID == "" || r.CampaignName == "" {
			return "", false
		}
		return r.CampaignID + "-" + r.CampaignName, true
	}
}

// Aggregate groups records by campaign or product and computes one snapshot
// per group as of today. Snapshots come out in first-seen key order.
func Aggregate(records []entity.RawRecord, targets []entity.TargetReference, by entity.GroupBy, today time.Time) []entity.EntityMetricsSnapshot {
	groups := make(map[string][]entity.RawRecord)
	var order []string
	for _, r := range records {
		key, ok := groupKey(r, by)
		if !ok {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	snapshots := make([]entity.EntityMetricsSnapshot, 0, len(order))
	for _, key := range order {
		rows := groups[key]
		first := rows[0]
		target, found := FindTarget(targets, first.GoodsName)

		var brand, goods, campaign string
		if by == entity.GroupByProduct {
			goods = key
			brand = goods
			if found && target.BrandName != "" {
				brand = target.BrandName
			}
			campaign = first.CampaignName
			if campaign == "" {
				campaign = goods
			}
		} else {
			brand = first.GoodsSold
			if brand == "" && found {
				brand = target.BrandName
			}
			if brand == "" {
				brand = unknownBrand
			}
			goods = first.GoodsName
			if goods == "" {
				goods = unknownGoods
			}
			campaign = first.CampaignName
		}

		snapshots = append(snapshots, Snapshot(rows, target, brand, goods, campaign, today))
	}
	return snapshots
}

// Snapshot computes the window and pacing figures of one group.
func Snapshot(rows []entity.RawRecord, target entity.TargetReference, brand, goods, campaign string, today time.Time) entity.EntityMetricsSnapshot {
	three := Trailing(rows, today, ThreeDays)
	seven := Trailing(rows, today, SevenDays)
	fourteen := Trailing(rows, today, FourteenDays)
	thirty := Trailing(rows, today, ThirtyDays)
	mtd := MonthToDate(rows, today)

	return entity.EntityMetricsSnapshot{
		BrandName:       brand,
		CampaignName:    campaign,
		GoodsName:       goods,
		Group:           target.Group,
		TCPA:            target.TCPA,
		MonthlyBudget:   target.MonthlyBudget,
		ThreeDayCPA:     three.CPA,
		ThreeDayConv:    three.Conversions,
		SevenDayCPA:     seven.CPA,
		SevenDayConv:    seven.Conversions,
		FourteenDayCPA:  fourteen.CPA,
		FourteenDayConv: fourteen.Conversions,
		ThirtyDayCPA:    thirty.CPA,
		ThirtyDayConv:   thirty.Conversions,
		MTDCPA:          mtd.CPA,
		MTDConv:         mtd.Conversions,
		AmountSpent:     mtd.Spend,
		BudgetPacing:    Pacing(target.MonthlyBudget, mtd.Spend, today),
		RemainingBudget: target.MonthlyBudget - mtd.Spend,
	}
}
