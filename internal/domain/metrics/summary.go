package metrics

import (
	"sort"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

const unknownPublisher = "Unknown"

// Summarize computes the headline totals of a record subset.
func Summarize(records []entity.RawRecord) entity.MetricSummary {
	var s entity.MetricSummary
	for _, r := range records {
		s.TotalSpent += r.AmountSpent
		s.TotalRevenue += r.FulfillmentRevenue
		s.TotalImpressions += r.Impressions
		s.TotalClicks += r.Clicks
		s.TotalLeads += r.Leads
		s.TotalOrders += r.FulfillmentOrders
	}
	s.ROAS = ROAS(s.TotalRevenue, s.TotalSpent)
	s.CTR = CTR(s.TotalClicks, s.TotalImpressions)
	s.CPL = CPA(s.TotalSpent, s.TotalLeads)
	s.CPO = CPA(s.TotalSpent, s.TotalOrders)
	return s
}

// PublisherBreakdown sums spend per publisher in first-seen order.
func PublisherBreakdown(records []entity.RawRecord) []entity.PublisherSpend {
	index := make(map[string]int)
	var out []entity.PublisherSpend
	var total float64
	for _, r := range records {
		name := r.Publisher
		if name == "" {
			name = unknownPublisher
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, entity.PublisherSpend{Publisher: name})
		}
		out[i].Spend += r.AmountSpent
		total += r.AmountSpent
	}
	for i := range out {
		out[i].Share = safeDiv(out[i].Spend, total) * 100
	}
	return out
}

// CompareCampaigns groups campaigns under the product they sell, each
// product listing its campaigns by spend, highest first.
func CompareCampaigns(records []entity.RawRecord) []entity.CampaignComparison {
	type bucket struct {
		index map[string]int
		rows  []entity.CampaignPerformance
	}
	byGoods := make(map[string]*bucket)
	var order []string
	for _, r := range records {
		if r.GoodsName == "" || r.CampaignName == "" {
			continue
		}
		b, ok := byGoods[r.GoodsName]
		if !ok {
			b = &bucket{index: make(map[string]int)}
			byGoods[r.GoodsName] = b
			order = append(order, r.GoodsName)
		}
		i, ok := b.index[r.CampaignName]
		if !ok {
			i = len(b.rows)
			b.index[r.CampaignName] = i
			b.rows = append(b.rows, entity.CampaignPerformance{Name: r.CampaignName})
		}
		accumulate(&b.rows[i], r)
	}

	out := make([]entity.CampaignComparison, 0, len(order))
	for _, goods := range order {
		rows := byGoods[goods].rows
		for i := range rows {
			derive(&rows[i])
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Spend > rows[j].Spend })
		out = append(out, entity.CampaignComparison{GoodsName: goods, Campaigns: rows})
	}
	return out
}
