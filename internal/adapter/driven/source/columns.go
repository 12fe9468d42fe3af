package source

import "strings"

// Field is a canonical column of the record or target files.
type Field string

const (
	FieldPlatform           Field = "platform"
	FieldPublisher          Field = "publisher"
	FieldGoodsSold          Field = "goods_sold"
	FieldGoodsName          Field = "goods_name"
	FieldCampaignID         Field = "campaign_id"
	FieldCampaignName       Field = "campaign_name"
	FieldPlatformAccount    Field = "platform_account"
	FieldDate               Field = "date"
	FieldAmountSpent        Field = "amount_spent"
	FieldImpressions        Field = "impressions"
	FieldClicks             Field = "clicks"
	FieldLPViews            Field = "lp_views"
	FieldLPViewCost         Field = "lp_view_cost"
	FieldLeads              Field = "leads"
	FieldLeadCost           Field = "lead_cost"
	FieldLinkClicks         Field = "link_clicks"
	FieldPlatformResults    Field = "platform_results"
	FieldPlatformValue      Field = "platform_value"
	FieldFulfillmentOrders  Field = "fulfillment_orders"
	FieldFulfillmentRevenue Field = "fulfillment_revenue"

	FieldBrandName     Field = "brand_name"
	FieldTCPA          Field = "tcpa"
	FieldMonthlyBudget Field = "monthly_budget"
	FieldGroup         Field = "group"
)

// columnAliases maps normalized header names to canonical fields.
// Headers are lowercased and stripped of spaces, underscores and dashes first.
var columnAliases = map[string]Field{
	"platform": FieldPlatform,
	"channel":  FieldPlatform,

	"publisher": FieldPublisher,

	"goodssold": FieldGoodsSold,
	"brand":     FieldGoodsSold,

	"goodsname":   FieldGoodsName,
	"goods":       FieldGoodsName,
	"product":     FieldGoodsName,
	"productname": FieldGoodsName,

	"campaignid": FieldCampaignID,

	"campaignname": FieldCampaignName,
	"campaign":     FieldCampaignName,

	"plataccountnbr":  FieldPlatformAccount,
	"accountnumber":   FieldPlatformAccount,
	"platformaccount": FieldPlatformAccount,

	"campaigndate": FieldDate,
	"date":         FieldDate,
	"day":          FieldDate,

	"amountspent": FieldAmountSpent,
	"spend":       FieldAmountSpent,
	"spent":       FieldAmountSpent,
	"cost":        FieldAmountSpent,

	"impressions": FieldImpressions,
	"clicks":      FieldClicks,
	"lpviews":     FieldLPViews,
	"lpviewcost":  FieldLPViewCost,
	"leads":       FieldLeads,
	"leadcost":    FieldLeadCost,
	"linkclicks":  FieldLinkClicks,

	"platbresult":     FieldPlatformResults,
	"platformresults": FieldPlatformResults,
	"results":         FieldPlatformResults,

	"platvalue":     FieldPlatformValue,
	"platformvalue": FieldPlatformValue,

	"fulfillmentorders": FieldFulfillmentOrders,
	"orders":            FieldFulfillmentOrders,

	"fulfillmentrevenue": FieldFulfillmentRevenue,
	"revenue":            FieldFulfillmentRevenue,

	"brandname":     FieldBrandName,
	"tcpa":          FieldTCPA,
	"targetcpa":     FieldTCPA,
	"monthlybudget": FieldMonthlyBudget,
	"budget":        FieldMonthlyBudget,
	"group":         FieldGroup,
	"team":          FieldGroup,
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// MapColumns returns the column index of each recognised field. When two
// headers map to the same field the first one wins.
func MapColumns(header []string) map[Field]int {
	mapping := make(map[Field]int)
	for i, h := range header {
		field, ok := columnAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := mapping[field]; !dup {
			mapping[field] = i
		}
	}
	return mapping
}
