package usecase

import (
	"context"
	"strings"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

// SaveView stores the current dashboard selection under name.
func (uc *DashboardUseCase) SaveView(ctx context.Context, name string, args *types.CLIArgs) (entity.SavedView, error) {
	if uc.stateRepo == nil {
		return entity.SavedView{}, types.ErrStateNotConfigured
	}
	if strings.TrimSpace(name) == "" {
		return entity.SavedView{}, types.ErrViewNameRequired
	}

	v := entity.SavedView{
		Name: name,
		Filters: entity.ViewFilters{
			GroupBy:   entity.GroupBy(strings.ToLower(args.GroupBy)),
			SortKey:   args.SortKey,
			Direction: args.Direction,
			Snapshot: entity.SnapshotFilter{
				Group:               args.Group,
				HideZeroConversions: !args.ShowZero,
			},
			Records: entity.RecordFilter{
				Platform:     args.Platform,
				Publisher:    args.Publisher,
				GoodsSold:    args.GoodsSold,
				GoodsName:    args.Goods,
				CampaignName: args.Campaign,
			},
		},
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
	}
	if err := uc.stateRepo.SaveView(ctx, &v); err != nil {
		return entity.SavedView{}, err
	}
	return v, nil
}

// ListViews returns every saved view.
func (uc *DashboardUseCase) ListViews(ctx context.Context) ([]entity.SavedView, error) {
	if uc.stateRepo == nil {
		return nil, types.ErrStateNotConfigured
	}
	return uc.stateRepo.ListViews(ctx)
}

// DeleteView removes a view by ID or name.
func (uc *DashboardUseCase) DeleteView(ctx context.Context, idOrName string) error {
	if uc.stateRepo == nil {
		return types.ErrStateNotConfigured
	}
	v, err := uc.stateRepo.GetView(ctx, idOrName)
	if err != nil {
		return err
	}
	return uc.stateRepo.DeleteView(ctx, v.ID)
}

// ApplyView loads a saved view into args. Values given explicitly on the
// command line win over the view.
func (uc *DashboardUseCase) ApplyView(ctx context.Context, idOrName string, args *types.CLIArgs) error {
	if uc.stateRepo == nil {
		return types.ErrStateNotConfigured
	}
	v, err := uc.stateRepo.GetView(ctx, idOrName)
	if err != nil {
		return err
	}

	f := v.Filters
	setIfEmpty(&args.GroupBy, string(f.GroupBy))
	setIfEmpty(&args.SortKey, f.SortKey)
	setIfEmpty(&args.Direction, f.Direction)
	setIfEmpty(&args.Group, f.Snapshot.Group)
	setIfEmpty(&args.Platform, f.Records.Platform)
	setIfEmpty(&args.Publisher, f.Records.Publisher)
	setIfEmpty(&args.GoodsSold, f.Records.GoodsSold)
	setIfEmpty(&args.Goods, f.Records.GoodsName)
	setIfEmpty(&args.Campaign, f.Records.CampaignName)
	if !f.Snapshot.HideZeroConversions {
		args.ShowZero = true
	}
	if args.StartDate.IsZero() {
		args.StartDate = v.StartDate
	}
	if args.EndDate.IsZero() {
		args.EndDate = v.EndDate
	}

	uc.console.LogInfo("Applied saved view '%s'", v.Name)
	return nil
}

// RunViewsList prints the saved views.
func (uc *DashboardUseCase) RunViewsList(ctx context.Context) error {
	views, err := uc.ListViews(ctx)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		uc.console.LogWarning("No saved views.")
		return nil
	}

	table := uc.console.CreateTable()
	for _, col := range []string{"ID", "Name", "Group by", "Sort", "Filters", "Created"} {
		table.AddColumn(col)
	}
	for _, v := range views {
		table.AddRow(v.ID, v.Name, string(v.Filters.GroupBy), strings.TrimSpace(v.Filters.SortKey+" "+v.Filters.Direction),
			describeFilters(v.Filters), v.CreatedAt.Format("2006-01-02 15:04"))
	}
	uc.console.Print(table.Render())
	return nil
}

func describeFilters(f entity.ViewFilters) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+"="+value)
		}
	}
	add("group", f.Snapshot.Group)
	add("platform", f.Records.Platform)
	add("publisher", f.Records.Publisher)
	add("goods_sold", f.Records.GoodsSold)
	add("goods", f.Records.GoodsName)
	add("campaign", f.Records.CampaignName)
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
