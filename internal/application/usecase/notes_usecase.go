package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

// ListOptimizations returns the brand's optimization notes.
func (uc *DashboardUseCase) ListOptimizations(ctx context.Context, q entity.OptimizationQuery) ([]entity.Optimization, error) {
	if uc.optimizationRepo == nil {
		return nil, types.ErrStateNotConfigured
	}
	return uc.optimizationRepo.List(ctx, q)
}

// ListOptimizationsByMonth returns the brand's notes for one calendar month.
func (uc *DashboardUseCase) ListOptimizationsByMonth(ctx context.Context, brand string, month time.Month, year int, platform string) ([]entity.Optimization, error) {
	if uc.optimizationRepo == nil {
		return nil, types.ErrStateNotConfigured
	}
	return uc.optimizationRepo.ListByMonth(ctx, brand, month, year, platform)
}

// AddOptimization stores a new note. An empty date means today.
func (uc *DashboardUseCase) AddOptimization(ctx context.Context, o *entity.Optimization) error {
	if uc.optimizationRepo == nil {
		return types.ErrStateNotConfigured
	}
	if strings.TrimSpace(o.Brand) == "" {
		return types.ErrBrandRequired
	}
	if o.Date == "" {
		o.Date = uc.now().Format("2006-01-02")
	}
	return uc.optimizationRepo.Create(ctx, o)
}

// RunNotesList prints the notes selected by q.
func (uc *DashboardUseCase) RunNotesList(ctx context.Context, q entity.OptimizationQuery) error {
	notes, err := uc.ListOptimizations(ctx, q)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		uc.console.LogWarning("No optimization notes found for brand %s", q.Brand)
		return nil
	}
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Optimization notes for %s (%d)", q.Brand, len(notes)))
	uc.displayOptimizations(notes)
	return nil
}

// RunNotesMonth prints the brand's notes for one calendar month.
func (uc *DashboardUseCase) RunNotesMonth(ctx context.Context, brand string, month time.Month, year int, platform string) error {
	notes, err := uc.ListOptimizationsByMonth(ctx, brand, month, year, platform)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		uc.console.LogWarning("No optimization notes found for brand %s in %s %d", brand, month, year)
		return nil
	}
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Optimization notes for %s, %s %d (%d)", brand, month, year, len(notes)))
	uc.displayOptimizations(notes)
	return nil
}

func (uc *DashboardUseCase) displayOptimizations(notes []entity.Optimization) {
	table := uc.console.CreateTable()
	for _, col := range []string{"Date", "Platform", "Campaign", "Optimization", "Changes", "Score", "Next step", "By"} {
		table.AddColumn(col)
	}
	for _, o := range notes {
		table.AddRow(o.Date, o.Platform, o.Campaign, o.Optimization, o.Changes, o.OptimizationScore, o.ResultsNextStep, o.OptimizationBy)
	}
	uc.console.Print(table.Render())
}
