package repository

import (
	"context"
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// OptimizationRepository stores the team's optimization notes.
type OptimizationRepository interface {
	List(ctx context.Context, q entity.OptimizationQuery) ([]entity.Optimization, error)
	ListByMonth(ctx context.Context, brand string, month time.Month, year int, platform string) ([]entity.Optimization, error)
	Create(ctx context.Context, o *entity.Optimization) error
}
