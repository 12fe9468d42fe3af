package repository

import (
	"context"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// StateRepository persists dashboard state between runs: saved views,
// drill-down snapshot history and user preferences.
type StateRepository interface {
	SaveView(ctx context.Context, v *entity.SavedView) error
	ListViews(ctx context.Context) ([]entity.SavedView, error)
	GetView(ctx context.Context, idOrName string) (entity.SavedView, error)
	DeleteView(ctx context.Context, id string) error

	AppendSnapshot(ctx context.Context, s *entity.MetricsSnapshot, keep int) error
	ListSnapshots(ctx context.Context, goods string) ([]entity.MetricsSnapshot, error)

	SetPreference(ctx context.Context, key, value string) error
	GetPreference(ctx context.Context, key string) (string, bool, error)
}
