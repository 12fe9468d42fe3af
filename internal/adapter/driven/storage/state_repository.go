package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/repository"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

// DefaultSnapshotHistory is how many drill-down snapshots are kept per product.
const DefaultSnapshotHistory = 10

// StateRepositoryImpl implements StateRepository on gorm.
type StateRepositoryImpl struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStateRepository creates a new StateRepository.
func NewStateRepository(db *gorm.DB) repository.StateRepository {
	return &StateRepositoryImpl{db: db, now: time.Now}
}

// SaveView inserts or replaces a view. A missing ID is generated.
func (r *StateRepositoryImpl) SaveView(ctx context.Context, v *entity.SavedView) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return types.ErrViewNameRequired
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = r.now().UTC()
	}

	m := savedViewModel{
		ID:        v.ID,
		Name:      v.Name,
		Filters:   v.Filters,
		StartDate: v.StartDate,
		EndDate:   v.EndDate,
		CreatedAt: v.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return fmt.Errorf("failed to save view %q: %w", v.Name, err)
	}
	return nil
}

// ListViews returns every saved view, oldest first.
func (r *StateRepositoryImpl) ListViews(ctx context.Context) ([]entity.SavedView, error) {
	var models []savedViewModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}
	out := make([]entity.SavedView, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// GetView looks a view up by ID, then by name. When names collide the
// newest view wins.
func (r *StateRepositoryImpl) GetView(ctx context.Context, idOrName string) (entity.SavedView, error) {
	var m savedViewModel
	err := r.db.WithContext(ctx).Where("id = ?", idOrName).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.WithContext(ctx).Where("name = ?", idOrName).Order("created_at DESC").First(&m).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.SavedView{}, fmt.Errorf("%w: %s", types.ErrViewNotFound, idOrName)
	}
	if err != nil {
		return entity.SavedView{}, fmt.Errorf("failed to load view %q: %w", idOrName, err)
	}
	return m.toEntity(), nil
}

func (r *StateRepositoryImpl) DeleteView(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&savedViewModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete view %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", types.ErrViewNotFound, id)
	}
	return nil
}

// AppendSnapshot records a drill-down snapshot and trims the product's
// history to the newest keep entries. keep <= 0 uses DefaultSnapshotHistory.
func (r *StateRepositoryImpl) AppendSnapshot(ctx context.Context, s *entity.MetricsSnapshot, keep int) error {
	if keep <= 0 {
		keep = DefaultSnapshotHistory
	}
	if s.TakenAt.IsZero() {
		s.TakenAt = r.now().UTC()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := snapshotModel{
			GoodsName: s.GoodsName,
			Days:      s.Days,
			Summary:   s.Summary,
			Alerts:    s.Alerts,
			TakenAt:   s.TakenAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		s.ID = m.ID

		var ids []int64
		if err := tx.Model(&snapshotModel{}).
			Where("goods_name = ?", s.GoodsName).
			Order("taken_at DESC").Order("id DESC").
			Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to read snapshot history: %w", err)
		}
		if len(ids) <= keep {
			return nil
		}
		if err := tx.Where("id IN ?", ids[keep:]).Delete(&snapshotModel{}).Error; err != nil {
			return fmt.Errorf("failed to trim snapshot history: %w", err)
		}
		return nil
	})
}

// ListSnapshots returns the product's history, newest first. An empty
// goods name lists every product.
func (r *StateRepositoryImpl) ListSnapshots(ctx context.Context, goods string) ([]entity.MetricsSnapshot, error) {
	query := r.db.WithContext(ctx)
	if goods != "" {
		query = query.Where("goods_name = ?", goods)
	}

	var models []snapshotModel
	if err := query.Order("taken_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	out := make([]entity.MetricsSnapshot, 0, len(models))
	for _, m := range models {
		out = append(out, entity.MetricsSnapshot{
			ID:        m.ID,
			GoodsName: m.GoodsName,
			Days:      m.Days,
			Summary:   m.Summary,
			Alerts:    m.Alerts,
			TakenAt:   m.TakenAt,
		})
	}
	return out, nil
}

func (r *StateRepositoryImpl) SetPreference(ctx context.Context, key, value string) error {
	m := preferenceModel{Key: key, Value: value, UpdatedAt: r.now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

func (r *StateRepositoryImpl) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var m preferenceModel
	err := r.db.WithContext(ctx).Where("pref_key = ?", key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load preference %s: %w", key, err)
	}
	return m.Value, true, nil
}

func (m savedViewModel) toEntity() entity.SavedView {
	return entity.SavedView{
		ID:        m.ID,
		Name:      m.Name,
		Filters:   m.Filters,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
	}
}
