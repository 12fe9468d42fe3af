package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/repository"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

const isoDate = "2006-01-02"

// OptimizationRepositoryImpl implements OptimizationRepository on gorm.
type OptimizationRepositoryImpl struct {
	db *gorm.DB
}

// NewOptimizationRepository creates a new OptimizationRepository.
func NewOptimizationRepository(db *gorm.DB) repository.OptimizationRepository {
	return &OptimizationRepositoryImpl{db: db}
}

// List returns the brand's notes, newest first. The date range only applies
// when both bounds are given.
func (r *OptimizationRepositoryImpl) List(ctx context.Context, q entity.OptimizationQuery) ([]entity.Optimization, error) {
	if strings.TrimSpace(q.Brand) == "" {
		return nil, types.ErrBrandRequired
	}

	query := r.db.WithContext(ctx).Where("brand = ?", q.Brand)
	if q.StartDate != "" && q.EndDate != "" {
		query = query.Where("date BETWEEN ? AND ?", q.StartDate, q.EndDate)
	}
	if q.Platform != "" {
		query = query.Where("platform = ?", q.Platform)
	}

	var models []optimizationModel
	if err := query.Order("date DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch optimization data: %w", err)
	}

	out := make([]entity.Optimization, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// ListByMonth returns the notes dated within one calendar month.
func (r *OptimizationRepositoryImpl) ListByMonth(ctx context.Context, brand string, month time.Month, year int, platform string) ([]entity.Optimization, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month: %d", month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return r.List(ctx, entity.OptimizationQuery{
		Brand:     brand,
		StartDate: first.Format(isoDate),
		EndDate:   last.Format(isoDate),
		Platform:  platform,
	})
}

// Create stores a note and fills in its ID and creation time.
func (r *OptimizationRepositoryImpl) Create(ctx context.Context, o *entity.Optimization) error {
	if strings.TrimSpace(o.Brand) == "" {
		return types.ErrBrandRequired
	}
	if _, err := time.Parse(isoDate, o.Date); err != nil {
		return fmt.Errorf("%w: %q", types.ErrInvalidDate, o.Date)
	}

	m := fromEntity(*o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("failed to save optimization: %w", err)
	}
	o.ID = m.ID
	o.CreatedAt = m.CreatedAt
	return nil
}

func fromEntity(o entity.Optimization) optimizationModel {
	return optimizationModel{
		Brand:             o.Brand,
		Platform:          o.Platform,
		Date:              o.Date,
		Campaign:          o.Campaign,
		Optimization:      o.Optimization,
		Changes:           o.Changes,
		OptimizationScore: o.OptimizationScore,
		ResultsNextStep:   o.ResultsNextStep,
		DateChanges:       o.DateChanges,
		OptimizationBy:    o.OptimizationBy,
	}
}

func (m optimizationModel) toEntity() entity.Optimization {
	return entity.Optimization{
		ID:                m.ID,
		Brand:             m.Brand,
		Platform:          m.Platform,
		Date:              m.Date,
		Campaign:          m.Campaign,
		Optimization:      m.Optimization,
		Changes:           m.Changes,
		OptimizationScore: m.OptimizationScore,
		ResultsNextStep:   m.ResultsNextStep,
		DateChanges:       m.DateChanges,
		OptimizationBy:    m.OptimizationBy,
		CreatedAt:         m.CreatedAt,
	}
}
