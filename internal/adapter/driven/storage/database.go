// Package storage persists optimization notes and dashboard state in SQLite.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

const memoryDSN = ":memory:"

type optimizationModel struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	Brand             string `gorm:"not null;size:100;index:idx_optimizations_brand_date"`
	Platform          string `gorm:"size:100"`
	Date              string `gorm:"not null;size:10;index:idx_optimizations_brand_date"`
	Campaign          string `gorm:"size:255"`
	Optimization      string `gorm:"size:2000"`
	Changes           string `gorm:"size:2000"`
	OptimizationScore string `gorm:"size:50"`
	ResultsNextStep   string `gorm:"size:2000"`
	DateChanges       string `gorm:"size:100"`
	OptimizationBy    string `gorm:"size:100"`
	CreatedAt         time.Time
}

func (optimizationModel) TableName() string { return "optimizations" }

type savedViewModel struct {
	ID        string             `gorm:"primaryKey;size:36"`
	Name      string             `gorm:"not null;size:255;index"`
	Filters   entity.ViewFilters `gorm:"serializer:json"`
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

func (savedViewModel) TableName() string { return "saved_views" }

type snapshotModel struct {
	ID        int64                   `gorm:"primaryKey;autoIncrement"`
	GoodsName string                  `gorm:"not null;size:255;index"`
	Days      int                     `gorm:"not null"`
	Summary   entity.DrilldownSummary `gorm:"serializer:json"`
	Alerts    int
	TakenAt   time.Time `gorm:"index"`
}

func (snapshotModel) TableName() string { return "metrics_snapshots" }

type preferenceModel struct {
	Key       string `gorm:"column:pref_key;primaryKey;size:100"`
	Value     string `gorm:"size:2000"`
	UpdatedAt time.Time
}

func (preferenceModel) TableName() string { return "preferences" }

// Open connects to the SQLite database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*gorm.DB, error) {
	if path != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// SQLite allows a single writer, and each in-memory connection is its own database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&optimizationModel{}, &savedViewModel{}, &snapshotModel{}, &preferenceModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
