package repository

import (
	"context"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// RecordRepository loads performance records and targets from a local path
// or an s3://bucket/key location.
type RecordRepository interface {
	LoadRecords(ctx context.Context, source string) ([]entity.RawRecord, error)
	LoadTargets(ctx context.Context, source string) ([]entity.TargetReference, error)
}
