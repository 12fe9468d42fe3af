package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/metrics"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

// Dataset is an immutable snapshot of the loaded records and targets.
type Dataset struct {
	Source   string
	Records  []entity.RawRecord
	Targets  []entity.TargetReference
	LoadedAt time.Time
}

// Groups lists the distinct target groups available for filtering.
func (ds *Dataset) Groups() []string {
	return metrics.Groups(ds.Targets)
}

// LoadDataset reads records and, when targetsFile is set, the targets.
func (uc *DashboardUseCase) LoadDataset(ctx context.Context, dataSource, targetsFile string) (*Dataset, error) {
	if dataSource == "" {
		return nil, types.ErrNoDataSource
	}
	if uc.awsRepo != nil && (isS3(dataSource) || isS3(targetsFile)) {
		uc.logS3Identity(ctx)
	}

	records, err := uc.recordRepo.LoadRecords(ctx, dataSource)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrNoRecordsFound, dataSource)
	}

	var targets []entity.TargetReference
	if targetsFile != "" {
		targets, err = uc.recordRepo.LoadTargets(ctx, targetsFile)
		if err != nil {
			return nil, err
		}
	} else {
		uc.console.LogWarning("No targets file given; TCPA and budgets default to 0.")
	}

	undated := 0
	for _, r := range records {
		if !r.HasDate() {
			undated++
		}
	}
	if undated > 0 {
		uc.console.LogWarning("%d of %d records have no usable date and are left out of every window", undated, len(records))
	}

	return &Dataset{
		Source:   dataSource,
		Records:  records,
		Targets:  targets,
		LoadedAt: uc.now(),
	}, nil
}

func (uc *DashboardUseCase) logS3Identity(ctx context.Context) {
	accountID, err := uc.awsRepo.GetAccountID(ctx, uc.awsProfile)
	if err != nil {
		uc.console.LogWarning("Could not resolve the AWS account for S3 sources: %s", err)
		return
	}
	uc.console.LogInfo("Reading S3 sources as account %s", accountID)
}

func isS3(source string) bool {
	return strings.HasPrefix(source, "s3://")
}
