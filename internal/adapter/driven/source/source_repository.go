package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/repository"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

const s3Scheme = "s3://"

// RecordRepositoryImpl reads CSV exports from disk or S3.
type RecordRepositoryImpl struct {
	awsRepo repository.AWSRepository
	profile string
	region  string
}

// NewRecordRepository creates a RecordRepository. awsRepo may be nil when
// only local files are used.
func NewRecordRepository(awsRepo repository.AWSRepository, profile, region string) repository.RecordRepository {
	return &RecordRepositoryImpl{awsRepo: awsRepo, profile: profile, region: region}
}

// LoadRecords reads and normalizes every performance row of source.
func (r *RecordRepositoryImpl) LoadRecords(ctx context.Context, source string) ([]entity.RawRecord, error) {
	body, err := r.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, _, err := ReadRecords(body)
	if err != nil {
		return nil, fmt.Errorf("error reading records from %s: %w", source, err)
	}
	return records, nil
}

// LoadTargets reads the target reference file.
func (r *RecordRepositoryImpl) LoadTargets(ctx context.Context, source string) ([]entity.TargetReference, error) {
	body, err := r.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	targets, err := ReadTargets(body)
	if err != nil {
		return nil, fmt.Errorf("error reading targets from %s: %w", source, err)
	}
	return targets, nil
}

func (r *RecordRepositoryImpl) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, s3Scheme) {
		if r.awsRepo == nil {
			return nil, fmt.Errorf("%w: %s (no AWS access configured)", types.ErrUnsupportedSource, source)
		}
		bucket, key, ok := splitS3URI(source)
		if !ok {
			return nil, fmt.Errorf("%w: malformed S3 URI %s", types.ErrUnsupportedSource, source)
		}
		return r.awsRepo.GetObject(ctx, r.profile, r.region, bucket, key)
	}
	if strings.Contains(source, "://") {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedSource, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", source, err)
	}
	return f, nil
}

func splitS3URI(uri string) (bucket, key string, ok bool) {
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader
}

type row struct {
	cells   []string
	mapping map[Field]int
}

func (rw row) get(f Field) string {
	i, ok := rw.mapping[f]
	if !ok || i >= len(rw.cells) {
		return ""
	}
	return strings.TrimSpace(rw.cells[i])
}

// ReadRecords parses a performance CSV. Rows the CSV reader rejects are
// counted in skipped and dropped.
func ReadRecords(r io.Reader) (records []entity.RawRecord, skipped int, err error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	mapping := MapColumns(header)

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rw := row{cells: cells, mapping: mapping}
		records = append(records, entity.RawRecord{
			Platform:           rw.get(FieldPlatform),
			Publisher:          rw.get(FieldPublisher),
			GoodsSold:          rw.get(FieldGoodsSold),
			GoodsName:          rw.get(FieldGoodsName),
			CampaignID:         rw.get(FieldCampaignID),
			CampaignName:       rw.get(FieldCampaignName),
			PlatformAccount:    rw.get(FieldPlatformAccount),
			Date:               ParseDate(rw.get(FieldDate)),
			AmountSpent:        ParseNumber(rw.get(FieldAmountSpent)),
			Impressions:        ParseCount(rw.get(FieldImpressions)),
			Clicks:             ParseCount(rw.get(FieldClicks)),
			LPViews:            ParseCount(rw.get(FieldLPViews)),
			LPViewCost:         ParseNumber(rw.get(FieldLPViewCost)),
			Leads:              ParseCount(rw.get(FieldLeads)),
			LeadCost:           ParseNumber(rw.get(FieldLeadCost)),
			LinkClicks:         ParseCount(rw.get(FieldLinkClicks)),
			PlatformResults:    ParseNumber(rw.get(FieldPlatformResults)),
			PlatformValue:      ParseNumber(rw.get(FieldPlatformValue)),
			FulfillmentOrders:  ParseCount(rw.get(FieldFulfillmentOrders)),
			FulfillmentRevenue: ParseNumber(rw.get(FieldFulfillmentRevenue)),
		})
	}
	return records, skipped, nil
}

// ReadTargets parses the target reference CSV. Rows without a product name
// cannot match any record and are dropped.
func ReadTargets(r io.Reader) ([]entity.TargetReference, error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	mapping := MapColumns(header)
	if _, ok := mapping[FieldGoodsName]; !ok {
		return nil, fmt.Errorf("no GoodsName column detected in header: %v", header)
	}

	var targets []entity.TargetReference
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		rw := row{cells: cells, mapping: mapping}
		goods := rw.get(FieldGoodsName)
		if goods == "" {
			continue
		}
		targets = append(targets, entity.TargetReference{
			BrandName:     rw.get(FieldBrandName),
			GoodsName:     goods,
			TCPA:          ParseNumber(rw.get(FieldTCPA)),
			MonthlyBudget: ParseNumber(rw.get(FieldMonthlyBudget)),
			Group:         rw.get(FieldGroup),
		})
	}
	return targets, nil
}

// stripBOM wraps a reader to strip a UTF-8 BOM if present.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}
	return br
}
