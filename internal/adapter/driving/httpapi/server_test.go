package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driven/storage"
	"github.com/diillson/paidmedia-dashboard-go/internal/application/usecase"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/pkg/console"
)

var today = time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)

type stubRecords struct {
	records []entity.RawRecord
	targets []entity.TargetReference
	err     error
}

func (s *stubRecords) LoadRecords(context.Context, string) ([]entity.RawRecord, error) {
	return s.records, s.err
}

func (s *stubRecords) LoadTargets(context.Context, string) ([]entity.TargetReference, error) {
	return s.targets, s.err
}

func day(n int) time.Time { return time.Date(2024, 9, 10-n, 0, 0, 0, 0, time.UTC) }

func newTestServer(t *testing.T) (*Server, *stubRecords) {
	t.Helper()

	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close(db) })

	records := &stubRecords{
		records: []entity.RawRecord{
			{Platform: "Meta", Publisher: "Facebook", GoodsSold: "ACME", GoodsName: "Widget", CampaignID: "1", CampaignName: "Prospecting",
				Date: day(0), AmountSpent: 100, Impressions: 1000, Clicks: 50, FulfillmentOrders: 4, FulfillmentRevenue: 300},
			{Platform: "Meta", Publisher: "Instagram", GoodsSold: "ACME", GoodsName: "Widget", CampaignID: "2", CampaignName: "Retargeting",
				Date: day(1), AmountSpent: 50},
			{Platform: "Google", Publisher: "Search", GoodsSold: "ACME", GoodsName: "Gadget", CampaignID: "3", CampaignName: "Search",
				Date: day(2), AmountSpent: 90, FulfillmentOrders: 3, FulfillmentRevenue: 240},
		},
		targets: []entity.TargetReference{
			{BrandName: "ACME", GoodsName: "Widget", TCPA: 20, MonthlyBudget: 3000, Group: "Team A"},
			{BrandName: "ACME", GoodsName: "Gadget", TCPA: 40, MonthlyBudget: 1000, Group: "Team B"},
		},
	}

	uc := usecase.NewDashboardUseCase(records, export.NewExportRepository(), console.NewConsoleWithWriter(io.Discard),
		usecase.WithStorage(storage.NewOptimizationRepository(db), storage.NewStateRepository(db)),
		usecase.WithClock(func() time.Time { return today }),
	)

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := NewServer(Config{DataSource: "records.csv", TargetsFile: "targets.csv"}, uc, log)
	return srv, records
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `paidmedia_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestOptimizationsRequireBrand(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/api/optimizations", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Brand code is required"}`, rec.Body.String())
}

func TestOptimizationsCreateAndList(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/optimizations",
		`{"brand":"ACME","platform":"Meta","date":"2024-09-05","campaign":"Prospecting","optimization":"Raised bids"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/optimizations", `{"brand":"ACME","platform":"Google","optimization":"New keywords"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entity.Optimization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "2024-09-10", created.Date)

	rec = do(t, h, http.MethodGet, "/api/optimizations?brand=ACME", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var notes []entity.Optimization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "2024-09-10", notes[0].Date)

	rec = do(t, h, http.MethodGet, "/api/optimizations?brand=ACME&startDate=2024-09-01&endDate=2024-09-06", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Raised bids", notes[0].Optimization)

	rec = do(t, h, http.MethodGet, "/api/optimizations?brand=ACME&platform=Google", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 1)

	rec = do(t, h, http.MethodGet, "/api/optimizations?brand=ACME&month=9&year=2024", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	assert.Len(t, notes, 2)

	rec = do(t, h, http.MethodGet, "/api/optimizations?brand=Nobody", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateOptimizationValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/optimizations", `{"platform":"Meta"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/optimizations", `{"brand":"ACME","date":"09/05/2024"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/optimizations", `not json`).Code)
}

func TestDatasetEndpointsBeforeLoad(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/api/snapshots", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSnapshots(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NoError(t, srv.Reload(context.Background()))
	h := srv.Handler()

	var rows []entity.EntityMetricsSnapshot
	rec := do(t, h, http.MethodGet, "/api/snapshots?sort=AmountSpent&direction=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Search", rows[0].CampaignName)
	assert.Equal(t, "Prospecting", rows[1].CampaignName)

	rec = do(t, h, http.MethodGet, "/api/snapshots?hideZero=false", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 3)

	rec = do(t, h, http.MethodGet, "/api/snapshots?groupBy=goods&group=Team%20A", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].GoodsName)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/snapshots?groupBy=publisher", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/snapshots?startDate=yesterday", "").Code)
}

func TestGroupsTrendAndDrilldown(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NoError(t, srv.Reload(context.Background()))
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/api/groups", "")
	assert.JSONEq(t, `["Team A","Team B"]`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/trend?goods=Widget&unit=day&days=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var report usecase.TrendReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Points, 2)
	assert.Equal(t, "09/09/2024", report.Points[0].Label)
	assert.InDelta(t, 100.0, report.Comparison.Spend, 0.001)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/trend?unit=year", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/trend?days=-3", "").Code)

	rec = do(t, h, http.MethodGet, "/api/drilldown?goods=Widget&days=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d entity.Drilldown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "Widget", d.GoodsName)
	assert.Equal(t, 7, d.Days)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/drilldown", "").Code)
}

func TestReloadKeepsPreviousDatasetOnFailure(t *testing.T) {
	srv, records := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/reload", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"records": 3`)

	records.err = errors.New("bucket unavailable")
	rec = do(t, h, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/snapshots", "").Code)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), `paidmedia_dataset_loads_total{result="error"} 1`)
	assert.Contains(t, rec.Body.String(), `paidmedia_records_loaded 3`)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/snapshots", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
