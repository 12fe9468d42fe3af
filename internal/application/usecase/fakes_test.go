package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

var today = time.Date(2024, 9, 10, 15, 30, 0, 0, time.UTC)

func day(n int) time.Time {
	return time.Date(2024, 9, 10-n, 0, 0, 0, 0, time.UTC)
}

func fixtureRecords() []entity.RawRecord {
	return []entity.RawRecord{
		{Platform: "Meta", Publisher: "Facebook", GoodsSold: "ACME", GoodsName: "Widget", CampaignID: "1", CampaignName: "Prospecting",
			Date: day(0), AmountSpent: 100, Impressions: 10000, Clicks: 200, FulfillmentOrders: 4, FulfillmentRevenue: 300},
		{Platform: "Meta", Publisher: "Instagram", GoodsSold: "ACME", GoodsName: "Widget", CampaignID: "2", CampaignName: "Retargeting",
			Date: day(1), AmountSpent: 50, Impressions: 4000, Clicks: 40},
		{Platform: "Google", Publisher: "Search", GoodsSold: "ACME", GoodsName: "Gadget", CampaignID: "3", CampaignName: "Search",
			Date: day(2), AmountSpent: 90, Impressions: 3000, Clicks: 90, FulfillmentOrders: 3, FulfillmentRevenue: 240},
	}
}

func fixtureTargets() []entity.TargetReference {
	return []entity.TargetReference{
		{BrandName: "ACME", GoodsName: "Widget", TCPA: 20, MonthlyBudget: 3000, Group: "Team A"},
		{BrandName: "ACME", GoodsName: "Gadget", TCPA: 40, MonthlyBudget: 1000, Group: "Team B"},
	}
}

type fakeRecordRepo struct {
	records []entity.RawRecord
	targets []entity.TargetReference
	err     error
}

func (f *fakeRecordRepo) LoadRecords(_ context.Context, _ string) ([]entity.RawRecord, error) {
	return f.records, f.err
}

func (f *fakeRecordRepo) LoadTargets(_ context.Context, _ string) ([]entity.TargetReference, error) {
	return f.targets, f.err
}

type fakeAWS struct{ profile string }

func (f *fakeAWS) GetAccountID(_ context.Context, profile string) (string, error) {
	f.profile = profile
	return "123456789012", nil
}

func (f *fakeAWS) GetObject(context.Context, string, string, string, string) (io.ReadCloser, error) {
	return nil, errors.New("not used")
}

type fakeExportRepo struct {
	calls []string
	fail  bool
}

func (f *fakeExportRepo) record(kind, name string) (string, error) {
	f.calls = append(f.calls, kind)
	if f.fail {
		return "", errors.New("disk full")
	}
	return "/tmp/" + name + "." + kind, nil
}

func (f *fakeExportRepo) ExportSnapshotsToCSV(_ []entity.EntityMetricsSnapshot, name, _ string) (string, error) {
	return f.record("csv", name)
}

func (f *fakeExportRepo) ExportSnapshotsToJSON(_ []entity.EntityMetricsSnapshot, name, _ string) (string, error) {
	return f.record("json", name)
}

func (f *fakeExportRepo) ExportSnapshotsToPDF(_ []entity.EntityMetricsSnapshot, _, name, _ string) (string, error) {
	return f.record("pdf", name)
}

func (f *fakeExportRepo) ExportDrilldownToCSV(_ entity.Drilldown, name, _ string) (string, error) {
	return f.record("drilldown-csv", name)
}

func (f *fakeExportRepo) ExportDrilldownToJSON(_ entity.Drilldown, name, _ string) (string, error) {
	return f.record("drilldown-json", name)
}

func (f *fakeExportRepo) ExportDrilldownToPDF(_ entity.Drilldown, name, _ string) (string, error) {
	return f.record("drilldown-pdf", name)
}

type fakeOptimizationRepo struct {
	notes   []entity.Optimization
	queries []entity.OptimizationQuery
}

func (f *fakeOptimizationRepo) List(_ context.Context, q entity.OptimizationQuery) ([]entity.Optimization, error) {
	f.queries = append(f.queries, q)
	var out []entity.Optimization
	for _, n := range f.notes {
		if n.Brand == q.Brand {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeOptimizationRepo) ListByMonth(ctx context.Context, brand string, month time.Month, year int, platform string) ([]entity.Optimization, error) {
	return f.List(ctx, entity.OptimizationQuery{Brand: brand, Platform: platform})
}

func (f *fakeOptimizationRepo) Create(_ context.Context, o *entity.Optimization) error {
	o.ID = int64(len(f.notes) + 1)
	f.notes = append(f.notes, *o)
	return nil
}

type fakeStateRepo struct {
	views     []entity.SavedView
	snapshots []entity.MetricsSnapshot
	prefs     map[string]string
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{prefs: map[string]string{}}
}

func (f *fakeStateRepo) SaveView(_ context.Context, v *entity.SavedView) error {
	if v.ID == "" {
		v.ID = fmt.Sprintf("view-%d", len(f.views)+1)
	}
	f.views = append(f.views, *v)
	return nil
}

func (f *fakeStateRepo) ListViews(context.Context) ([]entity.SavedView, error) { return f.views, nil }

func (f *fakeStateRepo) GetView(_ context.Context, idOrName string) (entity.SavedView, error) {
	for _, v := range f.views {
		if v.ID == idOrName || v.Name == idOrName {
			return v, nil
		}
	}
	return entity.SavedView{}, types.ErrViewNotFound
}

func (f *fakeStateRepo) DeleteView(_ context.Context, id string) error {
	for i, v := range f.views {
		if v.ID == id {
			f.views = append(f.views[:i], f.views[i+1:]...)
			return nil
		}
	}
	return types.ErrViewNotFound
}

func (f *fakeStateRepo) AppendSnapshot(_ context.Context, s *entity.MetricsSnapshot, keep int) error {
	f.snapshots = append(f.snapshots, *s)
	if len(f.snapshots) > keep {
		f.snapshots = f.snapshots[len(f.snapshots)-keep:]
	}
	return nil
}

func (f *fakeStateRepo) ListSnapshots(context.Context, string) ([]entity.MetricsSnapshot, error) {
	return f.snapshots, nil
}

func (f *fakeStateRepo) SetPreference(_ context.Context, key, value string) error {
	f.prefs[key] = value
	return nil
}

func (f *fakeStateRepo) GetPreference(_ context.Context, key string) (string, bool, error) {
	v, ok := f.prefs[key]
	return v, ok, nil
}

// fakeConsole records everything written to it as plain text.
type fakeConsole struct {
	mu     sync.Mutex
	out    strings.Builder
	tables []*fakeTable
	panels []string
	bars   [][]types.TrendPoint
}

func (c *fakeConsole) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.WriteString(s)
	c.out.WriteString("\n")
}

func (c *fakeConsole) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.String()
}

func (c *fakeConsole) Print(a ...interface{})                 { c.write(fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.write(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.write(fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.write("INFO " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.write("WARN " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.write("ERROR " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.write("OK " + fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle          { return nopHandle{} }
func (c *fakeConsole) ProgressWithTotal(int) types.ProgressHandle { return nopHandle{} }

func (c *fakeConsole) CreateTable() types.TableInterface {
	t := &fakeTable{}
	c.tables = append(c.tables, t)
	return t
}

func (c *fakeConsole) DisplayTrendBars(title string, points []types.TrendPoint) {
	c.bars = append(c.bars, points)
	c.write(title)
}

func (c *fakeConsole) DisplayPanel(title, content string) {
	c.panels = append(c.panels, title)
	c.write(title + "\n" + content)
}

type nopHandle struct{}

func (nopHandle) Update(string) {}
func (nopHandle) Increment()    {}
func (nopHandle) Stop()         {}

type fakeTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *fakeTable) AddRow(cells ...interface{})             { t.rows = append(t.rows, cells) }
func (t *fakeTable) Render() string                          { return fmt.Sprintf("table %v (%d rows)", t.columns, len(t.rows)) }
