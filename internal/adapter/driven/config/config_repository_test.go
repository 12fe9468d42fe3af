package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFileFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `data_source = "data/records.csv"
targets_file = "s3://bucket/targets.csv"
group_by = "goods"
sort = "MTD_CPA"
direction = "desc"
report_type = ["CSV", " pdf"]
days = 14

[server]
addr = ":9090"

[thresholds]
cpa_alert_pct = 30
`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `data_source: data/records.csv
targets_file: s3://bucket/targets.csv
group_by: goods
sort: MTD_CPA
direction: desc
report_type: [CSV, " pdf"]
days: 14
server:
  addr: ":9090"
thresholds:
  cpa_alert_pct: 30
`,
		},
		{
			name: "json",
			file: "config.json",
			content: `{"data_source": "data/records.csv", "targets_file": "s3://bucket/targets.csv",
"group_by": "goods", "sort": "MTD_CPA", "direction": "desc", "report_type": ["CSV", " pdf"],
"days": 14, "server": {"addr": ":9090"}, "thresholds": {"cpa_alert_pct": 30}}`,
		},
	}

	repo := NewConfigRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			cfg, err := repo.LoadConfigFile(path)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, "data/records.csv"), cfg.DataSource)
			assert.Equal(t, "s3://bucket/targets.csv", cfg.TargetsFile)
			assert.Equal(t, "goods", cfg.GroupBy)
			assert.Equal(t, "MTD_CPA", cfg.SortKey)
			assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
			assert.Equal(t, 14, cfg.Days)
			assert.Equal(t, ":9090", cfg.Server.Addr)
			assert.InDelta(t, 30, cfg.Thresholds.CPAAlertPct, 1e-9)
			assert.InDelta(t, 15, cfg.Thresholds.ConversionRateAlertPct, 1e-9, "unset thresholds take defaults")
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(dir)
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, dir, "config.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeFile(t, dir, "bad.yaml", "group_by: [unterminated"))
	assert.ErrorContains(t, err, "error parsing YAML file")

	_, err = repo.LoadConfigFile(writeFile(t, dir, "group.json", `{"group_by": "publisher"}`))
	assert.ErrorIs(t, err, types.ErrInvalidGroupBy)

	_, err = repo.LoadConfigFile(writeFile(t, dir, "sort.json", `{"sort": "Nope"}`))
	assert.ErrorIs(t, err, types.ErrInvalidSortKey)
}
