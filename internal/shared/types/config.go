package types

import "github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DataSource  string   `json:"data_source" yaml:"data_source" toml:"data_source"`
	TargetsFile string   `json:"targets_file" yaml:"targets_file" toml:"targets_file"`
	Database    string   `json:"database" yaml:"database" toml:"database"`
	Profile     string   `json:"profile" yaml:"profile" toml:"profile"`
	Region      string   `json:"region" yaml:"region" toml:"region"`
	GroupBy     string   `json:"group_by" yaml:"group_by" toml:"group_by"`
	SortKey     string   `json:"sort" yaml:"sort" toml:"sort"`
	Direction   string   `json:"direction" yaml:"direction" toml:"direction"`
	Group       string   `json:"group" yaml:"group" toml:"group"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
	Days        int      `json:"days" yaml:"days" toml:"days"`

	Server     ServerConfig      `json:"server" yaml:"server" toml:"server"`
	Thresholds entity.Thresholds `json:"thresholds" yaml:"thresholds" toml:"thresholds"`
}

// ServerConfig configures the HTTP API started by the serve command.
type ServerConfig struct {
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	LogFile     string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}
