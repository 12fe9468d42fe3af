package types

import (
	"time"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

// CLIArgs represents the command-line arguments after the config file merge.
type CLIArgs struct {
	ConfigFile  string
	DataSource  string
	TargetsFile string
	Database    string
	Profile     string
	Region      string
	Today       time.Time
	Thresholds  entity.Thresholds

	GroupBy   string
	SortKey   string
	Direction string
	Group     string
	ShowZero  bool

	Platform  string
	Publisher string
	GoodsSold string
	Goods     string
	Campaign  string
	StartDate time.Time
	EndDate   time.Time

	ReportName string
	ReportType []string
	Dir        string

	Summary    bool
	Publishers bool
	Compare    bool
	Trend      string
	View       string

	// drilldown
	Product  string
	Days     int
	Detailed bool

	Server ServerConfig
}
