package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diillson/paidmedia-dashboard-go/internal/application/usecase"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/repository"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
	"github.com/diillson/paidmedia-dashboard-go/pkg/version"
)

const isoDate = "2006-01-02"

// UseCaseFactory builds the use case for one command once flags and the
// config file are merged. The returned func releases what it opened.
type UseCaseFactory func(args *types.CLIArgs) (*usecase.DashboardUseCase, func(), error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	newUseCase UseCaseFactory
	version    string
	quiet      bool
}

// NewCLIApp creates the root command and its subcommands.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
	}

	rootCmd := &cobra.Command{
		Use:           "paidmedia",
		Short:         "Paid Media Dashboard CLI",
		Long:          "Rolling CPA, ROAS and budget pacing per campaign or product, from CSV exports on disk or S3.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runDashboard,
	}
	rootCmd.SetVersionTemplate(`{{printf "Paid Media Dashboard version: %s\n" .Version}}`)

	pf := rootCmd.PersistentFlags()
	pf.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	pf.String("data", "", "Performance CSV: local path or s3://bucket/key")
	pf.String("targets", "", "Targets CSV (TCPA, monthly budget, group): local path or s3://bucket/key")
	pf.String("db", "", "SQLite database for optimization notes, saved views and history")
	pf.StringP("profile", "p", "", "AWS profile used for s3:// sources")
	pf.StringP("region", "r", "", "AWS region used for s3:// sources")
	pf.String("today", "", "Reference day as YYYY-MM-DD (default: today)")
	pf.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	pf.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	pf.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	pf.String("platform", "", "Only records of this platform (case-insensitive)")
	pf.String("publisher", "", "Only records of this publisher")
	pf.String("goods-sold", "", "Only records of this brand code")
	pf.String("goods", "", "Only records of this product")
	pf.String("campaign", "", "Only records of this campaign name")
	pf.String("start-date", "", "First day of records, YYYY-MM-DD")
	pf.String("end-date", "", "Last day of records, YYYY-MM-DD")
	pf.BoolVarP(&app.quiet, "quiet", "q", false, "Skip the banner and the update check")

	addSelectionFlags(rootCmd)
	rootCmd.Flags().Bool("summary", false, "Display the summary panel (spend, revenue, ROAS, CTR, CPL, CPO)")
	rootCmd.Flags().Bool("publishers", false, "Display spend share per publisher")
	rootCmd.Flags().Bool("compare", false, "Compare campaigns within each product")
	rootCmd.Flags().String("trend", "", "Display a spend trend by day, week or month")
	rootCmd.Flags().String("view", "", "Apply a saved view by ID or name")

	rootCmd.AddCommand(
		app.newDrilldownCmd(),
		app.newHistoryCmd(),
		app.newNotesCmd(),
		app.newViewsCmd(),
		app.newServeCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// addSelectionFlags registers the table selection flags shared by the
// dashboard and saved views.
func addSelectionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("group-by", "g", "", "Aggregate by campaign or goods (default: campaign)")
	f.StringP("sort", "s", "", "Sort column, e.g. MTD_CPA, AmountSpent, BudgetPacing")
	f.String("direction", "", "Sort direction: asc or desc (default: desc)")
	f.String("group", "", "Only rows whose target belongs to this group")
	f.Bool("show-zero", false, "Include rows without month-to-date conversions")
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI with ctx; serve stops when ctx is cancelled.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetUseCaseFactory sets how commands build the dashboard use case.
func (app *CLIApp) SetUseCaseFactory(f UseCaseFactory) {
	app.newUseCase = f
}

// parseArgs reads the flags of cmd and merges the config file underneath
// the flags that were not given explicitly.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return strings.TrimSpace(v)
	}
	boolean := func(name string) bool {
		v, _ := f.GetBool(name)
		return v
	}

	reportType, _ := f.GetStringSlice("report-type")
	days, _ := f.GetInt("days")

	args := &types.CLIArgs{
		ConfigFile:  str("config-file"),
		DataSource:  str("data"),
		TargetsFile: str("targets"),
		Database:    str("db"),
		Profile:     str("profile"),
		Region:      str("region"),
		GroupBy:     str("group-by"),
		SortKey:     str("sort"),
		Direction:   str("direction"),
		Group:       str("group"),
		ShowZero:    boolean("show-zero"),
		Platform:    str("platform"),
		Publisher:   str("publisher"),
		GoodsSold:   str("goods-sold"),
		Goods:       str("goods"),
		Campaign:    str("campaign"),
		ReportName:  str("report-name"),
		ReportType:  normalizeReportTypes(reportType),
		Dir:         str("dir"),
		Summary:     boolean("summary"),
		Publishers:  boolean("publishers"),
		Compare:     boolean("compare"),
		Trend:       str("trend"),
		View:        str("view"),
		Days:        days,
		Detailed:    boolean("detailed"),
		Server: types.ServerConfig{
			Addr:     str("addr"),
			LogFile:  str("log-file"),
			LogLevel: str("log-level"),
		},
	}
	if unit := str("unit"); unit != "" {
		args.Trend = unit
	}

	var err error
	if args.Today, err = parseDateFlag("today", str("today")); err != nil {
		return nil, err
	}
	if args.StartDate, err = parseDateFlag("start-date", str("start-date")); err != nil {
		return nil, err
	}
	if args.EndDate, err = parseDateFlag("end-date", str("end-date")); err != nil {
		return nil, err
	}

	if args.ConfigFile != "" {
		cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(cmd, args, cfg)
	}

	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// mergeConfig copies config values into args for every flag the user did
// not set on the command line.
func mergeConfig(cmd *cobra.Command, args *types.CLIArgs, cfg *types.Config) {
	changed := func(name string) bool {
		return cmd.Flags().Changed(name)
	}
	setString := func(flag string, dst *string, value string) {
		if !changed(flag) && value != "" {
			*dst = value
		}
	}

	setString("data", &args.DataSource, cfg.DataSource)
	setString("targets", &args.TargetsFile, cfg.TargetsFile)
	setString("db", &args.Database, cfg.Database)
	setString("profile", &args.Profile, cfg.Profile)
	setString("region", &args.Region, cfg.Region)
	setString("group-by", &args.GroupBy, cfg.GroupBy)
	setString("sort", &args.SortKey, cfg.SortKey)
	setString("direction", &args.Direction, cfg.Direction)
	setString("group", &args.Group, cfg.Group)
	setString("report-name", &args.ReportName, cfg.ReportName)
	setString("dir", &args.Dir, cfg.Dir)

	if !changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !changed("days") && cfg.Days > 0 {
		args.Days = cfg.Days
	}
	args.Thresholds = cfg.Thresholds

	if args.Server.Addr == "" {
		args.Server.Addr = cfg.Server.Addr
	}
	if args.Server.LogFile == "" {
		args.Server.LogFile = cfg.Server.LogFile
	}
	if args.Server.LogLevel == "" {
		args.Server.LogLevel = cfg.Server.LogLevel
	}
	if len(args.Server.CORSOrigins) == 0 {
		args.Server.CORSOrigins = cfg.Server.CORSOrigins
	}
}

func normalizeReportTypes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(isoDate, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, types.ErrInvalidDate)
	}
	return t, nil
}

// prepare parses the flags and builds the use case for one command run.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, *usecase.DashboardUseCase, func(), error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if app.newUseCase == nil {
		return nil, nil, nil, fmt.Errorf("no use case configured")
	}
	uc, cleanup, err := app.newUseCase(args)
	if err != nil {
		return nil, nil, nil, err
	}
	return args, uc, cleanup, nil
}

// runDashboard is the entry point of the root command.
func (app *CLIApp) runDashboard(cmd *cobra.Command, _ []string) error {
	if !app.quiet {
		displayWelcomeBanner(app.version)
		go version.CheckLatestVersion(app.version)
	}

	args, uc, cleanup, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return uc.RunDashboard(cmd.Context(), args)
}
