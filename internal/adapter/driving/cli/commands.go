package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driving/httpapi"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
	"github.com/diillson/paidmedia-dashboard-go/pkg/logging"
)

func (app *CLIApp) newDrilldownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drilldown <product>",
		Short: "Analyse one product: summary, targets, rolling windows, alerts and campaigns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			args, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			args.Product = positional[0]
			return uc.RunDrilldown(cmd.Context(), args)
		},
	}
	cmd.Flags().IntP("days", "t", 0, "Analysis window in days, e.g. 7, 14, 30, 90 (default: last used, else 30)")
	cmd.Flags().String("unit", "", "Bucket of the detailed table: day, week or month")
	cmd.Flags().Bool("detailed", false, "Show the per-period, per-campaign table with platform vs fulfillment variance")
	return cmd
}

func (app *CLIApp) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [product]",
		Short: "List stored drill-down snapshots",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			_, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			goods := ""
			if len(positional) == 1 {
				goods = positional[0]
			}
			return uc.RunSnapshotHistory(cmd.Context(), goods)
		},
	}
}

func (app *CLIApp) newNotesCmd() *cobra.Command {
	notes := &cobra.Command{
		Use:   "notes",
		Short: "Team optimization notes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List a brand's optimization notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			brand, _ := cmd.Flags().GetString("brand")
			month, _ := cmd.Flags().GetInt("month")
			year, _ := cmd.Flags().GetInt("year")
			if month != 0 {
				if month < 1 || month > 12 {
					return fmt.Errorf("--month must be between 1 and 12, got %d", month)
				}
				if year == 0 {
					year = uc.Today(args).Year()
				}
				return uc.RunNotesMonth(cmd.Context(), brand, time.Month(month), year, args.Platform)
			}

			q := entity.OptimizationQuery{Brand: brand, Platform: args.Platform}
			if !args.StartDate.IsZero() && !args.EndDate.IsZero() {
				q.StartDate = args.StartDate.Format(isoDate)
				q.EndDate = args.EndDate.Format(isoDate)
			}
			return uc.RunNotesList(cmd.Context(), q)
		},
	}
	list.Flags().String("brand", "", "Brand code (required)")
	list.Flags().Int("month", 0, "Calendar month 1-12")
	list.Flags().Int("year", 0, "Year of --month (default: current year)")
	_ = list.MarkFlagRequired("brand")

	add := &cobra.Command{
		Use:   "add",
		Short: "Record an optimization note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			f := cmd.Flags()
			get := func(name string) string {
				v, _ := f.GetString(name)
				return v
			}
			note := &entity.Optimization{
				Brand:             get("brand"),
				Platform:          args.Platform,
				Date:              get("date"),
				Campaign:          args.Campaign,
				Optimization:      get("optimization"),
				Changes:           get("changes"),
				OptimizationScore: get("score"),
				ResultsNextStep:   get("next-step"),
				DateChanges:       get("date-changes"),
				OptimizationBy:    get("by"),
			}
			if err := uc.AddOptimization(cmd.Context(), note); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved optimization note %d for %s on %s\n", note.ID, note.Brand, note.Date)
			return nil
		},
	}
	af := add.Flags()
	af.String("brand", "", "Brand code (required)")
	af.String("date", "", "Day of the change, YYYY-MM-DD (default: today)")
	af.String("optimization", "", "What was changed")
	af.String("changes", "", "Details of the change")
	af.String("score", "", "Optimization score")
	af.String("next-step", "", "Results and next step")
	af.String("date-changes", "", "When the change takes effect")
	af.String("by", "", "Who made the change")
	_ = add.MarkFlagRequired("brand")
	// --campaign and --platform come from the persistent filter flags.

	notes.AddCommand(list, add)
	return notes
}

func (app *CLIApp) newViewsCmd() *cobra.Command {
	views := &cobra.Command{
		Use:   "views",
		Short: "Saved dashboard views",
	}

	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current selection and filters as a view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			args, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := uc.SaveView(cmd.Context(), positional[0], args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved view %q (%s)\n", v.Name, v.ID)
			return nil
		},
	}
	addSelectionFlags(save)

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return uc.RunViewsList(cmd.Context())
		},
	}

	del := &cobra.Command{
		Use:     "delete <id|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved view",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			_, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := uc.DeleteView(cmd.Context(), positional[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted view %s\n", positional[0])
			return nil
		},
	}

	views.AddCommand(save, list, del)
	return views
}

func (app *CLIApp) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and optimization notes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, uc, cleanup, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if args.DataSource == "" {
				return types.ErrNoDataSource
			}

			logger, closer := logging.New(logging.Options{
				Level: args.Server.LogLevel,
				File:  args.Server.LogFile,
			})
			defer closer.Close()

			srv := httpapi.NewServer(httpapi.Config{
				Addr:        args.Server.Addr,
				DataSource:  args.DataSource,
				TargetsFile: args.TargetsFile,
				CORSOrigins: args.Server.CORSOrigins,
				Thresholds:  args.Thresholds,
			}, uc, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Reload(ctx); err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().String("log-file", "", "Write JSON logs to this file with rotation instead of stderr")
	cmd.Flags().String("log-level", "", "Log level: debug, info, warn, error (default info)")
	return cmd
}
