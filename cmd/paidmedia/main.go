package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driven/aws"
	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driven/source"
	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driven/storage"
	"github.com/diillson/paidmedia-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/paidmedia-dashboard-go/internal/application/usecase"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
	"github.com/diillson/paidmedia-dashboard-go/pkg/console"
	"github.com/diillson/paidmedia-dashboard-go/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewCLIApp(version.Version, config.NewConfigRepository())
	app.SetUseCaseFactory(newUseCase)

	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newUseCase wires the adapters for one command run. Storage is opened
// only when a database path is configured.
func newUseCase(args *types.CLIArgs) (*usecase.DashboardUseCase, func(), error) {
	awsRepo := aws.NewAWSRepository()
	records := source.NewRecordRepository(awsRepo, args.Profile, args.Region)

	opts := []usecase.Option{usecase.WithAWS(awsRepo, args.Profile)}
	cleanup := func() {}

	if args.Database != "" {
		db, err := storage.Open(args.Database)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, usecase.WithStorage(
			storage.NewOptimizationRepository(db),
			storage.NewStateRepository(db),
		))
		cleanup = func() { _ = storage.Close(db) }
	}

	uc := usecase.NewDashboardUseCase(records, export.NewExportRepository(), console.NewConsole(), opts...)
	return uc, cleanup, nil
}
