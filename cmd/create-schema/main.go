package main

import (
	"context"
	"os"

	"github.com/locvowork/office_management_sample/internal/bootstrap"
	"github.com/locvowork/office_management_sample/internal/database"
	"github.com/locvowork/office_management_sample/internal/logger"
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	if err := bootstrap.LoadEnvironment(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to load environment: %v", err)
		return 1
	}

	db, err := bootstrap.OpenDatabase(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "%s", database.DescribeError(err))
		return 1
	}
	defer db.Close()

	if err := database.CreateSchema(ctx, db); err != nil {
		logger.ErrorLog(ctx, "%s", database.DescribeError(err))
		return 1
	}

	logger.InfoLog(ctx, "Schema and tables created successfully")
	return 0
}
