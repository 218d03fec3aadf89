package main

import (
	"context"
	"os"

	"github.com/locvowork/office_management_sample/internal/bootstrap"
	"github.com/locvowork/office_management_sample/internal/config"
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

	profile, err := config.ResolveSeedProfile()
	if err != nil {
		logger.ErrorLog(ctx, "Invalid seed profile: %v", err)
		return 1
	}

	db, err := bootstrap.OpenDatabase(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "%s", database.DescribeError(err))
		return 1
	}
	defer db.Close()

	seeder := database.NewDataSeeder(db, database.WithRandomSeed(profile.RandomSeed))

	res, err := seeder.SeedData(ctx, database.SeedCounts{
		Departments: profile.Departments,
		Employees:   profile.Employees,
		Salaries:    profile.Salaries,
		Businesses:  profile.Businesses,
	})
	if err != nil {
		logger.ErrorLog(ctx, "%s", database.DescribeError(err))
		return 1
	}

	logger.InfoLog(ctx, "Seed run %s finished: departments %d/%d, employees %d/%d, salaries %d/%d, businesses %d/%d (inserted/skipped)",
		res.RunID,
		res.Departments.Inserted, res.Departments.Skipped,
		res.Employees.Inserted, res.Employees.Skipped,
		res.Salaries.Inserted, res.Salaries.Skipped,
		res.Businesses.Inserted, res.Businesses.Skipped)
	return 0
}
