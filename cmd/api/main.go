package main

import (
	"context"
	"log"

	"github.com/locvowork/office_management_sample/internal/bootstrap"
	"github.com/locvowork/office_management_sample/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		log.Fatal(err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
		log.Fatal(err)
	}
}
