package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-evkeeper/pkg/app"
	pkgMigrations "go-evkeeper/pkg/migrations"

	// Import all migration files to register them
	localMigrations "go-evkeeper/migrations"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status")
		steps   = flag.Int("steps", 1, "Number of migrations to rollback (for down command)")
	)

	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	appCtx, err := app.InitializeApp("migrate")
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer appCtx.Shutdown(ctx)

	runner := pkgMigrations.NewRunner(appCtx.MongoDB.Database)
	localMigrations.RegisterAll(runner)

	switch *command {
	case "up":
		err = runner.Run(ctx)
	case "down":
		err = runner.Rollback(ctx, *steps)
	case "status":
		err = runner.Status(ctx)
	default:
		log.Fatalf("Unknown command %q (expected up, down, or status)", *command)
	}

	if err != nil {
		log.Fatalf("Migration %s failed: %v", *command, err)
	}
}
