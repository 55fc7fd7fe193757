// Command seed wipes the configured database and repopulates it with
// development fixture data. It refuses to run against a prod environment.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/listkeeper/internal/server/services"
	"github.com/joho/godotenv"
)

func main() {

	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	manager := repomanager.NewPostgresRepositoryManager()

	if err := manager.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	userService := services.NewUserService(db, manager)
	itemService := services.NewItemService(db, manager)
	listService := services.NewListService(db, manager)
	listItemService := services.NewListItemService(db, manager)

	seeder := services.NewSeedService(db, manager, cfg,
		userService, itemService, listService, listItemService)

	if err := seeder.Run(ctx); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	logger.Info(ctx, "Database seeded", "env", cfg.Env)
}
