// main.go
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"

	"fitness-booking/cmd"
	"fitness-booking/internal/data/repository"
	"fitness-booking/internal/wire"
	"fitness-booking/pkg/database"
	"fitness-booking/pkg/seeder"
	"fitness-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "migrate the schema, load sample data, and exit")
	seedValue := flag.Int64("seed-value", 42, "random seed for sample data")
	seedClasses := flag.Int("seed-classes", 10, "number of classes to seed")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	if *seed {
		ctx := context.Background()
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}

		rng := rand.New(rand.NewSource(*seedValue))
		if err := seeder.New(repos, rng, logger).Run(ctx, *seedClasses, 3); err != nil {
			logger.Fatal("Failed to seed data", zap.Error(err))
		}

		logger.Info("Seeding completed")
		return
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
