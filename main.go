package main

import (
	"context"
	"fmt"
	"os"

	"cookbook/internal/config"
	"cookbook/internal/database"
	"cookbook/internal/logger"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

// overridden during build with ldflags
var version = "dev"

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "cookbook",
		Usage:   "recipe sharing API",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "migrate the schema and run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "audit",
						Value: true,
						Usage: "log every domain event read back from RabbitMQ",
					},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
			{
				Name:      "seed",
				Usage:     "insert demo categories and ingredients",
				ArgsUsage: "[seed.yaml]",
				Action:    seed,
			},
		},
	}
}

// bootstrap loads the configuration and opens a migrated database.
func bootstrap() (*config.Config, *logger.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Open(database.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseDSN})
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, nil, err
	}
	log.Info("Database ready", "driver", cfg.DBDriver)
	return cfg, log, db, nil
}

func migrate(_ context.Context, _ *cli.Command) error {
	_, log, _, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("Migration completed")
	return nil
}

func seed(ctx context.Context, cmd *cli.Command) error {
	_, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	var raw []byte
	if path := cmd.Args().First(); path != "" {
		if raw, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}
	}
	data, err := database.ParseSeed(raw)
	if err != nil {
		return err
	}
	res, err := database.Seed(ctx, db, data)
	if err != nil {
		return err
	}
	log.Info("Seed completed", "categories", res.Categories, "ingredients", res.Ingredients)
	return nil
}
