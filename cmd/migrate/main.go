package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/courtsim/internal/models"
	"github.com/jstittsworth/courtsim/internal/providers"
	"github.com/jstittsworth/courtsim/pkg/config"
	"github.com/jstittsworth/courtsim/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(
		&models.Team{},
		&models.Player{},
		&models.Match{},
		&models.ScheduledMatch{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_players_team_key ON players(team_key)",
		"CREATE INDEX IF NOT EXISTS idx_matches_created_at ON matches(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_scheduled_matches_status ON scheduled_matches(status)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	// Drop tables in reverse order to handle foreign key constraints
	tables := []string{
		"scheduled_matches",
		"matches",
		"players",
		"teams",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

// seedData loads the built-in league into the database so the API can serve
// teams and rosters without an upstream roster service.
func seedData(db *database.DB) error {
	teams := providers.BuiltinTeams()
	if err := db.Create(&teams).Error; err != nil {
		logrus.Warnf("Failed to seed teams (may already exist): %v", err)
	}

	players := providers.BuiltinPlayers()
	if err := db.Create(&players).Error; err != nil {
		logrus.Warnf("Failed to seed players (may already exist): %v", err)
	}

	logrus.Infof("Seeded %d teams and %d players", len(teams), len(players))
	return nil
}
