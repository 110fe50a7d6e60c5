package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/invoiceflow/backend/internal/domain/compliance"
	"github.com/invoiceflow/backend/internal/infrastructure/config"
	"github.com/invoiceflow/backend/internal/infrastructure/logger"
	"github.com/invoiceflow/backend/internal/infrastructure/persistence"
)

func main() {
	configPath := flag.String("config", "", "directory containing config.toml")
	migrationsPath := flag.String("path", "migrations", "directory containing migration files")
	down := flag.Bool("down", false, "roll back one migration instead of migrating up")
	seed := flag.Bool("seed", false, "seed the scenario mapping table after migrating")
	flag.Parse()

	if err := run(*configPath, *migrationsPath, *down, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, migrationsPath string, down, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer log.Sync()

	databaseURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Name, cfg.Database.SSLMode)

	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if down {
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Info("rolled back one migration")
		return nil
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("migrations applied")

	if seed {
		if err := seedScenarioMappings(cfg, log); err != nil {
			return err
		}
	}
	return nil
}

// seedScenarioMappings replaces the scenario mapping table with the authored
// activity and sector relation. The authored table in the compliance package
// is the single source of truth; re-running the seed is safe.
func seedScenarioMappings(cfg *config.Config, log *zap.Logger) error {
	db, err := persistence.NewDatabase(cfg.Database)
	if err != nil {
		return err
	}

	authored := compliance.AuthoredMappings()
	rows := make([]compliance.ScenarioMapping, 0, len(authored))
	for _, m := range authored {
		codes := make([]string, len(m.Codes))
		for i, c := range m.Codes {
			codes[i] = string(c)
		}
		rows = append(rows, compliance.ScenarioMapping{
			BusinessActivity: string(m.Activity),
			Sector:           string(m.Sector),
			ScenarioCodes:    strings.Join(codes, ","),
			IsActive:         true,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := persistence.NewGormScenarioMappingRepository(db)
	if err := repo.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("seeding scenario mappings failed: %w", err)
	}

	log.Info("scenario mappings seeded", zap.Int("rows", len(rows)))
	return nil
}
