package main

import (
	"flag"
	"log"

	"exam-worksheet/internal/config"
	"exam-worksheet/internal/database"
	"exam-worksheet/internal/logger"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "database/migrations", "directory holding the migration files")
	down := flag.Int("down", 0, "roll back this many migrations instead of migrating up")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *down > 0 {
		if err := database.RollbackMigrations(db.DB, *dir, *down); err != nil {
			l.Fatal("Failed to roll back migrations", zap.Error(err))
		}
		return
	}

	if err := database.RunMigrations(db.DB, *dir); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}
