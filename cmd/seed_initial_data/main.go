package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"exam-worksheet/cmd/seed_initial_data/internal/seedmodels"
	"exam-worksheet/internal/adapter"
	"exam-worksheet/internal/cache"
	"exam-worksheet/internal/config"
	"exam-worksheet/internal/database"
	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/logger"
	"exam-worksheet/internal/repository"
	"exam-worksheet/internal/service"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "database/seed/initial_problems.json"

type seeder struct {
	problems  service.ProblemLookup
	tags      domain.TagRepository
	txManager domain.TransactionManager
	chapters  service.ChapterService
	log       *zap.Logger
}

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "JSON seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var treeCache domain.Cache
	if redisClient, err := cache.NewRedisClient(ctx, cfg.Redis); err != nil {
		log.Warn("Redis unavailable, cached chapter trees will not be invalidated", zap.Error(err))
	} else {
		defer redisClient.Close()
		treeCache = adapter.NewRedisCacheAdapter(redisClient)
	}

	tags := repository.NewTagDatabaseAdapter(db)
	s := &seeder{
		problems: service.ProblemLookup{
			domain.ProblemIDDefault: repository.NewProblemDatabaseAdapter(db),
			domain.ProblemIDTagged:  repository.NewTaggedProblemDatabaseAdapter(db),
			domain.ProblemIDEconomy: repository.NewTaggedProblemDatabaseAdapter(db),
		},
		tags:      tags,
		txManager: repository.NewTransactionManagerAdapter(db),
		chapters:  service.NewChapterService(tags, treeCache, cfg.Chapters, cfg.Cache.ChapterTreeTTL),
		log:       log,
	}

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var subjects []seedmodels.SeedSubject
	if err := json.Unmarshal(byteValue, &subjects); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("subjects_loaded", len(subjects)))

	failed := 0
	for _, subject := range subjects {
		if err := s.seedSubject(ctx, subject); err != nil {
			failed++
			log.Error("Error seeding subject, transaction rolled back", zap.String("subject", subject.Subject), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.", zap.Int("subjects", len(subjects)), zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

// seedSubject writes one subject's chapter rows and problems in a single transaction.
// Chapter rows are only written for subjects that have none, problems are upserted.
func (s *seeder) seedSubject(ctx context.Context, subject seedmodels.SeedSubject) error {
	s.log.Info("Processing subject", zap.String("subject", subject.Subject))

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.tags.ListTagPaths(txCtx, subject.Subject)
		if err != nil {
			return fmt.Errorf("error checking chapter rows of %s: %w", subject.Subject, err)
		}
		if len(existing) > 0 {
			s.log.Info("Chapter rows exist, skipping.", zap.String("subject", subject.Subject), zap.Int("rows", len(existing)))
		} else {
			for _, path := range subject.TagPaths {
				row := domain.TagPathRow{Subject: subject.Subject, IDs: path.IDs, Labels: path.Labels}
				if err := s.tags.SaveTagPath(txCtx, row); err != nil {
					return fmt.Errorf("failed to save chapter row %v: %w", path.IDs, err)
				}
			}
			s.log.Info("Created chapter rows.", zap.String("subject", subject.Subject), zap.Int("rows", len(subject.TagPaths)))
		}

		for _, sp := range subject.Problems {
			repo, err := s.problems.For(domain.ClassifyProblemID(sp.ID))
			if err != nil {
				return err
			}
			if err := repo.SaveProblem(txCtx, sp.ToDomain(subject.Subject)); err != nil {
				return fmt.Errorf("failed to save problem %s: %w", sp.ID, err)
			}
		}
		s.log.Info("Saved problems.", zap.String("subject", subject.Subject), zap.Int("problems", len(subject.Problems)))
		return nil
	})
	if err != nil {
		return err
	}

	return s.chapters.InvalidateTree(ctx, subject.Subject)
}
