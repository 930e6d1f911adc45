// @title Exam Worksheet API
// @version 1.0
// @description Builds printable exam worksheets from a Korean problem bank: chapter trees, problem search, saved worksheets and PDF output.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_SUPABASE_ACCESS_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"exam-worksheet/internal/adapter"
	"exam-worksheet/internal/adapter/storage"
	"exam-worksheet/internal/cache"
	"exam-worksheet/internal/config"
	"exam-worksheet/internal/database"
	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/handler"
	"exam-worksheet/internal/logger"
	"exam-worksheet/internal/middleware"
	"exam-worksheet/internal/pdf"
	"exam-worksheet/internal/repository"
	"exam-worksheet/internal/service"
	"exam-worksheet/internal/validation"

	_ "exam-worksheet/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	problemLookup := service.ProblemLookup{
		domain.ProblemIDDefault: repository.NewProblemDatabaseAdapter(db),
		domain.ProblemIDTagged:  repository.NewTaggedProblemDatabaseAdapter(db),
		domain.ProblemIDEconomy: repository.NewTaggedProblemDatabaseAdapter(db),
	}
	tagRepository := repository.NewTagDatabaseAdapter(db)
	worksheetRepository := repository.NewWorksheetDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Redis is optional; without it chapter trees are rebuilt per request
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, chapter tree cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	imageFetcher, err := storage.NewHTTPImageFetcher(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to create image fetcher", zap.Error(err))
	}
	renderer := pdf.NewRenderer(pdf.RendererOptions{
		DPI:      cfg.PDF.DPI,
		FontPath: cfg.PDF.FontPath,
		FontSize: cfg.PDF.FontSize,
	})

	// Services
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	chapterService := service.NewChapterService(tagRepository, cacheAdapter, cfg.Chapters, cfg.Cache.ChapterTreeTTL)
	problemService := service.NewProblemService(problemLookup, chapterService, cfg.Difficulty.Bands)
	worksheetService := service.NewWorksheetService(worksheetRepository, problemLookup, txManager, cfg.Worksheet.BatchSize)
	documentService := service.NewDocumentService(worksheetService, imageFetcher, renderer)
	appLogger.Info("Services initialized")

	// Handlers
	validator := validation.NewValidator()
	handlers := handler.Handlers{
		Chapters:   handler.NewChapterHandler(chapterService),
		Problems:   handler.NewProblemHandler(problemService, validator),
		Worksheets: handler.NewWorksheetHandler(worksheetService, validator, cfg.Worksheet),
		Documents:  handler.NewDocumentHandler(documentService),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), handlers, authService, middleware.NewValidationMiddleware(validator))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
