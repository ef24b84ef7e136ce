package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"skillswap/backend/internal/api/handler"
	"skillswap/backend/internal/auth"
	"skillswap/backend/internal/availability"
	"skillswap/backend/internal/booking"
	"skillswap/backend/internal/config"
	"skillswap/backend/internal/localization"
	"skillswap/backend/internal/matching"
	"skillswap/backend/internal/messaging"
	"skillswap/backend/internal/models"
	"skillswap/backend/internal/notify"
	"skillswap/backend/internal/review"
	"skillswap/backend/internal/storage"
	"skillswap/backend/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newLogger(env string) *zap.Logger {
	var zapCfg zap.Config
	if env == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.OutputPaths = []string{"stdout"}

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// TranslateError turns postgres unique violations into
	// gorm.ErrDuplicatedKey, which the storage layer relies on.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Language{},
		&models.AvailabilitySlot{},
		&models.SessionRequest{},
		&models.MatchRequest{},
		&models.Conversation{},
		&models.Participant{},
		&models.Message{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting SkillSwap Backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	db, rdb := setupDependencies(cfg)
	store := storage.NewStorageService(db, rdb, logger)

	localizer, err := localization.NewLocalizer(cfg.LocalesPath)
	if err != nil {
		log.Fatalf("Failed to load localization catalogs: %v", err)
	}

	notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
	if err != nil {
		log.Fatalf("Failed to start Telegram notifier: %v", err)
	}
	if notifier == nil {
		logger.Info("telegram notifier disabled")
	}

	usersSvc := users.NewService(store, logger)
	tokens := auth.NewTokenService(cfg.JWTSecret, store)
	availabilitySvc := availability.NewService(store, logger)
	bookingSvc := booking.NewService(store, notifier, logger)
	matchingSvc := matching.NewService(store, logger)
	messagingSvc := messaging.NewService(store, logger)
	reviewSvc := review.NewService(store, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	h := handler.NewHandler(usersSvc, tokens, availabilitySvc, bookingSvc,
		matchingSvc, messagingSvc, reviewSvc, localizer, logger)
	h.RegisterRoutes(r)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        corsWrapper.Handler(r),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	logger.Info("listening", zap.String("addr", cfg.ListenAddr))
	log.Fatal(server.ListenAndServe())
}
