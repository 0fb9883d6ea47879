// Package main provides the main entry point for the ScoutBase scouting platform API
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/scoutbase/scoutbase/app/handlers"
	"github.com/scoutbase/scoutbase/app/middleware"
	"github.com/scoutbase/scoutbase/app/router"
	businessflow "github.com/scoutbase/scoutbase/business_flow"
	"github.com/scoutbase/scoutbase/config"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application bundles the wired components
type Application struct {
	router router.Router
	config *config.Config
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)
	log.Println("Starting ScoutBase application...")

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.router.Start(cfg.Server.Address()); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger through a rotating file when
// a path is configured, alongside stdout.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.FilePath == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(
			&models.User{},
			&models.PlayerProfile{},
			&models.Session{},
			&models.AdminLog{},
			&models.Match{},
			&models.ScoutingReport{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	log.Printf("Database connection established with %d max open connections", cfg.MaxOpenConns)
	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.Addr, cfg.DB)
	return rc, nil
}

// initializeApplication wires repositories, flows, handlers and the router
func initializeApplication(cfg *config.Config) (*Application, error) {
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	adminLogRepo := repository.NewAdminLogRepository(db)
	reportRepo := repository.NewReportRepository(db)

	if err := ensureAdminAccount(userRepo, cfg.Security.BcryptCost); err != nil {
		return nil, err
	}

	// Flows
	auditor := businessflow.NewAuditor(adminLogRepo)
	gate := businessflow.NewSessionGate(sessionRepo, rc, cfg.Security.SessionTimeout)
	signupFlow := businessflow.NewSignupFlow(userRepo, auditor, cfg.Security.BcryptCost)
	loginFlow := businessflow.NewLoginFlow(userRepo, gate, auditor)
	profileFlow := businessflow.NewProfileFlow(userRepo, db, auditor)
	searchFlow := businessflow.NewSearchFlow(userRepo)
	adminFlow := businessflow.NewAdminFlow(userRepo, adminLogRepo, reportRepo, gate, auditor)

	// Handlers
	authHandler := handlers.NewAuthHandler(signupFlow, loginFlow)
	profileHandler := handlers.NewProfileHandler(profileFlow)
	searchHandler := handlers.NewSearchHandler(searchFlow)
	adminHandler := handlers.NewAdminHandler(adminFlow)

	authMiddleware := middleware.NewAuthMiddleware(gate)

	appRouter := router.NewFiberRouter(
		cfg,
		authHandler,
		profileHandler,
		searchHandler,
		adminHandler,
		authMiddleware,
	)

	return &Application{
		router: appRouter,
		config: cfg,
	}, nil
}

// ensureAdminAccount provisions the bootstrap admin from the
// environment. Registration never creates admins; this is the only
// way one comes into existence.
func ensureAdminAccount(userRepo repository.UserRepository, bcryptCost int) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	existing, err := userRepo.ByUsername(context.Background(), username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = username + "@localhost"
	}

	admin := &models.User{
		UUID:         uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		FullName:     "Administrator",
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	if err := userRepo.CreateWithProfile(context.Background(), admin, nil); err != nil {
		return fmt.Errorf("provision admin account: %w", err)
	}
	log.Printf("Bootstrap admin account %q created", username)
	return nil
}
