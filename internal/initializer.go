package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/cycle-nutrition/server/internal/auth"
	"github.com/cycle-nutrition/server/internal/config"
	"github.com/cycle-nutrition/server/internal/managers"
	"github.com/cycle-nutrition/server/internal/routing"
	"github.com/cycle-nutrition/server/internal/store"
)

const envFile = ".env"

func Init() {
	if err := godotenv.Load(envFile); err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}
	setLogLevel(cfg.LogLevel)

	// Connect to database
	pool := initializeDatabase(cfg)
	defer pool.Close()

	// Initialize managers
	databaseMgr := managers.NewDatabaseManager(pool)
	mailMgr := managers.NewMailManager(cfg)
	auditMgr := managers.NewAuditManager()
	tokenMgr, err := managers.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal("Error initializing token manager: ", err)
	}

	// Initialize stores and the auth engine
	credentialStore := store.NewCredentialStore(databaseMgr.GetPool())
	profileStore := store.NewProfileStore(databaseMgr.GetPool())
	engine := auth.NewEngine(credentialStore, tokenMgr, mailMgr, auditMgr, cfg)

	// Initialize router
	r := routing.InitRouter(databaseMgr, engine, profileStore, credentialStore, cfg)
	log.Info("Initialized router")

	// Handle interrupt signal gracefully
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)

		<-c
		log.Info("Server shutting down...")
		os.Exit(0)
	}()

	log.Infof("Starting server on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Error starting server: ", err)
	}
}

func initializeDatabase(cfg *config.Config) *pgxpool.Pool {
	log.Info("Initializing database")

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPass == "" || cfg.DBName == "" {
		log.Fatal("database environment variables not set")
	}

	url := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	poolConfig.MinConns = 5
	poolConfig.MaxConns = 30
	poolConfig.MaxConnIdleTime = time.Minute * 2
	poolConfig.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	log.Info("Connected to database")
	return pool
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
