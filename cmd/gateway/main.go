package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"art-critique-service/cache"
	"art-critique-service/canister"
	"art-critique-service/conf"
	"art-critique-service/controller"
	"art-critique-service/database"
	"art-critique-service/pinning"
	"art-critique-service/wallet"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
}

// @title           Art Critique Gateway API
// @version         1.0
// @description     Gateway service for the decentralized art critique platform, provides gallery, critique, reward and marketplace functionality
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:7391
// @BasePath  /

// @schemes https http

func main() {
	// Initialize all components
	srv, cleanup := initAll()
	defer cleanup()

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("Gateway API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down gateway service...")

	// Gracefully shutdown HTTP service
	shutdownServer(srv)

	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "mainnet" {
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	} else if ENV == "example" {
		conf.SystemEnvironmentEnum = conf.ExampleEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*http.Server, func()) {
	// Parse command line parameters
	flag.Parse()

	// Set environment
	initEnv()

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, port=%s", ENV, conf.Cfg.Gateway.Port)

	// Initialize profile database
	if err := initDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Open snapshot cache
	snapshots, err := cache.NewSnapshotCache(conf.Cfg.Cache.DataDir)
	if err != nil {
		log.Fatalf("Failed to open snapshot cache: %v", err)
	}

	// Create canister store, pinning client and wallet session context
	store := canister.NewArtworkStore()
	pin := pinning.NewClient()
	sessions := wallet.NewSessionContext(
		time.Duration(conf.Cfg.Wallet.ChallengeTTLSeconds)*time.Second,
		time.Duration(conf.Cfg.Wallet.SessionTTLSeconds)*time.Second,
	)

	// Setup gateway service router
	router := controller.SetupGatewayRouter(store, snapshots, pin, sessions)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Gateway.Port,
		Handler: router,
	}

	// Return cleanup function
	cleanup := func() {
		if database.DB != nil {
			database.DB.Close()
		}
		snapshots.Close()
	}

	return srv, cleanup
}

// initDatabase initialize database based on configuration
func initDatabase() error {
	dbType := database.DBType(conf.Cfg.Database.ProfileType)

	switch dbType {
	case database.DBTypeMySQL, database.DBTypeSQLite:
		config := &database.GormConfig{
			Dsn:          conf.Cfg.Database.Dsn,
			SqlitePath:   conf.Cfg.Database.SqlitePath,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
		}
		return database.InitDatabase(dbType, config)
	default:
		return fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	log.Printf("Gateway API service starting on port %s...", conf.Cfg.Gateway.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
