// Package app provides the dependency injection container for assembling
// application components: infrastructure, repositories, use cases and
// servers, all created lazily on first access and cached for reuse.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	blobHTTP "github.com/dsse/forwardpriv/internal/blob/http"
	blobUsecase "github.com/dsse/forwardpriv/internal/blob/usecase"
	clientState "github.com/dsse/forwardpriv/internal/client/state"
	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
	"github.com/dsse/forwardpriv/internal/config"
	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
	cryptoService "github.com/dsse/forwardpriv/internal/crypto/service"
	"github.com/dsse/forwardpriv/internal/database"
	appHTTP "github.com/dsse/forwardpriv/internal/http"
	indexHTTP "github.com/dsse/forwardpriv/internal/index/http"
	indexUsecase "github.com/dsse/forwardpriv/internal/index/usecase"
	"github.com/dsse/forwardpriv/internal/metrics"
	"github.com/dsse/forwardpriv/internal/search"
)

// Container holds all application dependencies and provides methods to
// access them. It follows the lazy initialization pattern - components are
// created on first access.
type Container struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	txManager database.TxManager

	indexRepo indexUsecase.IndexRepository
	blobRepo  blobUsecase.BlobRepository
	byteStore blobUsecase.ByteStore

	aeadManager cryptoService.AEADManager
	keyDeriver  cryptoService.KeyDeriver
	kmsService  cryptoService.KMSService
	kmsKeeper   cryptoDomain.KMSKeeper

	indexUseCase  indexUsecase.IndexUseCase
	blobUseCase   blobUsecase.BlobUseCase
	clientUseCase clientUsecase.ClientUseCase

	searchEngine *search.Engine
	stateStore   *clientState.Store

	indexHandler  *indexHTTP.IndexHandler
	searchHandler *indexHTTP.SearchHandler
	blobHandler   *blobHTTP.BlobHandler
	adminHandler  *appHTTP.AdminHandler

	metricsProvider *metrics.Provider

	httpServer    *appHTTP.Server
	metricsServer *appHTTP.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	indexRepoInit       sync.Once
	blobRepoInit        sync.Once
	byteStoreInit       sync.Once
	aeadManagerInit     sync.Once
	keyDeriverInit      sync.Once
	kmsServiceInit      sync.Once
	kmsKeeperInit       sync.Once
	indexUseCaseInit    sync.Once
	blobUseCaseInit     sync.Once
	clientUseCaseInit   sync.Once
	searchEngineInit    sync.Once
	stateStoreInit      sync.Once
	indexHandlerInit    sync.Once
	searchHandlerInit   sync.Once
	blobHandlerInit     sync.Once
	adminHandlerInit    sync.Once
	metricsProviderInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance, creating it on first access.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection, connecting on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// Shutdown performs cleanup of all initialized resources. It should be
// called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}
	if c.kmsKeeper != nil {
		if err := c.kmsKeeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("kms keeper close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}
	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}
