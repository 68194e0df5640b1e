package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prasetyowira/mxlabel/api"
	"github.com/prasetyowira/mxlabel/config"
	"github.com/prasetyowira/mxlabel/constant"
	"github.com/prasetyowira/mxlabel/domain/label"
	"github.com/prasetyowira/mxlabel/infrastructure/db"
	appLogger "github.com/prasetyowira/mxlabel/infrastructure/logger"
	"github.com/prasetyowira/mxlabel/infrastructure/maintx"
	"github.com/prasetyowira/mxlabel/infrastructure/render"
	"github.com/prasetyowira/mxlabel/infrastructure/symbology"
)

func main() {
	// Load .env if present, then configuration from environment variables
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	// Initialize logger based on environment
	isProduction := cfg.LogLevel == "INFO"
	appLogger.Initialize(isProduction)
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataBaseURL:     cfg.BaseURL,
			constant.DataDBPath:      cfg.JournalDBPath,
			constant.DataEnvironment: cfg.LogLevel,
		},
	})

	// Credentials are a startup precondition, not a per-request failure
	if err := cfg.Validate(); err != nil {
		appLogger.Fatal(constant.MsgInvalidConfiguration, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppConfig,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
	}

	// Create the generation journal when a database path is configured
	var journal label.Journal
	if cfg.JournalDBPath != "" {
		repository, err := db.NewJournalRepository(cfg.JournalDBPath)
		if err != nil {
			appLogger.Fatal(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppDBInit,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataDBPath: cfg.JournalDBPath,
				},
			})
		}
		defer repository.Close()
		journal = repository
	}

	// Assemble the label generation pipeline
	fetcher := maintx.NewClient(maintx.Config{
		BaseURL:         cfg.BaseURL,
		BearerToken:     cfg.BearerToken,
		APIKey:          cfg.APIKey,
		Timeout:         cfg.Timeout,
		CodeValueBase64: cfg.CodeValueBase64,
	})
	service := label.NewService(fetcher, symbology.NewGenerator(), render.NewEngine(), journal)

	// Create API handler and router
	handler := api.NewHandler(service)
	router := api.NewRouter(handler, cfg.AuthUser, cfg.AuthPass)
	router.SetupRoutes()

	// Configure HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: cfg.Port,
			},
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPort: cfg.Port,
				},
			})
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
}
