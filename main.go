package main

import (
	"context"
	"daassist-web/apiclient"
	"daassist-web/controller"
	"daassist-web/dal"
	"daassist-web/models"
	"daassist-web/repository"
	"daassist-web/services"
	"daassist-web/utils"
	"daassist-web/utils/logger"
	"daassist-web/worker"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "daassist-web/docs"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title DAAssist Web API
// @version 1.0
// @description Backend-for-frontend of the DAAssist service desk.
// @description Every endpoint under the base path works on the browser session identified by the session cookie.
// @description Log in with POST /auth/login; the remote API tokens stay on the server.

// @host localhost:8081
// @BasePath /app
func main() {
	Init()

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.WithFields(logger.Fields{
		"env":     config.AppEnv,
		"api":     config.APIBaseURL,
		"storage": config.StorageBackend,
		"base":    config.BasePath,
	}).Infof("Starting %s %s", config.AppName, config.AppVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dal.NewDatabaseClient(ctx, config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize session storage: %v", err)
	}

	repo := repository.NewRepository(db, config, appLogger)
	backends := services.APIBackendFactory(config, apiclient.NewHTTPClient(config), appLogger)
	svc := services.NewService(repo, backends, config, appLogger)

	// Tables are created before the first request can store a session
	sweeper, err := worker.NewService(db, svc.GetSessionManager(), config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create session sweeper: %v", err)
	}
	if err := sweeper.Start(ctx); err != nil {
		appLogger.Fatalf("Failed to start session sweeper: %v", err)
	}
	defer sweeper.Stop()

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	c := controller.NewController(config, svc, sweeper, appLogger)
	c.RegisterRoutes(r)

	srv := c.NewServer(r)
	go func() {
		appLogger.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Graceful shutdown failed: %v", err)
	}
}
