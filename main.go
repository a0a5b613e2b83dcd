package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/database"
	"github.com/yeremiapane/table-booking/middlewares"
	"github.com/yeremiapane/table-booking/router"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

func main() {
	utils.InitLogger()
	cfg := config.Load()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatal(err)
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	deps := router.NewDeps(db, tokens, services.NewMailer(cfg.SMTP))
	deps.CORSOrigin = cfg.CORSOrigin
	deps.Security = middlewares.SecurityOptions{ContentSecurityPolicy: cfg.CSP, HSTSMaxAge: cfg.HSTSMaxAge}
	deps.RateLimiter = middlewares.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	deps.AuthLimiter = middlewares.NewStrictRateLimiter()

	if _, err := database.SeedAdmin(context.Background(), deps.Identity, cfg.Admin); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin user: %v", err)
	}

	r := router.SetupRouter(deps)
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		utils.ErrorLogger.Printf("Error setting trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s (db=%s)", cfg.Port, cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
