package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/account-management/internal/adapter/http/controller"
	"github.com/api-sage/account-management/internal/adapter/http/middleware"
	"github.com/api-sage/account-management/internal/adapter/http/router"
	"github.com/api-sage/account-management/internal/adapter/repository/postgres"
	"github.com/api-sage/account-management/internal/config"
	"github.com/api-sage/account-management/internal/seed"
	"github.com/api-sage/account-management/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	numberGen := services.NewCryptoNumberGenerator()

	if cfg.SeedSampleData {
		if err := seed.Load(ctx, accountRepo, numberGen); err != nil {
			log.Fatalf("seed sample data: %v", err)
		}
	}

	accountService := services.NewAccountService(
		accountRepo,
		numberGen,
		cfg.DefaultBranchID,
		cfg.NumberMaxAttempts,
	)
	accountController := controller.NewAccountController(accountService)

	mux := router.New(accountController, middleware.CustomerContext())
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("account management API listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}
