package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medrec/record-api/internal/config"
	authhandler "github.com/medrec/record-api/internal/handler/auth"
	hospitalhandler "github.com/medrec/record-api/internal/handler/hospital"
	recordhandler "github.com/medrec/record-api/internal/handler/record"
	userhandler "github.com/medrec/record-api/internal/handler/user"
	"github.com/medrec/record-api/internal/middleware"
	"github.com/medrec/record-api/internal/repository/postgres"
	"github.com/medrec/record-api/internal/router"
	auditsvc "github.com/medrec/record-api/internal/service/audit"
	authsvc "github.com/medrec/record-api/internal/service/auth"
	hospitalsvc "github.com/medrec/record-api/internal/service/hospital"
	recordsvc "github.com/medrec/record-api/internal/service/record"
	usersvc "github.com/medrec/record-api/internal/service/user"
	"github.com/medrec/record-api/pkg/metrics"
	"github.com/medrec/record-api/pkg/security"
	"github.com/medrec/record-api/pkg/token"
)

const shutdownTimeout = 5 * time.Second

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	hospitalRepo := postgres.NewHospitalRepository(base)
	recordRepo := postgres.NewRecordRepository(base)
	auditRepo := postgres.NewAuditRepository(base)

	m := metrics.New("record_api")
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	tokens := token.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	auditor := auditsvc.NewService(auditRepo)

	authService := authsvc.NewService(userRepo, hasher, tokens, auditor)
	userService := usersvc.NewService(userRepo, hospitalRepo, recordRepo, hasher, auditor)
	hospitalService := hospitalsvc.NewService(hospitalRepo, userRepo, auditor)
	recordService := recordsvc.NewService(recordRepo, userRepo, auditor, m)

	authMW := middleware.NewAuthMiddleware(tokens, userRepo, m)

	engine := router.New(cfg, db, m, authMW, router.Handlers{
		Auth:     authhandler.NewHandler(authService),
		User:     userhandler.NewHandler(userService, authMW),
		Hospital: hospitalhandler.NewHandler(hospitalService, authMW),
		Record:   recordhandler.NewHandler(recordService, authMW),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
