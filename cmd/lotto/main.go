package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	adapthttp "lotto/internal/adapter/http"
	"lotto/internal/adapter/postgres"
	"lotto/internal/app"
	"lotto/internal/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db open", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)
	submissionRepo := postgres.NewSubmissionRepo(db)

	authSvc := app.NewAuthService(db)
	sessionSvc := app.NewSessionService(db, sessionRepo, cfg.SessionTTL)
	lottoSvc := app.NewLottoService(submissionRepo)

	oidcCfg, err := adapthttp.NewOIDC(context.Background(), cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
	if err != nil {
		logger.Error("oidc setup", "error", err)
		os.Exit(1)
	}

	go sweepSessions(sessionSvc, logger)

	h := adapthttp.New(authSvc, sessionSvc, lottoSvc, oidcCfg, logger).Handler()
	logger.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

// sweepSessions periodically reaps expired session rows.
func sweepSessions(sessions *app.SessionService, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := sessions.PurgeExpired(ctx); err != nil {
			logger.Warn("session sweep failed", "error", err)
		}
		cancel()
	}
}
