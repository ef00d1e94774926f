package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/splatcrew/splattrack/internal/api"
	"github.com/splatcrew/splattrack/internal/auth"
	"github.com/splatcrew/splattrack/internal/config"
	"github.com/splatcrew/splattrack/internal/notify"
	"github.com/splatcrew/splattrack/internal/storage/sqlite"
	"github.com/splatcrew/splattrack/pkg/logging"
)

func main() {
	logging.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.SetupWithLevel(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	slog.Info("store opened", "path", cfg.DBPath)

	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		smtp, err := notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		})
		if err != nil {
			return fmt.Errorf("configure mailer: %w", err)
		}
		mailer = smtp
		slog.Info("email notifications enabled", "host", cfg.SMTP.Host)
	} else {
		slog.Info("email notifications disabled, SMTP_HOST not set")
	}

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	dispatcher := notify.NewDispatcher(mailer, slog.Default())

	handler := api.NewHandler(store, authenticator, jwtManager, dispatcher, cfg.AppURL)
	router := api.NewRouter(handler, jwtManager, store)
	srv := api.NewServer(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
