package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/go-signup-verify/internal/config"
	jwtinfra "github.com/go-signup-verify/internal/infrastructure/jwt"
	"github.com/go-signup-verify/internal/infrastructure/memory"
	"github.com/go-signup-verify/internal/infrastructure/smtp"
	"github.com/go-signup-verify/internal/pkg/clock"
	"github.com/go-signup-verify/internal/pkg/code"
	"github.com/go-signup-verify/internal/pkg/logger"
	transporthttp "github.com/go-signup-verify/internal/transport/http"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "signup-verify",
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	if envErr != nil {
		zlog.Info("no .env file found, reading from environment")
	}

	gen, err := code.NewGenerator(cfg.VerificationCodeLength)
	if err != nil {
		zlog.Fatal("invalid verification code length", zap.Int("digits", cfg.VerificationCodeLength), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := clock.Real{}
	codes := memory.NewVerificationStore(cfg.VerificationCodeTTL, clk)
	go memory.NewSweeper(codes, cfg.SweepInterval, zlog).Run(ctx)

	// JWT provider (optional; without keys verification returns no receipt).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		zlog.Warn("JWT provider not available, verification receipts disabled", zap.Error(err))
	}

	dispatcher := smtp.NewDispatcher(cfg, zlog)

	router := transporthttp.NewRouter(ctx, cfg, &transporthttp.Deps{
		Codes:       codes,
		Accounts:    memory.NewAccountStore(),
		Generator:   gen,
		Dispatcher:  dispatcher,
		JWTProvider: jwtProvider,
		Logger:      zlog,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server starting",
			zap.String("port", cfg.AppPort),
			zap.Duration("code_ttl", codes.TTL()),
			zap.Int("code_digits", gen.Digits()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}
