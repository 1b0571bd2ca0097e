package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emarabot/plaza-os/internal/api"
	"github.com/emarabot/plaza-os/internal/api/handler"
	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/core/service"
	"github.com/emarabot/plaza-os/internal/infrastructure/ai"
	redisdb "github.com/emarabot/plaza-os/internal/infrastructure/db/redis"
	"github.com/emarabot/plaza-os/internal/infrastructure/memory"
	"github.com/emarabot/plaza-os/internal/pkg/config"
	"github.com/emarabot/plaza-os/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       The Plaza OS API
// @version                     1.0
// @description                 Residential building concierge.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "plaza-os",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Credentials ---
	keys := service.NewGuestKeySet(domain.GuestKey(cfg.Building.SeedGuestKey))
	checker, err := service.NewCredentialValidator(service.CredentialRules{
		AdminUsername: cfg.Building.AdminUser,
		Residents:     cfg.Building.Residents,
		Passphrase:    cfg.Building.Passphrase,
	}, keys)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build credential validator")
	}

	// --- AI gateway ---
	creds := config.NewEnvCredential()
	gateway := ai.NewGateway(ai.Config{
		Models: ai.Models{
			Concierge: cfg.AI.ConciergeModel,
			Vision:    cfg.AI.VisionModel,
			Writer:    cfg.AI.WriterModel,
			Draft:     cfg.AI.DraftModel,
		},
		Timeout:        cfg.AI.Timeout,
		ThinkingBudget: cfg.AI.ThinkingBudget,
	}, creds, ai.NewGeminiClient, log)
	if _, err := creds.APIKey(ctx); err != nil {
		log.Warn().Msg("API_KEY is not set; AI features will report a configuration error")
	}

	// --- In-flight guard ---
	var guard ports.InflightGuard = memory.NewInflightGuard()
	var redisPing handler.Pinger
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		guard = redisdb.NewInflightGuard(rdb, 0)
		redisPing = func(ctx context.Context) error { return redisdb.Ping(ctx, rdb, 0) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis in-flight guard")
	}

	// --- Sessions ---
	mood := service.NewMood(nil)
	go mood.Run(ctx, cfg.Timing.MoodInterval)

	sessions := service.NewSessions(ctx, checker, service.PanelConfig{
		Gateway: gateway,
		Guard:   guard,
		Issuer:  service.NewGuestKeyIssuer(keys, nil, log),
		Mood:    mood,
		Seeds:   service.DefaultSeeds(),
		Timing: service.Timing{
			Boot:  cfg.Timing.Boot,
			Login: cfg.Timing.Login,
			Scan:  cfg.Timing.Scan,
		},
		Limits: service.Limits{
			IdleTTL:     cfg.Sessions.IdleTTL,
			MaxAge:      cfg.TokenTTL,
			MaxSessions: cfg.Sessions.Max,
		},
		Log: log,
	})

	e := api.NewRouter(api.Dependencies{
		Sessions:    sessions,
		Credentials: creds,
		RedisPing:   redisPing,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
