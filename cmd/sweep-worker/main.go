package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/THGoZ/lauch-shifts-sub001/internal/config"
	"github.com/THGoZ/lauch-shifts-sub001/internal/db"
	"github.com/THGoZ/lauch-shifts-sub001/internal/logging"
	redisclient "github.com/THGoZ/lauch-shifts-sub001/internal/redis"
	"github.com/THGoZ/lauch-shifts-sub001/internal/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("sweep-worker", "dev")
		log.Fatal().Err(err).Msg("config load error")
	}

	logging.Init("sweep-worker", cfg.Env)
	log.Info().Str("env", cfg.Env).Dur("interval", cfg.SweepInterval).Msg("sweep-worker starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Msg("connected to Redis")

	repo := shift.NewPgRepository(pgPool)
	locker := redisclient.NewRedisBookingLocker(rdb, cfg.LockTTL)
	svc := shift.NewService(repo, locker)

	// Run once at startup
	runOnce(rootCtx, svc)

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Info().Msg("shutdown signal received, stopping sweep worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc)
		}
	}
}

func runOnce(ctx context.Context, svc *shift.Service) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	res := svc.SweepMissedShifts(runCtx, time.Now())
	if !res.Success {
		log.Error().Any("error", res.Error).Msg("sweep run error")
		return
	}
	log.Info().Int("swept", res.Result).Dur("took", time.Since(start)).Msg("sweep run complete")
}
