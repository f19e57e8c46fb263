package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schooladmin/school-api/internal/api"
	"github.com/schooladmin/school-api/internal/api/middleware"
	"github.com/schooladmin/school-api/internal/core/domain"
	mongodb "github.com/schooladmin/school-api/internal/infrastructure/db/mongo"
	redisdb "github.com/schooladmin/school-api/internal/infrastructure/db/redis"
	"github.com/schooladmin/school-api/internal/pkg/config"
	"github.com/schooladmin/school-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	// --- Redis (optional; enables the failed-login guard) ---
	var rdb *goredis.Client
	var guard middleware.LoginGuard
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		guard = redisdb.NewLoginGuard(rdb, cfg.LoginGuard.MaxFailures, cfg.LoginGuard.Window)
	} else {
		log.Warn().Msg("redis not configured, login throttling disabled")
	}

	if err := seedTeacher(ctx, users, cfg.SeedTeacher, log); err != nil {
		log.Fatal().Err(err).Msg("teacher seeding failed")
	}

	e := api.NewRouter(api.RouterDeps{
		Log:        log,
		Users:      users,
		LoginGuard: guard,
		BcryptCost: cfg.BcryptCost,
		Mongo:      db,
		Redis:      rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("school admin api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedTeacher provisions the bootstrap TEACHER account when configured and
// absent. Duplicate creation from a concurrently starting replica is fine:
// the loser's ErrUsernameTaken is ignored.
func seedTeacher(ctx context.Context, users *mongodb.MongoUserRepository, seed config.SeedTeacherConfig, log zerolog.Logger) error {
	if seed.Username == "" {
		log.Warn().Msg("no seed teacher configured")
		return nil
	}
	if seed.Password == "" {
		return errors.New("seed teacher configured without a password")
	}

	if _, err := users.FindByUsername(ctx, seed.Username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Username:     seed.Username,
		Name:         seed.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleTeacher,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		return nil
	}
	if err == nil {
		log.Info().Str("username", seed.Username).Msg("seed teacher created")
	}
	return err
}
