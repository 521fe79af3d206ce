package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/practice-booking/internal/config"
	"github.com/wolfman30/practice-booking/internal/http/handlers"
	"github.com/wolfman30/practice-booking/internal/session"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

const sweepInterval = time.Minute

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// Sessions is the wired session store plus what main needs to run and
// stop it.
type Sessions struct {
	Store session.Store
	// Pinger is set for stores backed by a network service.
	Pinger handlers.Pinger
	// Run performs background upkeep until ctx is done. It may be a no-op.
	Run   func(ctx context.Context)
	Close func() error
}

// BuildSessionStore picks Redis when REDIS_ADDR is reachable and falls back
// to the in-process store otherwise.
func BuildSessionStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) Sessions {
	if logger == nil {
		logger = logging.Default()
	}
	if client := BuildRedisClient(ctx, cfg, logger, true); client != nil {
		store := session.NewRedisStore(client, cfg.SessionTTL)
		logger.Info("session store: redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL.String())
		return Sessions{
			Store:  store,
			Pinger: store,
			Run:    func(context.Context) {},
			Close:  client.Close,
		}
	}

	var ttl time.Duration
	if cfg != nil {
		ttl = cfg.SessionTTL
	}
	store := session.NewMemoryStore(ttl)
	logger.Info("session store: memory", "ttl", ttl.String())
	return Sessions{
		Store: store,
		Run:   func(ctx context.Context) { store.RunSweeper(ctx, sweepInterval) },
		Close: func() error { return nil },
	}
}
