package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/practice-booking/internal/wizard"
)

// RedisStore keeps wizard state and hand-off records in Redis as JSON with a
// TTL.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore wraps a redis client. A non-positive ttl uses DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("practice.internal.session"),
	}
}

func (s *RedisStore) LoadWizard(ctx context.Context, sessionID string) (*wizard.State, error) {
	ctx, span := s.tracer.Start(ctx, "session.load_wizard")
	defer span.End()

	var state wizard.State
	found, err := s.getJSON(ctx, wizardKey(sessionID), &state)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load wizard: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

func (s *RedisStore) SaveWizard(ctx context.Context, sessionID string, state wizard.State) error {
	ctx, span := s.tracer.Start(ctx, "session.save_wizard")
	defer span.End()

	if err := s.setJSON(ctx, wizardKey(sessionID), state); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist wizard: %w", err)
	}
	return nil
}

func (s *RedisStore) ResetWizard(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "session.reset_wizard")
	defer span.End()

	if err := s.redis.Del(ctx, wizardKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to reset wizard: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveConfirmation(ctx context.Context, rec Confirmation) error {
	ctx, span := s.tracer.Start(ctx, "session.save_confirmation")
	defer span.End()

	if rec.ID == "" {
		return errors.New("session: confirmation id required")
	}
	if err := s.setJSON(ctx, confirmationKey(rec.ID), rec); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist confirmation: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadConfirmation(ctx context.Context, id string) (*Confirmation, error) {
	ctx, span := s.tracer.Start(ctx, "session.load_confirmation")
	defer span.End()

	var rec Confirmation
	found, err := s.getJSON(ctx, confirmationKey(id), &rec)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load confirmation: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// Ping reports whether redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, data, s.ttl).Err()
}

func (s *RedisStore) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}
