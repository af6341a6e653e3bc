package gamestate

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/errors"
	"github.com/spartan-system/spartan-api/internal/pkg/clock"
	redisclient "github.com/spartan-system/spartan-api/internal/redis"
)

const (
	snapshotKey    = "spartan:system"
	preferencesKey = "spartan:settings"

	// Error messages
	errSnapshotNil    = "snapshot cannot be nil"
	errPreferencesNil = "preferences cannot be nil"
	errNotSaved       = "changes not saved"
)

// RedisConfig holds the dependencies for the Redis-backed store
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed game state repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

func (r *redisRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	result, err := r.client.Get(ctx, snapshotKey).Result()
	if err != nil {
		if err == redis.Nil {
			return r.seed(ctx)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load snapshot")
	}

	snapshot, migrated, err := r.decodeSnapshot([]byte(result))
	if err != nil {
		return nil, err
	}

	if migrated {
		// Persist the migrated form so the mapping runs only once.
		if _, err := r.Save(ctx, SaveInput{Snapshot: snapshot}); err != nil {
			return nil, err
		}
	}

	return &LoadOutput{Snapshot: snapshot, Migrated: migrated}, nil
}

func (r *redisRepository) seed(ctx context.Context) (*LoadOutput, error) {
	snapshot := entities.NewSnapshot(r.clock.Now())
	if _, err := r.Save(ctx, SaveInput{Snapshot: snapshot}); err != nil {
		return nil, err
	}
	return &LoadOutput{Snapshot: snapshot, Seeded: true}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotNil)
	}

	data, err := json.Marshal(input.Snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	if err := r.client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, errNotSaved)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Reset(ctx context.Context, _ ResetInput) (*ResetOutput, error) {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, snapshotKey)
	pipe.Del(ctx, preferencesKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reset store")
	}

	out, err := r.seed(ctx)
	if err != nil {
		return nil, err
	}
	return &ResetOutput{Snapshot: out.Snapshot}, nil
}

func (r *redisRepository) LoadPreferences(ctx context.Context, _ LoadPreferencesInput) (*LoadPreferencesOutput, error) {
	result, err := r.client.Get(ctx, preferencesKey).Result()
	if err != nil {
		if err == redis.Nil {
			return &LoadPreferencesOutput{Preferences: entities.DefaultPreferences()}, nil
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load preferences")
	}

	var prefs entities.Preferences
	if err := json.Unmarshal([]byte(result), &prefs); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal preferences")
	}

	return &LoadPreferencesOutput{Preferences: &prefs}, nil
}

func (r *redisRepository) SavePreferences(ctx context.Context, input SavePreferencesInput) (*SavePreferencesOutput, error) {
	if input.Preferences == nil {
		return nil, errors.InvalidArgument(errPreferencesNil)
	}

	data, err := json.Marshal(input.Preferences)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal preferences")
	}

	if err := r.client.Set(ctx, preferencesKey, data, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, errNotSaved)
	}

	return &SavePreferencesOutput{}, nil
}

func (r *redisRepository) Export(ctx context.Context, _ ExportInput) (*ExportOutput, error) {
	loadOut, err := r.Load(ctx, LoadInput{})
	if err != nil {
		return nil, err
	}

	prefsOut, err := r.LoadPreferences(ctx, LoadPreferencesInput{})
	if err != nil {
		return nil, err
	}

	return &ExportOutput{
		Document: &ExportDocument{
			Version:     ExportVersion,
			ExportedAt:  r.clock.Now().Unix(),
			Snapshot:    loadOut.Snapshot,
			Preferences: prefsOut.Preferences,
		},
	}, nil
}
