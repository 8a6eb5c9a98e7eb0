package inventory

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	redisclient "github.com/KirkDiggler/tower-defense/internal/redis"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis inventory repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed inventory repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// inventoryData is what gets serialized to Redis
type inventoryData struct {
	OwnerID  string                      `json:"owner_id"`
	Mode     string                      `json:"mode"`
	Snapshot *entities.InventorySnapshot `json:"snapshot"`
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.OwnerID, input.Mode); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, storageKey(input.OwnerID, input.Mode)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("inventory for owner %s not found", input.OwnerID).
				WithMeta("mode", input.Mode)
		}
		return nil, errors.Wrapf(err, "failed to get inventory for owner %s", input.OwnerID)
	}

	var data inventoryData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal inventory data")
	}

	return &GetOutput{Snapshot: data.Snapshot}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateKey(input.OwnerID, input.Mode); err != nil {
		return nil, err
	}
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot cannot be nil")
	}

	jsonData, err := json.Marshal(inventoryData{
		OwnerID:  input.OwnerID,
		Mode:     input.Mode,
		Snapshot: input.Snapshot,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal inventory data")
	}

	if err := r.client.Set(ctx, storageKey(input.OwnerID, input.Mode), jsonData, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save inventory for owner %s", input.OwnerID)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.OwnerID, input.Mode); err != nil {
		return nil, err
	}

	deleted, err := r.client.Del(ctx, storageKey(input.OwnerID, input.Mode)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete inventory for owner %s", input.OwnerID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("inventory for owner %s not found", input.OwnerID)
	}

	return &DeleteOutput{}, nil
}
