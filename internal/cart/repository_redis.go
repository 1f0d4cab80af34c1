package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// blobVersion tags the stored envelope. A blob written with a different
// version is discarded on load and the cart starts empty; there is no
// migration path for old layouts.
const blobVersion = 1

const blobKeyPrefix = "cart-storage"

type blobEnvelope struct {
	Version int    `json:"version"`
	Items   []Line `json:"items"`
}

// RedisRepository stores each user's cart as a single versioned JSON blob.
// Entries have no TTL: the cart must survive restarts until checkout clears
// it.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Load(ctx context.Context, userID int) ([]Line, error) {
	data, err := r.client.Get(ctx, blobKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var envelope blobEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal cart blob failed: %w", err)
	}
	if envelope.Version != blobVersion {
		log.Printf("discarding cart blob for user %d: stored version %d, want %d", userID, envelope.Version, blobVersion)
		return nil, nil
	}

	return envelope.Items, nil
}

func (r *RedisRepository) Save(ctx context.Context, userID int, lines []Line) error {
	data, err := json.Marshal(blobEnvelope{Version: blobVersion, Items: lines})
	if err != nil {
		return fmt.Errorf("marshal cart blob failed: %w", err)
	}

	if err := r.client.Set(ctx, blobKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, userID int) error {
	if err := r.client.Del(ctx, blobKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func blobKey(userID int) string {
	return fmt.Sprintf("%s:%d", blobKeyPrefix, userID)
}
