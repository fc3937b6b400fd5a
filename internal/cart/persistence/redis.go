package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Deneth0077/CSH-MainFront/internal/domain"
	"github.com/redis/go-redis/v9"
)

// cartKey is the fixed key the whole cart lives under. There is one logical
// cart per storefront process, so no per-user suffix.
const cartKey = "storefront:cart"

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client}
}

type RedisPersister struct {
	client *redis.Client
}

func (r *RedisPersister) Load(ctx context.Context) (domain.CartState, error) {
	data, err := r.client.Get(ctx, cartKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CartState{}, ErrNotFound
	}
	if err != nil {
		return domain.CartState{}, fmt.Errorf("redis get failed: %w", err)
	}

	var state domain.CartState
	if err2 := json.Unmarshal(data, &state); err2 != nil {
		return domain.CartState{}, fmt.Errorf("unmarshal cart failed: %w", err2)
	}

	return state, nil
}

func (r *RedisPersister) Save(ctx context.Context, state domain.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// No TTL: the cart is durable state, not a cache entry.
	if err := r.client.Set(ctx, cartKey, string(data), 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
