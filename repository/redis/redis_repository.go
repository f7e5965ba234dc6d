package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	redisclient "github.com/muhammadheryan/mfg-stock/cmd/redis"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	goredis "github.com/redis/go-redis/v9"
)

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Version(ctx context.Context, key string) (string, error)
	SetIfVersion(ctx context.Context, key, value, version string, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, keys ...string) error
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	SetSession(ctx context.Context, sessionID string, session model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Get returns an empty string and no error when the key does not exist.
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	client := redisclient.Get()
	if client == nil {
		return "", nil
	}
	val, err := client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func versionKey(key string) string {
	return key + ":version"
}

// Version returns the invalidation counter of key, empty when it was never invalidated.
func (r *redis) Version(ctx context.Context, key string) (string, error) {
	return r.Get(ctx, versionKey(key))
}

// SetIfVersion stores value under key only while the invalidation counter of key still equals
// version, and reports whether it did. An Invalidate racing with the write wins.
func (r *redis) SetIfVersion(ctx context.Context, key, value, version string, ttl time.Duration) (bool, error) {
	client := redisclient.Get()
	if client == nil {
		return false, nil
	}
	vk := versionKey(key)
	stored := false
	err := client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, vk).Result()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		stored = err == nil
		return err
	}, vk)
	if errors.Is(err, goredis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// Invalidate deletes keys and bumps their invalidation counters in one transaction.
func (r *redis) Invalidate(ctx context.Context, keys ...string) error {
	client := redisclient.Get()
	if client == nil || len(keys) == 0 {
		return nil
	}
	_, err := client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, versionKey(k))
			pipe.Del(ctx, k)
		}
		return nil
	})
	return err
}

// SetIfAbsent stores the key only if it does not exist yet and reports whether it did.
// Without a client every key is treated as new.
func (r *redis) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	client := redisclient.Get()
	if client == nil {
		return true, nil
	}
	return client.SetNX(ctx, key, value, ttl).Result()
}

// Delete removes keys from Redis
func (r *redis) Delete(ctx context.Context, keys ...string) error {
	client := redisclient.Get()
	if client == nil || len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}

// SetSession stores "<userID>:<role>" under the session key
func (r *redis) SetSession(ctx context.Context, sessionID string, session model.Session, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	value := fmt.Sprintf("%d:%s", session.UserID, session.Role)
	return client.Set(ctx, sessionKey(sessionID), value, ttl).Err()
}

// GetSession retrieves the session stored by SetSession
func (r *redis) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}
	val, err := client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	idPart, rolePart, found := strings.Cut(val, ":")
	if !found {
		return nil, fmt.Errorf("malformed session value")
	}
	userID, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session user id: %w", err)
	}
	return &model.Session{UserID: userID, Role: constant.Role(rolePart)}, nil
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, sessionKey(sessionID)).Err()
}
