package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/muhammadheryan/mfg-stock/cmd/config"
	redisclient "github.com/muhammadheryan/mfg-stock/cmd/redis"
	"github.com/muhammadheryan/mfg-stock/constant"
	"github.com/muhammadheryan/mfg-stock/model"
	redisrepo "github.com/muhammadheryan/mfg-stock/repository/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{Redis: config.RedisConfig{Host: mr.Host(), Port: port}}
	require.NoError(t, redisclient.New(cfg))
	t.Cleanup(func() { _ = redisclient.Close() })

	return mr
}

func TestRepository_GetMissingKey(t *testing.T) {
	setupTestRedis(t)
	repo := redisrepo.NewRepository()

	val, err := repo.Get(context.Background(), "stock:level:1")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestRepository_VersionedCache(t *testing.T) {
	mr := setupTestRedis(t)
	repo := redisrepo.NewRepository()
	ctx := context.Background()

	version, err := repo.Version(ctx, "stock:level:1")
	require.NoError(t, err)
	assert.Empty(t, version)

	stored, err := repo.SetIfVersion(ctx, "stock:level:1", `{"product_id":1}`, version, time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, `{"product_id":1}`, mustGet(t, mr, "stock:level:1"))
	assert.Equal(t, time.Minute, mr.TTL("stock:level:1"))

	require.NoError(t, repo.Invalidate(ctx, "stock:level:1", "stock:level:2"))
	assert.False(t, mr.Exists("stock:level:1"))
	assert.Equal(t, "1", mustGet(t, mr, "stock:level:1:version"))
	assert.Equal(t, "1", mustGet(t, mr, "stock:level:2:version"))
}

func TestRepository_SetIfVersionLosesToInvalidate(t *testing.T) {
	mr := setupTestRedis(t)
	repo := redisrepo.NewRepository()
	ctx := context.Background()

	// reader takes the version, a writer invalidates, then the reader tries to fill the cache
	version, err := repo.Version(ctx, "stock:level:7")
	require.NoError(t, err)
	require.NoError(t, repo.Invalidate(ctx, "stock:level:7"))

	stored, err := repo.SetIfVersion(ctx, "stock:level:7", `{"available_quantity":"100"}`, version, time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("stock:level:7"))

	fresh, err := repo.Version(ctx, "stock:level:7")
	require.NoError(t, err)
	stored, err = repo.SetIfVersion(ctx, "stock:level:7", `{"available_quantity":"60"}`, fresh, time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestRepository_Delete(t *testing.T) {
	mr := setupTestRedis(t)
	repo := redisrepo.NewRepository()
	ctx := context.Background()

	mr.Set("stock_event:1", "COMMIT")
	require.NoError(t, repo.Delete(ctx, "stock_event:1", "stock_event:2"))
	assert.False(t, mr.Exists("stock_event:1"))
}

func TestRepository_SetIfAbsent(t *testing.T) {
	setupTestRedis(t)
	repo := redisrepo.NewRepository()
	ctx := context.Background()

	first, err := repo.SetIfAbsent(ctx, "stock_event:abc", "1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repo.SetIfAbsent(ctx, "stock_event:abc", "1", time.Hour)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestRepository_Session(t *testing.T) {
	mr := setupTestRedis(t)
	repo := redisrepo.NewRepository()
	ctx := context.Background()

	session := model.Session{UserID: 42, Role: constant.RoleInventory}
	require.NoError(t, repo.SetSession(ctx, "jti-1", session, time.Hour))
	assert.Equal(t, "42:inventory", mustGet(t, mr, "session:jti-1"))

	got, err := repo.GetSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, &session, got)

	require.NoError(t, repo.DeleteSession(ctx, "jti-1"))
	_, err = repo.GetSession(ctx, "jti-1")
	assert.Error(t, err)
}

func TestRepository_GetSessionMalformed(t *testing.T) {
	mr := setupTestRedis(t)
	repo := redisrepo.NewRepository()
	require.NoError(t, mr.Set("session:bad", "no-separator"))

	_, err := repo.GetSession(context.Background(), "bad")
	assert.Error(t, err)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
