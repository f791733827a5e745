package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(RedisConfig{Addr: mr.Addr()})
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Ping(context.Background()))
}

func TestRedisClient_PingUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := NewRedis(RedisConfig{Addr: addr})
	defer func() { _ = c.Close() }()

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
}
