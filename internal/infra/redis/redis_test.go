package redis

import (
	"context"
	"testing"
	"time"

	"vidtube-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb, err := Open(ctx, &config.RedisConfig{Host: "127.0.0.1", Port: 1, PoolSize: 1})
	require.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
