package health

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping() error { return f.err }

func TestCollectHealthNoDependencies(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil)

	db := result.Dependencies["database"]
	assert.Equal(t, "disconnected", db.Status)
	assert.Nil(t, db.PingMs)

	rds := result.Dependencies["redis"]
	assert.Equal(t, "disconnected", rds.Status)
	assert.Nil(t, rds.PingMs)

	assert.Equal(t, "ok", result.Status)
}

func TestCollectHealthConnected(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	result := CollectHealth(context.Background(), rdb, &fakePinger{})

	db := result.Dependencies["database"]
	assert.Equal(t, "connected", db.Status)
	require.NotNil(t, db.PingMs)

	rds := result.Dependencies["redis"]
	assert.Equal(t, "connected", rds.Status)
	require.NotNil(t, rds.PingMs)

	assert.Equal(t, "ok", result.Status)
}

func TestCollectHealthFailingPingDegrades(t *testing.T) {
	result := CollectHealth(context.Background(), nil, &fakePinger{err: errors.New("refused")})

	db := result.Dependencies["database"]
	assert.Equal(t, "error", db.Status)
	assert.Nil(t, db.PingMs)
	assert.Equal(t, "degraded", result.Status)
}

func TestDashboardRendersDisconnectedPing(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil)
	page := RenderDashboardHTML(result)

	assert.NotContains(t, page, "<nil>")
	assert.Contains(t, page, "disconnected")
	assert.Contains(t, page, "· -")
}

func TestDashboardRendersPingTime(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	result := CollectHealth(context.Background(), rdb, &fakePinger{})
	page := RenderDashboardHTML(result)

	assert.Contains(t, page, "connected")
	assert.True(t, strings.Contains(page, " ms"), "ping times should be rendered")
	assert.NotContains(t, page, "<nil>")
}
