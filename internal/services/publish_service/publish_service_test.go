package services

import (
	"context"
	"log/slog"
	"testing"

	"vineet_portfolio/internal/domain/models"
	redisapp "vineet_portfolio/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) (*PublishService, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	log := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	return NewPublishService(log, redisapp.NewFromClient(db), "", ""), mock
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestPublish_NotifiesLocalSubscribersSynchronously(t *testing.T) {
	bus, mock := newTestBus(t)
	ctx := context.Background()

	var got []string
	bus.Subscribe("cache", func(e models.PublishEvent) { got = append(got, e.Stamp) })
	bus.Subscribe("metrics", func(e models.PublishEvent) { got = append(got, e.Stamp) })

	mock.Regexp().ExpectSet(DefaultPublishKey, `.+`, 0).SetVal("OK")
	mock.Regexp().ExpectPublish(DefaultPublishChannel, `.+`).SetVal(1)

	event, err := bus.Publish(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, event.Stamp)

	// оба подписчика получили событие до возврата из Publish
	require.Len(t, got, 2)
	assert.Equal(t, event.Stamp, got[0])
	assert.Equal(t, event.Stamp, got[1])
}

func TestSubscribe_IdempotentPerID(t *testing.T) {
	bus, mock := newTestBus(t)

	calls := 0
	bus.Subscribe("cache", func(models.PublishEvent) { calls++ })
	bus.Subscribe("cache", func(models.PublishEvent) { calls++ })

	mock.Regexp().ExpectSet(DefaultPublishKey, `.+`, 0).SetVal("OK")
	mock.Regexp().ExpectPublish(DefaultPublishChannel, `.+`).SetVal(1)

	_, err := bus.Publish(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	bus, mock := newTestBus(t)

	calls := 0
	bus.Subscribe("cache", func(models.PublishEvent) { calls++ })
	bus.Unsubscribe("cache")

	mock.Regexp().ExpectSet(DefaultPublishKey, `.+`, 0).SetVal("OK")
	mock.Regexp().ExpectPublish(DefaultPublishChannel, `.+`).SetVal(1)

	_, err := bus.Publish(context.Background())
	require.NoError(t, err)

	assert.Zero(t, calls)
}

func TestDispatch_DedupesRepeatedStamp(t *testing.T) {
	bus, _ := newTestBus(t)

	calls := 0
	bus.Subscribe("cache", func(models.PublishEvent) { calls++ })

	bus.dispatch("2026-01-01T00:00:00Z")
	bus.dispatch("2026-01-01T00:00:00Z")
	assert.Equal(t, 1, calls)

	bus.dispatch("2026-01-01T00:00:05Z")
	assert.Equal(t, 2, calls)

	bus.dispatch("")
	assert.Equal(t, 2, calls)
}

func TestDispatch_SkipsOwnPublication(t *testing.T) {
	bus, mock := newTestBus(t)

	calls := 0
	bus.Subscribe("cache", func(models.PublishEvent) { calls++ })

	mock.Regexp().ExpectSet(DefaultPublishKey, `.+`, 0).SetVal("OK")
	mock.Regexp().ExpectPublish(DefaultPublishChannel, `.+`).SetVal(1)

	event, err := bus.Publish(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	// эхо собственной публикации из канала не удваивает срабатывание
	bus.dispatch(event.Stamp)
	assert.Equal(t, 1, calls)
}

func TestLatestStamp(t *testing.T) {
	bus, mock := newTestBus(t)
	ctx := context.Background()

	t.Run("no publications yet", func(t *testing.T) {
		mock.ExpectGet(DefaultPublishKey).RedisNil()
		stamp, err := bus.LatestStamp(ctx)
		require.NoError(t, err)
		assert.Empty(t, stamp)
	})

	t.Run("returns stored stamp", func(t *testing.T) {
		mock.ExpectGet(DefaultPublishKey).SetVal("2026-01-01T00:00:00Z")
		stamp, err := bus.LatestStamp(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-01T00:00:00Z", stamp)
	})
}

func TestPublish_WithoutRedisStaysLocal(t *testing.T) {
	bus := NewPublishService(slog.New(slog.NewTextHandler(testWriter{t}, nil)), nil, "", "")

	calls := 0
	bus.Subscribe("cache", func(models.PublishEvent) { calls++ })

	event, err := bus.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	stamp, err := bus.LatestStamp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, event.Stamp, stamp)
}
