package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"vineet_portfolio/internal/domain/models"
	redisapp "vineet_portfolio/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPublishKey общеизвестный ключ с последним штампом публикации
	DefaultPublishKey = "portfolio:published_at"
	// DefaultPublishChannel канал pub/sub для межпроцессной доставки сигнала
	DefaultPublishChannel = "portfolio:publish"
)

// PublishService шина сигнала "контент опубликован". Локальные подписчики
// получают событие синхронно из Publish; экземпляры в других процессах —
// через redis (SET общеизвестного ключа + PUBLISH в канал, слушает Run).
type PublishService struct {
	log     *slog.Logger
	rdb     *redisapp.Client
	key     string
	channel string

	mu        sync.Mutex
	subs      map[string]func(models.PublishEvent)
	lastStamp string
}

// NewPublishService создает шину. rdb == nil отключает межпроцессную
// доставку, локальная рассылка продолжает работать.
func NewPublishService(log *slog.Logger, rdb *redisapp.Client, key, channel string) *PublishService {
	if key == "" {
		key = DefaultPublishKey
	}
	if channel == "" {
		channel = DefaultPublishChannel
	}

	return &PublishService{
		log:     log,
		rdb:     rdb,
		key:     key,
		channel: channel,
		subs:    make(map[string]func(models.PublishEvent)),
	}
}

// Subscribe регистрирует подписчика. Повторная подписка с тем же id
// заменяет обработчик, а не добавляет второй.
func (s *PublishService) Subscribe(id string, fn func(models.PublishEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[id] = fn
}

func (s *PublishService) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// Publish выпускает новый штамп: синхронно рассылает его локальным
// подписчикам и отражает в redis для остальных процессов
func (s *PublishService) Publish(ctx context.Context) (models.PublishEvent, error) {
	const op = "publish_service.Publish"

	event := models.NewPublishEvent()

	s.mu.Lock()
	s.lastStamp = event.Stamp
	fns := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}

	if s.rdb == nil {
		return event, nil
	}

	if err := s.rdb.Set(ctx, s.key, event.Stamp, 0).Err(); err != nil {
		return event, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.rdb.Publish(ctx, s.channel, event.Stamp).Err(); err != nil {
		return event, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

// LatestStamp возвращает последний опубликованный штамп ("" — публикаций
// еще не было)
func (s *PublishService) LatestStamp(ctx context.Context) (string, error) {
	const op = "publish_service.LatestStamp"

	if s.rdb == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.lastStamp, nil
	}

	stamp, err := s.rdb.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return stamp, nil
}

// Run слушает канал публикаций до отмены контекста. Собственные публикации
// и повторная доставка одного штампа отфильтровываются: каждый
// отличающийся штамп срабатывает ровно один раз.
func (s *PublishService) Run(ctx context.Context) error {
	const op = "publish_service.Run"

	if s.rdb == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	pubsub := s.rdb.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	log := s.log.With(slog.String("op", op), slog.String("channel", s.channel))
	log.Info("publish watcher started")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				log.Warn("publish channel closed")
				return nil
			}
			s.dispatch(msg.Payload)
		}
	}
}

// dispatch рассылает штамп локальным подписчикам, если он еще не виден
func (s *PublishService) dispatch(stamp string) {
	if stamp == "" {
		return
	}

	s.mu.Lock()
	if stamp == s.lastStamp {
		s.mu.Unlock()
		return
	}
	s.lastStamp = stamp
	fns := s.snapshotSubs()
	s.mu.Unlock()

	if s.log != nil {
		s.log.Debug("publish signal received", slog.String("stamp", stamp))
	}

	for _, fn := range fns {
		fn(models.PublishEvent{Stamp: stamp})
	}
}

// snapshotSubs копирует обработчики под блокировкой, вызывать их нужно
// уже без нее
func (s *PublishService) snapshotSubs() []func(models.PublishEvent) {
	fns := make([]func(models.PublishEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}
