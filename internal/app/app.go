package app

import (
	"context"
	"log/slog"

	httpapp "vineet_portfolio/internal/app/http"
	"vineet_portfolio/internal/config"
	"vineet_portfolio/internal/domain/models"
	"vineet_portfolio/internal/lib/logger/sl"
	"vineet_portfolio/internal/metrics"
	"vineet_portfolio/internal/repository"
	editor "vineet_portfolio/internal/services/editor_service"
	gallery "vineet_portfolio/internal/services/gallery_service"
	media "vineet_portfolio/internal/services/media_service"
	publish "vineet_portfolio/internal/services/publish_service"
	token "vineet_portfolio/internal/services/token_service"
	user "vineet_portfolio/internal/services/user_service"
	filestorage "vineet_portfolio/internal/storage/filestorage"
	"vineet_portfolio/internal/storage/postgresql"
	redisapp "vineet_portfolio/internal/storage/redis"
	httprouters "vineet_portfolio/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	log       *slog.Logger
	storage   *postgresql.Storage
	rdb       *redisapp.Client
	busCancel context.CancelFunc
}

func New(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	rdb := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)

	repo := repository.NewRepositoryWithPool(storage.Pool())

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		panic(err)
	}

	bus := publish.NewPublishService(log, rdb, cfg.Publish.Key, cfg.Publish.Channel)

	tokenService := token.NewTokenService(
		repository.NewRedisTokenRepo(rdb),
		cfg.TokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userService := user.NewUserService(log, repo.Users, tokenService)
	galleryService := gallery.NewGalleryService(log, repo.Items, repo.Sections, repo.Layouts, repo.Content)
	editorService := editor.NewEditorService(log, repo.Items, repo.Sections, repo.Layouts, repo.Content, bus)
	mediaService := media.NewMediaService(log, repo.Items, fileStorage, bus)

	// Любая публикация (своя или чужого процесса) сбрасывает кэш галереи
	bus.Subscribe("gallery_cache", func(_ models.PublishEvent) {
		galleryService.InvalidateCache()
	})
	bus.Subscribe("metrics", func(_ models.PublishEvent) {
		metrics.PublishSignalsTotal.Inc()
	})

	routers := httprouters.NewRouter(
		log,
		userService,
		tokenService,
		galleryService,
		editorService,
		mediaService,
		bus,
	)

	server := httpapp.New(log, cfg.SessionSecret, cfg.HTTP.Host, cfg.HTTP.Port, routers)
	server.BuildRouters()

	busCtx, busCancel := context.WithCancel(context.Background())
	go func() {
		if err := bus.Run(busCtx); err != nil && busCtx.Err() == nil {
			log.Error("publish bus stopped", sl.Err(err))
		}
	}()

	return &App{
		HTTPServer: server,
		log:        log,
		storage:    storage,
		rdb:        rdb,
		busCancel:  busCancel,
	}
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	a.busCancel()
	a.rdb.Close()
	a.storage.Stop()
}
