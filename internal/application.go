package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/battleship-backend/internal/config"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/repository/storage"
	"github.com/rocketscienceinc/battleship-backend/internal/service"
	redisrelay "github.com/rocketscienceinc/battleship-backend/internal/transport/redis"
	"github.com/rocketscienceinc/battleship-backend/internal/transport/rest"
	"github.com/rocketscienceinc/battleship-backend/internal/transport/websocket"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type publisher interface {
	Publish(ctx context.Context, event *entity.GameEvent) error
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	deps := &dependencies{logger: log, conf: conf}
	defer deps.close()

	gameRepo, err := deps.gameRepository(ctx)
	if err != nil {
		return err
	}

	gameService := service.NewGameService(logger, gameRepo)
	hub := websocket.NewHub(logger)
	defer hub.Close()

	relayErrCh := make(chan error, 1)

	var events publisher = hub
	if conf.Broadcast == config.BroadcastRedis {
		redisClient, err := deps.redis(ctx)
		if err != nil {
			return err
		}

		relay := redisrelay.New(logger, redisClient, redisrelay.DefaultChannel, hub)
		events = relay

		go func() {
			if relayErr := relay.Run(ctx); relayErr != nil {
				relayErrCh <- relayErr
			}
		}()
	}

	gameUseCase := usecase.NewGameUseCase(logger, gameService, events)

	if conf.SessionTTL > 0 {
		go usecase.NewReaper(logger, gameService, conf.SessionTTL, conf.ReapInterval).Run(ctx)
	}

	router := rest.NewRouter(
		rest.NewHandlers(logger, gameUseCase),
		websocket.New(logger, hub, conf.AllowOrigins),
		conf.AllowOrigins,
	)
	srv := rest.NewServer(conf.HTTPPort, router)

	// run HTTP server, websocket clients share it on /ws
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "store", conf.Store, "broadcast", conf.Broadcast)
		if httpErr := srv.ListenAndServe(); httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-relayErrCh:
		return fmt.Errorf("redis relay error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down HTTP server: %w", err)
	}

	return nil
}

// dependencies - opens store connections on demand and closes them in reverse order.
type dependencies struct {
	logger *slog.Logger
	conf   *config.Config

	redisClient *redis.Client
	closers     []func()
}

func (that *dependencies) gameRepository(ctx context.Context) (repository.GameRepository, error) {
	switch that.conf.Store {
	case config.StoreRedis:
		client, err := that.redis(ctx)
		if err != nil {
			return nil, err
		}

		return repository.NewGameRepository(client, that.conf.SessionTTL), nil
	case config.StorePostgres:
		pool, err := storage.NewPostgres(ctx, that.conf.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		that.closers = append(that.closers, pool.Close)

		if err = storage.InitPostgres(ctx, pool); err != nil {
			return nil, fmt.Errorf("could not init postgres schema: %w", err)
		}

		return repository.NewPostgresGameRepository(pool), nil
	case config.StoreFirestore:
		client, err := storage.NewFirestore(ctx, that.conf.Firestore.ProjectID, that.conf.Firestore.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("could not connect to firestore: %w", err)
		}

		that.closers = append(that.closers, func() {
			if err := client.Close(); err != nil {
				that.logger.Error("could not close firestore client", "error", err)
			}
		})

		return repository.NewFirestoreGameRepository(client, that.conf.Firestore.Collection), nil
	case config.StoreMemory:
		that.logger.Warn("using in-memory store, games are lost on restart")

		return repository.NewMemoryGameRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", that.conf.Store)
	}
}

// redis - one client shared by the redis store and the pub/sub relay.
func (that *dependencies) redis(ctx context.Context) (*redis.Client, error) {
	if that.redisClient != nil {
		return that.redisClient, nil
	}

	client, err := storage.NewRedis(ctx, that.conf.Redis.GetRedisAddr(), that.conf.Redis.Password, that.conf.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	that.redisClient = client
	that.closers = append(that.closers, func() {
		if err := client.Close(); err != nil {
			that.logger.Error("could not close redis storage", "error", err)
		}
	})

	return client, nil
}

func (that *dependencies) close() {
	for i := len(that.closers) - 1; i >= 0; i-- {
		that.closers[i]()
	}
}
