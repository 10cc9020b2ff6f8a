package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/thereayou/crocnet/internal/config"
	"github.com/thereayou/crocnet/internal/database"
	"github.com/thereayou/crocnet/internal/events"
	"github.com/thereayou/crocnet/internal/handlers"
	"github.com/thereayou/crocnet/internal/logger"
	"github.com/thereayou/crocnet/internal/middleware"
	"github.com/thereayou/crocnet/internal/services"
	ws "github.com/thereayou/crocnet/internal/websocket"
	"github.com/thereayou/crocnet/pkg/auth"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

type userStore interface {
	services.UserStore
	Close() error
}

type Server struct {
	Router     *gin.Engine
	Store      userStore
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Kafka      *events.KafkaPublisher

	cfg config.Config
	log zerolog.Logger
}

func NewServer(cfg config.Config, log zerolog.Logger) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	s := &Server{cfg: cfg, log: log}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.Store = store

	var blacklist services.TokenBlacklist = database.NewMemoryBlacklist()
	if cfg.RedisURL != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Redis = rdb
		blacklist = database.NewRedisBlacklist(rdb)
	} else {
		log.Warn().Msg("REDIS_URL not set, token blacklist is process-local")
	}

	s.Hub = ws.NewHub(logger.Component(log, "websocket"))
	publishers := events.Multi{s.Hub}
	if cfg.KafkaEnabled() {
		s.Kafka = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		publishers = append(publishers, s.Kafka)
	}

	s.JWTManager = auth.NewJWTManager(cfg.Secret, services.TokenTTL)
	accounts := services.NewAccountService(
		store,
		auth.NewBcryptHasher(auth.PasswordCost),
		s.JWTManager,
		blacklist,
		publishers,
		logger.Component(log, "accounts"),
	)

	s.Router = newEngine(log, accounts, s.JWTManager, blacklist, s.Hub, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst))
	return s, nil
}

func openStore(ctx context.Context, cfg config.Config) (userStore, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db := &database.Database{}
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		return db, nil
	case config.DriverMongo:
		return database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverMemory:
		return database.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func newEngine(
	log zerolog.Logger,
	accounts *services.AccountService,
	jwtMgr *auth.JWTManager,
	blacklist services.TokenBlacklist,
	hub *ws.Hub,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	httpLog := logger.Component(log, "http")

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(httpLog))

	APIEndpoints(router, routeDeps{
		authH:     handlers.NewAuthHandler(accounts),
		userH:     handlers.NewUserHandler(accounts),
		wsH:       handlers.NewWebSocketHandler(hub, logger.Component(log, "websocket")),
		requireMW: middleware.AuthMiddleware(jwtMgr, blacklist, httpLog),
		wsAuthMW:  middleware.WSAuthMiddleware(jwtMgr, blacklist, httpLog),
		limitMW:   limiter.Middleware(),
	})
	return router
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go s.Hub.Run()

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("port", s.cfg.Port).Str("store", s.cfg.StoreDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

func (s *Server) Close() {
	if s.Hub != nil {
		s.Hub.Stop()
	}
	if s.Kafka != nil {
		if err := s.Kafka.Close(); err != nil {
			s.log.Error().Err(err).Msg("close kafka writer")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.log.Error().Err(err).Msg("close redis")
		}
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			s.log.Error().Err(err).Msg("close store")
		}
	}
}
