package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/config"
	"github.com/iliyamo/household-market/internal/database"
	"github.com/iliyamo/household-market/internal/handler"
	"github.com/iliyamo/household-market/internal/logger"
	"github.com/iliyamo/household-market/internal/middleware"
	"github.com/iliyamo/household-market/internal/queue"
	"github.com/iliyamo/household-market/internal/repository"
	"github.com/iliyamo/household-market/internal/router"
	"github.com/iliyamo/household-market/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.IsProd(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()
	if cfg.DBAutoSchema {
		if err := database.EnsureSchema(ctx, db); err != nil {
			log.WithError(err).Fatal("schema bootstrap failed")
		}
		log.Info("database schema ensured")
	}

	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb, err = config.NewRedisClient(ctx)
		if err != nil {
			log.WithError(err).Warn("redis unavailable; using in-memory revocation and no response cache")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	var blacklist repository.TokenBlacklist
	if rdb != nil {
		blacklist = repository.NewRedisBlacklist(rdb, "revoked")
	} else {
		mem := repository.NewMemoryBlacklist()
		go mem.Run(ctx, cfg.SweepInterval, log)
		blacklist = mem
	}
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTTL(), cfg.BcryptCost, blacklist)

	var events service.OrderPublisher = service.NopPublisher{}
	if cfg.RabbitEnabled {
		events = service.NewAMQPPublisher(cfg.RabbitURL, log)
		go queue.StartOrderConsumer(ctx, cfg.RabbitURL, "logs", log)
		log.Info("order events enabled")
	}

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestLogger(log))

	router.Register(e, router.Handlers{
		Users:        handler.NewUserHandler(repository.NewUserRepo(db), tokens, log),
		Crops:        handler.NewCropHandler(repository.NewCropRepo(db), cache, log),
		Orders:       handler.NewOrderHandler(repository.NewOrderRepo(db), events, log),
		Chat:         handler.NewChatHandler(repository.NewChatRepo(db), log),
		Transactions: handler.NewTransactionHandler(repository.NewTransactionRepo(db), log),
		Admin:        handler.NewAdminHandler(repository.NewReportRepo(db), repository.NewSettingRepo(db), log),
		Health:       handler.Health(db),
	}, middleware.JWTAuth(tokens, log), cache)

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
