package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TrainingLog/apps/friend/internal/middleware"
	"TrainingLog/apps/friend/internal/repository"
	"TrainingLog/apps/friend/internal/router"
	v1 "TrainingLog/apps/friend/internal/router/v1"
	"TrainingLog/apps/friend/internal/service"
	"TrainingLog/apps/friend/mq"
	"TrainingLog/config"
	"TrainingLog/pkg/async"
	"TrainingLog/pkg/kafka"
	"TrainingLog/pkg/logger"
	"TrainingLog/pkg/mysql"
	pkgredis "TrainingLog/pkg/redis"
	"TrainingLog/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	// 0. 加载配置
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 1. 初始化日志
	zl, err := logger.Build(cfg.Logger)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	logger.ReplaceGlobal(zl)
	defer logger.Sync()

	// 2. 小组件
	if err := util.InitSnowflake(cfg.Server.SnowflakeNode); err != nil {
		logger.Fatal(ctx, "初始化雪花算法失败", logger.ErrorField("error", err))
	}
	util.InitJWT(cfg.JWT)

	if err := async.Init(cfg.Async); err != nil {
		logger.Fatal(ctx, "初始化协程池失败", logger.ErrorField("error", err))
	}
	defer func() {
		if err := async.Release(); err != nil {
			logger.Warn(ctx, "释放协程池超时", logger.ErrorField("error", err))
		}
	}()

	// 3. 初始化 MySQL
	db, err := mysql.Build(cfg.MySQL)
	if err != nil {
		logger.Fatal(ctx, "初始化MySQL失败", logger.ErrorField("error", err))
	}
	defer func() {
		if err := mysql.Close(db); err != nil {
			logger.Error(ctx, "关闭 MySQL 失败", logger.ErrorField("error", err))
		}
	}()
	if cfg.MySQL.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			logger.Fatal(ctx, "自动建表失败", logger.ErrorField("error", err))
		}
	}

	// 4. 初始化 Redis，失败时未读计数与限流降级
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = pkgredis.Build(cfg.Redis)
		if err != nil {
			logger.Warn(ctx, "Redis 初始化失败，未读计数与限流降级为本地模式",
				logger.ErrorField("error", err),
			)
			redisClient = nil
		} else {
			pkgredis.ReplaceGlobal(redisClient)
			defer redisClient.Close()
			logger.Info(ctx, "Redis 初始化成功", logger.String("addr", cfg.Redis.Addr))
		}
	}

	// 5. 初始化 Kafka 关系事件投递
	var publisher service.EventPublisher = service.NoopPublisher{}
	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Kafka.RelationEventTopic)
	switch {
	case errors.Is(err, kafka.ErrNoBrokers):
		logger.Info(ctx, "未配置 Kafka，关系事件不投递")
	case err != nil:
		logger.Warn(ctx, "Kafka Producer 初始化失败，关系事件不投递", logger.ErrorField("error", err))
	default:
		publisher = mq.NewRelationEventPublisher(producer)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error(ctx, "关闭 Kafka Producer 失败", logger.ErrorField("error", err))
			}
		}()
		logger.Info(ctx, "Kafka Producer 初始化成功",
			logger.Strings("brokers", cfg.Kafka.Brokers),
			logger.String("topic", cfg.Kafka.RelationEventTopic),
		)
	}

	// 6. 组装依赖 - Repository 层
	transactor := repository.NewTransactor(db)
	invitationRepo := repository.NewInvitationRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	userRepo := repository.NewUserRepository(db)
	resultRepo := repository.NewResultRepository(db)
	notifyRepo := repository.NewNotifyRepository(redisClient, cfg.Breaker)

	// 7. 组装依赖 - Service 层
	relationService := service.NewRelationshipService(transactor, invitationRepo, friendshipRepo, userRepo, notifyRepo, publisher)
	resolver := service.NewStateResolver(invitationRepo, friendshipRepo)
	directoryService := service.NewDirectoryService(userRepo, resolver)
	visibilityService := service.NewVisibilityService(friendshipRepo, resultRepo)

	// 8. 组装依赖 - Handler 层
	friendHandler := v1.NewFriendHandler(relationService)
	userHandler := v1.NewUserHandler(directoryService)
	resultHandler := v1.NewResultHandler(visibilityService)

	// 9. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := router.InitRouter(router.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		IPLimiter:      middleware.NewRateLimiter(redisClient, cfg.RateLimit.IPRate, cfg.RateLimit.IPBurst, cfg.RateLimit.LocalKeyCap),
		UserLimiter:    middleware.NewRateLimiter(redisClient, cfg.RateLimit.UserRate, cfg.RateLimit.UserBurst, cfg.RateLimit.LocalKeyCap),
	}, friendHandler, userHandler, resultHandler)

	srv := &http.Server{
		Addr:           cfg.Server.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.Server.RequestTimeout + 5*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 10. 启动服务器
	go func() {
		logger.Info(ctx, "Friend 服务启动中", logger.String("address", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "服务器启动失败", logger.ErrorField("error", err))
			os.Exit(1)
		}
	}()

	// 11. 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info(ctx, "收到关闭信号，开始优雅停机...", logger.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "服务器强制关闭", logger.ErrorField("error", err))
	}

	logger.Info(ctx, "Friend 服务已优雅退出")
}
