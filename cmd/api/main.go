package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"notification-service/modules/notifications"
	"notification-service/pkg/broker"
	"notification-service/pkg/config"
	"notification-service/pkg/httpserver"
	"notification-service/pkg/inapp"
	"notification-service/pkg/logger"
	"notification-service/pkg/producer"
	"notification-service/pkg/redis"
)

type apiConfig struct {
	Port      string        `env:"PORT" envDefault:"8080"`
	LogFormat logger.Format `env:"LOG_FORMAT" envDefault:"json"`
}

func main() {
	var (
		cfg      apiConfig
		brkCfg   broker.Config
		storeCfg inapp.Config
		redisCfg redis.Config
	)
	config.MustLoad(&cfg)
	config.MustLoad(&brkCfg)
	config.MustLoad(&storeCfg)
	config.MustLoad(&redisCfg)

	log := logger.New(
		logger.WithService("notification-api"),
		logger.WithFormat(cfg.LogFormat),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway := broker.New(brkCfg, broker.WithLogger(log))
	if err := gateway.Connect(ctx); err != nil {
		log.Error("failed to connect to broker", logger.Error(err))
		os.Exit(1)
	}
	defer gateway.Close()

	store, err := inapp.New(ctx, storeCfg, redisCfg)
	if err != nil {
		log.Error("failed to initialize in-app store", logger.Error(err))
		os.Exit(1)
	}

	svc := notifications.NewService(
		producer.New(gateway, producer.WithLogger(log)),
		store,
		log,
	)

	srv := httpserver.New(
		httpserver.WithAddr(":"+cfg.Port),
		httpserver.WithLogger(log),
	)
	if err := srv.Run(ctx, notifications.Router(svc)); err != nil {
		log.Error("http server exited", logger.Error(err))
		os.Exit(1)
	}
	log.Info("notification api stopped")
}
