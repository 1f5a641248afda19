package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"notification-service/pkg/broker"
	"notification-service/pkg/channel"
	"notification-service/pkg/config"
	"notification-service/pkg/consumer"
	"notification-service/pkg/email"
	"notification-service/pkg/inapp"
	"notification-service/pkg/logger"
	"notification-service/pkg/notification"
	"notification-service/pkg/redis"
	"notification-service/pkg/sms"
)

type consumerConfig struct {
	LogFormat   logger.Format `env:"LOG_FORMAT" envDefault:"json"`
	MaxRetries  int           `env:"DELIVERY_MAX_RETRIES" envDefault:"3"`
	BackoffBase time.Duration `env:"DELIVERY_BACKOFF_BASE" envDefault:"1s"`
}

func main() {
	var (
		cfg      consumerConfig
		brkCfg   broker.Config
		emailCfg email.Config
		smsCfg   sms.Config
		storeCfg inapp.Config
		redisCfg redis.Config
	)
	config.MustLoad(&cfg)
	config.MustLoad(&brkCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&smsCfg)
	config.MustLoad(&storeCfg)
	config.MustLoad(&redisCfg)

	log := logger.New(
		logger.WithService("notification-consumer"),
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

	emailSender, err := newEmailSender(emailCfg)
	if err != nil {
		log.Error("failed to initialize email sender", logger.Error(err))
		os.Exit(1)
	}
	smsSender, err := newSMSSender(smsCfg)
	if err != nil {
		log.Error("failed to initialize sms sender", logger.Error(err))
		os.Exit(1)
	}
	store, err := inapp.New(ctx, storeCfg, redisCfg)
	if err != nil {
		log.Error("failed to initialize in-app store", logger.Error(err))
		os.Exit(1)
	}
	if emailCfg.DevMode() {
		log.Warn("email sender running in dev mode, mail is written to disk",
			logger.Component("email"))
	}
	if smsCfg.DevMode() {
		log.Warn("sms sender running in dev mode, messages are written to disk",
			logger.Component("sms"))
	}

	senders := channel.NewRegistry(
		channel.NewEmail(emailSender),
		channel.NewSMS(smsSender),
		channel.NewInApp(store),
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, ch := range notification.Channels() {
		sender, err := senders.For(ch)
		if err != nil {
			log.Error("missing sender for channel", logger.Channel(string(ch)), logger.Error(err))
			os.Exit(1)
		}
		c := consumer.New(ch, gateway, sender,
			consumer.WithLogger(log),
			consumer.WithMaxRetries(cfg.MaxRetries),
			consumer.WithBackoffBase(cfg.BackoffBase),
		)
		g.Go(c.Run(ctx))
	}

	log.Info("notification consumers running")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer group exited", logger.Error(err))
		os.Exit(1)
	}
	log.Info("notification consumers stopped")
}

func newEmailSender(cfg email.Config) (email.Sender, error) {
	if cfg.DevMode() {
		return email.NewDevSender(cfg.DevDir), nil
	}
	return email.NewPostmarkClient(cfg)
}

func newSMSSender(cfg sms.Config) (sms.Sender, error) {
	if cfg.DevMode() {
		return sms.NewDevSender(cfg.DevDir), nil
	}
	return sms.NewTwilioClient(cfg)
}
