package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	alertapp "github.com/muhammadheryan/mfg-stock/application/alert"
	"github.com/muhammadheryan/mfg-stock/cmd/config"
	redisclient "github.com/muhammadheryan/mfg-stock/cmd/redis"
	alertRepo "github.com/muhammadheryan/mfg-stock/repository/alert"
	productRepo "github.com/muhammadheryan/mfg-stock/repository/product"
	redisRepo "github.com/muhammadheryan/mfg-stock/repository/redis"
	"github.com/muhammadheryan/mfg-stock/thirdparty/rabbitmq"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"go.uber.org/zap"
)

// The worker consumes stock movement events and maintains stock_alerts.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting stock alert worker", zap.String("env", cfg.Environment))

	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	AlertApp := alertapp.NewAlertApp(cfg, redisRepo.NewRepository(), productRepo.NewProductRepository(db), alertRepo.NewAlertRepository(db))

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, AlertApp.HandleStockMovement)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}
	logger.Info("Consuming stock events", zap.String("queue", rabbitmq.StockAlertsQueue))

	<-ctx.Done()
	logger.Info("Stopping stock alert worker")
}
