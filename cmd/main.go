package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	adjustmentapp "github.com/muhammadheryan/mfg-stock/application/adjustment"
	reconcileapp "github.com/muhammadheryan/mfg-stock/application/reconcile"
	reservationapp "github.com/muhammadheryan/mfg-stock/application/reservation"
	stockapp "github.com/muhammadheryan/mfg-stock/application/stock"
	userapp "github.com/muhammadheryan/mfg-stock/application/user"
	"github.com/muhammadheryan/mfg-stock/cmd/config"
	redisclient "github.com/muhammadheryan/mfg-stock/cmd/redis"
	_ "github.com/muhammadheryan/mfg-stock/docs"
	"github.com/muhammadheryan/mfg-stock/migrations"
	auditRepo "github.com/muhammadheryan/mfg-stock/repository/audit"
	balanceRepo "github.com/muhammadheryan/mfg-stock/repository/balance"
	ledgerRepo "github.com/muhammadheryan/mfg-stock/repository/ledger"
	productRepo "github.com/muhammadheryan/mfg-stock/repository/product"
	redisRepo "github.com/muhammadheryan/mfg-stock/repository/redis"
	reservationRepo "github.com/muhammadheryan/mfg-stock/repository/reservation"
	txRepo "github.com/muhammadheryan/mfg-stock/repository/tx"
	userRepo "github.com/muhammadheryan/mfg-stock/repository/user"
	"github.com/muhammadheryan/mfg-stock/thirdparty/rabbitmq"
	"github.com/muhammadheryan/mfg-stock/transport"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"github.com/muhammadheryan/mfg-stock/utils/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title MFG STOCK API
// @version 1.0
// @description Stock reservation and ledger service
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.GetDSN()); err != nil {
			logger.Fatal("err migrate db", zap.Error(err))
		}
	}

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Stock events are optional; without a broker the operations only invalidate the cache.
	var publisher rabbitmq.StockEventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	BalanceRepo := balanceRepo.NewBalanceRepository(db)
	ReservationRepo := reservationRepo.NewReservationRepository(db)
	LedgerRepo := ledgerRepo.NewLedgerRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	AuditRepo := auditRepo.NewAuditRepository(db)
	RedisRepo := redisRepo.NewRepository()

	stockMetrics := metrics.NewStockMetrics(prometheus.DefaultRegisterer)
	notifier := stockapp.NewNotifier(RedisRepo, publisher)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ReservationApp := reservationapp.NewReservationApp(TxRepo, BalanceRepo, ReservationRepo, LedgerRepo, ProductRepo, AuditRepo, notifier, stockMetrics)
	AdjustmentApp := adjustmentapp.NewAdjustmentApp(TxRepo, BalanceRepo, LedgerRepo, ProductRepo, AuditRepo, notifier, stockMetrics)
	ReconcileApp := reconcileapp.NewReconcileApp(TxRepo, BalanceRepo, LedgerRepo, ProductRepo, AuditRepo, notifier, stockMetrics)
	StockApp := stockapp.NewStockApp(cfg, BalanceRepo, LedgerRepo, ReservationRepo, RedisRepo)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:        UserApp,
		ReservationApp: ReservationApp,
		AdjustmentApp:  AdjustmentApp,
		ReconcileApp:   ReconcileApp,
		StockApp:       StockApp,
	}, cfg.Auth.InternalAPIKey, prometheus.DefaultGatherer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed shutdown", zap.Error(err))
	}
}
