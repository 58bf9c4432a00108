package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Gunvolt24/order-accounting/config"
	cachemem "github.com/Gunvolt24/order-accounting/internal/cache/memory"
	"github.com/Gunvolt24/order-accounting/internal/clock"
	"github.com/Gunvolt24/order-accounting/internal/codec"
	"github.com/Gunvolt24/order-accounting/internal/kafka"
	"github.com/Gunvolt24/order-accounting/internal/ports"
	"github.com/Gunvolt24/order-accounting/internal/repo/postgres"
	rest "github.com/Gunvolt24/order-accounting/internal/transport/http"
	"github.com/Gunvolt24/order-accounting/internal/usecase"
	"github.com/Gunvolt24/order-accounting/migrations"
	"github.com/Gunvolt24/order-accounting/pkg/logger"
	"github.com/Gunvolt24/order-accounting/pkg/metrics"
	"github.com/Gunvolt24/order-accounting/pkg/telemetry"
)

// App — собранное приложение: цикл приёма заказов и ops HTTP-сервер.
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // ops-сервер
	Consumer        ports.MessageConsumer // цикл приёма
	gracefulTimeout time.Duration         // время ожидания остановки цикла и HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → release и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to release", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Ошибки конфигурации (*domain.ConfigurationError) возвращаются как есть.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	// Стек очистки: выполняется в обратном порядке.
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = cleanupLogger()
	}
	fail := func(err error) (*App, Cleanup, error) {
		cleanup()
		return nil, func() {}, err
	}

	metrics.MustRegister()

	// Брокер проверяем первым: без адреса процесс не стартует.
	broker, err := kafka.NewBrokerClient(&kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Addr,
		GroupID:        cfg.Kafka.GroupID,
		StartOffset:    cfg.Kafka.StartOffset,
		CommitMode:     cfg.Kafka.CommitMode,
		CommitInterval: cfg.Kafka.CommitInterval,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		MaxWait:        cfg.Kafka.MaxWait,
	}, logg)
	if err != nil {
		return fail(err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		_ = broker.Close()
		return fail(err)
	}
	closers = append(closers, pool.Close)

	if cfg.Postgres.AutoMigrate {
		if err := migrate(ctx, pool); err != nil {
			_ = broker.Close()
			return fail(err)
		}
		logg.Infof(ctx, "migrations applied")
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op провайдер.
	if cfg.Tracing.Enabled {
		opts := telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		}
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, opts)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if err := shutdownTrace(context.Background()); err != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", err)
				}
			})
		}
	}

	writer := postgres.NewAccountingWriter(pool, clock.NewSystem())
	tracker := cachemem.NewSeenOrders(cfg.Redelivery.Capacity, cfg.Redelivery.TTL, clock.NewSystem())
	ingestor := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, tracker, logg, cfg.Kafka.ProcessTimeout)
	orchestrator := usecase.NewOrchestrator(broker, ingestor, logg, usecase.OrchestratorConfig{
		Delay:        cfg.Kafka.Delay,
		RetryInitial: cfg.Kafka.RetryInitial,
		RetryMax:     cfg.Kafka.RetryMax,
	})
	closers = append(closers, func() {
		if err := orchestrator.Close(); err != nil {
			logg.Warnf(ctx, "orchestrator close error: %v", err)
		}
	})
	logg.Infof(ctx, "kafka subscription %s", broker.Describe())

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}
	router := rest.NewRouter(rest.NewHandler(orchestrator, writer, logg, cfg.HTTP.HandlerTimeout), otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Consumer:        orchestrator,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}, cleanup, nil
}

// migrate — goose-миграции через database/sql поверх того же пула.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrations.Up(ctx, db)
}

// Run — запускает цикл приёма и ops-сервер; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		a.Logger.Infof(ctx, "order consumer starting")
		if err := a.Consumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	go func() {
		a.Logger.Infof(ctx, "ops http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Errorf(ctx, "background error: %v", err)
		runErr = err
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	// Сначала останавливаем приём: текущее сообщение дорабатывается,
	// брокер закрывает сам цикл. Снаружи закрываем только по таймауту.
	if err := a.Consumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "consumer close error: %v", err)
	}
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		a.Logger.Warnf(ctx, "consumer did not stop within %s, aborting", gt)
		if aborter, ok := a.Consumer.(ports.ConsumerAborter); ok {
			if err := aborter.Abort(); err != nil {
				a.Logger.Warnf(ctx, "consumer abort error: %v", err)
			}
		}
	}

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
