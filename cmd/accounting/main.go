package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/order-accounting/config"
	"github.com/Gunvolt24/order-accounting/internal/app"
	"github.com/Gunvolt24/order-accounting/internal/domain"
)

const (
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		application.Logger.Errorf(ctx, "service failed: %v", err)
		return exitRuntime
	}
	return 0
}

// fail — ошибки конфигурации фатальны при старте и дают отдельный код выхода.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "accounting: %v\n", err)
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		return exitConfig
	}
	return exitRuntime
}
