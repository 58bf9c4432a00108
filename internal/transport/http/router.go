package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/order-accounting/internal/ports"
	"github.com/Gunvolt24/order-accounting/internal/usecase"
	"github.com/Gunvolt24/order-accounting/pkg/httpx"
)

// StateSource — текущее состояние цикла приёма.
type StateSource interface {
	State() usecase.State
}

// Pinger — проверка доступности хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler — ops-эндпоинты сервиса.
type Handler struct {
	loop    StateSource
	store   Pinger
	log     ports.Logger
	timeout time.Duration
}

func NewHandler(loop StateSource, store Pinger, log ports.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Handler{loop: loop, store: store, log: log, timeout: timeout}
}

// NewRouter — otelServiceName == "" отключает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/healthz", h.healthz)
	r.GET("/readyz", h.readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

// healthz — живость: цикл приёма не должен быть остановлен.
func (h *Handler) healthz(c *gin.Context) {
	state := h.loop.State()
	switch state {
	case usecase.StateIdle, usecase.StateRunning:
		c.JSON(http.StatusOK, gin.H{"status": "ok", "state": state.String()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "state": state.String()})
	}
}

// readyz — готовность: хранилище отвечает на ping.
func (h *Handler) readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warnf(ctx, "readiness check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
