package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/order-accounting/pkg/ctxmeta"
)

// ZapLogger — реализация ports.Logger поверх zap; поля из ctxmeta добавляются к каждой записи.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	loggerWrap := FromZap(logger)
	loggerWrap.isProd = isProd

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// FromZap оборачивает готовый *zap.Logger (удобно в тестах с observer).
func FromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{base: l, sugar: l.Sugar()}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}

func contextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	if meta, ok := ctxmeta.MessageFromContext(ctx); ok {
		fields = append(fields,
			zap.String("topic", meta.Topic),
			zap.Int("partition", meta.Partition),
			zap.Int64("offset", meta.Offset),
		)
	}
	if id, ok := ctxmeta.OrderIDFromContext(ctx); ok {
		fields = append(fields, zap.String("order_id", id))
	}
	if id, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, zap.String("trace_id", id))
	}
	if id, ok := ctxmeta.SpanIDFromContext(ctx); ok {
		fields = append(fields, zap.String("span_id", id))
	}
	return fields
}
