// Пакет ctxmeta — нейтральный слой для метаданных, которые прокидываются
// через context.Context: request_id ops-запроса, координаты сообщения Kafka,
// order_id и trace/span. Логгер и транспорт зависят от него, но не друг от друга.
package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyMessage   ctxKey = "message"
	KeyOrderID   ctxKey = "order_id"
)

// MessageMeta — координаты сообщения в брокере.
type MessageMeta struct {
	Topic     string
	Partition int
	Offset    int64
}

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, KeyRequestID)
}

// WithMessage кладёт координаты обрабатываемого сообщения.
func WithMessage(ctx context.Context, meta MessageMeta) context.Context {
	if ctx == nil || meta.Topic == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyMessage, meta)
}

func MessageFromContext(ctx context.Context) (MessageMeta, bool) {
	if ctx == nil {
		return MessageMeta{}, false
	}
	meta, ok := ctx.Value(KeyMessage).(MessageMeta)
	return meta, ok
}

// WithOrderID кладёт order_id декодированного заказа.
func WithOrderID(ctx context.Context, orderID string) context.Context {
	if ctx == nil || orderID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyOrderID, orderID)
}

func OrderIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, KeyOrderID)
}

// TraceIDFromContext — trace_id активного спана, если он валиден.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

func stringValue(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
