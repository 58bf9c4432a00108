package usecase

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/order-accounting/internal/domain"
	"github.com/Gunvolt24/order-accounting/internal/ports"
	"github.com/Gunvolt24/order-accounting/pkg/ctxmeta"
	"github.com/Gunvolt24/order-accounting/pkg/metrics"
)

const tracerName = "github.com/Gunvolt24/order-accounting/internal/usecase"

// Outcome — результат обработки одного сообщения.
type Outcome int

const (
	OutcomePersisted Outcome = iota // строка записана
	OutcomeDropped                  // payload не декодирован, сообщение отброшено
	OutcomeFailed                   // запись не удалась, повтора нет
)

func (o Outcome) String() string {
	switch o {
	case OutcomePersisted:
		return "persisted"
	case OutcomeDropped:
		return "dropped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ShouldAck — подтверждаем записанные и отброшенные сообщения; неудачная запись не подтверждается.
func (o Outcome) ShouldAck() bool { return o != OutcomeFailed }

// OrderIngestor — decode -> persist для одного сообщения.
type OrderIngestor struct {
	decoder        ports.OrderDecoder
	writer         ports.AccountingWriter
	tracker        ports.RedeliveryTracker
	log            ports.Logger
	tracer         trace.Tracer
	processTimeout time.Duration
}

// NewOrderIngestor — tracker может быть nil (детектор повторов выключен);
// processTimeout <= 0 — без ограничения по времени.
func NewOrderIngestor(
	decoder ports.OrderDecoder,
	writer ports.AccountingWriter,
	tracker ports.RedeliveryTracker,
	log ports.Logger,
	processTimeout time.Duration,
) *OrderIngestor {
	return &OrderIngestor{
		decoder:        decoder,
		writer:         writer,
		tracker:        tracker,
		log:            log,
		tracer:         otel.Tracer(tracerName),
		processTimeout: processTimeout,
	}
}

// Ingest обрабатывает сообщение; ошибки не возвращаются — они классифицируются в Outcome и логируются.
func (i *OrderIngestor) Ingest(ctx context.Context, msg domain.Message) Outcome {
	ctx = ctxmeta.WithMessage(ctx, ctxmeta.MessageMeta{Topic: msg.Topic, Partition: msg.Partition, Offset: msg.Offset})
	ctx, span := i.tracer.Start(ctx, "accounting.ingest", trace.WithAttributes(
		attribute.String("messaging.destination", msg.Topic),
		attribute.Int("messaging.kafka.partition", msg.Partition),
		attribute.Int64("messaging.kafka.offset", msg.Offset),
	))
	defer span.End()

	order, err := i.decoder.Decode(msg.Value)
	if err != nil {
		metrics.OrdersFailed.WithLabelValues("decode").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		i.log.Warnf(ctx, "message dropped bytes=%d: %v", len(msg.Value), err)
		return OutcomeDropped
	}

	ctx = ctxmeta.WithOrderID(ctx, order.OrderID)
	span.SetAttributes(attribute.String("order.id", order.OrderID))

	if err := i.persist(ctx, order, msg.DedupeKey()); err != nil {
		metrics.OrdersFailed.WithLabelValues("persist").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist")
		i.log.Errorf(ctx, "order %s not persisted (no retry): %v", order.OrderID, err)
		return OutcomeFailed
	}
	metrics.OrdersPersisted.Inc()

	if i.tracker != nil && i.tracker.Seen(ctx, order.OrderID) {
		metrics.OrdersRedelivered.Inc()
		i.log.Warnf(ctx, "order %s persisted again (redelivery)", order.OrderID)
	}

	i.log.Infof(ctx, "order %s persisted items=%d", order.OrderID, len(order.Items))
	return OutcomePersisted
}

func (i *OrderIngestor) persist(ctx context.Context, order *domain.Order, dedupeKey *string) error {
	if i.processTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.processTimeout)
		defer cancel()
	}

	start := time.Now()
	err := i.writer.Persist(ctx, order, dedupeKey)
	metrics.PersistDuration.Observe(time.Since(start).Seconds())

	var perr *domain.PersistError
	if err != nil && !errors.As(err, &perr) {
		err = &domain.PersistError{OrderID: order.OrderID, Op: "persist", Err: err}
	}
	return err
}
