package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Gunvolt24/order-accounting/internal/codec"
	"github.com/Gunvolt24/order-accounting/internal/domain"
)

const topic = "orders"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type logLine struct {
	level string
	ctx   context.Context
	text  string
}

// recordingLogger — запоминает строки логов для проверок.
type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (r *recordingLogger) add(ctx context.Context, level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, logLine{level: level, ctx: ctx, text: fmt.Sprintf(format, args...)})
}

func (r *recordingLogger) Infof(ctx context.Context, f string, a ...any)  { r.add(ctx, "info", f, a...) }
func (r *recordingLogger) Warnf(ctx context.Context, f string, a ...any)  { r.add(ctx, "warn", f, a...) }
func (r *recordingLogger) Errorf(ctx context.Context, f string, a ...any) { r.add(ctx, "error", f, a...) }

// find — первая строка уровня level, содержащая substr.
func (r *recordingLogger) find(level, substr string) (logLine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.level == level && strings.Contains(l.text, substr) {
			return l, true
		}
	}
	return logLine{}, false
}

func sampleOrder(id string) *domain.Order {
	return &domain.Order{
		OrderID:            id,
		ShippingTrackingID: "trk-" + id,
		ShippingCost:       domain.Money{CurrencyCode: "USD", Units: 10, Nanos: 500000000},
		ShippingAddress:    domain.Address{StreetAddress: "1 Main St", City: "Springfield", State: "IL", Country: "US", ZipCode: "62701"},
		Items: []domain.OrderItem{
			{ProductID: "sku-1", Quantity: 2, Cost: domain.Money{CurrencyCode: "USD", Units: 3}},
		},
	}
}

func orderMessage(offset int64, key string, o *domain.Order) domain.Message {
	msg := domain.Message{Topic: topic, Offset: offset, Value: codec.Encode(o)}
	if key != "" {
		msg.Key = []byte(key)
	}
	return msg
}

func rawMessage(offset int64, value []byte) domain.Message {
	return domain.Message{Topic: topic, Offset: offset, Value: value}
}

// blockUntilDone — FetchNext, который ждёт отмены и сигнализирует, что цикл заблокирован.
func blockUntilDone(blocked chan<- struct{}) func(ctx context.Context) (domain.Message, error) {
	var once sync.Once
	return func(ctx context.Context) (domain.Message, error) {
		once.Do(func() { close(blocked) })
		<-ctx.Done()
		return domain.Message{}, ctx.Err()
	}
}
