package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order-accounting/internal/domain"
	"github.com/Gunvolt24/order-accounting/internal/ports"
)

// Проверка, что BrokerClient удовлетворяет порту приложения.
var _ ports.BrokerClient = (*BrokerClient)(nil)

// reader — минимальный контракт над kafka.Reader,
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// BrokerClient — подписка на топик orders поверх kafka.Reader.
type BrokerClient struct {
	reader    reader
	mode      CommitMode
	log       ports.Logger
	closeOnce sync.Once
	closeErr  error
}

// NewBrokerClient — конструктор. Без адреса брокера возвращает *domain.ConfigurationError.
func NewBrokerClient(cfg *ConsumerConfig, log ports.Logger) (*BrokerClient, error) {
	if cfg == nil || len(cleanBrokers(cfg.Brokers)) == 0 {
		return nil, &domain.ConfigurationError{Field: "Kafka.Addr", Env: "ACCOUNTING_KAFKA_ADDR"}
	}

	rc := cfg.ReaderConfig()
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("kafka reader config: %w", err)
	}

	return &BrokerClient{
		reader: kafka.NewReader(rc),
		mode:   cfg.Mode(),
		log:    log,
	}, nil
}

// FetchNext — блокирующее чтение следующего сообщения.
// Отмена ctx возвращается как есть (context.Canceled/DeadlineExceeded),
// остальные ошибки оборачиваются в domain.ErrTransientConsume.
func (b *BrokerClient) FetchNext(ctx context.Context) (domain.Message, error) {
	msg, err := b.reader.FetchMessage(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Message{}, ctxErr
		}
		return domain.Message{}, fmt.Errorf("%w: %w", domain.ErrTransientConsume, err)
	}

	// interval: оффсет уходит в очередь коммита сразу, коммит выполнит таймер reader'а.
	if b.mode == CommitModeInterval {
		if commitErr := b.reader.CommitMessages(ctx, msg); commitErr != nil {
			b.log.Warnf(ctx, "enqueue commit failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, commitErr)
		}
	}

	return toDomain(&msg), nil
}

// Ack — синхронный коммит оффсета в режиме after-persist; в режиме interval ничего не делает.
func (b *BrokerClient) Ack(ctx context.Context, msg domain.Message) error {
	if b.mode != CommitModeAfterPersist {
		return nil
	}
	if err := b.reader.CommitMessages(ctx, kafka.Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
	}); err != nil {
		return fmt.Errorf("commit offset=%d: %w", msg.Offset, err)
	}
	return nil
}

// Close — закрывает reader. Повторные вызовы возвращают результат первого.
func (b *BrokerClient) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = b.reader.Close()
	})
	return b.closeErr
}

// Describe — строка для логов: топик, группа и брокеры.
func (b *BrokerClient) Describe() string {
	rc := b.reader.Config()
	return fmt.Sprintf("topic=%s group_id=%s brokers=%v commit_mode=%s", rc.Topic, rc.GroupID, rc.Brokers, b.mode)
}

func toDomain(msg *kafka.Message) domain.Message {
	return domain.Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Value:     msg.Value,
		Time:      msg.Time,
	}
}
