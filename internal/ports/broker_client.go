package ports

import (
	"context"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// BrokerClient — подписка на топик заказов.
// Экземпляр принадлежит циклу приёма и не используется конкурентно.
type BrokerClient interface {
	// FetchNext — блокируется до следующего сообщения, ошибки брокера или отмены ctx.
	FetchNext(ctx context.Context) (domain.Message, error)
	// Ack — подтверждает обработку сообщения (зависит от политики коммита оффсетов).
	Ack(ctx context.Context, msg domain.Message) error
	// Close — освобождает подписку и соединения; идемпотентен.
	Close() error
}
