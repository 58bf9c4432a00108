package ports

import (
	"context"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// AccountingWriter — запись одной учётной строки по заказу.
type AccountingWriter interface {
	// Persist — dedupeKey == nil означает, что у сообщения не было ключа.
	Persist(ctx context.Context, order *domain.Order, dedupeKey *string) error
}
