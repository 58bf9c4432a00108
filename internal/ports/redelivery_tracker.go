package ports

import "context"

// RedeliveryTracker — помнит недавно записанные заказы, чтобы заметить повторную доставку.
type RedeliveryTracker interface {
	// Seen — отмечает orderID и сообщает, встречался ли он раньше.
	Seen(ctx context.Context, orderID string) bool
}
