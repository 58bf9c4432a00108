package ports

import "github.com/Gunvolt24/order-accounting/internal/domain"

// OrderDecoder — чистое преобразование payload -> заказ.
type OrderDecoder interface {
	Decode(raw []byte) (*domain.Order, error)
}
