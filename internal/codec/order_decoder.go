// Package codec — бинарный формат сообщений топика orders (protobuf OrderResult).
//
// Схема (proto3):
//
//	message OrderResult { string order_id = 1; string shipping_tracking_id = 2;
//	                      Money shipping_cost = 3; Address shipping_address = 4;
//	                      repeated OrderItem items = 5; }
//	message Money       { string currency_code = 1; int64 units = 2; int32 nanos = 3; }
//	message Address     { string street_address = 1; string city = 2; string state = 3;
//	                      string country = 4; string zip_code = 5; }
//	message OrderItem   { CartItem item = 1; Money cost = 2; }
//	message CartItem    { string product_id = 1; int32 quantity = 2; }
//
// Пустое значение (в т.ч. tombstone) для proto3 формально корректно и дало бы заказ
// со всеми полями по умолчанию. Такие сообщения намеренно не записываются:
// Decode возвращает *domain.DecodeError с ErrEmptyPayload, и сообщение отбрасывается.
package codec

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Gunvolt24/order-accounting/internal/domain"
	"github.com/Gunvolt24/order-accounting/internal/ports"
)

// Проверка, что OrderDecoder удовлетворяет порту декодера.
var _ ports.OrderDecoder = (*OrderDecoder)(nil)

// ErrEmptyPayload — пустое сообщение (в т.ч. tombstone) заказом не считается.
var ErrEmptyPayload = errors.New("empty payload")

// OrderDecoder — декодер OrderResult. Без состояния, безопасен для повторного использования.
type OrderDecoder struct{}

// NewOrderDecoder — конструктор OrderDecoder.
func NewOrderDecoder() *OrderDecoder { return &OrderDecoder{} }

// Decode — разбирает raw в заказ. Любая ошибка разбора возвращается как *domain.DecodeError.
func (d *OrderDecoder) Decode(raw []byte) (order *domain.Order, err error) {
	// Паники внутри разбора наружу не выпускаем.
	defer func() {
		if r := recover(); r != nil {
			order, err = nil, &domain.DecodeError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if len(raw) == 0 {
		return nil, &domain.DecodeError{Err: ErrEmptyPayload}
	}

	var o domain.Order
	if err := decodeOrderResult(raw, &o); err != nil {
		return nil, &domain.DecodeError{Err: err}
	}
	return &o, nil
}

// fieldFunc — обработчик одного поля; возвращает количество прочитанных байт значения.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// walkFields — проходит по всем полям сообщения.
func walkFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

// skipField — пропускает неизвестное поле (совместимость с новыми версиями схемы).
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
	}
	return n, nil
}

func decodeOrderResult(b []byte, o *domain.Order) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, "order_id", &o.OrderID)
		case 2:
			return consumeString(typ, b, "shipping_tracking_id", &o.ShippingTrackingID)
		case 3:
			return consumeMessage(typ, b, "shipping_cost", func(v []byte) error {
				return decodeMoney(v, &o.ShippingCost)
			})
		case 4:
			return consumeMessage(typ, b, "shipping_address", func(v []byte) error {
				return decodeAddress(v, &o.ShippingAddress)
			})
		case 5:
			return consumeMessage(typ, b, "items", func(v []byte) error {
				var item domain.OrderItem
				if err := decodeOrderItem(v, &item); err != nil {
					return fmt.Errorf("items[%d]: %w", len(o.Items), err)
				}
				o.Items = append(o.Items, item)
				return nil
			})
		default:
			return skipField(num, typ, b)
		}
	})
}

func decodeMoney(b []byte, m *domain.Money) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, "currency_code", &m.CurrencyCode)
		case 2:
			var v uint64
			n, err := consumeVarint(typ, b, "units", &v)
			m.Units = int64(v)
			return n, err
		case 3:
			var v uint64
			n, err := consumeVarint(typ, b, "nanos", &v)
			m.Nanos = int32(v)
			return n, err
		default:
			return skipField(num, typ, b)
		}
	})
}

func decodeAddress(b []byte, a *domain.Address) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, "street_address", &a.StreetAddress)
		case 2:
			return consumeString(typ, b, "city", &a.City)
		case 3:
			return consumeString(typ, b, "state", &a.State)
		case 4:
			return consumeString(typ, b, "country", &a.Country)
		case 5:
			return consumeString(typ, b, "zip_code", &a.ZipCode)
		default:
			return skipField(num, typ, b)
		}
	})
}

func decodeOrderItem(b []byte, item *domain.OrderItem) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeMessage(typ, b, "item", func(v []byte) error {
				return decodeCartItem(v, item)
			})
		case 2:
			return consumeMessage(typ, b, "cost", func(v []byte) error {
				return decodeMoney(v, &item.Cost)
			})
		default:
			return skipField(num, typ, b)
		}
	})
}

func decodeCartItem(b []byte, item *domain.OrderItem) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, "product_id", &item.ProductID)
		case 2:
			var v uint64
			n, err := consumeVarint(typ, b, "quantity", &v)
			item.Quantity = int32(v)
			return n, err
		default:
			return skipField(num, typ, b)
		}
	})
}

// ------вспомогательные функции------

func consumeString(typ protowire.Type, b []byte, field string, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, fmt.Errorf("%s: unexpected wire type %d", field, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, fmt.Errorf("%s: %w", field, protowire.ParseError(n))
	}
	if !utf8.Valid(v) {
		return 0, fmt.Errorf("%s: invalid UTF-8", field)
	}
	*dst = string(v)
	return n, nil
}

func consumeVarint(typ protowire.Type, b []byte, field string, dst *uint64) (int, error) {
	if typ != protowire.VarintType {
		return 0, fmt.Errorf("%s: unexpected wire type %d", field, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, fmt.Errorf("%s: %w", field, protowire.ParseError(n))
	}
	*dst = v
	return n, nil
}

// consumeMessage — вложенное сообщение; повторные вхождения сливаются (как в proto3).
func consumeMessage(typ protowire.Type, b []byte, field string, decode func([]byte) error) (int, error) {
	if typ != protowire.BytesType {
		return 0, fmt.Errorf("%s: unexpected wire type %d", field, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, fmt.Errorf("%s: %w", field, protowire.ParseError(n))
	}
	if err := decode(v); err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}
