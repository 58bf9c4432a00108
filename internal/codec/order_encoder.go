package codec

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// Encode — кодирует заказ в бинарный OrderResult.
// Нулевые скаляры не пишутся (поведение proto3 по умолчанию).
func Encode(o *domain.Order) []byte {
	if o == nil {
		return nil
	}
	var b []byte
	b = appendString(b, 1, o.OrderID)
	b = appendString(b, 2, o.ShippingTrackingID)
	b = appendMessage(b, 3, encodeMoney(&o.ShippingCost))
	b = appendMessage(b, 4, encodeAddress(&o.ShippingAddress))
	for i := range o.Items {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeOrderItem(&o.Items[i]))
	}
	return b
}

func encodeMoney(m *domain.Money) []byte {
	var b []byte
	b = appendString(b, 1, m.CurrencyCode)
	b = appendInt(b, 2, m.Units)
	b = appendInt(b, 3, int64(m.Nanos))
	return b
}

func encodeAddress(a *domain.Address) []byte {
	var b []byte
	b = appendString(b, 1, a.StreetAddress)
	b = appendString(b, 2, a.City)
	b = appendString(b, 3, a.State)
	b = appendString(b, 4, a.Country)
	b = appendString(b, 5, a.ZipCode)
	return b
}

func encodeOrderItem(item *domain.OrderItem) []byte {
	var cart []byte
	cart = appendString(cart, 1, item.ProductID)
	cart = appendInt(cart, 2, int64(item.Quantity))

	var b []byte
	b = appendMessage(b, 1, cart)
	b = appendMessage(b, 2, encodeMoney(&item.Cost))
	return b
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendInt — int32/int64 кодируются как varint с расширением знака.
func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
