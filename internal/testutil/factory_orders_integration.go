//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrder — мини-генератор заказа с уникальными идентификаторами.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	o := domain.Order{
		OrderID:            "ord-" + UniqSuffix(),
		ShippingTrackingID: "TR-" + UniqSuffix(),
		ShippingCost:       domain.Money{CurrencyCode: "USD", Units: 10, Nanos: 500_000_000},
		ShippingAddress: domain.Address{
			StreetAddress: "Main st 1",
			City:          "Metropolis",
			State:         "NY",
			Country:       "US",
			ZipCode:       "10001",
		},
		Items: []domain.OrderItem{
			{ProductID: "P-" + UniqSuffix(), Quantity: 1, Cost: domain.Money{CurrencyCode: "USD", Units: 100}},
		},
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithOrderID(id string) func(*domain.Order) {
	return func(o *domain.Order) { o.OrderID = id }
}

func WithShippingCost(units int64, nanos int32) func(*domain.Order) {
	return func(o *domain.Order) {
		o.ShippingCost.Units = units
		o.ShippingCost.Nanos = nanos
	}
}

func WithItems(n int) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Items = make([]domain.OrderItem, 0, n)
		for i := 0; i < n; i++ {
			o.Items = append(o.Items, domain.OrderItem{
				ProductID: "P-" + UniqSuffix(),
				Quantity:  int32(i + 1),
				Cost:      domain.Money{CurrencyCode: "USD", Units: int64(10 * (i + 1))},
			})
		}
	}
}
