// Package validate — проверка заказов в JSON-фикстурах перед кодированием в бинарный формат.
// В конвейер приёма не встроен: сервис пишет любой декодированный заказ как есть.
package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// ErrInvalidOrder — базовая (sentinel) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

const maxNanos = 999_999_999

// Validator — контракт проверки заказа.
type Validator interface {
	Validate(ctx context.Context, order *domain.Order) error
}

var _ Validator = (*OrderValidator)(nil)

// OrderValidator — правила для заказа и денежных сумм.
type OrderValidator struct{}

func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate возвращает ErrInvalidOrder (с обёрнутой причиной) при первой найденной проблеме.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if order.OrderID == "" {
		return fmt.Errorf("%w: order_id обязателен", ErrInvalidOrder)
	}
	if err := validateMoney("shipping_cost", order.ShippingCost); err != nil {
		return err
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ProductID == "" {
			return fmt.Errorf("%w: items[%d].product_id обязателен", ErrInvalidOrder, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: items[%d].quantity должен быть положительным", ErrInvalidOrder, i)
		}
		if err := validateMoney(fmt.Sprintf("items[%d].cost", i), item.Cost); err != nil {
			return err
		}
	}
	return nil
}

// validateMoney — трёхбуквенный код валюты, nanos в диапазоне и со знаком units.
func validateMoney(field string, m domain.Money) error {
	if !isCurrencyCode(m.CurrencyCode) {
		return fmt.Errorf("%w: %s.currency_code должен быть трёхбуквенным кодом", ErrInvalidOrder, field)
	}
	if m.Nanos > maxNanos || m.Nanos < -maxNanos {
		return fmt.Errorf("%w: %s.nanos вне диапазона", ErrInvalidOrder, field)
	}
	if (m.Units > 0 && m.Nanos < 0) || (m.Units < 0 && m.Nanos > 0) {
		return fmt.Errorf("%w: %s.units и nanos разных знаков", ErrInvalidOrder, field)
	}
	return nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
