package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/order-accounting/internal/clock"
	"github.com/Gunvolt24/order-accounting/internal/domain"
	"github.com/Gunvolt24/order-accounting/internal/ports"
)

// Проверка, что AccountingWriter удовлетворяет порту записи.
var _ ports.AccountingWriter = (*AccountingWriter)(nil)

var errNilOrder = errors.New("order is nil")

// Порядок и имена колонок фиксированы схемой таблицы orders.
const insertOrderSQL = `
	INSERT INTO orders (
		order_id, shipping_tracking_id, shipping_cost_amount, shipping_cost_currency,
		shipping_address, items, message_key, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// AccountingWriter — запись учётной строки по заказу (одна строка на сообщение, без upsert).
type AccountingWriter struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// NewAccountingWriter — конструктор AccountingWriter.
func NewAccountingWriter(pool *pgxpool.Pool, clk clock.Clock) *AccountingWriter {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &AccountingWriter{pool: pool, clock: clk}
}

// accountingRow — значения одной строки таблицы orders в порядке колонок.
type accountingRow struct {
	OrderID            string
	ShippingTrackingID string
	ShippingCostAmount decimal.Decimal
	ShippingCostCcy    string
	ShippingAddress    string
	Items              string
	MessageKey         *string
	CreatedAt          time.Time
}

// newAccountingRow — чистое преобразование заказа в строку (без I/O).
func newAccountingRow(order *domain.Order, dedupeKey *string, now time.Time) (accountingRow, error) {
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return accountingRow{}, fmt.Errorf("marshal shipping_address: %w", err)
	}

	items := order.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return accountingRow{}, fmt.Errorf("marshal items: %w", err)
	}

	return accountingRow{
		OrderID:            order.OrderID,
		ShippingTrackingID: order.ShippingTrackingID,
		ShippingCostAmount: order.ShippingCost.Amount(),
		ShippingCostCcy:    order.ShippingCost.CurrencyCode,
		ShippingAddress:    string(address),
		Items:              string(itemsJSON),
		MessageKey:         dedupeKey,
		CreatedAt:          now.UTC(),
	}, nil
}

// args — параметры INSERT; NUMERIC передаётся строкой (text format), без потери точности.
func (r *accountingRow) args() []any {
	return []any{
		r.OrderID,
		r.ShippingTrackingID,
		r.ShippingCostAmount.String(),
		r.ShippingCostCcy,
		r.ShippingAddress,
		r.Items,
		r.MessageKey,
		r.CreatedAt,
	}
}

// Persist — вставляет одну строку. Соединение берётся из пула на время вызова
// и возвращается на любом пути выхода. Все ошибки — *domain.PersistError.
func (w *AccountingWriter) Persist(ctx context.Context, order *domain.Order, dedupeKey *string) error {
	if order == nil {
		return &domain.PersistError{Op: "validate", Err: errNilOrder}
	}

	row, err := newAccountingRow(order, dedupeKey, w.clock.Now())
	if err != nil {
		return &domain.PersistError{OrderID: order.OrderID, Op: "serialize", Err: err}
	}

	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return &domain.PersistError{OrderID: order.OrderID, Op: "acquire", Err: err}
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, insertOrderSQL, row.args()...); err != nil {
		op := "insert"
		if code := sqlState(err); code != "" {
			op = "insert sqlstate=" + code
		}
		return &domain.PersistError{OrderID: order.OrderID, Op: op, Err: err}
	}
	return nil
}

// CountByOrderID — количество строк с данным order_id (дубликаты допустимы).
func (w *AccountingWriter) CountByOrderID(ctx context.Context, orderID string) (int, error) {
	var n int
	if err := w.pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE order_id = $1`, orderID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// Ping — проверка доступности хранилища (для readiness).
func (w *AccountingWriter) Ping(ctx context.Context) error {
	return w.pool.Ping(ctx)
}
