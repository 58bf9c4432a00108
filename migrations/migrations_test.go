package migrations_test

import (
	"strings"
	"testing"

	"github.com/Gunvolt24/order-accounting/migrations"
)

// Колонки таблицы orders и их порядок — часть внешнего контракта.
func TestCreateOrders_ColumnOrder(t *testing.T) {
	raw, err := migrations.FS.ReadFile("00001_create_orders.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	sql := string(raw)

	if !strings.Contains(sql, "-- +goose Up") || !strings.Contains(sql, "-- +goose Down") {
		t.Fatalf("migration must have goose Up/Down sections")
	}

	columns := []string{
		"order_id", "shipping_tracking_id", "shipping_cost_amount", "shipping_cost_currency",
		"shipping_address", "items", "message_key", "created_at",
	}
	body := sql[strings.Index(sql, "CREATE TABLE"):]
	last := -1
	for _, col := range columns {
		idx := strings.Index(body, "\n    "+col+" ")
		if idx < 0 {
			t.Fatalf("column %s not found", col)
		}
		if idx <= last {
			t.Fatalf("column %s is out of order", col)
		}
		last = idx
	}
	if strings.Contains(strings.ToUpper(body[:strings.Index(body, ");")]), "UNIQUE") {
		t.Fatalf("order_id must not be unique")
	}
}
