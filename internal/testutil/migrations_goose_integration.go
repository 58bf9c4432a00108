//go:build integration

package testutil

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"

	"github.com/Gunvolt24/order-accounting/migrations"
)

// ApplyMigrationsGoose — применяет встроенные миграции к БД по DSN.
func ApplyMigrationsGoose(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	return migrations.Up(ctx, db)
}
