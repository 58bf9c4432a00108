//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/order-accounting/internal/clock"
	pgrepo "github.com/Gunvolt24/order-accounting/internal/repo/postgres"
	"github.com/Gunvolt24/order-accounting/internal/testutil"
	rest "github.com/Gunvolt24/order-accounting/internal/transport/http"
	"github.com/Gunvolt24/order-accounting/internal/usecase"
	"github.com/Gunvolt24/order-accounting/pkg/logger"
)

// /readyz против настоящего Postgres: 200, пока база жива, 503 после остановки контейнера.
func TestHTTP_Readyz_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(ctx, pg.DSN))

	pool, err := pgrepo.NewPool(ctx, pg.DSN, 4)
	require.NoError(t, err)
	defer pool.Close()

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	writer := pgrepo.NewAccountingWriter(pool, clock.NewSystem())
	h := rest.NewHandler(fixedState(usecase.StateRunning), writer, logg, time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ready", got["status"])

	require.NoError(t, pg.Container.Stop(ctx, nil))

	resp, err = http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
