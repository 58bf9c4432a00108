package clock_test

import (
	"testing"
	"time"

	"github.com/Gunvolt24/order-accounting/internal/clock"
)

func TestSystem_ReturnsUTC(t *testing.T) {
	if loc := clock.NewSystem().Now().Location(); loc != time.UTC {
		t.Fatalf("want UTC, got %v", loc)
	}
}

func TestFixed_NormalizesToUTC(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, msk)

	got := clock.NewFixed(at).Now()
	if !got.Equal(at) || got.Location() != time.UTC {
		t.Fatalf("want %v in UTC, got %v", at, got)
	}
}
