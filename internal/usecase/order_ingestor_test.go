package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/order-accounting/internal/codec"
	"github.com/Gunvolt24/order-accounting/internal/domain"
	"github.com/Gunvolt24/order-accounting/internal/ports/mocks"
	"github.com/Gunvolt24/order-accounting/internal/usecase"
	"github.com/Gunvolt24/order-accounting/pkg/ctxmeta"
)

func TestIngest_Persisted_WithKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockAccountingWriter(ctrl)
	log := &recordingLogger{}

	o := sampleOrder("ord-1")
	writer.EXPECT().
		Persist(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got *domain.Order, key *string) error {
			if got.OrderID != "ord-1" || len(got.Items) != 1 {
				t.Fatalf("unexpected order: %+v", got)
			}
			if key == nil || *key != "k-1" {
				t.Fatalf("dedupe key = %v, want k-1", key)
			}
			return nil
		})

	ing := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, nil, log, 0)
	out := ing.Ingest(context.Background(), orderMessage(3, "k-1", o))

	if out != usecase.OutcomePersisted || !out.ShouldAck() {
		t.Fatalf("outcome=%s, want persisted", out)
	}
	line, ok := log.find("info", "ord-1")
	if !ok {
		t.Fatalf("expected info line with order id")
	}
	if id, _ := ctxmeta.OrderIDFromContext(line.ctx); id != "ord-1" {
		t.Fatalf("log ctx order id = %q", id)
	}
	if meta, _ := ctxmeta.MessageFromContext(line.ctx); meta.Offset != 3 || meta.Topic != topic {
		t.Fatalf("log ctx message meta = %+v", meta)
	}
}

func TestIngest_NoKey_PassesNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockAccountingWriter(ctrl)

	writer.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

	ing := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, nil, noopLogger{}, 0)
	if out := ing.Ingest(context.Background(), orderMessage(0, "", sampleOrder("ord-2"))); out != usecase.OutcomePersisted {
		t.Fatalf("outcome=%s", out)
	}
}

func TestIngest_DecodeError_DroppedWithoutPersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := mocks.NewMockOrderDecoder(ctrl)
	writer := mocks.NewMockAccountingWriter(ctrl) // Persist не ожидается
	log := &recordingLogger{}

	decoder.EXPECT().Decode([]byte{0x01}).Return(nil, &domain.DecodeError{Err: errors.New("truncated")})

	ing := usecase.NewOrderIngestor(decoder, writer, nil, log, 0)
	out := ing.Ingest(context.Background(), rawMessage(9, []byte{0x01}))

	if out != usecase.OutcomeDropped || !out.ShouldAck() {
		t.Fatalf("outcome=%s, want dropped", out)
	}
	if _, ok := log.find("warn", "truncated"); !ok {
		t.Fatalf("expected warn line with decode reason")
	}
}

// Tombstone (пустое значение) не превращается в заказ по умолчанию: отбрасывается без записи.
func TestIngest_EmptyPayload_DroppedWithoutPersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockAccountingWriter(ctrl) // Persist не ожидается
	log := &recordingLogger{}

	ing := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, nil, log, 0)

	for _, value := range [][]byte{nil, {}} {
		out := ing.Ingest(context.Background(), rawMessage(11, value))
		if out != usecase.OutcomeDropped || !out.ShouldAck() {
			t.Fatalf("outcome=%s, want dropped", out)
		}
	}
	if _, ok := log.find("warn", codec.ErrEmptyPayload.Error()); !ok {
		t.Fatalf("expected warn line with empty payload reason")
	}
}

func TestIngest_PersistError_FailedAndLoggedWithOrderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockAccountingWriter(ctrl)
	tracker := mocks.NewMockRedeliveryTracker(ctrl) // при ошибке записи не вызывается
	log := &recordingLogger{}

	writer.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.PersistError{OrderID: "ord-3", Op: "insert", Err: errors.New("connection refused")})

	ing := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, tracker, log, 0)
	out := ing.Ingest(context.Background(), orderMessage(1, "", sampleOrder("ord-3")))

	if out != usecase.OutcomeFailed || out.ShouldAck() {
		t.Fatalf("outcome=%s, want failed", out)
	}
	if _, ok := log.find("error", "ord-3"); !ok {
		t.Fatalf("expected error line with order id")
	}
}

func TestIngest_PlainWriterError_WrappedAsPersistError(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockAccountingWriter(ctrl)
	log := &recordingLogger{}

	writer.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	ing := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, nil, log, 0)
	if out := ing.Ingest(context.Background(), orderMessage(1, "", sampleOrder("ord-4"))); out != usecase.OutcomeFailed {
		t.Fatalf("outcome=%s", out)
	}
	if _, ok := log.find("error", `persist order "ord-4"`); !ok {
		t.Fatalf("expected wrapped PersistError in log")
	}
}

func TestIngest_Redelivery_LoggedButPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockAccountingWriter(ctrl)
	tracker := mocks.NewMockRedeliveryTracker(ctrl)
	log := &recordingLogger{}

	gomock.InOrder(
		writer.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		tracker.EXPECT().Seen(gomock.Any(), "ord-5").Return(false),
		writer.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		tracker.EXPECT().Seen(gomock.Any(), "ord-5").Return(true),
	)

	ing := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, tracker, log, 0)
	msg := orderMessage(7, "k", sampleOrder("ord-5"))

	if out := ing.Ingest(context.Background(), msg); out != usecase.OutcomePersisted {
		t.Fatalf("first outcome=%s", out)
	}
	if _, ok := log.find("warn", "redelivery"); ok {
		t.Fatalf("first delivery must not be flagged")
	}
	if out := ing.Ingest(context.Background(), msg); out != usecase.OutcomePersisted {
		t.Fatalf("second outcome=%s", out)
	}
	if _, ok := log.find("warn", "redelivery"); !ok {
		t.Fatalf("second delivery must be flagged as redelivery")
	}
}

func TestIngest_ProcessTimeout_SetsDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockAccountingWriter(ctrl)

	writer.EXPECT().Persist(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *domain.Order, _ *string) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("persist ctx must carry a deadline")
			}
			return nil
		})

	ing := usecase.NewOrderIngestor(codec.NewOrderDecoder(), writer, nil, noopLogger{}, time.Second)
	ing.Ingest(context.Background(), orderMessage(0, "", sampleOrder("ord-6")))
}

func TestOutcome_String(t *testing.T) {
	cases := map[usecase.Outcome]string{
		usecase.OutcomePersisted: "persisted",
		usecase.OutcomeDropped:   "dropped",
		usecase.OutcomeFailed:    "failed",
		usecase.Outcome(42):      "unknown",
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Fatalf("%d.String()=%q, want %q", in, got, want)
		}
	}
}
