package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Gunvolt24/order-accounting/internal/codec"
	"github.com/Gunvolt24/order-accounting/internal/domain"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		OrderID:            "5f1d6c1e-0a4b-11ef-9262-0242ac120002",
		ShippingTrackingID: "TR-42",
		ShippingCost:       domain.Money{CurrencyCode: "USD", Units: 10, Nanos: 500_000_000},
		ShippingAddress: domain.Address{
			StreetAddress: "1600 Amphitheatre Parkway",
			City:          "Mountain View",
			State:         "CA",
			Country:       "United States",
			ZipCode:       "94043",
		},
		Items: []domain.OrderItem{
			{ProductID: "OLJCESPC7Z", Quantity: 2, Cost: domain.Money{CurrencyCode: "USD", Units: 101, Nanos: 960_000_000}},
			{ProductID: "66VCHSJNUP", Quantity: 1, Cost: domain.Money{CurrencyCode: "USD", Units: 349, Nanos: 950_000_000}},
		},
	}
}

func decodeErr(t *testing.T, raw []byte) *domain.DecodeError {
	t.Helper()

	got, err := codec.NewOrderDecoder().Decode(raw)
	require.Error(t, err)
	require.Nil(t, got)

	var de *domain.DecodeError
	require.True(t, errors.As(err, &de), "want *domain.DecodeError, got %T", err)
	return de
}

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	want := sampleOrder()
	got, err := codec.NewOrderDecoder().Decode(codec.Encode(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecode_NegativeAndMinimalValues(t *testing.T) {
	t.Parallel()

	want := &domain.Order{
		OrderID:      "refund-1",
		ShippingCost: domain.Money{CurrencyCode: "EUR", Units: -1, Nanos: -750_000_000},
	}
	got, err := codec.NewOrderDecoder().Decode(codec.Encode(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Empty(t, got.Items)
}

func TestDecode_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	raw := codec.Encode(sampleOrder())
	// поле 15 (varint) и поле 16 (fixed64) из будущей версии схемы
	raw = protowire.AppendTag(raw, 15, protowire.VarintType)
	raw = protowire.AppendVarint(raw, 7)
	raw = protowire.AppendTag(raw, 16, protowire.Fixed64Type)
	raw = protowire.AppendFixed64(raw, 99)

	got, err := codec.NewOrderDecoder().Decode(raw)
	require.NoError(t, err)
	require.Equal(t, sampleOrder(), got)
}

func TestDecode_LastScalarWins(t *testing.T) {
	t.Parallel()

	raw := codec.Encode(&domain.Order{OrderID: "first"})
	raw = protowire.AppendTag(raw, 1, protowire.BytesType)
	raw = protowire.AppendString(raw, "second")

	got, err := codec.NewOrderDecoder().Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "second", got.OrderID)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	valid := codec.Encode(sampleOrder())

	wrongType := protowire.AppendTag(nil, 1, protowire.VarintType)
	wrongType = protowire.AppendVarint(wrongType, 5)

	badUTF8 := protowire.AppendTag(nil, 2, protowire.BytesType)
	badUTF8 = protowire.AppendBytes(badUTF8, []byte{0xff, 0xfe})

	// shipping_cost с units, закодированным как строка
	badNested := protowire.AppendTag(nil, 3, protowire.BytesType)
	badNested = protowire.AppendBytes(badNested, protowire.AppendString(protowire.AppendTag(nil, 2, protowire.BytesType), "ten"))

	tests := []struct {
		name string
		raw  []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"truncated", valid[:len(valid)-1]},
		{"garbage", []byte{0xff, 0xff, 0xff}},
		{"field number zero", []byte{0x00}},
		{"wrong wire type", wrongType},
		{"invalid utf8", badUTF8},
		{"bad nested money", badNested},
		{"length overflow", []byte{0x0a, 0x7f, 'a'}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			de := decodeErr(t, tt.raw)
			require.NotNil(t, de.Err)
		})
	}
}

func TestDecode_EmptyPayloadReason(t *testing.T) {
	t.Parallel()

	de := decodeErr(t, nil)
	require.ErrorIs(t, de, codec.ErrEmptyPayload)
}

// Любой префикс валидного сообщения обрабатывается без паники.
func TestDecode_EveryPrefix_NoPanic(t *testing.T) {
	t.Parallel()

	valid := codec.Encode(sampleOrder())
	dec := codec.NewOrderDecoder()
	for i := 0; i < len(valid); i++ {
		got, err := dec.Decode(valid[:i])
		if err == nil && got == nil {
			t.Fatalf("prefix %d: nil order without error", i)
		}
	}
}
