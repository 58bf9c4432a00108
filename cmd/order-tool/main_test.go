package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

const orderJSON = `{"order_id":"o-1","shipping_tracking_id":"t-1",` +
	`"shipping_cost":{"currency_code":"USD","units":5,"nanos":500000000},` +
	`"shipping_address":{"street_address":"1 Main St","city":"Springfield","state":"IL","country":"US","zip_code":"62701"},` +
	`"items":[{"product_id":"p-1","quantity":2,"cost":{"currency_code":"USD","units":10,"nanos":0}}]}`

func runTool(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_NoArgs_Usage(t *testing.T) {
	code, _, stderr := runTool(t, "")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "usage: order-tool")
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runTool(t, "", "frobnicate")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestCheck_ValidAndInvalidLines(t *testing.T) {
	in := orderJSON + "\n" + `{"order_id":""}` + "\n"

	code, stdout, stderr := runTool(t, in, "check")

	require.Equal(t, 1, code)
	require.Contains(t, stderr, "line 2:")
	require.Contains(t, stderr, "validation failed (1 valid / 1 invalid)")

	var o domain.Order
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &o))
	require.Equal(t, "o-1", o.OrderID)
}

func TestCheck_AllValid(t *testing.T) {
	code, _, stderr := runTool(t, orderJSON+"\n", "check")
	require.Equal(t, 0, code)
	require.Contains(t, stderr, "validation ok (1 valid / 0 invalid)")
}

func TestEncodeDecode_HexRoundTrip(t *testing.T) {
	code, encoded, stderr := runTool(t, orderJSON+"\n"+orderJSON+"\n", "encode")
	require.Equal(t, 0, code, stderr)
	require.Len(t, strings.Split(strings.TrimSpace(encoded), "\n"), 2)

	code, decoded, stderr := runTool(t, encoded, "decode")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSpace(decoded), "\n")
	require.Len(t, lines, 2)
	var o domain.Order
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &o))
	require.Equal(t, "o-1", o.OrderID)
	require.Equal(t, "62701", o.ShippingAddress.ZipCode)
	require.Len(t, o.Items, 1)
	require.Equal(t, int32(2), o.Items[0].Quantity)
	require.Equal(t, int64(5), o.ShippingCost.Units)
	require.Equal(t, int32(500000000), o.ShippingCost.Nanos)
}

func TestEncodeDecode_RawRoundTrip(t *testing.T) {
	code, encoded, stderr := runTool(t, orderJSON, "encode", "-format", "json", "-raw")
	require.Equal(t, 0, code, stderr)

	code, decoded, stderr := runTool(t, encoded, "decode", "-raw")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, decoded, `"order_id":"o-1"`)
}

func TestEncode_Raw_RequiresSingleOrder(t *testing.T) {
	code, _, stderr := runTool(t, orderJSON+"\n"+orderJSON+"\n", "encode", "-raw")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "-raw needs exactly one order")
}

func TestDecode_BadLinesReported(t *testing.T) {
	code, _, stderr := runTool(t, "zz\n\n", "decode")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "line 1:")
	require.Contains(t, stderr, "1 messages not decoded")
}
