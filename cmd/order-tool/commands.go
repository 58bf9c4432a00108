package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/order-accounting/internal/codec"
	"github.com/Gunvolt24/order-accounting/internal/domain"
	"github.com/Gunvolt24/order-accounting/pkg/validate"
)

var errInvalidOrders = errors.New("invalid orders found")

// inputFlags — общие флаги источника заказов.
type inputFlags struct {
	path   string
	format string
}

func (f *inputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.path, "in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	fs.StringVar(&f.format, "format", "auto", "input format: auto|json|jsonl")
}

// read — валидирует вход и отдаёт заказы в emit; stdin в режиме auto читается как JSONL.
func (f *inputFlags) read(ctx context.Context, stdin io.Reader, stderr io.Writer, emit validate.EmitFunc) (validate.JSONLResult, error) {
	v := validate.NewOrderValidator()
	onInvalid := func(line int, err error) {
		fmt.Fprintf(stderr, "line %d: %v\n", line, err)
	}

	format := validate.InputFormat(f.format)
	if f.path == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		return validate.Reader(ctx, v, stdin, format, emit, onInvalid)
	}
	return validate.File(ctx, v, f.path, format, emit, onInvalid)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// summarize — итог в stderr; невалидные строки дают ненулевой код выхода.
func summarize(stderr io.Writer, res validate.JSONLResult, err error) error {
	if err != nil {
		fmt.Fprintf(stderr, "validation: %v (%s)\n", err, res)
		return err
	}
	if res.InvalidLinesCount > 0 {
		fmt.Fprintf(stderr, "validation failed (%s)\n", res)
		return errInvalidOrders
	}
	fmt.Fprintf(stderr, "validation ok (%s)\n", res)
	return nil
}

func runCheck(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var in inputFlags
	fs := newFlagSet("check", stderr)
	in.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	res, err := in.read(ctx, stdin, stderr, func(_ int, o *domain.Order) error {
		return enc.Encode(o)
	})
	return summarize(stderr, res, err)
}

func runEncode(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var in inputFlags
	fs := newFlagSet("encode", stderr)
	in.register(fs)
	raw := fs.Bool("raw", false, "write raw bytes instead of hex lines (single order only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var orders []*domain.Order
	res, err := in.read(ctx, stdin, stderr, validate.Collect(&orders))
	if err := summarize(stderr, res, err); err != nil {
		return err
	}

	if *raw {
		if len(orders) != 1 {
			return fmt.Errorf("-raw needs exactly one order, got %d", len(orders))
		}
		_, err := stdout.Write(codec.Encode(orders[0]))
		return err
	}
	for _, o := range orders {
		if _, err := fmt.Fprintln(stdout, hex.EncodeToString(codec.Encode(o))); err != nil {
			return err
		}
	}
	return nil
}

func runDecode(_ context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("decode", stderr)
	raw := fs.Bool("raw", false, "input is a single raw binary message instead of hex lines")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dec := codec.NewOrderDecoder()
	enc := json.NewEncoder(stdout)

	if *raw {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		order, err := dec.Decode(b)
		if err != nil {
			return err
		}
		return enc.Encode(order)
	}

	failed := 0
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		b, err := hex.DecodeString(text)
		if err == nil {
			var order *domain.Order
			if order, err = dec.Decode(b); err == nil {
				if err := enc.Encode(order); err != nil {
					return err
				}
				continue
			}
		}
		failed++
		fmt.Fprintf(stderr, "line %d: %v\n", line, err)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d messages not decoded", failed)
	}
	return nil
}
