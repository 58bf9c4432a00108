package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// JSONLResult — статистика разбора потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// EmitFunc — получает каждый валидный заказ; ошибка прерывает обработку.
type EmitFunc func(line int, order *domain.Order) error

// OnInvalidFunc — получает номер строки и причину отказа.
type OnInvalidFunc func(line int, err error)

// JSONLStream — читает JSONL, валидирует каждую строку и отдаёт валидные заказы в emit.
// Пустые строки пропускаются, невалидные считаются и не прерывают поток.
func JSONLStream(ctx context.Context, validator Validator, r io.Reader, emit EmitFunc, onInvalid OnInvalidFunc) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		order, err := OrderFromJSON(ctx, validator, raw)
		if err != nil {
			res.InvalidLinesCount++
			if onInvalid != nil {
				onInvalid(line, err)
			}
			continue
		}
		if err := emit(line, order); err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
