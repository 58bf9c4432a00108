package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ResolveFormat — auto по расширению файла; без расширения — JSON.
func ResolveFormat(path string, format InputFormat) InputFormat {
	if format != FormatAuto && format != "" {
		return format
	}
	if strings.ToLower(filepath.Ext(path)) == ".jsonl" {
		return FormatJSONL
	}
	return FormatJSON
}

// File — валидирует файл JSON или JSONL и отдаёт валидные заказы в emit.
func File(ctx context.Context, validator Validator, path string, format InputFormat, emit EmitFunc, onInvalid OnInvalidFunc) (JSONLResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return JSONLResult{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Reader(ctx, validator, file, ResolveFormat(path, format), emit, onInvalid)
}

// Reader — то же для произвольного источника (stdin); формат должен быть известен.
func Reader(ctx context.Context, validator Validator, r io.Reader, format InputFormat, emit EmitFunc, onInvalid OnInvalidFunc) (JSONLResult, error) {
	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(r)
		if err != nil {
			return JSONLResult{}, fmt.Errorf("read: %w", err)
		}
		order, err := OrderFromJSON(ctx, validator, raw)
		if err != nil {
			if onInvalid != nil {
				onInvalid(1, err)
			}
			return JSONLResult{InvalidLinesCount: 1}, err
		}
		if err := emit(1, order); err != nil {
			return JSONLResult{}, err
		}
		return JSONLResult{ValidLinesCount: 1}, nil

	case FormatJSONL:
		return JSONLStream(ctx, validator, r, emit, onInvalid)

	default:
		return JSONLResult{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// String — "N valid / M invalid".
func (r JSONLResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.ValidLinesCount, r.InvalidLinesCount)
}

// Collect — emit, складывающий заказы в срез.
func Collect(dst *[]*domain.Order) EmitFunc {
	return func(_ int, o *domain.Order) error {
		*dst = append(*dst, o)
		return nil
	}
}
