package domain

import (
	"errors"
	"fmt"
)

// ErrTransientConsume — временная ошибка брокера/сети при чтении сообщения.
var ErrTransientConsume = errors.New("transient consume error")

// ConfigurationError — отсутствует обязательный параметр конфигурации.
// Фатальна только на старте процесса.
type ConfigurationError struct {
	Field string // имя параметра
	Env   string // переменная окружения, в которой его ждали
}

func (e *ConfigurationError) Error() string {
	if e.Env == "" {
		return fmt.Sprintf("configuration: %s is required", e.Field)
	}
	return fmt.Sprintf("configuration: %s is required (env %s)", e.Field, e.Env)
}

// DecodeError — сообщение не удалось разобрать; такое сообщение отбрасывается.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode order: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// PersistError — запись строки в хранилище не удалась; повтора нет.
type PersistError struct {
	OrderID string
	Op      string
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist order %q: %s: %v", e.OrderID, e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
