package clock

import "time"

// Clock — источник текущего времени (подменяется в тестах).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem — часы на основе time.Now, всегда в UTC.
func NewSystem() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

type fixedClock struct {
	now time.Time
}

// NewFixed — часы, всегда возвращающие один и тот же момент.
func NewFixed(t time.Time) Clock { return fixedClock{now: t.UTC()} }

func (f fixedClock) Now() time.Time { return f.now }
