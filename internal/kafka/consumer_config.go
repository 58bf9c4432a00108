package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrdersTopic — единственный топик, из которого читает сервис.
const OrdersTopic = "orders"

// CommitMode — политика фиксации оффсетов.
type CommitMode string

const (
	// CommitModeInterval — оффсет отдаётся reader'у сразу после чтения
	// и коммитится по таймеру, независимо от успеха записи в БД.
	CommitModeInterval CommitMode = "interval"
	// CommitModeAfterPersist — оффсет коммитится синхронно только после Ack
	// (успешная запись или отброшенное нечитаемое сообщение).
	CommitModeAfterPersist CommitMode = "after-persist"
)

const (
	defaultGroupID        = "accounting"
	defaultCommitInterval = time.Second
)

// ConsumerConfig — параметры подписки на топик заказов.
type ConsumerConfig struct {
	Brokers        []string
	GroupID        string
	StartOffset    string
	CommitMode     string
	CommitInterval time.Duration
	MinBytes       int
	MaxBytes       int
	MaxWait        time.Duration
}

// Mode — нормализованная политика коммита; неизвестное значение -> interval.
func (c *ConsumerConfig) Mode() CommitMode {
	switch strings.ToLower(strings.TrimSpace(c.CommitMode)) {
	case string(CommitModeAfterPersist), "after_persist":
		return CommitModeAfterPersist
	default:
		return CommitModeInterval
	}
}

// ReaderConfig — конфигурация kafka.Reader для группы потребителей.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	groupID := strings.TrimSpace(c.GroupID)
	if groupID == "" {
		groupID = defaultGroupID
	}

	rc := kafka.ReaderConfig{
		Brokers:  cleanBrokers(c.Brokers),
		GroupID:  groupID,
		Topic:    OrdersTopic,
		MinBytes: c.MinBytes,
		MaxBytes: c.MaxBytes,
		MaxWait:  c.MaxWait,
	}

	// interval: асинхронный коммит по таймеру; after-persist: синхронный коммит (CommitInterval=0).
	if c.Mode() == CommitModeInterval {
		rc.CommitInterval = c.CommitInterval
		if rc.CommitInterval <= 0 {
			rc.CommitInterval = defaultCommitInterval
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

// cleanBrokers — убирает пробелы и пустые адреса.
func cleanBrokers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
