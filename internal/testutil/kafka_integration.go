//go:build integration

package testutil

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order-accounting/internal/codec"
	"github.com/Gunvolt24/order-accounting/internal/domain"
)

// UniqueGroup — уникальная consumer group для теста.
func UniqueGroup(base string) string {
	return fmt.Sprintf("%s-%s", base, UniqSuffix())
}

// EnsureTopic — создаёт топик (уже существующий — не ошибка) и ждёт его появления в метаданных.
// broker: "host:port" или "PLAINTEXT://host:port" (как отдаёт testcontainers).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		parts, perr := conn.ReadPartitions(topic)
		if perr == nil && len(parts) > 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %v", topic, perr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// OrderMessage — сообщение топика orders с бинарным заказом; пустой key -> сообщение без ключа.
func OrderMessage(o *domain.Order, key string) kafka.Message {
	msg := kafka.Message{Value: codec.Encode(o)}
	if key != "" {
		msg.Key = []byte(key)
	}
	return msg
}

// Produce — синхронно пишет сообщения в топик.
func Produce(ctx context.Context, brokers []string, topic string, msgs ...kafka.Message) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	return w.WriteMessages(ctx, msgs...)
}

// bootstrapAddr — первый адрес из bootstrap-строки без схемы.
func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}
