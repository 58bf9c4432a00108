package kafka_test

import (
	"slices"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	mykafka "github.com/Gunvolt24/order-accounting/internal/kafka"
)

func TestConsumerConfig_ReaderConfig_StartOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		startOffset string
		wantOffset  int64
	}{
		{"first lower", "first", kafkago.FirstOffset},
		{"first upper", "FIRST", kafkago.FirstOffset},
		{"first spaced", " FiRsT \n", kafkago.FirstOffset},
		{"first tabs", "\tFiRsT\t", kafkago.FirstOffset},
		{"empty -> last", "", kafkago.LastOffset},
		{"explicit last -> last", "last", kafkago.LastOffset},
		{"LAST -> last", "LAST", kafkago.LastOffset},
		{"unknown -> last", "unknown", kafkago.LastOffset},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := mykafka.ConsumerConfig{
				Brokers:     []string{"k1:9092", " k2:9092 ", ""},
				GroupID:     "group-1",
				StartOffset: tt.startOffset,
			}

			rc := cfg.ReaderConfig()

			if rc.StartOffset != tt.wantOffset {
				t.Fatalf("StartOffset: want %d, got %d", tt.wantOffset, rc.StartOffset)
			}
			if !slices.Equal(rc.Brokers, []string{"k1:9092", "k2:9092"}) {
				t.Fatalf("Brokers: want cleaned list, got %v", rc.Brokers)
			}
			// топик фиксирован
			if rc.Topic != mykafka.OrdersTopic {
				t.Fatalf("Topic: want %s, got %s", mykafka.OrdersTopic, rc.Topic)
			}
			if rc.GroupID != "group-1" {
				t.Fatalf("GroupID: want group-1, got %s", rc.GroupID)
			}
		})
	}
}

func TestConsumerConfig_CommitMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mode         string
		interval     time.Duration
		wantMode     mykafka.CommitMode
		wantInterval time.Duration
	}{
		{"default -> interval 1s", "", 0, mykafka.CommitModeInterval, time.Second},
		{"interval custom", "interval", 250 * time.Millisecond, mykafka.CommitModeInterval, 250 * time.Millisecond},
		{"after-persist sync", "after-persist", 5 * time.Second, mykafka.CommitModeAfterPersist, 0},
		{"after_persist upper", " AFTER_PERSIST ", 0, mykafka.CommitModeAfterPersist, 0},
		{"unknown -> interval", "sometimes", 0, mykafka.CommitModeInterval, time.Second},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := mykafka.ConsumerConfig{Brokers: []string{"k:9092"}, CommitMode: tt.mode, CommitInterval: tt.interval}
			if got := cfg.Mode(); got != tt.wantMode {
				t.Fatalf("Mode: want %s, got %s", tt.wantMode, got)
			}
			if got := cfg.ReaderConfig().CommitInterval; got != tt.wantInterval {
				t.Fatalf("CommitInterval: want %v, got %v", tt.wantInterval, got)
			}
		})
	}
}

func TestConsumerConfig_DefaultGroupID(t *testing.T) {
	t.Parallel()

	cfg := mykafka.ConsumerConfig{Brokers: []string{"k:9092"}, GroupID: "  "}
	if got := cfg.ReaderConfig().GroupID; got != "accounting" {
		t.Fatalf("GroupID: want accounting, got %q", got)
	}
}
