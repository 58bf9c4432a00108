package domain

import "time"

// Message — входящее сообщение брокера без привязки к конкретному клиенту.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Time      time.Time
}

// DedupeKey — ключ сообщения для колонки message_key; nil, если ключа нет.
func (m *Message) DedupeKey() *string {
	if len(m.Key) == 0 {
		return nil
	}
	key := string(m.Key)
	return &key
}
