package ports

import "context"

// MessageConsumer — долгоживущий потребитель сообщений (цикл приёма).
type MessageConsumer interface {
	Run(ctx context.Context) error
	// Close — сигнал остановки; не ждёт завершения Run.
	Close() error
}

// ConsumerAborter — принудительная остановка потребителя, если Run не завершился вовремя.
type ConsumerAborter interface {
	Abort() error
}
