package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/order-accounting/internal/domain"
	"github.com/Gunvolt24/order-accounting/internal/ports"
	"github.com/Gunvolt24/order-accounting/pkg/metrics"
)

var _ ports.MessageConsumer = (*Orchestrator)(nil)

// ErrAlreadyStarted — Run вызван повторно.
var ErrAlreadyStarted = errors.New("orchestrator already started")

// State — состояние цикла приёма.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// OrchestratorConfig — тайминги цикла; нулевые значения заменяются дефолтами.
type OrchestratorConfig struct {
	Delay        time.Duration // пауза после каждого обработанного сообщения
	RetryInitial time.Duration // стартовый backoff после ошибки чтения
	RetryMax     time.Duration // потолок backoff
}

// Orchestrator — единственный цикл fetch -> decode -> persist.
// Владеет BrokerClient: обращается к нему только из Run и закрывает ровно один раз в shutdown.
type Orchestrator struct {
	broker   ports.BrokerClient
	ingestor *OrderIngestor
	log      ports.Logger

	delay        time.Duration
	retryInitial time.Duration
	retryMax     time.Duration
	jitterRand   *rand.Rand

	state     atomic.Int32
	stopCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
	closeErr  error
}

func NewOrchestrator(broker ports.BrokerClient, ingestor *OrderIngestor, log ports.Logger, cfg OrchestratorConfig) *Orchestrator {
	delay := cfg.Delay
	if delay < 0 {
		delay = 0
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}
	if rMax < rInit {
		rMax = rInit
	}

	return &Orchestrator{
		broker:       broker,
		ingestor:     ingestor,
		log:          log,
		delay:        delay,
		retryInitial: rInit,
		retryMax:     rMax,
		jitterRand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		stopCh:       make(chan struct{}),
	}
}

// State — текущее состояние (безопасно читать из других горутин).
func (o *Orchestrator) State() State { return State(o.state.Load()) }

// Run — основной цикл:
// 1) остановка (Stop или отмена ctx) -> Stopping, Close брокера, Stopped, nil;
// 2) ошибка чтения -> предупреждение, backoff с equal-jitter, следующая итерация;
// 3) сообщение -> Ingest; Ack только для записанных и отброшенных;
// 4) после каждого сообщения фиксированная пауза.
func (o *Orchestrator) Run(ctx context.Context) error {
	if !o.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-o.stopCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	o.log.Infof(ctx, "orchestrator started")
	retry := o.retryInitial

	for {
		if o.stopping(runCtx) {
			return o.shutdown(ctx)
		}

		msg, err := o.broker.FetchNext(runCtx)
		if err != nil {
			if o.stopping(runCtx) {
				return o.shutdown(ctx)
			}
			metrics.KafkaFetchErrors.Inc()
			sleep := o.withJitterEqual(retry)
			o.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
			if !o.sleepWithBackoff(runCtx, sleep) {
				return o.shutdown(ctx)
			}
			retry = o.nextBackoff(retry)
			continue
		}

		retry = o.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(msg.Topic).Inc()

		// Начатое сообщение дорабатывается до конца даже при остановке.
		msgCtx := context.WithoutCancel(runCtx)
		if outcome := o.ingestor.Ingest(msgCtx, msg); outcome.ShouldAck() {
			o.ackSafely(msgCtx, msg)
		}

		if !o.sleepWithBackoff(runCtx, o.delay) {
			return o.shutdown(ctx)
		}
	}
}

// Stop — сигнал остановки; прерывает ожидающий FetchNext. Идемпотентен.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		o.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
		close(o.stopCh)
	})
}

// Close — Stop без ожидания. Брокер закрывает сам цикл при переходе в Stopping,
// после того как начатое сообщение записано и подтверждено.
// Если Run так и не был вызван, брокер закрывается здесь.
func (o *Orchestrator) Close() error {
	o.Stop()
	if o.state.CompareAndSwap(int32(StateIdle), int32(StateStopped)) {
		return o.closeBroker()
	}
	return nil
}

// Abort — закрытие брокера снаружи цикла; только когда цикл не уложился в отведённое время.
// Начатое сообщение при этом может остаться неподтверждённым.
func (o *Orchestrator) Abort() error {
	o.Stop()
	return o.closeBroker()
}

func (o *Orchestrator) shutdown(ctx context.Context) error {
	o.state.Store(int32(StateStopping))
	if err := o.closeBroker(); err != nil {
		o.log.Warnf(ctx, "broker close failed: %v", err)
	}
	o.state.Store(int32(StateStopped))
	o.log.Infof(ctx, "orchestrator stopped")
	return nil
}

func (o *Orchestrator) closeBroker() error {
	o.closeOnce.Do(func() {
		o.closeErr = o.broker.Close()
	})
	return o.closeErr
}

func (o *Orchestrator) stopping(ctx context.Context) bool {
	select {
	case <-o.stopCh:
		return true
	default:
		return ctx.Err() != nil
	}
}

func (o *Orchestrator) ackSafely(ctx context.Context, msg domain.Message) {
	if err := o.broker.Ack(ctx, msg); err != nil {
		o.log.Warnf(ctx, "ack failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
	}
}

// sleepWithBackoff ждёт d или останавливается по контексту; d <= 0 — без ожидания.
func (o *Orchestrator) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (o *Orchestrator) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > o.retryMax {
		return o.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (o *Orchestrator) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(o.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
