package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Options — параметры экспорта трейсов.
type Options struct {
	ServiceName string
	Endpoint    string // host:port OTLP/HTTP
	SampleRatio float64
}

// ShutdownFunc — сброс и остановка провайдера.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// normalize — дефолтный endpoint и границы семплинга [0..1].
func (o Options) normalize() Options {
	if o.ServiceName == "" {
		o.ServiceName = "accounting"
	}
	if o.Endpoint == "" {
		o.Endpoint = "localhost:4318"
	}
	if o.SampleRatio < 0 {
		o.SampleRatio = 0
	}
	if o.SampleRatio > 1 {
		o.SampleRatio = 1
	}
	return o
}

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
func SetupTracing(ctx context.Context, opts Options) (ShutdownFunc, error) {
	opts = opts.normalize()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return noopShutdown, err
	}

	tp := NewProvider(opts, sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)
	return tp.Shutdown, nil
}

// NewProvider — провайдер с семплингом и ресурсом сервиса; экспорт задаётся extra (в тестах — in-memory).
func NewProvider(opts Options, extra ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = opts.normalize()
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			attribute.String("telemetry.sdk", "opentelemetry"),
		)),
	}
	return sdktrace.NewTracerProvider(append(base, extra...)...)
}
